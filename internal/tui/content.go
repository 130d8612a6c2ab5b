package tui

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/refero-hq/partnerctl/internal/api"
	"github.com/refero-hq/partnerctl/internal/cache"
	"github.com/refero-hq/partnerctl/internal/config"
	"github.com/refero-hq/partnerctl/internal/form"
	"github.com/refero-hq/partnerctl/internal/logging"
)

// Form field names.
const (
	fieldProposal = "proposal"
	fieldComments = "comments"
	fieldTerms    = "terms"
)

// contentFocus identifies the focused control.
type contentFocus int

const (
	focusProposal contentFocus = iota
	focusComments
	focusTerms
	focusSubmit
)

// submitState is the submission state machine:
// idle -> submitting -> {succeeded | idle on error}.
type submitState int

const (
	stateIdle submitState = iota
	stateSubmitting
	stateSucceeded
)

// submitResultMsg carries the outcome of the outbound call.
type submitResultMsg struct {
	err error
}

// ProfileUpdatedMsg delivers a refreshed partner profile to the form,
// so a submission always carries the current applicant identity.
type ProfileUpdatedMsg struct {
	Profile *api.PartnerProfile
}

// maxFieldChars caps the free-text fields, both in the widget and at
// submit-time validation.
const maxFieldChars = 5000

// SubmitFunc invokes the platform's application submission.
type SubmitFunc func(ctx context.Context, payload api.ApplicationPayload) error

// ContentOptions wires the application form to its collaborators.
type ContentOptions struct {
	// Program is the program being applied to. When nil the content
	// renders nothing and all input is ignored.
	Program *api.Program

	// Partner identifies the applicant. Submission is a no-op without
	// a partner email.
	Partner *api.PartnerProfile

	// Submit performs the outbound action call.
	Submit SubmitFunc

	// SetOpen closes (or opens) the enclosing panel.
	SetOpen func(open bool)

	// OnSuccess is invoked once after a successful submission.
	OnSuccess func()

	// Invalidate broadcasts a cache invalidation for a key.
	Invalidate func(key string)

	// OpenTerms opens the program's terms URL, when configured.
	OpenTerms func(url string) error

	// DraftsDir enables draft persistence when non-empty.
	DraftsDir string

	// Ctx is passed to Submit so quitting cancels an in-flight call.
	Ctx context.Context
}

// Content is the application form: proposal, comments, and a terms
// checkbox that only exists when the program has a terms URL.
type Content struct {
	opts    ContentOptions
	program *api.Program
	fields  *form.Form

	proposal textarea.Model
	comments textarea.Model
	agreed   bool

	focus   contentFocus
	state   submitState
	lastErr error
	spin    spinner.Model
}

// NewContent creates the form for a program application. A saved
// draft for the program, if any, prefills the text fields.
func NewContent(opts ContentOptions) *Content {
	if opts.Ctx == nil {
		opts.Ctx = context.Background()
	}

	proposal := textarea.New()
	proposal.Placeholder = "How do you plan to promote this program?"
	proposal.CharLimit = maxFieldChars
	proposal.SetWidth(44)
	proposal.SetHeight(5)
	proposal.Focus()

	comments := textarea.New()
	comments.Placeholder = "Anything else you'd like to share (optional)"
	comments.CharLimit = maxFieldChars
	comments.SetWidth(44)
	comments.SetHeight(3)

	fields := form.New()
	fields.AddText(fieldProposal, form.Required("proposal"), form.MaxLength("proposal", maxFieldChars))
	fields.AddText(fieldComments, form.MaxLength("comments", maxFieldChars))

	c := &Content{
		opts:     opts,
		program:  opts.Program,
		fields:   fields,
		proposal: proposal,
		comments: comments,
		focus:    focusProposal,
		spin:     spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	if c.termsRequired() {
		fields.AddCheckbox(fieldTerms, form.MustBeChecked("You must agree to the program terms"))
	}

	c.restoreDraft()
	return c
}

// termsRequired reports whether the terms checkbox is rendered at all.
func (c *Content) termsRequired() bool {
	return c.program != nil && c.program.TermsURL != ""
}

// Submitting reports whether the outbound call is in flight.
func (c *Content) Submitting() bool {
	return c.state == stateSubmitting
}

// Succeeded reports whether the submission completed successfully.
func (c *Content) Succeeded() bool {
	return c.state == stateSucceeded
}

// SubmitError returns the error from the most recent attempt, or nil.
func (c *Content) SubmitError() error {
	return c.lastErr
}

func (c *Content) Init() tea.Cmd {
	return textarea.Blink
}

// Update processes a message. closed=true means the panel should
// close (cancel or successful submit).
func (c *Content) Update(msg tea.Msg) (closed bool, cmd tea.Cmd) {
	if c.program == nil {
		// Nothing rendered; only allow closing.
		if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
			return c.close(), nil
		}
		return false, nil
	}

	switch msg := msg.(type) {
	case submitResultMsg:
		return c.handleResult(msg.err)

	case ProfileUpdatedMsg:
		if msg.Profile != nil {
			c.opts.Partner = msg.Profile
		}
		return false, nil

	case spinner.TickMsg:
		if c.state == stateSubmitting {
			var sc tea.Cmd
			c.spin, sc = c.spin.Update(msg)
			return false, sc
		}
		return false, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	return false, c.forwardToFocused(msg)
}

func (c *Content) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	// While in flight or after success every control is disabled;
	// esc still closes.
	if c.state != stateIdle {
		if msg.Type == tea.KeyEsc && c.state != stateSubmitting {
			return c.close(), nil
		}
		return false, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		return c.close(), nil
	case tea.KeyTab:
		return false, c.cycleFocus(1)
	case tea.KeyShiftTab:
		return false, c.cycleFocus(-1)
	case tea.KeyCtrlS:
		return false, c.submitAttempt()
	case tea.KeyCtrlO:
		c.openTerms()
		return false, nil
	case tea.KeyEnter:
		if c.focus == focusSubmit {
			return false, c.submitAttempt()
		}
	case tea.KeySpace:
		if c.focus == focusTerms {
			c.agreed = !c.agreed
			c.fields.ClearErrors()
			return false, nil
		}
	}

	// Editing after a failed attempt clears the stale errors.
	if msg.Type == tea.KeyRunes || msg.Type == tea.KeyBackspace {
		c.fields.ClearErrors()
	}

	return false, c.forwardToFocused(msg)
}

// close saves a draft of unsubmitted text and closes the panel.
func (c *Content) close() bool {
	if c.state != stateSucceeded {
		c.saveDraft()
	}
	if c.opts.SetOpen != nil {
		c.opts.SetOpen(false)
	}
	return true
}

func (c *Content) cycleFocus(dir int) tea.Cmd {
	order := []contentFocus{focusProposal, focusComments, focusSubmit}
	if c.termsRequired() {
		order = []contentFocus{focusProposal, focusComments, focusTerms, focusSubmit}
	}

	idx := 0
	for i, f := range order {
		if f == c.focus {
			idx = i
			break
		}
	}
	idx = (idx + dir + len(order)) % len(order)
	c.focus = order[idx]

	c.proposal.Blur()
	c.comments.Blur()

	switch c.focus {
	case focusProposal:
		c.proposal.Focus()
		return textarea.Blink
	case focusComments:
		c.comments.Focus()
		return textarea.Blink
	}
	return nil
}

func (c *Content) forwardToFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch c.focus {
	case focusProposal:
		c.proposal, cmd = c.proposal.Update(msg)
	case focusComments:
		c.comments, cmd = c.comments.Update(msg)
	}
	return cmd
}

// syncForm copies widget state into the field container.
func (c *Content) syncForm() {
	c.fields.Set(fieldProposal, c.proposal.Value())
	c.fields.Set(fieldComments, c.comments.Value())
	if c.fields.Has(fieldTerms) {
		c.fields.SetChecked(fieldTerms, c.agreed)
	}
}

// submitAttempt validates and fires the outbound call. It is a no-op
// when the program or the partner email is missing, or when a call is
// already in flight.
func (c *Content) submitAttempt() tea.Cmd {
	if c.program == nil || c.opts.Partner == nil || c.opts.Partner.Email == "" {
		return nil
	}
	if c.state != stateIdle {
		return nil
	}

	c.syncForm()
	if !c.fields.Validate() {
		return nil
	}

	payload := api.ApplicationPayload{
		Proposal:       strings.TrimSpace(c.fields.Value(fieldProposal)),
		Comments:       strings.TrimSpace(c.fields.Value(fieldComments)),
		TermsAgreement: c.fields.Checked(fieldTerms),
		Email:          c.opts.Partner.Email,
		Name:           c.opts.Partner.Name,
		Website:        c.opts.Partner.Website,
		ProgramID:      c.program.ID,
		IdempotencyKey: uuid.NewString(),
	}

	c.state = stateSubmitting

	submit := c.opts.Submit
	ctx := c.opts.Ctx
	call := func() tea.Msg {
		if submit == nil {
			return submitResultMsg{}
		}
		return submitResultMsg{err: submit(ctx, payload)}
	}

	return tea.Batch(c.spin.Tick, call)
}

// handleResult applies the success and failure side effects.
func (c *Content) handleResult(err error) (bool, tea.Cmd) {
	if c.state != stateSubmitting {
		// Late response after the panel already moved on.
		return false, nil
	}

	c.lastErr = err

	if err != nil {
		c.state = stateIdle
		message := api.FallbackSubmitError
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			message = apiErr.UserMessage()
		}
		c.fields.SetRootError(message)
		logging.Debug("application rejected", "program", c.program.Slug, "error", err)
		return false, showToast(ToastError, message)
	}

	// The state stays succeeded so the submit control remains
	// disabled until the panel is gone.
	c.state = stateSucceeded

	if c.opts.Invalidate != nil {
		c.opts.Invalidate(cache.ProgramKey(c.program.Slug))
	}
	c.discardDraft()
	if c.opts.OnSuccess != nil {
		c.opts.OnSuccess()
	}
	if c.opts.SetOpen != nil {
		c.opts.SetOpen(false)
	}

	return true, showToast(ToastSuccess, "Your application has been submitted for review.")
}

func (c *Content) openTerms() {
	if !c.termsRequired() || c.opts.OpenTerms == nil {
		return
	}
	if err := c.opts.OpenTerms(c.program.TermsURL); err != nil {
		logging.Warn("failed to open terms url", "url", c.program.TermsURL, "error", err)
	}
}

func showToast(kind ToastKind, message string) tea.Cmd {
	return func() tea.Msg {
		return ShowToastMsg{Kind: kind, Message: message}
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// Draft persistence

func (c *Content) restoreDraft() {
	if c.opts.DraftsDir == "" || c.program == nil {
		return
	}
	draft, err := config.LoadDraft(c.opts.DraftsDir, c.program.Slug)
	if err != nil {
		logging.Debug("failed to load draft", "program", c.program.Slug, "error", err)
		return
	}
	if draft == nil {
		return
	}
	c.proposal.SetValue(draft.Proposal)
	c.comments.SetValue(draft.Comments)
}

func (c *Content) saveDraft() {
	if c.opts.DraftsDir == "" || c.program == nil {
		return
	}
	proposal := strings.TrimSpace(c.proposal.Value())
	comments := strings.TrimSpace(c.comments.Value())
	if proposal == "" && comments == "" {
		return
	}
	draft := &config.Draft{Proposal: proposal, Comments: comments, SavedAt: nowUTC()}
	if err := config.SaveDraft(c.opts.DraftsDir, c.program.Slug, draft); err != nil {
		logging.Warn("failed to save draft", "program", c.program.Slug, "error", err)
	}
}

func (c *Content) discardDraft() {
	if c.opts.DraftsDir == "" || c.program == nil {
		return
	}
	if err := config.DeleteDraft(c.opts.DraftsDir, c.program.Slug); err != nil {
		logging.Debug("failed to delete draft", "program", c.program.Slug, "error", err)
	}
}

// View renders the form. A nil program renders nothing.
func (c *Content) View() string {
	if c.program == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Apply to " + c.program.Name))
	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(c.program.Domain))
	b.WriteString("\n\n")

	b.WriteString(c.renderLabel("Proposal", focusProposal))
	b.WriteString("\n")
	b.WriteString(c.proposal.View())
	b.WriteString("\n")
	if msg := c.fields.FieldError(fieldProposal); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(c.renderLabel("Comments", focusComments))
	b.WriteString("\n")
	b.WriteString(c.comments.View())
	b.WriteString("\n\n")

	if c.termsRequired() {
		b.WriteString(c.renderTerms())
		b.WriteString("\n")
		if msg := c.fields.FieldError(fieldTerms); msg != "" {
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if msg := c.fields.RootError(); msg != "" {
		b.WriteString(errorStyle.Render(msg))
		b.WriteString("\n\n")
	}

	b.WriteString(c.renderSubmit())
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Tab to move, Ctrl+S to submit, Esc to close."))

	return b.String()
}

func (c *Content) renderLabel(label string, focus contentFocus) string {
	if c.focus == focus {
		return selectedStyle.Render(label)
	}
	return labelStyle.Render(label)
}

func (c *Content) renderTerms() string {
	checked := " "
	if c.agreed {
		checked = "x"
	}

	line := "[" + checked + "] I agree to the program terms (Ctrl+O to view)"
	if c.focus == focusTerms {
		return selectedStyle.Render(line)
	}
	return line
}

func (c *Content) renderSubmit() string {
	switch c.state {
	case stateSubmitting:
		return buttonDisabledStyle.Render(c.spin.View() + " Submitting…")
	case stateSucceeded:
		return buttonDisabledStyle.Render("Submitted")
	}

	if c.focus == focusSubmit {
		return buttonActiveStyle.Render("Submit application")
	}
	return buttonStyle.Render("Submit application")
}
