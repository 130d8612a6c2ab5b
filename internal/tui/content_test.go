package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refero-hq/partnerctl/internal/api"
	"github.com/refero-hq/partnerctl/internal/config"
)

// contentHarness wires a Content to recording collaborators.
type contentHarness struct {
	content *Content

	mu          sync.Mutex
	submissions []api.ApplicationPayload
	submitErr   error

	open         bool
	openChanges  []bool
	invalidated  []string
	successCalls int
	toasts       []ShowToastMsg
}

func newHarness(t *testing.T, program *api.Program, partner *api.PartnerProfile) *contentHarness {
	t.Helper()

	h := &contentHarness{open: true}

	h.content = NewContent(ContentOptions{
		Program: program,
		Partner: partner,
		Submit: func(ctx context.Context, payload api.ApplicationPayload) error {
			h.mu.Lock()
			defer h.mu.Unlock()
			if h.submitErr != nil {
				return h.submitErr
			}
			h.submissions = append(h.submissions, payload)
			return nil
		},
		SetOpen: func(open bool) {
			h.open = open
			h.openChanges = append(h.openChanges, open)
		},
		OnSuccess: func() { h.successCalls++ },
		Invalidate: func(key string) {
			h.invalidated = append(h.invalidated, key)
		},
		Ctx: context.Background(),
	})

	return h
}

// drive executes commands returned by Update, feeding resulting
// messages back into the content. Spinner ticks are dropped to avoid
// looping forever.
func (h *contentHarness) drive(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		msg := next()
		switch m := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, m...)
		case spinner.TickMsg:
			// ignore
		case ShowToastMsg:
			h.toasts = append(h.toasts, m)
		default:
			_, cmd := h.content.Update(msg)
			queue = append(queue, cmd)
		}
	}
}

func (h *contentHarness) pressCtrlS() {
	_, cmd := h.content.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	h.drive(cmd)
}

func acmeProgram() *api.Program {
	return &api.Program{
		ID:       "prog_1",
		Slug:     "acme",
		Name:     "Acme",
		Domain:   "acme.com",
		TermsURL: "https://x/terms",
	}
}

func noTermsProgram() *api.Program {
	return &api.Program{ID: "prog_2", Slug: "globex", Name: "Globex", Domain: "globex.io"}
}

func partnerA() *api.PartnerProfile {
	return &api.PartnerProfile{Email: "a@b.com", Name: "A"}
}

func TestSubmit_EmptyProposalBlocked(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())

	h.pressCtrlS()

	require.Empty(t, h.submissions, "empty proposal must block submission")
	assert.Equal(t, "proposal is required", h.content.fields.FieldError(fieldProposal))
	assert.True(t, h.open, "panel must stay open")
	assert.False(t, h.content.Submitting())
}

func TestSubmit_TermsUncheckedBlocked(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())
	h.content.proposal.SetValue("I will blog")

	h.pressCtrlS()

	require.Empty(t, h.submissions, "unchecked terms must block submission")
	assert.Equal(t, "You must agree to the program terms", h.content.fields.FieldError(fieldTerms))
}

func TestSubmit_NoTermsURL_CheckboxAbsent(t *testing.T) {
	h := newHarness(t, noTermsProgram(), partnerA())
	h.content.proposal.SetValue("I will blog")

	require.False(t, h.content.termsRequired())
	assert.NotContains(t, h.content.View(), "program terms", "checkbox must not be rendered")

	h.pressCtrlS()

	require.Len(t, h.submissions, 1, "submission must succeed without terms field")
	assert.False(t, h.submissions[0].TermsAgreement)
}

func TestSubmit_Success(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())
	h.content.proposal.SetValue("I will blog")
	h.content.agreed = true

	h.pressCtrlS()

	require.Len(t, h.submissions, 1)
	payload := h.submissions[0]
	assert.Equal(t, "I will blog", payload.Proposal)
	assert.Equal(t, "a@b.com", payload.Email)
	assert.Equal(t, "A", payload.Name)
	assert.Equal(t, "prog_1", payload.ProgramID)
	assert.True(t, payload.TermsAgreement)
	assert.NotEmpty(t, payload.IdempotencyKey)

	assert.False(t, h.open, "panel must close on success")
	assert.Equal(t, []bool{false}, h.openChanges, "open flag must flip exactly once")
	assert.Equal(t, 1, h.successCalls, "onSuccess must fire exactly once")
	assert.Equal(t, []string{"programs/acme"}, h.invalidated)

	require.Len(t, h.toasts, 1, "success toast must fire exactly once")
	assert.Equal(t, ToastSuccess, h.toasts[0].Kind)

	assert.True(t, h.content.Succeeded())
}

func TestSubmit_ServerError(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())
	h.submitErr = &api.Error{StatusCode: 409, Message: "You already applied to this program."}
	h.content.proposal.SetValue("I will blog")
	h.content.agreed = true

	h.pressCtrlS()

	assert.True(t, h.open, "panel must stay open on failure")
	assert.Empty(t, h.openChanges)
	assert.Equal(t, 0, h.successCalls)
	assert.Empty(t, h.invalidated)

	assert.Equal(t, "You already applied to this program.", h.content.fields.RootError())

	require.Len(t, h.toasts, 1)
	assert.Equal(t, ToastError, h.toasts[0].Kind)
	assert.Equal(t, "You already applied to this program.", h.toasts[0].Message)

	assert.False(t, h.content.Submitting(), "error returns the form to idle for retry")
}

func TestSubmit_FallbackErrorMessage(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())
	h.submitErr = context.DeadlineExceeded
	h.content.proposal.SetValue("I will blog")
	h.content.agreed = true

	h.pressCtrlS()

	assert.Equal(t, api.FallbackSubmitError, h.content.fields.RootError())
	require.Len(t, h.toasts, 1)
	assert.Equal(t, api.FallbackSubmitError, h.toasts[0].Message)
}

func TestSubmit_RetryAfterError(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())
	h.submitErr = &api.Error{StatusCode: 500}
	h.content.proposal.SetValue("I will blog")
	h.content.agreed = true

	h.pressCtrlS()
	require.True(t, h.open)

	h.submitErr = nil
	h.pressCtrlS()

	require.Len(t, h.submissions, 1)
	assert.False(t, h.open, "retry after error must be able to succeed")
	assert.Empty(t, h.content.fields.RootError(), "root error cleared on revalidation")
}

func TestSubmit_NoOpWithoutPartnerEmail(t *testing.T) {
	h := newHarness(t, acmeProgram(), &api.PartnerProfile{Name: "A"})
	h.content.proposal.SetValue("I will blog")
	h.content.agreed = true

	h.pressCtrlS()

	assert.Empty(t, h.submissions, "missing partner email makes submit a no-op")
	assert.True(t, h.open)
}

func TestSubmit_NoOpWithoutProgram(t *testing.T) {
	h := newHarness(t, nil, partnerA())

	h.pressCtrlS()

	assert.Empty(t, h.submissions)
	assert.Empty(t, h.content.View(), "nil program renders nothing")
}

func TestSubmit_DisabledWhileInFlight(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())
	h.content.proposal.SetValue("I will blog")
	h.content.agreed = true

	// Fire the submit but do not deliver the result yet.
	_, cmd := h.content.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	require.NotNil(t, cmd)
	require.True(t, h.content.Submitting())

	// A second submit while in flight must not produce a new call.
	_, second := h.content.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	assert.Nil(t, second)

	assert.Contains(t, h.content.View(), "Submitting", "submit control shows the loading state")
}

func TestSubmit_StaysDisabledAfterSuccess(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())
	h.content.proposal.SetValue("I will blog")
	h.content.agreed = true

	h.pressCtrlS()
	require.Len(t, h.submissions, 1)

	h.pressCtrlS()
	assert.Len(t, h.submissions, 1, "no duplicate submit after success")
}

func TestFocusCycling(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())

	require.Equal(t, focusProposal, h.content.focus)

	h.content.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusComments, h.content.focus)

	h.content.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusTerms, h.content.focus, "terms focusable when terms URL set")

	h.content.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusSubmit, h.content.focus)

	h.content.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusProposal, h.content.focus, "focus wraps")

	h.content.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, focusSubmit, h.content.focus, "shift+tab wraps backwards")
}

func TestFocusCycling_NoTerms(t *testing.T) {
	h := newHarness(t, noTermsProgram(), partnerA())

	h.content.Update(tea.KeyMsg{Type: tea.KeyTab})
	h.content.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, focusSubmit, h.content.focus, "terms skipped when absent")
}

func TestTermsToggle(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())

	h.content.focus = focusTerms
	h.content.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.True(t, h.content.agreed)

	h.content.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.False(t, h.content.agreed)
}

func TestEsc_ClosesAndSavesDraft(t *testing.T) {
	draftsDir := t.TempDir()

	h := &contentHarness{open: true}
	h.content = NewContent(ContentOptions{
		Program:   acmeProgram(),
		Partner:   partnerA(),
		DraftsDir: draftsDir,
		SetOpen: func(open bool) {
			h.open = open
		},
	})

	h.content.proposal.SetValue("half-finished pitch")
	closed, _ := h.content.Update(tea.KeyMsg{Type: tea.KeyEsc})

	require.True(t, closed)
	assert.False(t, h.open)

	draft, err := config.LoadDraft(draftsDir, "acme")
	require.NoError(t, err)
	require.NotNil(t, draft, "draft should be saved on cancel")
	assert.Equal(t, "half-finished pitch", draft.Proposal)

	// Reopening restores the draft.
	reopened := NewContent(ContentOptions{
		Program:   acmeProgram(),
		Partner:   partnerA(),
		DraftsDir: draftsDir,
	})
	assert.Equal(t, "half-finished pitch", reopened.proposal.Value())
}

func TestSuccess_DiscardsDraft(t *testing.T) {
	draftsDir := t.TempDir()
	require.NoError(t, config.SaveDraft(draftsDir, "acme", &config.Draft{Proposal: "old pitch"}))

	h := newHarness(t, acmeProgram(), partnerA())
	h.content.opts.DraftsDir = draftsDir
	h.content.proposal.SetValue("final pitch")
	h.content.agreed = true

	h.pressCtrlS()
	require.Len(t, h.submissions, 1)

	draft, err := config.LoadDraft(draftsDir, "acme")
	require.NoError(t, err)
	assert.Nil(t, draft, "draft should be discarded after successful submit")
}

func TestSubmit_ProposalOverLimitBlocked(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())
	h.content.agreed = true

	// Bypass the widget's input cap; a restored draft is not typed.
	h.content.proposal.CharLimit = 0
	h.content.proposal.SetValue(strings.Repeat("a", maxFieldChars+1))

	h.pressCtrlS()

	require.Empty(t, h.submissions, "over-limit proposal must block submission")
	assert.Contains(t, h.content.fields.FieldError(fieldProposal), "at most 5000 characters")
}

func TestEditing_ClearsStaleErrors(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())

	h.pressCtrlS()
	require.Contains(t, h.content.View(), "proposal is required")

	h.content.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})

	assert.NotContains(t, h.content.View(), "proposal is required")
	assert.Empty(t, h.content.fields.RootError())
}

func TestProfileUpdate_RefreshesApplicant(t *testing.T) {
	h := newHarness(t, acmeProgram(), &api.PartnerProfile{Name: "A"})
	h.content.proposal.SetValue("I will blog")
	h.content.agreed = true

	h.pressCtrlS()
	require.Empty(t, h.submissions, "no submission without an email")

	h.content.Update(ProfileUpdatedMsg{Profile: partnerA()})

	h.pressCtrlS()
	require.Len(t, h.submissions, 1)
	assert.Equal(t, "a@b.com", h.submissions[0].Email)
}

func TestView_ShowsValidationErrors(t *testing.T) {
	h := newHarness(t, acmeProgram(), partnerA())

	h.pressCtrlS()

	view := h.content.View()
	assert.Contains(t, view, "proposal is required")
	assert.True(t, strings.Contains(view, "Apply to Acme"))
}
