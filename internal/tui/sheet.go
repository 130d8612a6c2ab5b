package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jonboulle/clockwork"

	"github.com/refero-hq/partnerctl/internal/api"
)

// sheetWidth is the inner width of the slide-over panel.
const sheetWidth = 50

// SheetOptions configures a program application sheet.
type SheetOptions struct {
	Program    *api.Program
	Partner    *api.PartnerProfile
	Submit     SubmitFunc
	OnSuccess  func()
	Invalidate func(key string)
	OpenTerms  func(url string) error
	DraftsDir  string

	// Nested marks a sheet stacked on another panel; it gets the
	// accented border.
	Nested bool

	Clock clockwork.Clock
	Ctx   context.Context
}

// Sheet is the slide-over panel containing the application form. It is
// a thin shell: open/close state and the nested flag live here, the
// form logic lives in Content.
type Sheet struct {
	open    bool
	nested  bool
	content *Content
	toast   ToastModel

	width  int
	height int
}

// NewSheet creates a sheet pre-wired to its open flag and returns it
// together with the setter, so a parent can trigger opening without
// managing the panel's internals.
func NewSheet(opts SheetOptions) (*Sheet, func(bool)) {
	s := &Sheet{
		nested: opts.Nested,
		toast:  NewToast(opts.Clock),
	}

	setOpen := func(open bool) {
		s.open = open
	}

	s.content = NewContent(ContentOptions{
		Program:    opts.Program,
		Partner:    opts.Partner,
		Submit:     opts.Submit,
		SetOpen:    setOpen,
		OnSuccess:  opts.OnSuccess,
		Invalidate: opts.Invalidate,
		OpenTerms:  opts.OpenTerms,
		DraftsDir:  opts.DraftsDir,
		Ctx:        opts.Ctx,
	})

	return s, setOpen
}

// IsOpen reports the panel's open flag.
func (s *Sheet) IsOpen() bool {
	return s.open
}

// Succeeded reports whether the form's submission went through.
func (s *Sheet) Succeeded() bool {
	return s.content.Succeeded()
}

// SubmitError returns the error from the most recent submission
// attempt, or nil when there was none or a later attempt succeeded.
func (s *Sheet) SubmitError() error {
	return s.content.SubmitError()
}

// ToastActive reports whether a notification is still on screen.
func (s *Sheet) ToastActive() bool {
	return s.toast.Active()
}

func (s *Sheet) Init() tea.Cmd {
	return s.content.Init()
}

// Update forwards messages to the content while the panel is open and
// keeps the toast alive regardless, so a success toast outlives the
// panel.
func (s *Sheet) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		return nil
	case ShowToastMsg:
		return s.toast.Show(msg.Kind, msg.Message)
	case toastExpiredMsg:
		s.toast.Update(msg)
		return nil
	}

	if !s.open {
		return nil
	}

	_, cmd := s.content.Update(msg)
	return cmd
}

// View renders the panel docked to the right edge, plus any active
// toast underneath.
func (s *Sheet) View() string {
	if !s.open {
		return s.toast.View()
	}

	style := panelStyle
	if s.nested {
		style = nestedPanelStyle
	}

	panel := style.Width(sheetWidth).Render(s.content.View())

	if t := s.toast.View(); t != "" {
		panel = lipgloss.JoinVertical(lipgloss.Left, panel, t)
	}

	if s.width > 0 {
		return lipgloss.PlaceHorizontal(s.width, lipgloss.Right, panel)
	}
	return panel
}

// sheetRunner hosts a sheet as a standalone Bubble Tea program,
// quitting once the panel has closed and any toast has expired.
type sheetRunner struct {
	sheet *Sheet
}

func (r sheetRunner) Init() tea.Cmd {
	return r.sheet.Init()
}

func (r sheetRunner) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyCtrlC {
		return r, tea.Quit
	}

	cmd := r.sheet.Update(msg)

	// Quit only once nothing is pending: a returned command may still
	// carry the success toast, which has to be shown before exiting.
	if !r.sheet.IsOpen() && !r.sheet.ToastActive() && cmd == nil {
		return r, tea.Quit
	}
	return r, cmd
}

func (r sheetRunner) View() string {
	return r.sheet.View()
}

// RunSheet opens the sheet and blocks until it closes. Profile changes
// arriving on profileUpdates are forwarded into the form so the
// applicant identity stays current; a nil channel disables this.
func RunSheet(sheet *Sheet, setOpen func(bool), profileUpdates <-chan *api.PartnerProfile) error {
	setOpen(true)
	p := tea.NewProgram(sheetRunner{sheet: sheet}, tea.WithAltScreen())

	if profileUpdates != nil {
		go func() {
			for profile := range profileUpdates {
				p.Send(ProfileUpdatedMsg{Profile: profile})
			}
		}()
	}

	_, err := p.Run()
	return err
}
