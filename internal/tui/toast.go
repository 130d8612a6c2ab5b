package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
)

// ToastKind distinguishes success and error notifications.
type ToastKind int

const (
	ToastSuccess ToastKind = iota
	ToastError
)

// ShowToastMsg requests a transient notification. Emitted by the form
// content and handled by whichever model renders the toast.
type ShowToastMsg struct {
	Kind    ToastKind
	Message string
}

// toastExpiredMsg dismisses a toast. The seq guards against an old
// timer dismissing a newer toast.
type toastExpiredMsg struct {
	seq int
}

// toastDuration is how long a toast stays visible.
const toastDuration = 4 * time.Second

// ToastModel renders one transient notification at a time.
type ToastModel struct {
	clock   clockwork.Clock
	seq     int
	visible bool
	kind    ToastKind
	message string
}

// NewToast creates a toast model driven by the given clock.
func NewToast(clock clockwork.Clock) ToastModel {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return ToastModel{clock: clock}
}

// Show displays a toast and returns the command that dismisses it
// after toastDuration. A newer Show supersedes a pending dismissal.
func (t *ToastModel) Show(kind ToastKind, message string) tea.Cmd {
	t.seq++
	t.visible = true
	t.kind = kind
	t.message = message

	seq := t.seq
	clock := t.clock
	return func() tea.Msg {
		<-clock.After(toastDuration)
		return toastExpiredMsg{seq: seq}
	}
}

// Update handles toast dismissal.
func (t *ToastModel) Update(msg tea.Msg) {
	if expired, ok := msg.(toastExpiredMsg); ok && expired.seq == t.seq {
		t.visible = false
	}
}

// Active reports whether a toast is currently visible.
func (t *ToastModel) Active() bool {
	return t.visible
}

// View renders the toast, or "" when none is visible.
func (t *ToastModel) View() string {
	if !t.visible {
		return ""
	}
	switch t.kind {
	case ToastSuccess:
		return toastSuccessStyle.Render("✓ " + t.message)
	default:
		return toastErrorStyle.Render("✗ " + t.message)
	}
}
