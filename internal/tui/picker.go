package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/refero-hq/partnerctl/internal/api"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionApply
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action  Action
	Program *api.Program
}

// programItem implements list.Item for program display
type programItem struct {
	program api.Program
}

func (i programItem) Title() string {
	return i.program.Name
}

func (i programItem) Description() string {
	terms := "no terms"
	if i.program.TermsURL != "" {
		terms = "has terms"
	}
	return fmt.Sprintf("%s | %s | %s", i.program.Slug, i.program.Domain, terms)
}

func (i programItem) FilterValue() string {
	return i.program.Name
}

// pickerModel is the bubbletea model for the program picker
type pickerModel struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a program picker over the given programs.
func NewPicker(programs []api.Program) pickerModel {
	items := make([]list.Item, len(programs))
	for i, p := range programs {
		items[i] = programItem{program: p}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 60, 14)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)

	return pickerModel{list: l}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetWidth(msg.Width - 4)
		m.list.SetHeight(msg.Height - 6)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit

		case "enter":
			if item, ok := m.list.SelectedItem().(programItem); ok {
				p := item.program
				m.result = PickerResult{Action: ActionApply, Program: &p}
				m.quitting = true
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m pickerModel) View() string {
	if m.quitting {
		return ""
	}

	var view string
	view += titleStyle.Render("Select a program")
	view += "\n"
	view += m.list.View()
	view += "\n"
	view += helpStyle.Render("enter apply · j/k navigate · q quit")
	return view
}

var helpStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("241")).
	MarginTop(1)

// RunPicker shows the interactive program picker and returns the
// selection.
func RunPicker(programs []api.Program) (PickerResult, error) {
	m := NewPicker(programs)

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return PickerResult{}, fmt.Errorf("failed to run picker: %w", err)
	}

	if picker, ok := final.(pickerModel); ok {
		return picker.result, nil
	}
	return PickerResult{}, nil
}
