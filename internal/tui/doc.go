// Package tui provides terminal user interface components for
// partnerctl.
//
// This package uses the Bubble Tea framework to build the program
// application sheet and the program picker.
//
// # Application Sheet
//
// The sheet is a right-docked slide-over panel holding the application
// form (proposal, comments, and a terms checkbox when the program has
// a terms URL):
//
//	sheet, setOpen := tui.NewSheet(tui.SheetOptions{
//	    Program: program,
//	    Partner: partner,
//	    Submit:  platform.SubmitApplication,
//	})
//	err := tui.RunSheet(sheet, setOpen, profileUpdates)
//
// NewSheet returns the setter alongside the sheet so the caller
// controls opening without reaching into the panel. Submission runs
// through: validate on submit, disable the submit control while the
// call is in flight, then either close the panel (success toast,
// cache invalidation) or keep it open with the server's message as a
// root-level form error plus an error toast.
//
// # Program Picker
//
// The picker lists enrollable programs for selection:
//
//	result, err := tui.RunPicker(programs)
//	if result.Action == tui.ActionApply {
//	    // open the sheet for result.Program
//	}
//
// # Dependencies
//
// Uses the Charm libraries:
//   - github.com/charmbracelet/bubbletea - TUI framework
//   - github.com/charmbracelet/bubbles - UI components
//   - github.com/charmbracelet/lipgloss - Styling
package tui
