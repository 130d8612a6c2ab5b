// Package form is a small field-state container for TUI forms.
//
// Fields are registered by name with validators that run at submit
// time, not on every keystroke:
//
//	f := form.New()
//	f.AddText("proposal", form.Required("proposal"))
//	f.AddCheckbox("terms", form.MustBeChecked("You must agree to the terms"))
//
//	f.Set("proposal", input.Value())
//	if !f.Validate() {
//	    msg := f.FieldError("proposal")
//	}
//
// A root-level error slot carries failures that belong to the whole
// form, such as a rejected submission.
package form
