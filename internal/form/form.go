package form

import (
	"fmt"
	"strings"
)

// TextValidator checks a text field's value at submit time.
type TextValidator func(value string) error

// BoolValidator checks a checkbox field's value at submit time.
type BoolValidator func(checked bool) error

// Required rejects empty (or whitespace-only) values.
func Required(label string) TextValidator {
	return func(value string) error {
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

// MaxLength rejects values longer than limit characters.
func MaxLength(label string, limit int) TextValidator {
	return func(value string) error {
		if len(value) > limit {
			return fmt.Errorf("%s must be at most %d characters", label, limit)
		}
		return nil
	}
}

// MustBeChecked rejects an unchecked checkbox.
func MustBeChecked(message string) BoolValidator {
	return func(checked bool) error {
		if !checked {
			return fmt.Errorf("%s", message)
		}
		return nil
	}
}

type fieldKind int

const (
	kindText fieldKind = iota
	kindCheckbox
)

type field struct {
	kind           fieldKind
	value          string
	checked        bool
	textValidators []TextValidator
	boolValidators []BoolValidator
	err            string
}

// Form is a mutable field-state container keyed by field name.
// Validators run at submit time via Validate; a root-level error slot
// carries failures that belong to the form as a whole rather than to
// one field.
type Form struct {
	order   []string
	fields  map[string]*field
	rootErr string
}

// New creates an empty form.
func New() *Form {
	return &Form{fields: make(map[string]*field)}
}

// AddText registers a text field.
func (f *Form) AddText(name string, validators ...TextValidator) {
	f.order = append(f.order, name)
	f.fields[name] = &field{kind: kindText, textValidators: validators}
}

// AddCheckbox registers a checkbox field.
func (f *Form) AddCheckbox(name string, validators ...BoolValidator) {
	f.order = append(f.order, name)
	f.fields[name] = &field{kind: kindCheckbox, boolValidators: validators}
}

// Has reports whether a field with the given name exists.
func (f *Form) Has(name string) bool {
	_, ok := f.fields[name]
	return ok
}

// Set stores a text field's value.
func (f *Form) Set(name, value string) {
	if fd, ok := f.fields[name]; ok {
		fd.value = value
	}
}

// SetChecked stores a checkbox field's value.
func (f *Form) SetChecked(name string, checked bool) {
	if fd, ok := f.fields[name]; ok {
		fd.checked = checked
	}
}

// Value returns a text field's value.
func (f *Form) Value(name string) string {
	if fd, ok := f.fields[name]; ok {
		return fd.value
	}
	return ""
}

// Checked returns a checkbox field's value.
func (f *Form) Checked(name string) bool {
	if fd, ok := f.fields[name]; ok {
		return fd.checked
	}
	return false
}

// Validate runs every field's validators and records the first failure
// per field. It returns true when all fields pass. The root error is
// cleared on every validation pass.
func (f *Form) Validate() bool {
	f.rootErr = ""
	ok := true

	for _, name := range f.order {
		fd := f.fields[name]
		fd.err = ""

		switch fd.kind {
		case kindText:
			for _, v := range fd.textValidators {
				if err := v(fd.value); err != nil {
					fd.err = err.Error()
					ok = false
					break
				}
			}
		case kindCheckbox:
			for _, v := range fd.boolValidators {
				if err := v(fd.checked); err != nil {
					fd.err = err.Error()
					ok = false
					break
				}
			}
		}
	}

	return ok
}

// FieldError returns the validation error recorded for a field, or ""
// when the field is valid.
func (f *Form) FieldError(name string) string {
	if fd, ok := f.fields[name]; ok {
		return fd.err
	}
	return ""
}

// SetRootError records a form-level error, e.g. a server failure.
func (f *Form) SetRootError(message string) {
	f.rootErr = message
}

// RootError returns the form-level error, or "".
func (f *Form) RootError() string {
	return f.rootErr
}

// ClearErrors resets all field errors and the root error.
func (f *Form) ClearErrors() {
	f.rootErr = ""
	for _, fd := range f.fields {
		fd.err = ""
	}
}
