package common

import "unicode/utf8"

// ValidationError carries the first failed check of a Validator.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Validator runs checks in order and keeps only the first failure.
type Validator struct {
	err *ValidationError
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Valid() bool {
	return v.err == nil
}

func (v *Validator) AddError(field, message string) {
	if v.err == nil {
		v.err = &ValidationError{Field: field, Message: message}
	}
}

func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// CheckStringLength counts runes, not bytes. A max of zero means no upper bound.
func (v *Validator) CheckStringLength(s string, min, max int) bool {
	n := utf8.RuneCountInString(s)
	if max > 0 && n > max {
		return false
	}
	return n >= min
}

func (v *Validator) ValidationError() error {
	if v.err == nil {
		return nil
	}
	return *v.err
}
