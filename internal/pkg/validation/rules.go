package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern - configurable
	EmailPattern = `^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,4}$`

	// Password min length
	PasswordMinLength = 6

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Register number max length
	RegisterNumberMaxLength = 20
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Email *regexp.Regexp
}{
	Email: regexp.MustCompile(EmailPattern),
}

// StringValidation validates a single string value against length and
// pattern rules.
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    value,
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Required && v.Value == "" {
		return false
	}

	// Skip other validations for empty optional values
	if !v.Required && v.Value == "" {
		return true
	}

	if v.MinLen > 0 && len(v.Value) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len(v.Value) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// ValidName checks name length bounds.
func ValidName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(NameMinLength).
		WithMaxLength(NameMaxLength).
		Validate()
}

// ValidEmail checks the email shape. Callers lowercase first.
func ValidEmail(email string) bool {
	return NewStringValidation(email).
		WithPattern(CompiledPatterns.Email).
		Validate()
}

// ValidPassword checks the password minimum length.
func ValidPassword(password string) bool {
	return NewStringValidation(password).
		WithMinLength(PasswordMinLength).
		Validate()
}

// ValidRegisterNumber checks the register number is present and bounded.
// No digit pattern is enforced; institutions format these differently.
func ValidRegisterNumber(registerNumber string) bool {
	return NewStringValidation(registerNumber).
		WithMaxLength(RegisterNumberMaxLength).
		Validate()
}
