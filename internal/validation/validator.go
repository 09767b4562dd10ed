package validation

import (
	"strings"
	"unicode/utf8"

	"tasklist/internal/config"
)

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance using default limits
func NewValidator() *Validator {
	return &Validator{}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinMaxLength checks the trimmed rune count against max. A max of
// zero or less means no limit.
func (v *Validator) IsWithinMaxLength(s string, max int) bool {
	if max <= 0 {
		return true
	}
	return utf8.RuneCountInString(strings.TrimSpace(s)) <= max
}

// IsValidTaskID checks if a task ID is valid (positive)
func (v *Validator) IsValidTaskID(id int64) bool {
	return id > 0
}

// IsValidIndex checks that index addresses an element of a sequence of length n
func (v *Validator) IsValidIndex(index, n int) bool {
	return index >= 0 && index < n
}

// TrimAndValidateString trims whitespace and returns the cleaned string
func (v *Validator) TrimAndValidateString(s string) string {
	return strings.TrimSpace(s)
}

// taskTextMaxLength returns the configured maximum, zero when unlimited
func (v *Validator) taskTextMaxLength() int {
	if v.config != nil {
		return v.config.Validation.TaskTextMaxLength
	}
	return 0
}
