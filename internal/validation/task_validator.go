package validation

import (
	"tasklist/internal/config"
)

// TaskValidator provides validation for task text and ids
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with no length limit
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator honouring configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// ValidateTaskText validates task text for creation or edit
func (tv *TaskValidator) ValidateTaskText(text string) error {
	validationError := NewValidationError()

	trimmed := tv.validator.TrimAndValidateString(text)
	if !tv.validator.IsNonEmptyString(trimmed) {
		validationError.AddRequiredError("text")
		return validationError
	}

	if max := tv.validator.taskTextMaxLength(); !tv.validator.IsWithinMaxLength(trimmed, max) {
		validationError.AddInvalidLengthError("text", trimmed, max)
	}

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// GetValidTaskText returns the trimmed text if valid
func (tv *TaskValidator) GetValidTaskText(text string) (string, error) {
	if err := tv.ValidateTaskText(text); err != nil {
		return "", err
	}
	return tv.validator.TrimAndValidateString(text), nil
}

// ValidateTaskID validates a task ID
func (tv *TaskValidator) ValidateTaskID(id int64) error {
	if !tv.validator.IsValidTaskID(id) {
		validationError := NewValidationError()
		validationError.AddInvalidValueError("task_id", id, "must be a positive integer")
		return validationError
	}
	return nil
}

// IsValidIndex reports whether index addresses one of n positions
func (tv *TaskValidator) IsValidIndex(index, n int) bool {
	return tv.validator.IsValidIndex(index, n)
}
