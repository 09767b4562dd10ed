package validation

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name        string
		errors      []FieldError
		expectError string
	}{
		{"No errors", []FieldError{}, "validation error"},
		{"Single error", []FieldError{{Field: "text", Message: "is required"}}, "validation error for field 'text': is required"},
		{"Multiple errors", []FieldError{
			{Field: "text", Message: "is required"},
			{Field: "task_id", Message: "must be positive"},
		}, "multiple validation errors"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ve := &ValidationError{Errors: tt.errors}
			result := ve.Error()

			if tt.name == "Multiple errors" {
				if !strings.Contains(result, tt.expectError) {
					t.Errorf("ValidationError.Error() = %v, expected to contain %v", result, tt.expectError)
				}
			} else if result != tt.expectError {
				t.Errorf("ValidationError.Error() = %v, expected %v", result, tt.expectError)
			}
		})
	}
}

func TestValidationError_HasErrors(t *testing.T) {
	ve := NewValidationError()
	if ve.HasErrors() {
		t.Error("new ValidationError should have no errors")
	}
	ve.AddRequiredError("text")
	if !ve.HasErrors() {
		t.Error("ValidationError should have errors after AddRequiredError")
	}
}

func TestValidationError_AddHelpers(t *testing.T) {
	ve := NewValidationError()
	ve.AddRequiredError("text")
	ve.AddInvalidLengthError("text", "abcdef", 5)
	ve.AddInvalidValueError("task_id", int64(0), "must be a positive integer")

	if len(ve.Errors) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(ve.Errors))
	}

	expected := []struct {
		field   string
		errType ValidationErrorType
		message string
	}{
		{"text", ErrorTypeRequired, "text is required"},
		{"text", ErrorTypeInvalidLength, "text must be at most 5 characters long"},
		{"task_id", ErrorTypeInvalidValue, "task_id has invalid value: must be a positive integer"},
	}
	for i, want := range expected {
		got := ve.Errors[i]
		if got.Field != want.field || got.Type != want.errType || got.Message != want.message {
			t.Errorf("error %d = %+v, expected %+v", i, got, want)
		}
	}

	if !ve.HasType(ErrorTypeInvalidLength) {
		t.Error("HasType(ErrorTypeInvalidLength) should be true")
	}
	if len(ve.GetFieldErrors("text")) != 2 {
		t.Errorf("GetFieldErrors(text) = %d errors, expected 2", len(ve.GetFieldErrors("text")))
	}
	if ve.GetFieldErrors("missing") != nil {
		t.Error("GetFieldErrors for unknown field should be nil")
	}
}

func TestValidationError_GetUserFriendlyMessage(t *testing.T) {
	ve := NewValidationError()
	if ve.GetUserFriendlyMessage() != "Input validation failed" {
		t.Errorf("unexpected empty message %q", ve.GetUserFriendlyMessage())
	}

	ve.AddRequiredError("text")
	if ve.GetUserFriendlyMessage() != "text is required" {
		t.Errorf("unexpected single message %q", ve.GetUserFriendlyMessage())
	}

	ve.AddInvalidValueError("task_id", -1, "must be a positive integer")
	msg := ve.GetUserFriendlyMessage()
	if !strings.HasPrefix(msg, "Multiple validation errors occurred:\n") {
		t.Errorf("unexpected multi message %q", msg)
	}
	if !strings.Contains(msg, "- text is required") {
		t.Errorf("multi message should list each error, got %q", msg)
	}
}

func TestIsValidationError(t *testing.T) {
	ve := NewValidationError()

	if !IsValidationError(ve) {
		t.Error("IsValidationError should be true for *ValidationError")
	}
	if !IsValidationError(fmt.Errorf("edit: %w", ve)) {
		t.Error("IsValidationError should see through wrapping")
	}
	if IsValidationError(fmt.Errorf("plain")) {
		t.Error("IsValidationError should be false for other errors")
	}
}
