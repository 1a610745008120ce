package entity

import "errors"

// ErrValidation позволяет проверять ошибки валидации через errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError описывает нарушенное правило для конкретного поля.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
