package service

import "errors"

// ValidationError описывает некорректный входной URL. Reason принимает значения
// "empty" или "invalid_format".
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Reason
}

// Is позволяет сравнивать любую ошибку валидации с ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

var (
	ErrValidation  = errors.New("validation error")
	ErrURLRequired = &ValidationError{Reason: "empty"}
	ErrInvalidURL  = &ValidationError{Reason: "invalid_format"}

	ErrCodeExists  = errors.New("short code already exists")
	ErrURLNotFound = errors.New("URL not found")
	ErrInternal    = errors.New("internal error")
)
