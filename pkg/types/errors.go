package types

import (
	"errors"
	"fmt"
)

// Store operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
)

// notFound names the missing entity while matching ErrNotFound.
type notFound string

func (e notFound) Error() string { return string(e) + " not found" }

func (e notFound) Is(target error) bool { return target == ErrNotFound }

// Entity-specific not-found errors. Each satisfies errors.Is(err, ErrNotFound).
var (
	ErrRecipeNotFound           error = notFound("recipe")
	ErrIngredientNotFound       error = notFound("ingredient")
	ErrRecipeIngredientNotFound error = notFound("recipe ingredient")
	ErrStepNotFound             error = notFound("step")
)

// Referential integrity errors.
var (
	ErrIngredientInUse    = errors.New("ingredient is used by a recipe")
	ErrDanglingIngredient = errors.New("recipe ingredient references a missing ingredient")
)

// ValidationError reports malformed input on a single field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Unwrap lets callers match any validation failure with ErrInvalidData.
func (e *ValidationError) Unwrap() error { return ErrInvalidData }

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
