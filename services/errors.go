package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Errors shared across services and the HTTP mapping layer.
var (
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrGameNotFound       = errors.New("game not found")

	// Upsert-guard conflicts: an explicit identity that already exists.
	ErrTournamentIDConflict = errors.New("tournament with this id already exists")
	ErrGameIDConflict       = errors.New("game with this id already exists")

	ErrTournamentTitleTaken  = errors.New("tournament title already exists")
	ErrGameInvalidTournament = errors.New("game references a nonexistent tournament")

	ErrInvalidPatchDocument = errors.New("invalid json patch document")

	// A bulk operation stopped at its first failing item. Nothing from the
	// batch is committed.
	ErrBatchAborted = errors.New("one or more items in the collection are invalid")

	ErrInvalidClient = errors.New("invalid client credentials")
)

// ValidationError carries per-field messages for a 400 response body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

func validateStruct(validate *validator.Validate, s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		fields[strings.ToLower(fe.Field())] = validationMessage(fe)
	}
	return &ValidationError{Fields: fields}
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s cannot exceed %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
