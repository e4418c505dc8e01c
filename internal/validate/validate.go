package validate

// This package adds struct and field validation as a thin wrapper around the go-playground/validator package.
//
// e.g. internal/api/types.go
//   type NoteSubmission struct {
//       ...
//       Email  string  `json:"email" validate:"required,identifier"`
//   }
//
// The identifier tag is registered here so every package checks user identifiers the same way.

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

// IdentifierTag validates the identifier a rating is submitted under.
const IdentifierTag = "identifier"

// identifierPattern is the email shape accepted by the ratings service.
var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9]+@[a-zA-Z0-9]+\.[A-Za-z]+$`) //nolint:gochecknoglobals // compiled once.

// validatorInstance is a shared validator for the application.
// It is initialized once and reused to avoid repeated allocations.
//
//nolint:gochecknoglobals // Shared validator singleton.
var (
	validatorOnce sync.Once
	validatorInst *validator.Validate
)

// get returns a process-wide singleton of the validator.
func get() *validator.Validate {
	validatorOnce.Do(func() {
		validatorInst = validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails for an empty tag or nil func.
		_ = validatorInst.RegisterValidation(IdentifierTag, func(fl validator.FieldLevel) bool {
			return identifierPattern.MatchString(fl.Field().String())
		})
	})
	return validatorInst
}

// Struct validates a struct using the shared validator instance.
func Struct(v any) error {
	return get().Struct(v)
}

// Var validates a single variable against the provided tag constraints.
func Var(field any, tag string) error {
	return get().Var(field, tag)
}

// Identifier reports whether s is a well-formed user identifier.
func Identifier(s string) bool {
	return Var(s, "required,"+IdentifierTag) == nil
}
