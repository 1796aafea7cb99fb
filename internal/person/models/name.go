package models

import (
	"regexp"

	dErrors "stargate/pkg/domain-errors"
)

const maxNameLength = 50

// namePattern is a first and last name of letters separated by one space.
var namePattern = regexp.MustCompile(`^[A-Za-z]+ [A-Za-z]+$`)

// ValidateName checks a full name and reports problems against field.
func ValidateName(field, name string) error {
	switch {
	case name == "":
		return dErrors.NewValidation("invalid name", dErrors.Field(field, "Name is required"))
	case len(name) > maxNameLength:
		return dErrors.NewValidation("invalid name", dErrors.Field(field, "Name must be 50 characters or fewer"))
	case !namePattern.MatchString(name):
		return dErrors.NewValidation("invalid name",
			dErrors.Field(field, "Name should only comprise of letters in the alphabet and a single space between first and last name"))
	}
	return nil
}
