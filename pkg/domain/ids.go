package domain

import (
	"strconv"
	"strings"

	dErrors "stargate/pkg/domain-errors"
)

// Typed identifiers keep person, duty and detail keys from being mixed up at
// call sites. All three are database-generated positive integers.
type (
	PersonID int64
	DutyID   int64
	DetailID int64
)

func (id PersonID) IsZero() bool { return id <= 0 }
func (id DutyID) IsZero() bool   { return id <= 0 }
func (id DetailID) IsZero() bool { return id <= 0 }

func (id PersonID) String() string { return strconv.FormatInt(int64(id), 10) }
func (id DutyID) String() string   { return strconv.FormatInt(int64(id), 10) }
func (id DetailID) String() string { return strconv.FormatInt(int64(id), 10) }

// ParsePersonID parses a positive decimal person id.
func ParsePersonID(s string) (PersonID, error) {
	v, err := parsePositive(s, "person id")
	return PersonID(v), err
}

func parsePositive(s, label string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if v <= 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, label+" must be positive")
	}
	return v, nil
}
