package models

import (
	"regexp"
	"strings"

	dErrors "stargate/pkg/domain-errors"
)

const (
	maxRankLength  = 20
	maxTitleLength = 50
)

var (
	rankPattern  = regexp.MustCompile(`^[A-Za-z0-9]+$`)
	titlePattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)
)

// RecordDutyRequest asks to record a new duty for an existing person.
type RecordDutyRequest struct {
	Name          string `json:"name"`
	Rank          string `json:"rank"`
	DutyTitle     string `json:"duty_title"`
	DutyStartDate Date   `json:"duty_start_date"`
}

// Validate checks the request shape. Person existence and duty history
// rules are checked by the service.
func (r *RecordDutyRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	var fields []dErrors.FieldError
	if strings.TrimSpace(r.Name) == "" {
		fields = append(fields, dErrors.Field("name", "Name is required"))
	}
	fields = append(fields, validateRank(r.Rank)...)
	fields = append(fields, validateTitle(r.DutyTitle)...)
	if r.DutyStartDate.IsZero() {
		fields = append(fields, dErrors.Field("duty_start_date", "DutyStartDate is required"))
	}
	if len(fields) > 0 {
		return dErrors.NewValidation("invalid astronaut duty request", fields...)
	}
	return nil
}

// Assignment classifies the requested rank and title.
func (r *RecordDutyRequest) Assignment() Assignment {
	return ParseAssignment(r.Rank, r.DutyTitle)
}

func validateRank(rank string) []dErrors.FieldError {
	switch {
	case rank == "":
		return []dErrors.FieldError{dErrors.Field("rank", "Rank is required")}
	case len(rank) > maxRankLength:
		return []dErrors.FieldError{dErrors.Field("rank", "Rank must be 20 characters or fewer")}
	case !rankPattern.MatchString(rank):
		return []dErrors.FieldError{dErrors.Field("rank", "Rank may only comprise of alphabetical letters and numbers")}
	}
	return nil
}

func validateTitle(title string) []dErrors.FieldError {
	switch {
	case title == "":
		return []dErrors.FieldError{dErrors.Field("duty_title", "DutyTitle is required")}
	case len(title) > maxTitleLength:
		return []dErrors.FieldError{dErrors.Field("duty_title", "DutyTitle must be 50 characters or fewer")}
	case !titlePattern.MatchString(title):
		return []dErrors.FieldError{dErrors.Field("duty_title", "DutyTitle may only comprise of alphabetical letters, numbers and spaces")}
	}
	return nil
}
