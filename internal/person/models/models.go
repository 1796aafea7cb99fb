package models

import (
	"time"

	id "stargate/pkg/domain"
)

// Person is an identity record. Duties attach to it.
type Person struct {
	ID   id.PersonID
	Name string
}

// PersonAstronaut is a person left-joined with their astronaut detail. The
// detail fields are empty for civilians.
type PersonAstronaut struct {
	PersonID         id.PersonID
	Name             string
	CurrentRank      string
	CurrentDutyTitle string
	CareerStartDate  *time.Time
	CareerEndDate    *time.Time
}

// IsAstronaut reports whether a detail row exists for the person.
func (p PersonAstronaut) IsAstronaut() bool { return p.CareerStartDate != nil }

// Civilian builds the projection of a person with no detail row.
func Civilian(p Person) PersonAstronaut {
	return PersonAstronaut{PersonID: p.ID, Name: p.Name}
}
