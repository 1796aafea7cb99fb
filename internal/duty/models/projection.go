package models

import personmodels "stargate/internal/person/models"

// PersonDuties is a person projection with their duties, newest first.
type PersonDuties struct {
	Person personmodels.PersonAstronaut
	Duties []Duty
}
