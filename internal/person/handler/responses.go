package handler

import (
	dutymodels "stargate/internal/duty/models"
	"stargate/internal/person/models"
	id "stargate/pkg/domain"
	"stargate/pkg/platform/httputil"
)

// PersonResponse is the wire shape of a person projection.
type PersonResponse struct {
	PersonID         id.PersonID      `json:"person_id"`
	Name             string           `json:"name"`
	IsAstronaut      bool             `json:"is_astronaut"`
	CurrentRank      string           `json:"current_rank"`
	CurrentDutyTitle string           `json:"current_duty_title"`
	CareerStartDate  *dutymodels.Date `json:"career_start_date"`
	CareerEndDate    *dutymodels.Date `json:"career_end_date"`
}

type PeopleResponse struct {
	httputil.Envelope
	People []PersonResponse `json:"people"`
}

type GetPersonResponse struct {
	httputil.Envelope
	Person PersonResponse `json:"person"`
}

// CreatePersonResponse carries the generated id of a new or renamed person.
type CreatePersonResponse struct {
	httputil.Envelope
	ID id.PersonID `json:"id"`
}

func toPersonResponse(p models.PersonAstronaut) PersonResponse {
	return PersonResponse{
		PersonID:         p.PersonID,
		Name:             p.Name,
		IsAstronaut:      p.IsAstronaut(),
		CurrentRank:      p.CurrentRank,
		CurrentDutyTitle: p.CurrentDutyTitle,
		CareerStartDate:  dutymodels.DatePtr(p.CareerStartDate),
		CareerEndDate:    dutymodels.DatePtr(p.CareerEndDate),
	}
}

func toPeopleResponse(people []models.PersonAstronaut) []PersonResponse {
	out := make([]PersonResponse, len(people))
	for i, p := range people {
		out[i] = toPersonResponse(p)
	}
	return out
}
