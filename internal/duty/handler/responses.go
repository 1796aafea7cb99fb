package handler

import (
	"stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	id "stargate/pkg/domain"
	"stargate/pkg/platform/httputil"
)

type DutyResponse struct {
	ID            id.DutyID    `json:"id"`
	PersonID      id.PersonID  `json:"person_id"`
	Rank          string       `json:"rank"`
	DutyTitle     string       `json:"duty_title"`
	DutyStartDate models.Date  `json:"duty_start_date"`
	DutyEndDate   *models.Date `json:"duty_end_date"`
}

type PersonResponse struct {
	PersonID         id.PersonID  `json:"person_id"`
	Name             string       `json:"name"`
	IsAstronaut      bool         `json:"is_astronaut"`
	CurrentRank      string       `json:"current_rank"`
	CurrentDutyTitle string       `json:"current_duty_title"`
	CareerStartDate  *models.Date `json:"career_start_date"`
	CareerEndDate    *models.Date `json:"career_end_date"`
}

// DutiesByNameResponse is the body of GET /astronautduty/{name}.
type DutiesByNameResponse struct {
	httputil.Envelope
	Person          PersonResponse `json:"person"`
	AstronautDuties []DutyResponse `json:"astronaut_duties"`
}

// RecordDutyResponse is the body of POST /astronautduty.
type RecordDutyResponse struct {
	httputil.Envelope
	ID id.DutyID `json:"id"`
}

func toPersonResponse(p personmodels.PersonAstronaut) PersonResponse {
	return PersonResponse{
		PersonID:         p.PersonID,
		Name:             p.Name,
		IsAstronaut:      p.IsAstronaut(),
		CurrentRank:      p.CurrentRank,
		CurrentDutyTitle: p.CurrentDutyTitle,
		CareerStartDate:  models.DatePtr(p.CareerStartDate),
		CareerEndDate:    models.DatePtr(p.CareerEndDate),
	}
}

func toDutyResponses(duties []models.Duty) []DutyResponse {
	out := make([]DutyResponse, len(duties))
	for i, d := range duties {
		out[i] = DutyResponse{
			ID:            d.ID,
			PersonID:      d.PersonID,
			Rank:          d.Rank,
			DutyTitle:     d.DutyTitle,
			DutyStartDate: models.NewDate(d.DutyStartDate),
			DutyEndDate:   models.DatePtr(d.DutyEndDate),
		}
	}
	return out
}
