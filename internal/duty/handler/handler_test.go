package handler_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"stargate/internal/duty/handler"
	"stargate/internal/duty/service"
	dutystore "stargate/internal/duty/store"
	personmodels "stargate/internal/person/models"
	personstore "stargate/internal/person/store"
	"stargate/internal/storage"
	"stargate/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	router http.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	db := storage.NewMemory()
	people := personstore.NewInMemory(db)
	for _, name := range []string{"Dan Carson", "Dallas Davis"} {
		s.Require().NoError(people.Create(context.Background(), &personmodels.Person{Name: name}))
	}
	svc := service.New(people, dutystore.NewInMemoryDetails(db), dutystore.NewInMemoryDuties(db),
		service.WithTx(dutystore.NewShardedTx(db, time.Second)),
	)
	r := chi.NewRouter()
	handler.New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	s.router = r
}

func (s *HandlerSuite) TestRecordAndListDuties() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/astronautduty", map[string]string{
		"name": "Dan Carson", "rank": "2LT", "duty_title": "Commander", "duty_start_date": "2025-03-01",
	}))
	env := testutil.AssertSuccessEnvelope(s.T(), rr)
	s.Equal("Successfully recorded Astronaut Duty Details in system", env.Message)
	created := testutil.UnmarshalResponse[handler.RecordDutyResponse](s.T(), rr)
	s.NotZero(created.ID)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/astronautduty", map[string]string{
		"name": "Dan Carson", "rank": "1LT", "duty_title": "RETIRED", "duty_start_date": "2025-06-01T00:00:00",
	}))
	testutil.AssertSuccessEnvelope(s.T(), rr)

	rr = testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/astronautduty/Dan%20Carson", nil))
	testutil.AssertSuccessEnvelope(s.T(), rr)
	got := testutil.UnmarshalResponse[handler.DutiesByNameResponse](s.T(), rr)
	s.True(got.Person.IsAstronaut)
	s.Equal("1LT", got.Person.CurrentRank)
	s.Require().NotNil(got.Person.CareerEndDate)
	s.Equal("2025-05-31", got.Person.CareerEndDate.String())
	s.Require().Len(got.AstronautDuties, 2)
	s.Equal("RETIRED", got.AstronautDuties[0].DutyTitle)
	s.Nil(got.AstronautDuties[0].DutyEndDate)
	s.Require().NotNil(got.AstronautDuties[1].DutyEndDate)
	s.Equal("2025-05-31", got.AstronautDuties[1].DutyEndDate.String())
}

func (s *HandlerSuite) TestCivilianHasNoDuties() {
	rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/astronautduty/Dallas%20Davis", nil))
	testutil.AssertSuccessEnvelope(s.T(), rr)
	got := testutil.UnmarshalResponse[handler.DutiesByNameResponse](s.T(), rr)
	s.False(got.Person.IsAstronaut)
	s.Nil(got.Person.CareerStartDate)
	s.Empty(got.AstronautDuties)
}

func (s *HandlerSuite) TestErrors() {
	s.Run("unknown person on list is 404", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodGet, "/astronautduty/Nobody%20Here", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("unknown person on record is 404", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/astronautduty", map[string]string{
			"name": "Nobody Here", "rank": "2LT", "duty_title": "Commander", "duty_start_date": "2025-03-01",
		}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
		resp := testutil.UnmarshalErrorResponse(s.T(), rr)
		s.Equal("Provided Person name does not exist in system", resp.ErrorDescription)
	})

	s.Run("malformed rank is a field error", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/astronautduty", map[string]string{
			"name": "Dan Carson", "rank": "2-LT", "duty_title": "Commander", "duty_start_date": "2025-03-01",
		}))
		testutil.AssertValidationField(s.T(), rr, "rank")
	})

	s.Run("bad date is a bad request", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/astronautduty",
			`{"name":"Dan Carson","rank":"2LT","duty_title":"Commander","duty_start_date":"March 1st"}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("duplicate is a conflict", func() {
		body := map[string]string{"name": "Dallas Davis", "rank": "2LT", "duty_title": "Pilot", "duty_start_date": "2025-03-01"}
		testutil.AssertSuccessEnvelope(s.T(), testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/astronautduty", body)))
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/astronautduty", body))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})
}

func TestRecordDutyRejectsEarlierStart(t *testing.T) {
	db := storage.NewMemory()
	people := personstore.NewInMemory(db)
	require.NoError(t, people.Create(context.Background(), &personmodels.Person{Name: "Dan Carson"}))
	svc := service.New(people, dutystore.NewInMemoryDetails(db), dutystore.NewInMemoryDuties(db))
	r := chi.NewRouter()
	handler.New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)

	first := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/astronautduty", map[string]string{
		"name": "Dan Carson", "rank": "2LT", "duty_title": "Commander", "duty_start_date": "2025-03-01",
	}))
	require.Equal(t, http.StatusOK, first.Code)

	rr := testutil.DoRequest(r, testutil.NewJSONRequest(t, http.MethodPost, "/astronautduty", map[string]string{
		"name": "Dan Carson", "rank": "2LT", "duty_title": "Pilot", "duty_start_date": "2025-01-01",
	}))
	testutil.AssertValidationField(t, rr, "duty_start_date")
	resp := testutil.UnmarshalErrorResponse(t, rr)
	assert.Equal(t, "You can only add new duty records greater than the max duty start date of existing records", resp.ErrorDescription)
}
