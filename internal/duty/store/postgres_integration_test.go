//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"stargate/internal/duty/models"
	"stargate/internal/duty/store"
	personmodels "stargate/internal/person/models"
	personstore "stargate/internal/person/store"
	id "stargate/pkg/domain"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
	"stargate/pkg/testutil/containers"
)

type PostgresSuite struct {
	suite.Suite
	pg      *containers.PostgresContainer
	people  *personstore.PostgresStore
	details *store.PostgresDetails
	duties  *store.PostgresDuties
	tx      *store.PostgresTx
}

func TestPostgresSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresSuite))
}

func (s *PostgresSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.people = personstore.NewPostgres(s.pg.DB)
	s.details = store.NewPostgresDetails(s.pg.DB)
	s.duties = store.NewPostgresDuties(s.pg.DB)
	s.tx = store.NewPostgresTx(s.pg.DB, 5*time.Second)
}

func (s *PostgresSuite) SetupTest() {
	s.Require().NoError(s.pg.Reset(context.Background()))
}

func (s *PostgresSuite) person(name string) id.PersonID {
	p := &personmodels.Person{Name: name}
	s.Require().NoError(s.people.Create(context.Background(), p))
	return p.ID
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *PostgresSuite) TestDetailLifecycle() {
	ctx := context.Background()
	pid := s.person("Dan Carson")

	_, err := s.details.GetByPersonID(ctx, pid)
	s.ErrorIs(err, sentinel.ErrNotFound)

	d := models.NewDetail(pid, models.ParseAssignment("2LT", "Pilot"), day(2024, 1, 1))
	s.Require().NoError(s.details.Create(ctx, &d))
	s.NotZero(d.ID)

	d.Apply(models.Retirement("1LT"), day(2025, 6, 1))
	s.Require().NoError(s.details.Update(ctx, &d))

	got, err := s.details.GetByPersonID(ctx, pid)
	s.Require().NoError(err)
	s.Equal("RETIRED", got.CurrentDutyTitle)
	s.Require().NotNil(got.CareerEndDate)
	s.True(got.CareerEndDate.Equal(day(2025, 5, 31)))
}

func (s *PostgresSuite) TestDutiesOrderedNewestFirst() {
	ctx := context.Background()
	pid := s.person("Zena Cardman")

	for _, start := range []time.Time{day(2017, 1, 1), day(2021, 1, 1), day(2019, 1, 1)} {
		s.Require().NoError(s.duties.Create(ctx, &models.Duty{
			PersonID: pid, Rank: "SPC1", DutyTitle: "Mission Specialist", DutyStartDate: start,
		}))
	}

	list, err := s.duties.ListByPersonID(ctx, pid)
	s.Require().NoError(err)
	s.Require().Len(list, 3)
	s.True(list[0].DutyStartDate.Equal(day(2021, 1, 1)))
	s.Nil(list[0].DutyEndDate)

	missing := &models.Duty{ID: 9999, PersonID: pid, Rank: "SPC1", DutyTitle: "Pilot", DutyStartDate: day(2020, 1, 1)}
	s.ErrorIs(s.duties.Update(ctx, missing), sentinel.ErrNotFound)
}

func (s *PostgresSuite) TestTxRollsBackOnError() {
	ctx := context.Background()
	pid := s.person("Dan Carson")
	boom := errors.New("boom")

	err := s.tx.RunInTx(ctx, pid, func(ctx context.Context) error {
		d := models.NewDetail(pid, models.ParseAssignment("2LT", "Pilot"), day(2024, 1, 1))
		if err := s.details.Create(ctx, &d); err != nil {
			return err
		}
		if err := s.duties.Create(ctx, &models.Duty{PersonID: pid, Rank: "2LT", DutyTitle: "Pilot", DutyStartDate: day(2024, 1, 1)}); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	_, err = s.details.GetByPersonID(ctx, pid)
	s.ErrorIs(err, sentinel.ErrNotFound)
	list, err := s.duties.ListByPersonID(ctx, pid)
	s.Require().NoError(err)
	s.Empty(list)
}

func (s *PostgresSuite) TestTxUnknownPerson() {
	err := s.tx.RunInTx(context.Background(), 424242, func(context.Context) error { return nil })
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *PostgresSuite) TestTxSerializesSamePerson() {
	pid := s.person("Dan Carson")

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.tx.RunInTx(context.Background(), pid, func(context.Context) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(20 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
			s.NoError(err)
		}()
	}
	wg.Wait()
	s.Equal(1, maxSeen)
}
