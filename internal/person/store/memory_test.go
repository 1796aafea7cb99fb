package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dutymodels "stargate/internal/duty/models"
	"stargate/internal/person/models"
	"stargate/internal/storage"
	"stargate/pkg/platform/sentinel"
)

type InMemorySuite struct {
	suite.Suite
	ctx   context.Context
	db    *storage.Memory
	store *InMemory
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) SetupTest() {
	s.ctx = context.Background()
	s.db = storage.NewMemory()
	s.store = NewInMemory(s.db)
}

func (s *InMemorySuite) create(name string) *models.Person {
	p := &models.Person{Name: name}
	s.Require().NoError(s.store.Create(s.ctx, p))
	return p
}

func (s *InMemorySuite) TestCreateAndLookup() {
	s.Run("assigns increasing ids", func() {
		a := s.create("Neil Armstrong")
		b := s.create("Joseph Acaba")
		s.Less(a.ID, b.ID)
	})

	s.Run("rejects an exact duplicate name", func() {
		err := s.store.Create(s.ctx, &models.Person{Name: "Neil Armstrong"})
		s.ErrorIs(err, sentinel.ErrAlreadyUsed)
	})

	s.Run("finds id and existence by exact name", func() {
		pid, err := s.store.FindIDByName(s.ctx, "Neil Armstrong")
		s.Require().NoError(err)
		s.NotZero(pid)

		exists, err := s.store.ExistsByName(s.ctx, "neil armstrong")
		s.Require().NoError(err)
		s.False(exists)
	})

	s.Run("unknown name is ErrNotFound", func() {
		_, err := s.store.FindIDByName(s.ctx, "Nobody Here")
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemorySuite) TestRename() {
	s.create("Dan Carson")
	s.create("Dallas Davis")

	_, err := s.store.Rename(s.ctx, "Dan Carson", "Dallas Davis")
	s.ErrorIs(err, sentinel.ErrAlreadyUsed)

	_, err = s.store.Rename(s.ctx, "Nobody Here", "Somebody Else")
	s.ErrorIs(err, sentinel.ErrNotFound)

	p, err := s.store.Rename(s.ctx, "Dan Carson", "Daniel Carson")
	s.Require().NoError(err)
	s.Equal("Daniel Carson", p.Name)

	exists, err := s.store.ExistsByName(s.ctx, "Dan Carson")
	s.Require().NoError(err)
	s.False(exists, "old name is released")
	s.NoError(s.store.Create(s.ctx, &models.Person{Name: "Dan Carson"}))
}

func (s *InMemorySuite) TestAstronautProjection() {
	civ := s.create("Dan Carson")
	astro := s.create("Neil Armstrong")
	detail := dutymodels.NewDetail(astro.ID, dutymodels.Retirement("1LT"), time.Date(1971, 8, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(s.db.InsertDetail(s.ctx, &detail))

	all, err := s.store.ListAstronauts(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(civ.ID, all[0].PersonID)
	s.False(all[0].IsAstronaut())
	s.True(all[1].IsAstronaut())
	s.Require().NotNil(all[1].CareerEndDate)
	s.Equal(time.Date(1971, 7, 31, 0, 0, 0, 0, time.UTC), *all[1].CareerEndDate)

	some, err := s.store.ListAstronautsByNames(s.ctx, []string{"Neil Armstrong"})
	s.Require().NoError(err)
	s.Require().Len(some, 1)
	s.Equal("1LT", some[0].CurrentRank)

	n, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(2, n)
}
