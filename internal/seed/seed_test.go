package seed_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dutyservice "stargate/internal/duty/service"
	dutystore "stargate/internal/duty/store"
	personservice "stargate/internal/person/service"
	personstore "stargate/internal/person/store"
	"stargate/internal/seed"
	"stargate/internal/storage"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := storage.NewMemory()
	people := personstore.NewInMemory(db)
	personSvc := personservice.New(people, personservice.WithLogger(logger))
	dutySvc := dutyservice.New(people, dutystore.NewInMemoryDetails(db), dutystore.NewInMemoryDuties(db),
		dutyservice.WithLogger(logger),
		dutyservice.WithTx(dutystore.NewShardedTx(db, time.Second)),
	)

	created, err := seed.Load(ctx, people, personSvc, dutySvc, logger)
	require.NoError(t, err)
	assert.Equal(t, 8, created)

	t.Run("retired astronaut keeps career end", func(t *testing.T) {
		neil, err := personSvc.GetByName(ctx, "Neil Armstrong")
		require.NoError(t, err)
		assert.Equal(t, "RETIRED", neil.CurrentDutyTitle)
		require.NotNil(t, neil.CareerEndDate)
		assert.Equal(t, time.Date(1971, time.July, 31, 0, 0, 0, 0, time.UTC), *neil.CareerEndDate)
		assert.Equal(t, time.Date(1962, time.January, 1, 0, 0, 0, 0, time.UTC), *neil.CareerStartDate)
	})

	t.Run("only the latest duty is open", func(t *testing.T) {
		acaba, err := dutySvc.ListByName(ctx, "Joseph Acaba")
		require.NoError(t, err)
		require.Len(t, acaba.Duties, 9)
		assert.Nil(t, acaba.Duties[0].DutyEndDate)
		for _, d := range acaba.Duties[1:] {
			assert.NotNil(t, d.DutyEndDate)
		}
	})

	t.Run("civilians have no detail", func(t *testing.T) {
		dan, err := personSvc.GetByName(ctx, "Dan Carson")
		require.NoError(t, err)
		assert.False(t, dan.IsAstronaut())
	})

	t.Run("second load is a no-op", func(t *testing.T) {
		again, err := seed.Load(ctx, people, personSvc, dutySvc, logger)
		require.NoError(t, err)
		assert.Zero(t, again)
	})
}
