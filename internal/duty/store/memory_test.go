package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	"stargate/internal/storage"
	id "stargate/pkg/domain"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedPerson(t *testing.T, db *storage.Memory, name string) id.PersonID {
	t.Helper()
	p := &personmodels.Person{Name: name}
	require.NoError(t, db.InsertPerson(context.Background(), p))
	return p.ID
}

func TestInMemoryDetails(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()
	pid := seedPerson(t, db, "Dan Carson")
	details := NewInMemoryDetails(db)

	_, err := details.GetByPersonID(ctx, pid)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	d := models.NewDetail(pid, models.ParseAssignment("2LT", "Pilot"), day(2024, 1, 1))
	require.NoError(t, details.Create(ctx, &d))
	assert.NotZero(t, d.ID)

	d.Apply(models.Retirement("1LT"), day(2025, 6, 1))
	require.NoError(t, details.Update(ctx, &d))

	got, err := details.GetByPersonID(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, "RETIRED", got.CurrentDutyTitle)
	require.NotNil(t, got.CareerEndDate)
	assert.Equal(t, day(2025, 5, 31), *got.CareerEndDate)
	assert.Equal(t, day(2024, 1, 1), got.CareerStartDate)
}

func TestInMemoryDutiesNewestFirst(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()
	pid := seedPerson(t, db, "Zena Cardman")
	duties := NewInMemoryDuties(db)

	for _, start := range []time.Time{day(2017, 1, 1), day(2021, 1, 1), day(2019, 1, 1)} {
		d := &models.Duty{PersonID: pid, Rank: "SPC1", DutyTitle: "Mission Specialist", DutyStartDate: start}
		require.NoError(t, duties.Create(ctx, d))
	}

	list, err := duties.ListByPersonID(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, day(2021, 1, 1), list[0].DutyStartDate)
	assert.Equal(t, day(2017, 1, 1), list[2].DutyStartDate)

	end := day(2018, 12, 31)
	list[2].DutyEndDate = &end
	require.NoError(t, duties.Update(ctx, &list[2]))

	again, err := duties.ListByPersonID(ctx, pid)
	require.NoError(t, err)
	require.NotNil(t, again[2].DutyEndDate)
	assert.Equal(t, end, *again[2].DutyEndDate)
}

func TestShardedTxRestoresOnError(t *testing.T) {
	ctx := context.Background()
	db := storage.NewMemory()
	pid := seedPerson(t, db, "Dan Carson")
	txr := NewShardedTx(db, time.Second)
	duties := NewInMemoryDuties(db)
	details := NewInMemoryDetails(db)

	boom := errors.New("boom")
	err := txr.RunInTx(ctx, pid, func(ctx context.Context) error {
		d := models.NewDetail(pid, models.ParseAssignment("2LT", "Pilot"), day(2024, 1, 1))
		require.NoError(t, details.Create(ctx, &d))
		require.NoError(t, duties.Create(ctx, &models.Duty{PersonID: pid, Rank: "2LT", DutyTitle: "Pilot", DutyStartDate: day(2024, 1, 1)}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = details.GetByPersonID(ctx, pid)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	list, err := duties.ListByPersonID(ctx, pid)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestShardedTxSerializesSamePerson(t *testing.T) {
	db := storage.NewMemory()
	pid := seedPerson(t, db, "Dan Carson")
	txr := NewShardedTx(db, time.Second)

	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = txr.RunInTx(context.Background(), pid, func(context.Context) error {
				mu.Lock()
				inside++
				if inside > maxSeen {
					maxSeen = inside
				}
				mu.Unlock()
				time.Sleep(5 * time.Millisecond)
				mu.Lock()
				inside--
				mu.Unlock()
				return nil
			})
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestShardedTxCancelledContext(t *testing.T) {
	db := storage.NewMemory()
	txr := NewShardedTx(db, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := txr.RunInTx(ctx, 1, func(context.Context) error {
		called = true
		return nil
	})
	assert.False(t, called)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeTimeout))
}

func TestTimeoutOrInternal(t *testing.T) {
	assert.True(t, dErrors.HasCode(timeoutOrInternal(context.DeadlineExceeded, "commit"), dErrors.CodeTimeout))
	assert.True(t, dErrors.HasCode(timeoutOrInternal(errors.New("boom"), "commit"), dErrors.CodeInternal))

	err := timeoutOrInternal(&pgconn.PgError{Code: "40P01"}, "commit")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	assert.ErrorIs(t, err, sentinel.ErrConflict)
}
