// Package seed loads the demo roster used by the SPA in development.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	dutymodels "stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
)

// PersonCreator registers people.
type PersonCreator interface {
	Create(ctx context.Context, name string) (*personmodels.Person, error)
}

// DutyRecorder replays duties through the reconciliation engine so the
// seeded details and duty histories obey the same rules as API writes.
type DutyRecorder interface {
	RecordDuty(ctx context.Context, req *dutymodels.RecordDutyRequest) (*dutymodels.RecordDutyResult, error)
}

// Counter reports how many people are stored.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

type duty struct {
	rank, title string
	start       time.Time
}

type entry struct {
	name   string
	duties []duty
}

func jan1(year int) time.Time { return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC) }

var roster = []entry{
	{name: "Dan Carson"},
	{name: "Dallas Davis"},
	{name: "Neil Armstrong", duties: []duty{
		{"SPC1", "Mission Specialist", jan1(1962)},
		{"SPC2", "Mission Specialist", jan1(1963)},
		{"SGT", "Pilot", jan1(1965)},
		{"2LT", "Commander", jan1(1967)},
		{"1LT", "Commander", jan1(1968)},
		{"1LT", dutymodels.RetiredTitle, time.Date(1971, time.August, 1, 0, 0, 0, 0, time.UTC)},
	}},
	{name: "Joseph Acaba", duties: []duty{
		{"SPC2", "Flight Engineer", jan1(2004)},
		{"SPC4", "Flight Engineer", jan1(2006)},
		{"SGT", "Pilot", jan1(2008)},
		{"MSGT", "Command Pilot", jan1(2010)},
		{"2LT", "Commander", jan1(2014)},
		{"1LT", "Commander", jan1(2016)},
		{"CAPT", "Commander", jan1(2018)},
		{"MAJ", "Commander", jan1(2022)},
		{"LTCOL", "Commander", jan1(2024)},
	}},
	{name: "Deniz Burnham", duties: []duty{
		{"SPC2", "Mission Specialist", jan1(2021)},
		{"SPC3", "Mission Specialist", jan1(2023)},
		{"SPC4", "Mission Specialist", jan1(2025)},
	}},
	{name: "Zena Cardman", duties: []duty{
		{"SPC1", "Mission Specialist", jan1(2017)},
		{"SPC3", "Mission Specialist", jan1(2019)},
		{"SPC4", "Pilot", jan1(2021)},
		{"SGT", "Command Pilot", jan1(2024)},
	}},
	{name: "Christopher Cassidy"},
	{name: "Raja Chari"},
}

// Load seeds the roster when the store is empty. It returns the number of
// people created; zero means the store already had data.
func Load(ctx context.Context, counter Counter, people PersonCreator, duties DutyRecorder, logger *slog.Logger) (int, error) {
	n, err := counter.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count people: %w", err)
	}
	if n > 0 {
		logger.InfoContext(ctx, "skipping seed, store not empty", "people", n)
		return 0, nil
	}

	created := 0
	for _, e := range roster {
		if _, err := people.Create(ctx, e.name); err != nil {
			return created, fmt.Errorf("seed person %q: %w", e.name, err)
		}
		created++
		for _, d := range e.duties {
			req := &dutymodels.RecordDutyRequest{
				Name:          e.name,
				Rank:          d.rank,
				DutyTitle:     d.title,
				DutyStartDate: dutymodels.NewDate(d.start),
			}
			if _, err := duties.RecordDuty(ctx, req); err != nil {
				return created, fmt.Errorf("seed duty %s %s for %q: %w", d.rank, d.title, e.name, err)
			}
		}
	}
	logger.InfoContext(ctx, "seeded people", "count", created)
	return created, nil
}
