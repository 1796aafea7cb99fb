package models

import (
	"sort"
	"time"

	id "stargate/pkg/domain"
)

// Duty is one interval of rank and role for a person. The current duty has
// no end date.
type Duty struct {
	ID            id.DutyID
	PersonID      id.PersonID
	Rank          string
	DutyTitle     string
	DutyStartDate time.Time
	DutyEndDate   *time.Time
}

func (d Duty) IsCurrent() bool { return d.DutyEndDate == nil }

// Detail is the denormalized current-status row kept per astronaut.
type Detail struct {
	ID               id.DetailID
	PersonID         id.PersonID
	CurrentRank      string
	CurrentDutyTitle string
	CareerStartDate  time.Time
	CareerEndDate    *time.Time
}

// NewDetail builds the first detail for a person. A retirement as the first
// recorded duty also closes the career on the day before it starts.
func NewDetail(personID id.PersonID, a Assignment, start time.Time) Detail {
	d := Detail{
		PersonID:         personID,
		CurrentRank:      a.Rank,
		CurrentDutyTitle: a.Title,
		CareerStartDate:  TruncateDate(start),
	}
	if a.IsRetirement() {
		end := DayBefore(start)
		d.CareerEndDate = &end
	}
	return d
}

// Apply moves an existing detail to a new assignment. CareerEndDate only
// changes on retirement.
func (d *Detail) Apply(a Assignment, start time.Time) {
	d.CurrentRank = a.Rank
	d.CurrentDutyTitle = a.Title
	if a.IsRetirement() {
		end := DayBefore(start)
		d.CareerEndDate = &end
	}
}

// IsRetired reports whether a retirement has been recorded.
func (d Detail) IsRetired() bool { return d.CareerEndDate != nil }

// History is a person's duties ordered by start date, newest first.
type History struct {
	duties []Duty
}

// NewHistory sorts a copy of duties newest first. Equal start dates keep the
// later insert (higher id) first.
func NewHistory(duties []Duty) History {
	sorted := make([]Duty, len(duties))
	copy(sorted, duties)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.DutyStartDate.Equal(b.DutyStartDate) {
			return a.DutyStartDate.After(b.DutyStartDate)
		}
		return a.ID > b.ID
	})
	return History{duties: sorted}
}

func (h History) Duties() []Duty { return h.duties }

func (h History) Len() int { return len(h.duties) }

// Current is the duty with the greatest start date.
func (h History) Current() (Duty, bool) {
	if len(h.duties) == 0 {
		return Duty{}, false
	}
	return h.duties[0], true
}

// LatestStart returns the greatest recorded start date.
func (h History) LatestStart() (time.Time, bool) {
	cur, ok := h.Current()
	if !ok {
		return time.Time{}, false
	}
	return cur.DutyStartDate, true
}

// HasDuplicate reports whether a duty with the same title and start date
// already exists.
func (h History) HasDuplicate(title string, start time.Time) bool {
	start = TruncateDate(start)
	for _, d := range h.duties {
		if d.DutyTitle == title && TruncateDate(d.DutyStartDate).Equal(start) {
			return true
		}
	}
	return false
}

// StartsAfter reports whether any recorded duty starts after start.
func (h History) StartsAfter(start time.Time) bool {
	latest, ok := h.LatestStart()
	if !ok {
		return false
	}
	return TruncateDate(latest).After(TruncateDate(start))
}

// Transition is the close-previous/open-new pair produced by Succeed.
type Transition struct {
	Closed *Duty
	Opened Duty
}

// Succeed computes the duty changes for a new assignment: the current duty,
// if any, ends the day before start and a new open duty begins at start.
// A current duty starting on the same day ends on that day, so an interval
// never ends before it begins.
func (h History) Succeed(personID id.PersonID, a Assignment, start time.Time) Transition {
	start = TruncateDate(start)
	t := Transition{
		Opened: Duty{
			PersonID:      personID,
			Rank:          a.Rank,
			DutyTitle:     a.Title,
			DutyStartDate: start,
		},
	}
	if cur, ok := h.Current(); ok {
		end := DayBefore(start)
		if curStart := TruncateDate(cur.DutyStartDate); end.Before(curStart) {
			end = curStart
		}
		cur.DutyEndDate = &end
		t.Closed = &cur
	}
	return t
}

// RecordDutyResult reports the outcome of recording a duty.
type RecordDutyResult struct {
	ID      id.DutyID
	Success bool
	Message string
}
