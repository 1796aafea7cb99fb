// Package storage holds the in-memory tables shared by the person and duty
// stores. One Memory value plays the role of a single database so that the
// person projection can left-join astronaut details, like the SQL stores do.
package storage

import (
	"context"
	"sort"
	"sync"

	dutymodels "stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	id "stargate/pkg/domain"
	"stargate/pkg/platform/sentinel"
)

// Memory favors clarity over performance. Every accessor copies values in
// and out so callers never alias stored rows.
type Memory struct {
	mu      sync.RWMutex
	people  map[id.PersonID]personmodels.Person
	names   map[string]id.PersonID
	details map[id.PersonID]dutymodels.Detail
	duties  map[id.PersonID][]dutymodels.Duty

	nextPersonID id.PersonID
	nextDetailID id.DetailID
	nextDutyID   id.DutyID
}

func NewMemory() *Memory {
	return &Memory{
		people:  make(map[id.PersonID]personmodels.Person),
		names:   make(map[string]id.PersonID),
		details: make(map[id.PersonID]dutymodels.Detail),
		duties:  make(map[id.PersonID][]dutymodels.Duty),
	}
}

// -----------------------------------------------------------------------------
// People
// -----------------------------------------------------------------------------

// InsertPerson assigns an id and stores p. Names are unique (exact match).
func (m *Memory) InsertPerson(_ context.Context, p *personmodels.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.names[p.Name]; taken {
		return sentinel.ErrAlreadyUsed
	}
	m.nextPersonID++
	p.ID = m.nextPersonID
	m.people[p.ID] = *p
	m.names[p.Name] = p.ID
	return nil
}

// UpdatePerson replaces the stored row for p.ID, keeping the name index in step.
func (m *Memory) UpdatePerson(_ context.Context, p *personmodels.Person) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.people[p.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if owner, taken := m.names[p.Name]; taken && owner != p.ID {
		return sentinel.ErrAlreadyUsed
	}
	delete(m.names, existing.Name)
	m.people[p.ID] = *p
	m.names[p.Name] = p.ID
	return nil
}

func (m *Memory) PersonByName(_ context.Context, name string) (personmodels.Person, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pid, ok := m.names[name]
	if !ok {
		return personmodels.Person{}, sentinel.ErrNotFound
	}
	return m.people[pid], nil
}

// People returns every person ordered by id.
func (m *Memory) People(_ context.Context) []personmodels.Person {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]personmodels.Person, 0, len(m.people))
	for _, p := range m.people {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// -----------------------------------------------------------------------------
// Astronaut details
// -----------------------------------------------------------------------------

func (m *Memory) DetailByPerson(_ context.Context, personID id.PersonID) (dutymodels.Detail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.details[personID]
	if !ok {
		return dutymodels.Detail{}, sentinel.ErrNotFound
	}
	return copyDetail(d), nil
}

// InsertDetail stores the first detail row for a person.
func (m *Memory) InsertDetail(_ context.Context, d *dutymodels.Detail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.people[d.PersonID]; !ok {
		return sentinel.ErrNotFound
	}
	if _, exists := m.details[d.PersonID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	m.nextDetailID++
	d.ID = m.nextDetailID
	m.details[d.PersonID] = copyDetail(*d)
	return nil
}

func (m *Memory) UpdateDetail(_ context.Context, d *dutymodels.Detail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.details[d.PersonID]
	if !ok || existing.ID != d.ID {
		return sentinel.ErrNotFound
	}
	m.details[d.PersonID] = copyDetail(*d)
	return nil
}

// -----------------------------------------------------------------------------
// Astronaut duties
// -----------------------------------------------------------------------------

// DutiesByPerson returns a person's duties in insertion order.
func (m *Memory) DutiesByPerson(_ context.Context, personID id.PersonID) []dutymodels.Duty {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rows := m.duties[personID]
	out := make([]dutymodels.Duty, len(rows))
	for i, d := range rows {
		out[i] = copyDuty(d)
	}
	return out
}

func (m *Memory) InsertDuty(_ context.Context, d *dutymodels.Duty) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.people[d.PersonID]; !ok {
		return sentinel.ErrNotFound
	}
	m.nextDutyID++
	d.ID = m.nextDutyID
	m.duties[d.PersonID] = append(m.duties[d.PersonID], copyDuty(*d))
	return nil
}

func (m *Memory) UpdateDuty(_ context.Context, d *dutymodels.Duty) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := m.duties[d.PersonID]
	for i := range rows {
		if rows[i].ID == d.ID {
			rows[i] = copyDuty(*d)
			return nil
		}
	}
	return sentinel.ErrNotFound
}

// -----------------------------------------------------------------------------
// Per-person snapshots back the in-memory transaction rollback.
// -----------------------------------------------------------------------------

// PersonSnapshot is a point-in-time copy of one person's detail and duties.
type PersonSnapshot struct {
	personID id.PersonID
	detail   *dutymodels.Detail
	duties   []dutymodels.Duty
}

func (m *Memory) SnapshotPerson(personID id.PersonID) PersonSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	snap := PersonSnapshot{personID: personID}
	if d, ok := m.details[personID]; ok {
		c := copyDetail(d)
		snap.detail = &c
	}
	for _, d := range m.duties[personID] {
		snap.duties = append(snap.duties, copyDuty(d))
	}
	return snap
}

// RestorePerson puts a person's detail and duties back to snap. Id sequences
// are not rewound; like database sequences, burned ids stay burned.
func (m *Memory) RestorePerson(snap PersonSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if snap.detail == nil {
		delete(m.details, snap.personID)
	} else {
		m.details[snap.personID] = *snap.detail
	}
	if snap.duties == nil {
		delete(m.duties, snap.personID)
	} else {
		m.duties[snap.personID] = snap.duties
	}
}

func copyDetail(d dutymodels.Detail) dutymodels.Detail {
	if d.CareerEndDate != nil {
		end := *d.CareerEndDate
		d.CareerEndDate = &end
	}
	return d
}

func copyDuty(d dutymodels.Duty) dutymodels.Duty {
	if d.DutyEndDate != nil {
		end := *d.DutyEndDate
		d.DutyEndDate = &end
	}
	return d
}
