package store

import (
	"context"
	"errors"
	"fmt"

	"stargate/internal/person/models"
	"stargate/internal/storage"
	id "stargate/pkg/domain"
	"stargate/pkg/platform/sentinel"
)

// InMemory serves people from the shared in-memory tables.
type InMemory struct {
	db *storage.Memory
}

func NewInMemory(db *storage.Memory) *InMemory {
	return &InMemory{db: db}
}

func (s *InMemory) Create(ctx context.Context, p *models.Person) error {
	if err := s.db.InsertPerson(ctx, p); err != nil {
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

func (s *InMemory) Rename(ctx context.Context, oldName, newName string) (*models.Person, error) {
	p, err := s.db.PersonByName(ctx, oldName)
	if err != nil {
		return nil, fmt.Errorf("rename person: %w", err)
	}
	p.Name = newName
	if err := s.db.UpdatePerson(ctx, &p); err != nil {
		return nil, fmt.Errorf("rename person: %w", err)
	}
	return &p, nil
}

func (s *InMemory) FindByName(ctx context.Context, name string) (*models.Person, error) {
	p, err := s.db.PersonByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find person by name: %w", err)
	}
	return &p, nil
}

func (s *InMemory) FindIDByName(ctx context.Context, name string) (id.PersonID, error) {
	p, err := s.FindByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *InMemory) ExistsByName(ctx context.Context, name string) (bool, error) {
	_, err := s.db.PersonByName(ctx, name)
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *InMemory) Count(ctx context.Context) (int, error) {
	return len(s.db.People(ctx)), nil
}

func (s *InMemory) FindAstronautByName(ctx context.Context, name string) (*models.PersonAstronaut, error) {
	p, err := s.db.PersonByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("find astronaut by name: %w", err)
	}
	pa, err := s.join(ctx, p)
	if err != nil {
		return nil, err
	}
	return &pa, nil
}

func (s *InMemory) ListAstronauts(ctx context.Context) ([]models.PersonAstronaut, error) {
	people := s.db.People(ctx)
	out := make([]models.PersonAstronaut, 0, len(people))
	for _, p := range people {
		pa, err := s.join(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, pa)
	}
	return out, nil
}

func (s *InMemory) ListAstronautsByNames(ctx context.Context, names []string) ([]models.PersonAstronaut, error) {
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	all, err := s.ListAstronauts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.PersonAstronaut, 0, len(names))
	for _, pa := range all {
		if _, ok := wanted[pa.Name]; ok {
			out = append(out, pa)
		}
	}
	return out, nil
}

// join is the in-memory left join of a person with their detail row.
func (s *InMemory) join(ctx context.Context, p models.Person) (models.PersonAstronaut, error) {
	pa := models.Civilian(p)
	detail, err := s.db.DetailByPerson(ctx, p.ID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return pa, nil
	}
	if err != nil {
		return models.PersonAstronaut{}, fmt.Errorf("load astronaut detail: %w", err)
	}
	start := detail.CareerStartDate
	pa.CurrentRank = detail.CurrentRank
	pa.CurrentDutyTitle = detail.CurrentDutyTitle
	pa.CareerStartDate = &start
	pa.CareerEndDate = detail.CareerEndDate
	return pa, nil
}
