package store

import (
	"context"
	"fmt"

	"stargate/internal/duty/models"
	"stargate/internal/storage"
	id "stargate/pkg/domain"
)

// InMemoryDetails serves astronaut details from the shared in-memory tables.
type InMemoryDetails struct {
	db *storage.Memory
}

func NewInMemoryDetails(db *storage.Memory) *InMemoryDetails {
	return &InMemoryDetails{db: db}
}

func (s *InMemoryDetails) GetByPersonID(ctx context.Context, personID id.PersonID) (*models.Detail, error) {
	d, err := s.db.DetailByPerson(ctx, personID)
	if err != nil {
		return nil, fmt.Errorf("get astronaut detail: %w", err)
	}
	return &d, nil
}

func (s *InMemoryDetails) Create(ctx context.Context, d *models.Detail) error {
	if err := s.db.InsertDetail(ctx, d); err != nil {
		return fmt.Errorf("create astronaut detail: %w", err)
	}
	return nil
}

func (s *InMemoryDetails) Update(ctx context.Context, d *models.Detail) error {
	if err := s.db.UpdateDetail(ctx, d); err != nil {
		return fmt.Errorf("update astronaut detail: %w", err)
	}
	return nil
}

// InMemoryDuties serves astronaut duties from the shared in-memory tables.
type InMemoryDuties struct {
	db *storage.Memory
}

func NewInMemoryDuties(db *storage.Memory) *InMemoryDuties {
	return &InMemoryDuties{db: db}
}

// ListByPersonID returns duties newest first.
func (s *InMemoryDuties) ListByPersonID(ctx context.Context, personID id.PersonID) ([]models.Duty, error) {
	return models.NewHistory(s.db.DutiesByPerson(ctx, personID)).Duties(), nil
}

func (s *InMemoryDuties) Create(ctx context.Context, d *models.Duty) error {
	if err := s.db.InsertDuty(ctx, d); err != nil {
		return fmt.Errorf("create astronaut duty: %w", err)
	}
	return nil
}

func (s *InMemoryDuties) Update(ctx context.Context, d *models.Duty) error {
	if err := s.db.UpdateDuty(ctx, d); err != nil {
		return fmt.Errorf("update astronaut duty: %w", err)
	}
	return nil
}
