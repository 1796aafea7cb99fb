package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"stargate/internal/audit"
	"stargate/internal/person/metrics"
	"stargate/internal/person/models"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
	strs "stargate/pkg/platform/strings"
)

// Store is the persistence the person service needs.
type Store interface {
	Create(ctx context.Context, p *models.Person) error
	Rename(ctx context.Context, oldName, newName string) (*models.Person, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAstronautByName(ctx context.Context, name string) (*models.PersonAstronaut, error)
	ListAstronauts(ctx context.Context) ([]models.PersonAstronaut, error)
	ListAstronautsByNames(ctx context.Context, names []string) ([]models.PersonAstronaut, error)
}

// Cache holds read projections. Implementations swallow their own failures.
//
// Version is read before a store load and handed back to SetPerson or
// SetPeople; the cache drops the write if an invalidation happened since.
type Cache interface {
	Version(ctx context.Context) int64
	GetPerson(ctx context.Context, name string) (*models.PersonAstronaut, bool)
	SetPerson(ctx context.Context, version int64, p *models.PersonAstronaut)
	GetPeople(ctx context.Context) ([]models.PersonAstronaut, bool)
	SetPeople(ctx context.Context, version int64, people []models.PersonAstronaut)
	Invalidate(ctx context.Context, names ...string)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service registers, renames and looks up people.
type Service struct {
	store          Store
	cache          Cache
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{store: store, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create registers a new person. Names are unique by exact match.
func (s *Service) Create(ctx context.Context, name string) (*models.Person, error) {
	if err := models.ValidateName("name", name); err != nil {
		return nil, err
	}
	exists, err := s.store.ExistsByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error occured when attempting to save person in system..")
	}
	if exists {
		return nil, alreadyExists("name", "This person already exists in the system")
	}

	p := &models.Person{Name: name}
	if err := s.store.Create(ctx, p); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, alreadyExists("name", "This person already exists in the system")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "Error occured when attempting to save person in system..")
	}

	s.invalidate(ctx)
	s.emitAudit(ctx, audit.Event{Action: audit.ActionPersonCreated, PersonID: p.ID, PersonName: p.Name})
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	s.logger.InfoContext(ctx, "person created", "person_id", p.ID)
	return p, nil
}

// Rename changes a person's name. The old name must exist and the new name
// must be well formed and unused.
func (s *Service) Rename(ctx context.Context, name, newName string) (*models.Person, error) {
	exists, err := s.store.ExistsByName(ctx, name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, "The person you are attempting to update does not exist in the system")
	}
	if err := models.ValidateName("new_name", newName); err != nil {
		return nil, err
	}
	taken, err := s.store.ExistsByName(ctx, newName)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	if taken {
		return nil, alreadyExists("new_name", "The updated name is already associated with an existing user in the system")
	}

	p, err := s.store.Rename(ctx, name, newName)
	if err != nil {
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "The person you are attempting to update does not exist in the system")
		case errors.Is(err, sentinel.ErrAlreadyUsed):
			return nil, alreadyExists("new_name", "The updated name is already associated with an existing user in the system")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update person")
	}

	s.invalidate(ctx, name, newName)
	s.emitAudit(ctx, audit.Event{
		Action:     audit.ActionPersonRenamed,
		PersonID:   p.ID,
		PersonName: p.Name,
		Attributes: map[string]string{"previous_name": name},
	})
	if s.metrics != nil {
		s.metrics.IncrementRenamed()
	}
	s.logger.InfoContext(ctx, "person renamed", "person_id", p.ID)
	return p, nil
}

// List returns every person with their astronaut detail, if any. When names
// are given only those people are returned.
func (s *Service) List(ctx context.Context, names ...string) ([]models.PersonAstronaut, error) {
	start := time.Now()
	defer s.observeQuery("list", start)

	if names = strs.DedupeAndTrim(names); len(names) > 0 {
		people, err := s.store.ListAstronautsByNames(ctx, names)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list people")
		}
		return people, nil
	}

	var version int64
	if s.cache != nil {
		people, hit := s.cache.GetPeople(ctx)
		s.observeCache(hit)
		if hit {
			return people, nil
		}
		version = s.cache.Version(ctx)
	}
	people, err := s.store.ListAstronauts(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list people")
	}
	if s.cache != nil {
		s.cache.SetPeople(ctx, version, people)
	}
	return people, nil
}

// GetByName returns one person's projection.
func (s *Service) GetByName(ctx context.Context, name string) (*models.PersonAstronaut, error) {
	start := time.Now()
	defer s.observeQuery("get_by_name", start)

	var version int64
	if s.cache != nil {
		p, hit := s.cache.GetPerson(ctx, name)
		s.observeCache(hit)
		if hit {
			return p, nil
		}
		version = s.cache.Version(ctx)
	}
	p, err := s.store.FindAstronautByName(ctx, name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Person not found with name "+name)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load person")
	}
	if s.cache != nil {
		s.cache.SetPerson(ctx, version, p)
	}
	return p, nil
}

func alreadyExists(field, msg string) error {
	return dErrors.NewValidation(msg, dErrors.Field(field, msg))
}

func (s *Service) invalidate(ctx context.Context, names ...string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, names...)
	}
}

func (s *Service) emitAudit(ctx context.Context, event audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", event.Action,
			"person_id", event.PersonID,
			"error", err,
		)
	}
}

func (s *Service) observeCache(hit bool) {
	if s.metrics != nil {
		s.metrics.ObserveCache(hit)
	}
}

func (s *Service) observeQuery(query string, start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveQuery(query, start)
	}
}
