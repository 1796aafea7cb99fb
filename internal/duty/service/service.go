package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"stargate/internal/audit"
	"stargate/internal/duty/metrics"
	"stargate/internal/duty/models"
	personmodels "stargate/internal/person/models"
	id "stargate/pkg/domain"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
)

const (
	msgRecorded          = "Successfully recorded Astronaut Duty Details in system"
	msgRecordFailed      = "Failed to record Astronaut Duty Details in system..."
	msgPersonMissing     = "Provided Person name does not exist in system"
	msgDuplicateDuty     = "This duty record has already been recorded in the system.."
	msgOutOfOrder        = "You can only add new duty records greater than the max duty start date of existing records"
	msgDetailWriteFailed = "Failed to add/update Astronaut Detail in the system.."
)

// PersonStore resolves people by name.
type PersonStore interface {
	FindIDByName(ctx context.Context, name string) (id.PersonID, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	FindAstronautByName(ctx context.Context, name string) (*personmodels.PersonAstronaut, error)
}

// DetailStore holds the per-person astronaut detail row. GetByPersonID
// returns sentinel.ErrNotFound when the person has none.
type DetailStore interface {
	GetByPersonID(ctx context.Context, personID id.PersonID) (*models.Detail, error)
	Create(ctx context.Context, d *models.Detail) error
	Update(ctx context.Context, d *models.Detail) error
}

// DutyStore holds astronaut duties. ListByPersonID returns newest first.
type DutyStore interface {
	ListByPersonID(ctx context.Context, personID id.PersonID) ([]models.Duty, error)
	Create(ctx context.Context, d *models.Duty) error
	Update(ctx context.Context, d *models.Duty) error
}

// StoreTx runs fn as one unit for a person: every write in fn commits or
// none does, and calls for the same person never interleave.
type StoreTx interface {
	RunInTx(ctx context.Context, personID id.PersonID, fn func(ctx context.Context) error) error
}

// Invalidator drops cached person projections.
type Invalidator interface {
	Invalidate(ctx context.Context, names ...string)
}

type AuditPublisher interface {
	Emit(ctx context.Context, base audit.Event) error
}

// Service records astronaut duties and reconciles the detail summary.
type Service struct {
	people         PersonStore
	details        DetailStore
	duties         DutyStore
	tx             StoreTx
	cache          Invalidator
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTx(t StoreTx) Option {
	return func(s *Service) {
		s.tx = t
	}
}

func WithInvalidator(c Invalidator) Option {
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

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service. Without WithTx, fn runs directly with no
// isolation or rollback.
func New(people PersonStore, details DetailStore, duties DutyStore, opts ...Option) *Service {
	s := &Service{
		people:  people,
		details: details,
		duties:  duties,
		tx:      passthroughTx{},
		logger:  slog.Default(),
		tracer:  otel.Tracer("stargate/internal/duty"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type passthroughTx struct{}

func (passthroughTx) RunInTx(ctx context.Context, _ id.PersonID, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// reconciliation is what a committed RecordDuty changed.
type reconciliation struct {
	personID      id.PersonID
	detail        models.Detail
	detailCreated bool
	closed        *models.Duty
	opened        models.Duty
}

// RecordDuty records a new duty for a person. Inside one transaction it
// rejects duplicates and out-of-order start dates, creates or updates the
// astronaut detail, closes the current duty the day before the new one
// starts and inserts the new open duty.
func (s *Service) RecordDuty(ctx context.Context, req *models.RecordDutyRequest) (*models.RecordDutyResult, error) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "duty.RecordDuty")
	defer span.End()

	rec, err := s.recordDuty(ctx, req)
	if s.metrics != nil {
		s.metrics.ObserveReconciliation(start)
	}
	if err != nil {
		code := dErrors.CodeOf(err)
		span.SetStatus(codes.Error, string(code))
		span.RecordError(err)
		if s.metrics != nil {
			s.metrics.IncrementFailure(string(code))
		}
		return nil, err
	}

	assignment := models.ParseAssignment(rec.opened.Rank, rec.opened.DutyTitle)
	span.SetAttributes(
		attribute.Int64("person.id", int64(rec.personID)),
		attribute.String("duty.kind", assignment.Kind().String()),
		attribute.Bool("detail.created", rec.detailCreated),
	)
	s.afterCommit(ctx, req.Name, rec, assignment)

	return &models.RecordDutyResult{ID: rec.opened.ID, Success: true, Message: msgRecorded}, nil
}

func (s *Service) recordDuty(ctx context.Context, req *models.RecordDutyRequest) (*reconciliation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.people.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, msgRecordFailed)
	}
	if !exists {
		return nil, dErrors.New(dErrors.CodeNotFound, msgPersonMissing)
	}
	personID, err := s.people.FindIDByName(ctx, req.Name)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, msgPersonMissing)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, msgRecordFailed)
	}

	assignment := req.Assignment()
	startDate := models.TruncateDate(req.DutyStartDate.Time)
	rec := &reconciliation{personID: personID}

	err = s.tx.RunInTx(ctx, personID, func(ctx context.Context) error {
		duties, err := s.duties.ListByPersonID(ctx, personID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, msgRecordFailed)
		}
		history := models.NewHistory(duties)
		if history.HasDuplicate(assignment.Title, startDate) {
			return dErrors.New(dErrors.CodeConflict, msgDuplicateDuty)
		}
		if history.StartsAfter(startDate) {
			return dErrors.NewValidation(msgOutOfOrder, dErrors.Field("duty_start_date", msgOutOfOrder))
		}

		if err := s.writeDetail(ctx, rec, assignment, startDate); err != nil {
			return err
		}

		transition := history.Succeed(personID, assignment, startDate)
		if transition.Closed != nil {
			if err := s.duties.Update(ctx, transition.Closed); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, msgRecordFailed)
			}
		}
		opened := transition.Opened
		if err := s.duties.Create(ctx, &opened); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, msgRecordFailed)
		}
		rec.closed = transition.Closed
		rec.opened = opened
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// writeDetail creates the person's detail on their first duty and updates
// it afterwards.
func (s *Service) writeDetail(ctx context.Context, rec *reconciliation, a models.Assignment, start time.Time) error {
	current, err := s.details.GetByPersonID(ctx, rec.personID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		detail := models.NewDetail(rec.personID, a, start)
		if err := s.details.Create(ctx, &detail); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, msgDetailWriteFailed)
		}
		rec.detail = detail
		rec.detailCreated = true
		return nil
	case err != nil:
		return dErrors.Wrap(err, dErrors.CodeInternal, msgDetailWriteFailed)
	}

	current.Apply(a, start)
	if err := s.details.Update(ctx, current); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, msgDetailWriteFailed)
	}
	rec.detail = *current
	return nil
}

// afterCommit runs the best-effort side effects of a recorded duty.
func (s *Service) afterCommit(ctx context.Context, name string, rec *reconciliation, a models.Assignment) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, name)
	}
	if s.metrics != nil {
		s.metrics.IncrementRecorded(a.Kind().String())
	}

	attrs := map[string]string{
		"duty_id":    rec.opened.ID.String(),
		"rank":       rec.opened.Rank,
		"duty_title": rec.opened.DutyTitle,
		"start_date": rec.opened.DutyStartDate.Format(models.DateLayout),
	}
	if rec.closed != nil {
		attrs["closed_duty_id"] = rec.closed.ID.String()
	}
	s.emitAudit(ctx, audit.Event{Action: audit.ActionDutyRecorded, PersonID: rec.personID, PersonName: name, Attributes: attrs})
	if a.IsRetirement() && rec.detail.CareerEndDate != nil {
		s.emitAudit(ctx, audit.Event{
			Action:     audit.ActionCareerEnded,
			PersonID:   rec.personID,
			PersonName: name,
			Attributes: map[string]string{"career_end_date": rec.detail.CareerEndDate.Format(models.DateLayout)},
		})
	}

	s.logger.InfoContext(ctx, "astronaut duty recorded",
		"person_id", rec.personID,
		"duty_id", rec.opened.ID,
		"kind", a.Kind().String(),
		"detail_created", rec.detailCreated,
	)
}

// ListByName returns a person's projection and duties, newest first. The
// projection and the duty list load concurrently.
func (s *Service) ListByName(ctx context.Context, name string) (*models.PersonDuties, error) {
	ctx, span := s.tracer.Start(ctx, "duty.ListByName")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	var (
		person *personmodels.PersonAstronaut
		duties []models.Duty
	)
	g.Go(func() error {
		p, err := s.people.FindAstronautByName(gctx, name)
		if err != nil {
			return err
		}
		person = p
		return nil
	})
	g.Go(func() error {
		personID, err := s.people.FindIDByName(gctx, name)
		if err != nil {
			return err
		}
		list, err := s.duties.ListByPersonID(gctx, personID)
		if err != nil {
			return err
		}
		duties = models.NewHistory(list).Duties()
		return nil
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "Person not found with name "+name)
		}
		span.RecordError(err)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load astronaut duties")
	}
	return &models.PersonDuties{Person: *person, Duties: duties}, nil
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
