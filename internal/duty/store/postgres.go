package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stargate/internal/duty/models"
	id "stargate/pkg/domain"
	"stargate/pkg/platform/sentinel"
	"stargate/pkg/platform/tx"
)

// PostgresDetails persists astronaut details. Calls join a transaction
// carried in ctx.
type PostgresDetails struct {
	db *sql.DB
}

func NewPostgresDetails(db *sql.DB) *PostgresDetails {
	return &PostgresDetails{db: db}
}

func (s *PostgresDetails) GetByPersonID(ctx context.Context, personID id.PersonID) (*models.Detail, error) {
	var (
		d   models.Detail
		end sql.NullTime
	)
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx, `
		SELECT id, person_id, current_rank, current_duty_title, career_start_date, career_end_date
		FROM astronaut_details
		WHERE person_id = $1
	`, personID).Scan(&d.ID, &d.PersonID, &d.CurrentRank, &d.CurrentDutyTitle, &d.CareerStartDate, &end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("get astronaut detail: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("get astronaut detail: %w", err)
	}
	d.CareerStartDate = models.TruncateDate(d.CareerStartDate)
	d.CareerEndDate = datePtr(end)
	return &d, nil
}

func (s *PostgresDetails) Create(ctx context.Context, d *models.Detail) error {
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO astronaut_details (person_id, current_rank, current_duty_title, career_start_date, career_end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, d.PersonID, d.CurrentRank, d.CurrentDutyTitle, d.CareerStartDate, nullDate(d.CareerEndDate)).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("create astronaut detail: %w", err)
	}
	return nil
}

func (s *PostgresDetails) Update(ctx context.Context, d *models.Detail) error {
	res, err := tx.Pick(ctx, s.db).ExecContext(ctx, `
		UPDATE astronaut_details
		SET current_rank = $2, current_duty_title = $3, career_start_date = $4, career_end_date = $5
		WHERE id = $1
	`, d.ID, d.CurrentRank, d.CurrentDutyTitle, d.CareerStartDate, nullDate(d.CareerEndDate))
	if err != nil {
		return fmt.Errorf("update astronaut detail: %w", err)
	}
	return requireOneRow(res, "update astronaut detail")
}

// PostgresDuties persists astronaut duties. Calls join a transaction
// carried in ctx.
type PostgresDuties struct {
	db *sql.DB
}

func NewPostgresDuties(db *sql.DB) *PostgresDuties {
	return &PostgresDuties{db: db}
}

// ListByPersonID returns duties newest first.
func (s *PostgresDuties) ListByPersonID(ctx context.Context, personID id.PersonID) ([]models.Duty, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx, `
		SELECT id, person_id, rank, duty_title, duty_start_date, duty_end_date
		FROM astronaut_duties
		WHERE person_id = $1
		ORDER BY duty_start_date DESC, id DESC
	`, personID)
	if err != nil {
		return nil, fmt.Errorf("list astronaut duties: %w", err)
	}
	defer rows.Close()

	var out []models.Duty
	for rows.Next() {
		var (
			d   models.Duty
			end sql.NullTime
		)
		if err := rows.Scan(&d.ID, &d.PersonID, &d.Rank, &d.DutyTitle, &d.DutyStartDate, &end); err != nil {
			return nil, fmt.Errorf("scan astronaut duty: %w", err)
		}
		d.DutyStartDate = models.TruncateDate(d.DutyStartDate)
		d.DutyEndDate = datePtr(end)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate astronaut duties: %w", err)
	}
	return out, nil
}

func (s *PostgresDuties) Create(ctx context.Context, d *models.Duty) error {
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx, `
		INSERT INTO astronaut_duties (person_id, rank, duty_title, duty_start_date, duty_end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, d.PersonID, d.Rank, d.DutyTitle, d.DutyStartDate, nullDate(d.DutyEndDate)).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("create astronaut duty: %w", err)
	}
	return nil
}

func (s *PostgresDuties) Update(ctx context.Context, d *models.Duty) error {
	res, err := tx.Pick(ctx, s.db).ExecContext(ctx, `
		UPDATE astronaut_duties
		SET rank = $2, duty_title = $3, duty_start_date = $4, duty_end_date = $5
		WHERE id = $1
	`, d.ID, d.Rank, d.DutyTitle, d.DutyStartDate, nullDate(d.DutyEndDate))
	if err != nil {
		return fmt.Errorf("update astronaut duty: %w", err)
	}
	return requireOneRow(res, "update astronaut duty")
}

func requireOneRow(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	return nil
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func datePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := models.TruncateDate(nt.Time)
	return &t
}
