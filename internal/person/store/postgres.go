package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"stargate/internal/person/models"
	id "stargate/pkg/domain"
	"stargate/pkg/platform/sentinel"
	"stargate/pkg/platform/tx"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

const astronautColumns = `
	p.id, p.name, d.current_rank, d.current_duty_title, d.career_start_date, d.career_end_date
	FROM people p
	LEFT JOIN astronaut_details d ON d.person_id = p.id`

// PostgresStore persists people in PostgreSQL. Calls join a transaction
// carried in ctx.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, p *models.Person) error {
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`INSERT INTO people (name) VALUES ($1) RETURNING id`, p.Name,
	).Scan(&p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create person: %w", sentinel.ErrAlreadyUsed)
		}
		return fmt.Errorf("create person: %w", err)
	}
	return nil
}

func (s *PostgresStore) Rename(ctx context.Context, oldName, newName string) (*models.Person, error) {
	p := &models.Person{Name: newName}
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`UPDATE people SET name = $2 WHERE name = $1 RETURNING id`, oldName, newName,
	).Scan(&p.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, fmt.Errorf("rename person: %w", sentinel.ErrNotFound)
		case isUniqueViolation(err):
			return nil, fmt.Errorf("rename person: %w", sentinel.ErrAlreadyUsed)
		}
		return nil, fmt.Errorf("rename person: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindByName(ctx context.Context, name string) (*models.Person, error) {
	p := &models.Person{}
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT id, name FROM people WHERE name = $1`, name,
	).Scan(&p.ID, &p.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find person by name: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find person by name: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindIDByName(ctx context.Context, name string) (id.PersonID, error) {
	p, err := s.FindByName(ctx, name)
	if err != nil {
		return 0, err
	}
	return p.ID, nil
}

func (s *PostgresStore) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM people WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("person exists: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := tx.Pick(ctx, s.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM people`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count people: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) FindAstronautByName(ctx context.Context, name string) (*models.PersonAstronaut, error) {
	pa, err := scanAstronaut(tx.Pick(ctx, s.db).QueryRowContext(ctx,
		`SELECT `+astronautColumns+` WHERE p.name = $1`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("find astronaut by name: %w", sentinel.ErrNotFound)
		}
		return nil, fmt.Errorf("find astronaut by name: %w", err)
	}
	return pa, nil
}

func (s *PostgresStore) ListAstronauts(ctx context.Context) ([]models.PersonAstronaut, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx, `SELECT `+astronautColumns+` ORDER BY p.id`)
	if err != nil {
		return nil, fmt.Errorf("list astronauts: %w", err)
	}
	return collectAstronauts(rows)
}

// ListAstronautsByNames loads the projections for a batch of names in one query.
func (s *PostgresStore) ListAstronautsByNames(ctx context.Context, names []string) ([]models.PersonAstronaut, error) {
	rows, err := tx.Pick(ctx, s.db).QueryContext(ctx,
		`SELECT `+astronautColumns+` WHERE p.name = ANY($1) ORDER BY p.id`, pq.Array(names))
	if err != nil {
		return nil, fmt.Errorf("list astronauts by names: %w", err)
	}
	return collectAstronauts(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAstronaut(row rowScanner) (*models.PersonAstronaut, error) {
	var (
		pa    models.PersonAstronaut
		rank  sql.NullString
		title sql.NullString
		start sql.NullTime
		end   sql.NullTime
	)
	if err := row.Scan(&pa.PersonID, &pa.Name, &rank, &title, &start, &end); err != nil {
		return nil, err
	}
	pa.CurrentRank = rank.String
	pa.CurrentDutyTitle = title.String
	if start.Valid {
		t := start.Time.UTC()
		pa.CareerStartDate = &t
	}
	if end.Valid {
		t := end.Time.UTC()
		pa.CareerEndDate = &t
	}
	return &pa, nil
}

func collectAstronauts(rows *sql.Rows) ([]models.PersonAstronaut, error) {
	defer rows.Close()
	var out []models.PersonAstronaut
	for rows.Next() {
		pa, err := scanAstronaut(rows)
		if err != nil {
			return nil, fmt.Errorf("scan astronaut: %w", err)
		}
		out = append(out, *pa)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate astronauts: %w", err)
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
