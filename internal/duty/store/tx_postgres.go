package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	id "stargate/pkg/domain"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/sentinel"
	"stargate/pkg/platform/tx"
)

// PostgresTx runs a reconciliation in one database transaction. The person
// row is locked with SELECT ... FOR UPDATE so concurrent recordings for the
// same person queue behind each other.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresTx(db *sql.DB, timeout time.Duration) *PostgresTx {
	if timeout <= 0 {
		timeout = DefaultTxTimeout
	}
	return &PostgresTx{db: db, timeout: timeout}
}

func (t *PostgresTx) RunInTx(ctx context.Context, personID id.PersonID, fn func(ctx context.Context) error) (err error) {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	sqlTx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return timeoutOrInternal(err, "begin transaction")
	}
	defer func() {
		if r := recover(); r != nil {
			_ = sqlTx.Rollback()
			panic(r)
		}
		if err != nil {
			_ = sqlTx.Rollback()
		}
	}()

	var locked id.PersonID
	err = sqlTx.QueryRowContext(ctx, `SELECT id FROM people WHERE id = $1 FOR UPDATE`, personID).Scan(&locked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dErrors.Wrap(fmt.Errorf("lock person: %w", sentinel.ErrNotFound), dErrors.CodeNotFound,
				"Provided Person name does not exist in system")
		}
		return timeoutOrInternal(err, "lock person")
	}

	if err = fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err = sqlTx.Commit(); err != nil {
		return timeoutOrInternal(err, "commit transaction")
	}
	return nil
}

func timeoutOrInternal(err error, op string) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, op+": transaction timed out")
	}
	if isSerializationFailure(err) {
		return dErrors.Wrap(fmt.Errorf("%s: %w", op, sentinel.ErrConflict), dErrors.CodeConflict,
			"concurrent update, retry the request")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, op)
}

// isSerializationFailure matches serialization_failure and deadlock_detected.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}
