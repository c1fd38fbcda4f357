// Package sqldb implementa el repositorio de animales sobre database/sql.
//
// Las consultas usan placeholders $n y INSERT ... RETURNING, válidos tanto
// en Postgres (pgx) como en SQLite (modernc). Cada backend aporta su driver y
// su clasificador de violaciones de FK.
package sqldb

import (
	"context"
	"database/sql"
	"errors"

	"vet-clinic-records/internal/domain/animals"
	"vet-clinic-records/internal/observability"
	"vet-clinic-records/internal/platform/logger"
)

// queryer es lo común entre *sql.DB y *sql.Tx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ queryer = (*sql.DB)(nil)
	_ queryer = (*sql.Tx)(nil)
)

// exists corre un "SELECT 1 ... WHERE id = $1". Sin filas => false.
func exists(ctx context.Context, q queryer, query string, id int64) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// inTx abre una transacción, ejecuta fn y hace commit solo si fn no falla.
// En cualquier otra salida (error, commit fallido, panic, ctx cancelado) hace rollback.
// Los errores de begin/commit se devuelven como *animals.PersistenceError.
func (r *AnimalsRepo) inTx(ctx context.Context, log logger.Logger, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return r.persistenceError("begin tx", err)
	}
	log.Debug("tx begin", nil)

	done := false
	defer func() {
		if done {
			return
		}
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Error("tx rollback failed", map[string]any{"error": rbErr.Error()})
		}
		observability.RecordRollback()
		log.Warn("tx rolled back", nil)
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return r.persistenceError("commit", err)
	}
	done = true
	log.Debug("tx commit", nil)
	return nil
}

func (r *AnimalsRepo) persistenceError(op string, err error) error {
	return &animals.PersistenceError{
		Op:                  op,
		ForeignKeyViolation: r.isFKViolation(err),
		Err:                 err,
	}
}
