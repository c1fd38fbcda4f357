// Package sqlite es el backend local (archivo) del repositorio de animales.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"vet-clinic-records/internal/adapters/storage/sqldb"
	"vet-clinic-records/internal/platform/logger"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

//go:embed schema.sql
var schemaSQL string

// Open abre (o crea) la base en path con FK activadas en cada conexión.
func Open(path string) (*sql.DB, error) {
	if path == "" {
		path = "vetclinic.db"
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// un solo escritor a la vez; evita SQLITE_BUSY entre transacciones
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}

// dsn arma la URI file: con el path escapado; el driver corta sus parámetros
// en el primer '?' y SQLite decodifica los %XX del path.
func dsn(path string) string {
	q := url.Values{}
	q.Add("_pragma", "foreign_keys(1)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Set("_time_format", "sqlite")

	u := url.URL{Path: path}
	return "file:" + u.EscapedPath() + "?" + q.Encode()
}

// EnsureSchema crea las tablas si no existen. No versiona ni migra.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// IsForeignKeyViolation reconoce SQLITE_CONSTRAINT_FOREIGNKEY.
func IsForeignKeyViolation(err error) bool {
	var sErr *sqlite.Error
	if !errors.As(err, &sErr) {
		return false
	}
	if sErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY {
		return true
	}
	return sErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(sErr.Error(), "FOREIGN KEY")
}

func NewAnimalsRepo(db *sql.DB, log logger.Logger) *sqldb.AnimalsRepo {
	return sqldb.NewAnimalsRepo(db,
		sqldb.WithLogger(log),
		sqldb.WithForeignKeyClassifier(IsForeignKeyViolation),
	)
}
