package postgres

import (
	"database/sql"

	"vet-clinic-records/internal/adapters/storage/sqldb"
	"vet-clinic-records/internal/platform/logger"
)

// NewAnimalsRepo devuelve el repositorio de animales sobre Postgres.
// Las FK del esquema son la validación definitiva; sus violaciones se
// reportan como PersistenceError con ForeignKeyViolation.
func NewAnimalsRepo(db *sql.DB, log logger.Logger) *sqldb.AnimalsRepo {
	return sqldb.NewAnimalsRepo(db,
		sqldb.WithLogger(log),
		sqldb.WithForeignKeyClassifier(IsForeignKeyViolation),
	)
}
