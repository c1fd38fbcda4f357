package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"vet-clinic-records/internal/domain/animals"
	"vet-clinic-records/internal/observability"
	"vet-clinic-records/internal/platform/logger"

	"github.com/google/uuid"
)

const (
	opAnimalExists    = "animal_exists"
	opOwnerExists     = "owner_exists"
	opProcedureExists = "procedure_exists"
	opGetAnimal       = "get_animal"
	opCreateAnimal    = "create_animal_with_procedures"
)

const (
	animalExistsQuery    = `SELECT 1 FROM animal WHERE id = $1`
	ownerExistsQuery     = `SELECT 1 FROM owner WHERE id = $1`
	procedureExistsQuery = `SELECT 1 FROM "procedure" WHERE id = $1`

	// procedure_animal.id es la identidad de la fila de vínculo; ordenar por ella
	// devuelve los procedimientos en orden de inserción.
	animalAggregateQuery = `
		SELECT
			a.id, a.name, a.admission_date,
			o.id, o.first_name, o.last_name,
			pa.date, p.name, p.description
		FROM animal a
		JOIN owner o ON o.id = a.owner_id
		LEFT JOIN procedure_animal pa ON pa.animal_id = a.id
		LEFT JOIN "procedure" p ON p.id = pa.procedure_id
		WHERE a.id = $1
		ORDER BY pa.id
	`

	insertAnimalQuery = `
		INSERT INTO animal (name, admission_date, owner_id, animal_class_id)
		VALUES ($1,$2,$3,$4)
		RETURNING id
	`

	insertProcedureAnimalQuery = `
		INSERT INTO procedure_animal (procedure_id, animal_id, date)
		VALUES ($1,$2,$3)
	`
)

type AnimalsRepo struct {
	db            *sql.DB
	log           logger.Logger
	isFKViolation func(error) bool
}

type Option func(*AnimalsRepo)

// WithForeignKeyClassifier indica cómo reconocer una violación de FK del driver.
func WithForeignKeyClassifier(fn func(error) bool) Option {
	return func(r *AnimalsRepo) {
		if fn != nil {
			r.isFKViolation = fn
		}
	}
}

func WithLogger(l logger.Logger) Option {
	return func(r *AnimalsRepo) {
		if l != nil {
			r.log = l
		}
	}
}

func NewAnimalsRepo(db *sql.DB, opts ...Option) *AnimalsRepo {
	r := &AnimalsRepo{
		db:            db,
		log:           logger.Nop(),
		isFKViolation: func(error) bool { return false },
	}
	for _, opt := range opts {
		opt(r)
	}
	r.log = r.log.With(map[string]any{"component": "animals_repo"})
	return r
}

func (r *AnimalsRepo) AnimalExists(ctx context.Context, id int64) (ok bool, err error) {
	defer r.observe(opAnimalExists, time.Now(), &err)
	return exists(ctx, r.db, animalExistsQuery, id)
}

func (r *AnimalsRepo) OwnerExists(ctx context.Context, id int64) (ok bool, err error) {
	defer r.observe(opOwnerExists, time.Now(), &err)
	return exists(ctx, r.db, ownerExistsQuery, id)
}

func (r *AnimalsRepo) ProcedureExists(ctx context.Context, id int64) (ok bool, err error) {
	defer r.observe(opProcedureExists, time.Now(), &err)
	return exists(ctx, r.db, procedureExistsQuery, id)
}

// GetAnimal verifica primero la existencia (ErrNotFound sin correr el join) y
// luego reconstruye el agregado desde una sola consulta.
func (r *AnimalsRepo) GetAnimal(ctx context.Context, id int64) (agg animals.AnimalAggregate, err error) {
	defer r.observe(opGetAnimal, time.Now(), &err)

	ok, err := exists(ctx, r.db, animalExistsQuery, id)
	if err != nil {
		return animals.AnimalAggregate{}, err
	}
	if !ok {
		return animals.AnimalAggregate{}, animals.ErrNotFound
	}

	rows, err := r.db.QueryContext(ctx, animalAggregateQuery, id)
	if err != nil {
		return animals.AnimalAggregate{}, err
	}
	defer rows.Close()

	var b aggregateBuilder
	for rows.Next() {
		var row aggregateRow
		if err := row.scanFrom(rows); err != nil {
			return animals.AnimalAggregate{}, err
		}
		if err := b.add(row); err != nil {
			return animals.AnimalAggregate{}, err
		}
	}
	if err := rows.Err(); err != nil {
		return animals.AnimalAggregate{}, err
	}

	agg, found := b.result()
	if !found {
		r.log.Error("animal passed existence check but join returned no rows", map[string]any{"animal_id": id})
		return animals.AnimalAggregate{}, fmt.Errorf("%w: animal %d has no joined rows", animals.ErrDataIntegrity, id)
	}
	return agg, nil
}

// CreateAnimalWithProcedures inserta el animal y un vínculo por procedimiento
// en una única transacción. Si algo falla no queda nada persistido.
func (r *AnimalsRepo) CreateAnimalWithProcedures(ctx context.Context, in animals.NewAnimal) (id int64, err error) {
	defer r.observe(opCreateAnimal, time.Now(), &err)

	classID := in.AnimalClassID
	if classID <= 0 {
		classID = animals.DefaultAnimalClassID
	}

	log := r.log.With(map[string]any{"tx_id": uuid.NewString(), "owner_id": in.OwnerID})

	err = r.inTx(ctx, log, func(tx *sql.Tx) error {
		// RETURNING sobre la misma tx: el id es el de este insert, no el último global
		if err := tx.QueryRowContext(ctx, insertAnimalQuery,
			in.Name,
			in.AdmissionDate,
			in.OwnerID,
			classID,
		).Scan(&id); err != nil {
			return r.persistenceError("insert animal", err)
		}

		for _, p := range in.Procedures {
			if _, err := tx.ExecContext(ctx, insertProcedureAnimalQuery,
				p.ProcedureID,
				id,
				p.Date,
			); err != nil {
				return r.persistenceError("insert procedure_animal", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	log.Debug("animal persisted", map[string]any{"animal_id": id, "procedures": len(in.Procedures)})
	return id, nil
}

func (r *AnimalsRepo) observe(op string, started time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}

	outcome := observability.OutcomeOK
	var perr *animals.PersistenceError
	switch {
	case err == nil:
	case errors.Is(err, animals.ErrNotFound):
		outcome = observability.OutcomeNotFound
	case errors.As(err, &perr) && perr.ForeignKeyViolation:
		outcome = observability.OutcomeFKViolation
	default:
		outcome = observability.OutcomeError
	}
	observability.ObserveOperation(op, outcome, started)
}
