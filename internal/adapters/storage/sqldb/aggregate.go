package sqldb

import (
	"database/sql"
	"fmt"

	"vet-clinic-records/internal/domain/animals"
)

// aggregateRow es una fila del join animal/owner/procedure_animal/procedure.
// Las columnas de animal y owner se repiten en todas las filas.
type aggregateRow struct {
	AnimalID      int64
	AnimalName    string
	AdmissionDate sql.NullTime
	OwnerID       int64
	FirstName     string
	LastName      string

	Date        sql.NullTime
	ProcName    sql.NullString
	Description sql.NullString
}

func (row *aggregateRow) scanFrom(rows *sql.Rows) error {
	return rows.Scan(
		&row.AnimalID,
		&row.AnimalName,
		&row.AdmissionDate,
		&row.OwnerID,
		&row.FirstName,
		&row.LastName,
		&row.Date,
		&row.ProcName,
		&row.Description,
	)
}

// aggregateBuilder reduce las filas del join a un único AnimalAggregate.
// La primera fila materializa animal y dueño; cada fila con fecha no nula
// agrega un procedimiento.
type aggregateBuilder struct {
	agg   animals.AnimalAggregate
	found bool
}

func (b *aggregateBuilder) add(row aggregateRow) error {
	if !b.found {
		admission := animals.MinAdmissionDate
		if row.AdmissionDate.Valid {
			admission = row.AdmissionDate.Time.UTC()
		}
		b.agg = animals.AnimalAggregate{
			ID:            row.AnimalID,
			Name:          row.AnimalName,
			AdmissionDate: admission,
			Owner: animals.Owner{
				ID:        row.OwnerID,
				FirstName: row.FirstName,
				LastName:  row.LastName,
			},
			Procedures: []animals.AdministeredProcedure{},
		}
		b.found = true
	} else if row.AnimalID != b.agg.ID {
		return fmt.Errorf("%w: join mixed animals %d and %d", animals.ErrDataIntegrity, b.agg.ID, row.AnimalID)
	}

	// LEFT JOIN sin procedimientos: todas las columnas de procedure vienen NULL
	if !row.Date.Valid {
		return nil
	}
	b.agg.Procedures = append(b.agg.Procedures, animals.AdministeredProcedure{
		Date:        row.Date.Time.UTC(),
		Name:        row.ProcName.String,
		Description: row.Description.String,
	})
	return nil
}

func (b *aggregateBuilder) result() (animals.AnimalAggregate, bool) {
	return b.agg, b.found
}
