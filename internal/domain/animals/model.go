package animals

import "time"

// DefaultAnimalClassID es la clase asignada cuando el alta no indica una.
const DefaultAnimalClassID int64 = 1

// MinAdmissionDate es el valor que toma AdmissionDate cuando la columna viene NULL.
// Es el time.Time cero (0001-01-01T00:00:00Z), el menor instante representable.
var MinAdmissionDate = time.Time{}

// Owner es el dueño de un animal. Este módulo no lo modifica.
type Owner struct {
	ID        int64
	FirstName string
	LastName  string
}

// Animal es la fila persistida en la tabla animal.
type Animal struct {
	ID            int64
	Name          string
	AdmissionDate time.Time
	OwnerID       int64
	AnimalClassID int64
}

// Procedure es dato de referencia (vacunación, desparasitación, etc.).
type Procedure struct {
	ID          int64
	Name        string
	Description string
}

// ProcedureAdministration vincula un procedimiento con un animal en una fecha.
type ProcedureAdministration struct {
	ProcedureID int64
	AnimalID    int64
	Date        time.Time
}

// AdministeredProcedure es un procedimiento ya aplicado, tal como se lee en el agregado.
type AdministeredProcedure struct {
	Date        time.Time
	Name        string
	Description string
}

// AnimalAggregate es la proyección de lectura: animal + dueño + procedimientos.
// Procedures nunca es nil; sin procedimientos es un slice vacío.
type AnimalAggregate struct {
	ID            int64
	Name          string
	AdmissionDate time.Time
	Owner         Owner
	Procedures    []AdministeredProcedure
}

// ProcedureWithDate es un procedimiento a registrar junto con el alta del animal.
type ProcedureWithDate struct {
	ProcedureID int64
	Date        time.Time
}

// NewAnimal es la entrada del alta transaccional.
type NewAnimal struct {
	Name          string
	AdmissionDate time.Time
	OwnerID       int64
	AnimalClassID int64
	Procedures    []ProcedureWithDate
}
