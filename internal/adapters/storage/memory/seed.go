package memory

// Datos de referencia con los que arranca el modo in-memory, para que el
// servicio por defecto acepte altas sin una base configurada.
var (
	seedOwners = []struct{ first, last string }{
		{"Anna", "Kowalska"},
		{"Jan", "Nowak"},
	}
	seedProcedures = []struct{ name, description string }{
		{"Vaccination", "Rabies vaccine"},
		{"Deworming", "Oral antiparasitic"},
		{"Sterilization", "Surgical sterilization"},
	}
)

// NewSeededAnimalsRepo devuelve un repo con dueños (ids 1..2) y
// procedimientos (ids 1..3) ya cargados.
func NewSeededAnimalsRepo() *AnimalsRepo {
	r := NewAnimalsRepo()
	for _, o := range seedOwners {
		r.AddOwner(o.first, o.last)
	}
	for _, p := range seedProcedures {
		r.AddProcedure(p.name, p.description)
	}
	return r
}
