package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"vet-clinic-records/internal/domain/animals"
)

var errMissingReference = errors.New("referenced row does not exist")

type link struct {
	seq         int64
	procedureID int64
	animalID    int64
	date        time.Time
}

// AnimalsRepo es la implementación en memoria para dev y tests.
// Respeta las mismas FK que el esquema SQL: un alta con referencias
// inexistentes no deja rastro.
type AnimalsRepo struct {
	mu         sync.RWMutex
	owners     map[int64]animals.Owner
	procedures map[int64]animals.Procedure
	animals    map[int64]animals.Animal
	links      []link

	nextOwner     int64
	nextProcedure int64
	nextAnimal    int64
	nextLink      int64
}

func NewAnimalsRepo() *AnimalsRepo {
	return &AnimalsRepo{
		owners:     make(map[int64]animals.Owner),
		procedures: make(map[int64]animals.Procedure),
		animals:    make(map[int64]animals.Animal),
	}
}

// AddOwner registra un dueño y devuelve su id.
func (r *AnimalsRepo) AddOwner(firstName, lastName string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextOwner++
	id := r.nextOwner
	r.owners[id] = animals.Owner{ID: id, FirstName: firstName, LastName: lastName}
	return id
}

// AddProcedure registra un procedimiento de referencia y devuelve su id.
func (r *AnimalsRepo) AddProcedure(name, description string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextProcedure++
	id := r.nextProcedure
	r.procedures[id] = animals.Procedure{ID: id, Name: name, Description: description}
	return id
}

// DeleteOwner falla si el dueño todavía tiene animales (FK sin cascade).
func (r *AnimalsRepo) DeleteOwner(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range r.animals {
		if a.OwnerID == id {
			return &animals.PersistenceError{Op: "delete owner", ForeignKeyViolation: true, Err: errMissingReference}
		}
	}
	delete(r.owners, id)
	return nil
}

// DeleteProcedure falla si el procedimiento fue aplicado a algún animal.
func (r *AnimalsRepo) DeleteProcedure(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, l := range r.links {
		if l.procedureID == id {
			return &animals.PersistenceError{Op: "delete procedure", ForeignKeyViolation: true, Err: errMissingReference}
		}
	}
	delete(r.procedures, id)
	return nil
}

// DeleteAnimal borra el animal y sus procedimientos aplicados.
func (r *AnimalsRepo) DeleteAnimal(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.animals, id)
	kept := r.links[:0]
	for _, l := range r.links {
		if l.animalID != id {
			kept = append(kept, l)
		}
	}
	r.links = kept
}

func (r *AnimalsRepo) AnimalExists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.animals[id]
	return ok, nil
}

func (r *AnimalsRepo) OwnerExists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.owners[id]
	return ok, nil
}

func (r *AnimalsRepo) ProcedureExists(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.procedures[id]
	return ok, nil
}

func (r *AnimalsRepo) GetAnimal(ctx context.Context, id int64) (animals.AnimalAggregate, error) {
	if err := ctx.Err(); err != nil {
		return animals.AnimalAggregate{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.animals[id]
	if !ok {
		return animals.AnimalAggregate{}, animals.ErrNotFound
	}
	owner, ok := r.owners[a.OwnerID]
	if !ok {
		return animals.AnimalAggregate{}, animals.ErrDataIntegrity
	}

	out := animals.AnimalAggregate{
		ID:            a.ID,
		Name:          a.Name,
		AdmissionDate: a.AdmissionDate,
		Owner:         owner,
		Procedures:    make([]animals.AdministeredProcedure, 0),
	}

	// los links se guardan en orden de inserción; se ordena por seq igual
	// para no depender de cómo DeleteAnimal compacta el slice
	links := make([]link, 0)
	for _, l := range r.links {
		if l.animalID == id {
			links = append(links, l)
		}
	}
	sort.Slice(links, func(i, j int) bool { return links[i].seq < links[j].seq })

	for _, l := range links {
		p := r.procedures[l.procedureID]
		out.Procedures = append(out.Procedures, animals.AdministeredProcedure{
			Date:        l.date,
			Name:        p.Name,
			Description: p.Description,
		})
	}
	return out, nil
}

func (r *AnimalsRepo) CreateAnimalWithProcedures(ctx context.Context, in animals.NewAnimal) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(in.Name) == "" {
		return 0, animals.ErrInvalidInput
	}
	classID := in.AnimalClassID
	if classID <= 0 {
		classID = animals.DefaultAnimalClassID
	}

	// se valida todo antes de mutar: el alta es todo o nada
	if _, ok := r.owners[in.OwnerID]; !ok {
		return 0, &animals.PersistenceError{Op: "insert animal", ForeignKeyViolation: true, Err: errMissingReference}
	}
	for _, p := range in.Procedures {
		if _, ok := r.procedures[p.ProcedureID]; !ok {
			return 0, &animals.PersistenceError{Op: "insert procedure_animal", ForeignKeyViolation: true, Err: errMissingReference}
		}
	}

	r.nextAnimal++
	id := r.nextAnimal
	r.animals[id] = animals.Animal{
		ID:            id,
		Name:          in.Name,
		AdmissionDate: in.AdmissionDate,
		OwnerID:       in.OwnerID,
		AnimalClassID: classID,
	}
	for _, p := range in.Procedures {
		r.nextLink++
		r.links = append(r.links, link{
			seq:         r.nextLink,
			procedureID: p.ProcedureID,
			animalID:    id,
			date:        p.Date,
		})
	}
	return id, nil
}
