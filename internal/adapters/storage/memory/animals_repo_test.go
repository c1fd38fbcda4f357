package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"vet-clinic-records/internal/domain/animals"
)

var _ animals.Repository = (*AnimalsRepo)(nil)

func d(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// -------------------------
// Lectura / escritura
// -------------------------

func TestAnimalsRepo_CreateThenGet(t *testing.T) {
	ctx := context.Background()
	r := NewAnimalsRepo()
	ownerID := r.AddOwner("Anna", "Kowalska")
	vacc := r.AddProcedure("Vaccination", "Rabies")
	dew := r.AddProcedure("Deworming", "Oral")

	id, err := r.CreateAnimalWithProcedures(ctx, animals.NewAnimal{
		Name:          "Rex",
		AdmissionDate: d("2024-01-10"),
		OwnerID:       ownerID,
		Procedures: []animals.ProcedureWithDate{
			{ProcedureID: dew, Date: d("2024-01-12")},
			{ProcedureID: vacc, Date: d("2024-01-10")},
			{ProcedureID: vacc, Date: d("2025-01-10")},
		},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := r.AnimalExists(ctx, id)
	if err != nil || !ok {
		t.Fatalf("expected animal %d to exist, ok=%v err=%v", id, ok, err)
	}

	a, err := r.GetAnimal(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Name != "Rex" || a.Owner.FirstName != "Anna" || a.Owner.LastName != "Kowalska" {
		t.Fatalf("unexpected aggregate: %+v", a)
	}
	if len(a.Procedures) != 3 {
		t.Fatalf("expected 3 procedures, got %d", len(a.Procedures))
	}
	// orden de inserción, duplicados incluidos
	want := []string{"Deworming", "Vaccination", "Vaccination"}
	for i, p := range a.Procedures {
		if p.Name != want[i] {
			t.Fatalf("procedure %d: expected %s, got %s", i, want[i], p.Name)
		}
	}
	if !a.Procedures[2].Date.Equal(d("2025-01-10")) {
		t.Fatalf("unexpected date for duplicate: %v", a.Procedures[2].Date)
	}
}

func TestAnimalsRepo_NoProcedures_EmptySlice(t *testing.T) {
	ctx := context.Background()
	r := NewAnimalsRepo()
	ownerID := r.AddOwner("Jan", "Nowak")

	id, err := r.CreateAnimalWithProcedures(ctx, animals.NewAnimal{
		Name:          "Mruczek",
		AdmissionDate: d("2024-02-01"),
		OwnerID:       ownerID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a, err := r.GetAnimal(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Procedures == nil || len(a.Procedures) != 0 {
		t.Fatalf("expected empty non-nil procedures, got %#v", a.Procedures)
	}
}

func TestAnimalsRepo_GetAnimal_NotFound(t *testing.T) {
	r := NewAnimalsRepo()
	_, err := r.GetAnimal(context.Background(), 999)
	if !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

// -------------------------
// Atomicidad / FK
// -------------------------

func TestAnimalsRepo_Create_UnknownProcedure_LeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	r := NewAnimalsRepo()
	ownerID := r.AddOwner("Anna", "Kowalska")
	vacc := r.AddProcedure("Vaccination", "Rabies")

	_, err := r.CreateAnimalWithProcedures(ctx, animals.NewAnimal{
		Name:          "Rex",
		AdmissionDate: d("2024-01-10"),
		OwnerID:       ownerID,
		Procedures: []animals.ProcedureWithDate{
			{ProcedureID: vacc, Date: d("2024-01-10")},
			{ProcedureID: 77, Date: d("2024-01-10")},
		},
	})
	var perr *animals.PersistenceError
	if !errors.As(err, &perr) || !perr.ForeignKeyViolation {
		t.Fatalf("expected FK PersistenceError, got %v", err)
	}

	if len(r.animals) != 0 || len(r.links) != 0 {
		t.Fatalf("expected nothing persisted, animals=%d links=%d", len(r.animals), len(r.links))
	}
	if ok, _ := r.AnimalExists(ctx, 1); ok {
		t.Fatalf("animal 1 must not exist after failed create")
	}
}

func TestAnimalsRepo_Create_UnknownOwner(t *testing.T) {
	r := NewAnimalsRepo()
	_, err := r.CreateAnimalWithProcedures(context.Background(), animals.NewAnimal{
		Name:          "Rex",
		AdmissionDate: d("2024-01-10"),
		OwnerID:       5,
	})
	if !errors.Is(err, animals.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestAnimalsRepo_DefaultClass(t *testing.T) {
	r := NewAnimalsRepo()
	ownerID := r.AddOwner("Anna", "Kowalska")
	id, err := r.CreateAnimalWithProcedures(context.Background(), animals.NewAnimal{
		Name:          "Rex",
		AdmissionDate: d("2024-01-10"),
		OwnerID:       ownerID,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got := r.animals[id].AnimalClassID; got != animals.DefaultAnimalClassID {
		t.Fatalf("expected class %d, got %d", animals.DefaultAnimalClassID, got)
	}
}

func TestAnimalsRepo_Deletes_RespectReferences(t *testing.T) {
	ctx := context.Background()
	r := NewAnimalsRepo()
	ownerID := r.AddOwner("Anna", "Kowalska")
	vacc := r.AddProcedure("Vaccination", "Rabies")
	unused := r.AddProcedure("Grooming", "Bath")

	id, err := r.CreateAnimalWithProcedures(ctx, animals.NewAnimal{
		Name:          "Rex",
		AdmissionDate: d("2024-01-10"),
		OwnerID:       ownerID,
		Procedures:    []animals.ProcedureWithDate{{ProcedureID: vacc, Date: d("2024-01-10")}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := r.DeleteOwner(ownerID); !errors.Is(err, animals.ErrPersistence) {
		t.Fatalf("expected owner delete to fail, got %v", err)
	}
	if err := r.DeleteProcedure(vacc); !errors.Is(err, animals.ErrPersistence) {
		t.Fatalf("expected procedure delete to fail, got %v", err)
	}
	if err := r.DeleteProcedure(unused); err != nil {
		t.Fatalf("delete unused procedure: %v", err)
	}
	if ok, _ := r.ProcedureExists(ctx, unused); ok {
		t.Fatalf("procedure %d should be gone", unused)
	}

	r.DeleteAnimal(id)
	if ok, _ := r.AnimalExists(ctx, id); ok {
		t.Fatalf("animal should be gone")
	}
	if err := r.DeleteOwner(ownerID); err != nil {
		t.Fatalf("delete owner after animal: %v", err)
	}
	if ok, _ := r.OwnerExists(ctx, ownerID); ok {
		t.Fatalf("owner should be gone")
	}
}

func TestAnimalsRepo_CancelledContext(t *testing.T) {
	r := NewAnimalsRepo()
	ownerID := r.AddOwner("Anna", "Kowalska")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.CreateAnimalWithProcedures(ctx, animals.NewAnimal{
		Name: "Rex", AdmissionDate: d("2024-01-10"), OwnerID: ownerID,
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(r.animals) != 0 {
		t.Fatalf("nothing should be persisted")
	}
}

func TestAnimalsRepo_ConcurrentCreates_UniqueIDs(t *testing.T) {
	ctx := context.Background()
	r := NewAnimalsRepo()
	ownerID := r.AddOwner("Anna", "Kowalska")

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := r.CreateAnimalWithProcedures(ctx, animals.NewAnimal{
				Name: "Rex", AdmissionDate: d("2024-01-10"), OwnerID: ownerID,
			})
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate id %d", id)
		}
		seen[id] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d ids, got %d", n, len(seen))
	}
}
