package memory

import (
	"context"
	"testing"

	"vet-clinic-records/internal/domain/animals"
)

func TestNewSeededAnimalsRepo_AcceptsCreates(t *testing.T) {
	ctx := context.Background()
	r := NewSeededAnimalsRepo()

	for id := int64(1); id <= int64(len(seedOwners)); id++ {
		if ok, _ := r.OwnerExists(ctx, id); !ok {
			t.Fatalf("expected seeded owner %d", id)
		}
	}
	for id := int64(1); id <= int64(len(seedProcedures)); id++ {
		if ok, _ := r.ProcedureExists(ctx, id); !ok {
			t.Fatalf("expected seeded procedure %d", id)
		}
	}
	if ok, _ := r.AnimalExists(ctx, 1); ok {
		t.Fatalf("seed must not create animals")
	}

	id, err := r.CreateAnimalWithProcedures(ctx, animals.NewAnimal{
		Name:          "Rex",
		AdmissionDate: d("2024-01-10"),
		OwnerID:       1,
		Procedures:    []animals.ProcedureWithDate{{ProcedureID: 1, Date: d("2024-01-10")}},
	})
	if err != nil {
		t.Fatalf("create on seeded repo: %v", err)
	}

	a, err := r.GetAnimal(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if a.Owner.LastName != "Kowalska" || len(a.Procedures) != 1 || a.Procedures[0].Name != "Vaccination" {
		t.Fatalf("unexpected aggregate: %+v", a)
	}
}
