package animals

import "context"

type Repository interface {
	AnimalExists(ctx context.Context, id int64) (bool, error)
	OwnerExists(ctx context.Context, id int64) (bool, error)
	ProcedureExists(ctx context.Context, id int64) (bool, error)

	// GetAnimal devuelve ErrNotFound si el id no existe.
	GetAnimal(ctx context.Context, id int64) (AnimalAggregate, error)

	// CreateAnimalWithProcedures inserta el animal y sus procedimientos de forma atómica.
	CreateAnimalWithProcedures(ctx context.Context, in NewAnimal) (int64, error)
}
