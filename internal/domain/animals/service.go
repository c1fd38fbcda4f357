package animals

import (
	"context"
	"strings"

	"vet-clinic-records/internal/platform/logger"
)

type Service struct {
	repo Repository
	log  logger.Logger
}

func NewService(repo Repository, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo: repo,
		log:  log.With(map[string]any{"component": "animals"}),
	}
}

// Get devuelve el agregado del animal. ErrNotFound si no existe.
func (s *Service) Get(ctx context.Context, id int64) (AnimalAggregate, error) {
	if id <= 0 {
		return AnimalAggregate{}, ErrNotFound
	}
	return s.repo.GetAnimal(ctx, id)
}

// Create valida las referencias (owner y cada procedure, en ese orden) y luego
// delega el alta atómica al repositorio.
//
// La validación es previa a la transacción: si el owner o un procedure se
// borran entre medio, la FK del storage rechaza el insert y vuelve un
// *PersistenceError.
func (s *Service) Create(ctx context.Context, in NewAnimal) (int64, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.AdmissionDate.IsZero() {
		return 0, ErrInvalidInput
	}
	if in.AnimalClassID <= 0 {
		in.AnimalClassID = DefaultAnimalClassID
	}
	if in.Procedures == nil {
		in.Procedures = []ProcedureWithDate{}
	}
	for _, p := range in.Procedures {
		if p.Date.IsZero() {
			return 0, ErrInvalidInput
		}
	}

	ok, err := s.repo.OwnerExists(ctx, in.OwnerID)
	if err != nil {
		return 0, err
	}
	if !ok {
		s.log.Info("create rejected", map[string]any{"owner_id": in.OwnerID, "reason": "owner not found"})
		return 0, &ValidationError{Field: "owner_id", ID: in.OwnerID}
	}

	for _, p := range in.Procedures {
		ok, err := s.repo.ProcedureExists(ctx, p.ProcedureID)
		if err != nil {
			return 0, err
		}
		if !ok {
			s.log.Info("create rejected", map[string]any{"procedure_id": p.ProcedureID, "reason": "procedure not found"})
			return 0, &ValidationError{Field: "procedure_id", ID: p.ProcedureID}
		}
	}

	id, err := s.repo.CreateAnimalWithProcedures(ctx, in)
	if err != nil {
		return 0, err
	}

	s.log.Info("animal created", map[string]any{"animal_id": id, "procedures": len(in.Procedures)})
	return id, nil
}
