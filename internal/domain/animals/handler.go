package animals

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vet-clinic-records/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Route("/api/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(svc, log))
		ar.Get("/{animalID}", getAnimalHandler(svc, log))
	})
}

// procedureWithDateRequest es un procedimiento aplicado en el alta.
type procedureWithDateRequest struct {
	ProcedureID int64  `json:"procedure_id"`
	Date        string `json:"date"` // YYYY-MM-DD
}

// createAnimalRequest es el cuerpo del alta de un animal con sus procedimientos.
type createAnimalRequest struct {
	Name          string                     `json:"name"`
	AdmissionDate string                     `json:"admission_date"` // YYYY-MM-DD
	OwnerID       int64                      `json:"owner_id"`
	AnimalClassID int64                      `json:"animal_class_id"` // opcional, default 1
	Procedures    []procedureWithDateRequest `json:"procedures"`
}

type createAnimalResponse struct {
	ID            int64                      `json:"id"`
	Name          string                     `json:"name"`
	AdmissionDate string                     `json:"admission_date"`
	OwnerID       int64                      `json:"owner_id"`
	AnimalClassID int64                      `json:"animal_class_id"`
	Procedures    []procedureWithDateRequest `json:"procedures"`
}

type ownerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type procedureResponse struct {
	Date        string `json:"date"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// animalResponse es el agregado devuelto por GET /api/animals/{id}.
type animalResponse struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	AdmissionDate string              `json:"admission_date"`
	Owner         ownerResponse       `json:"owner"`
	Procedures    []procedureResponse `json:"procedures"`
}

// getAnimalHandler godoc
// @Summary Obtener animal
// @Description Devuelve el animal con su dueño y la lista de procedimientos aplicados (vacía si no tiene).
// @Tags animals
// @Produce json
// @Param animalID path int true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid animal id"
// @Failure 404 {string} string "animal not found"
// @Failure 500 {string} string "internal error"
// @Router /api/animals/{animalID} [get]
func getAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "animalID"), 10, 64)
		if err != nil {
			http.Error(w, "invalid animal id", http.StatusBadRequest)
			return
		}

		a, err := svc.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "animal not found", http.StatusNotFound)
				return
			}
			log.Error("get animal failed", map[string]any{"animal_id": id, "error": err.Error()})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// createAnimalHandler godoc
// @Summary Registrar animal con procedimientos
// @Description Valida que existan el dueño y cada procedimiento, y persiste el animal junto con sus procedimientos en una única transacción.
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal; fechas en formato YYYY-MM-DD"
// @Success 201 {object} createAnimalResponse
// @Failure 400 {string} string "invalid json / fecha inválida / nombre vacío"
// @Failure 404 {string} string "owner not found / procedure not found"
// @Failure 409 {string} string "referenced row removed concurrently"
// @Failure 500 {string} string "internal error"
// @Router /api/animals [post]
func createAnimalHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in, err := req.toNewAnimal()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		id, err := svc.Create(r.Context(), in)
		if err != nil {
			var verr *ValidationError
			var perr *PersistenceError
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, "name, admission_date and procedures[].date are required", http.StatusBadRequest)
			case errors.As(err, &verr):
				http.Error(w, strings.TrimSuffix(verr.Field, "_id")+" not found", http.StatusNotFound)
			case errors.As(err, &perr) && perr.ForeignKeyViolation:
				http.Error(w, "referenced owner or procedure no longer exists", http.StatusConflict)
			default:
				log.Error("create animal failed", map[string]any{"error": err.Error()})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		if req.AnimalClassID <= 0 {
			req.AnimalClassID = DefaultAnimalClassID
		}
		if req.Procedures == nil {
			req.Procedures = []procedureWithDateRequest{}
		}

		w.Header().Set("Location", fmt.Sprintf("/api/animals/%d", id))
		writeJSON(w, http.StatusCreated, createAnimalResponse{
			ID:            id,
			Name:          strings.TrimSpace(req.Name),
			AdmissionDate: req.AdmissionDate,
			OwnerID:       req.OwnerID,
			AnimalClassID: req.AnimalClassID,
			Procedures:    req.Procedures,
		})
	}
}

func (req createAnimalRequest) toNewAnimal() (NewAnimal, error) {
	admission, err := time.Parse(dateLayout, strings.TrimSpace(req.AdmissionDate))
	if err != nil {
		return NewAnimal{}, errors.New("admission_date must be YYYY-MM-DD")
	}

	procs := make([]ProcedureWithDate, 0, len(req.Procedures))
	for _, p := range req.Procedures {
		d, err := time.Parse(dateLayout, strings.TrimSpace(p.Date))
		if err != nil {
			return NewAnimal{}, errors.New("procedures[].date must be YYYY-MM-DD")
		}
		procs = append(procs, ProcedureWithDate{ProcedureID: p.ProcedureID, Date: d})
	}

	return NewAnimal{
		Name:          req.Name,
		AdmissionDate: admission,
		OwnerID:       req.OwnerID,
		AnimalClassID: req.AnimalClassID,
		Procedures:    procs,
	}, nil
}

func toAnimalResponse(a AnimalAggregate) animalResponse {
	procs := make([]procedureResponse, 0, len(a.Procedures))
	for _, p := range a.Procedures {
		procs = append(procs, procedureResponse{
			Date:        p.Date.Format(dateLayout),
			Name:        p.Name,
			Description: p.Description,
		})
	}
	return animalResponse{
		ID:            a.ID,
		Name:          a.Name,
		AdmissionDate: a.AdmissionDate.Format(dateLayout),
		Owner: ownerResponse{
			ID:        a.Owner.ID,
			FirstName: a.Owner.FirstName,
			LastName:  a.Owner.LastName,
		},
		Procedures: procs,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
