package pets

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"person-pet-registry/internal/fault"
	"person-pet-registry/internal/platform/httperr"
	"person-pet-registry/internal/platform/logger"
	"person-pet-registry/internal/platform/metrics"
)

// BaseURL del módulo de mascotas.
const BaseURL = "/v1/pet"

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, m *metrics.Metrics) {
	log = log.With(map[string]any{"module": "pets"})

	r.Route(BaseURL, func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc, log, m))
		pr.Get("/", listPetsHandler(svc, log))
		pr.Get("/{id}", getPetHandler(svc, log))
		pr.Put("/{id}", updatePetHandler(svc, log))
		pr.Delete("/{id}", deletePetHandler(svc, log, m))
	})
}

// createPetHandler crea una mascota, con o sin dueño.
//
//	@Summary  Create a new pet
//	@Accept   json
//	@Success  201
//	@Failure  400  {object}  httperr.Body
//	@Router   /v1/pet [post]
func createPetHandler(svc *Service, log logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, r, http.StatusBadRequest, []string{"invalid json"}, err.Error())
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			httperr.Write(w, r, http.StatusBadRequest, fault.Messages(errs), "request validation failed")
			return
		}

		log.Debug("creating new pet", map[string]any{"name": req.Name})

		id, err := svc.CreatePet(r.Context(), req)
		if err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

		m.PetsCreated.Inc()
		w.Header().Set("Location", fmt.Sprintf("%s/%s", BaseURL, id))
		w.WriteHeader(http.StatusCreated)
	}
}

// listPetsHandler lista todas las mascotas; con ?personId= filtra por
// dueño (sin chequear que el dueño exista: desconocido = lista vacía).
//
//	@Summary  Get all pets (filterable by personId)
//	@Produce  json
//	@Param    personId  query  string  false  "Owner person id"
//	@Success  200  {array}  PetResponse
//	@Router   /v1/pet [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("personId")
		if raw == "" {
			log.Debug("retrieving all pets", nil)

			all, err := svc.GetAllPets(r.Context())
			if err != nil {
				httperr.WriteFault(w, r, err)
				return
			}
			writeJSON(w, http.StatusOK, all)
			return
		}

		personID, err := uuid.Parse(raw)
		if err != nil {
			httperr.Write(w, r, http.StatusBadRequest,
				[]string{fmt.Sprintf("personId value '%s' must be a valid UUID", raw)},
				err.Error())
			return
		}

		log.Debug("retrieving pets by person", map[string]any{"personId": personID.String()})

		matches, err := svc.GetPetsByPersonID(r.Context(), personID)
		if err != nil {
			httperr.WriteFault(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

// getPetHandler devuelve una mascota por id.
//
//	@Summary  Get pet by id
//	@Produce  json
//	@Param    id  path  string  true  "Pet id"
//	@Success  200  {object}  PetResponse
//	@Failure  404  {object}  httperr.Body
//	@Router   /v1/pet/{id} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		log.Debug("retrieving pet", map[string]any{"id": id.String()})

		resp, err := svc.GetPetByID(r.Context(), id)
		if err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// updatePetHandler reemplaza name/age/personId completos.
//
//	@Summary  Update pet
//	@Accept   json
//	@Param    id  path  string  true  "Pet id"
//	@Success  200
//	@Failure  400  {object}  httperr.Body
//	@Failure  404  {object}  httperr.Body
//	@Router   /v1/pet/{id} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req PetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, r, http.StatusBadRequest, []string{"invalid json"}, err.Error())
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			httperr.Write(w, r, http.StatusBadRequest, fault.Messages(errs), "request validation failed")
			return
		}

		log.Debug("updating pet", map[string]any{"id": id.String()})

		if err := svc.UpdatePet(r.Context(), id, req); err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

// deletePetHandler borra una mascota existente.
//
//	@Summary  Delete pet
//	@Param    id  path  string  true  "Pet id"
//	@Success  200
//	@Failure  404  {object}  httperr.Body
//	@Router   /v1/pet/{id} [delete]
func deletePetHandler(svc *Service, log logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		log.Debug("deleting pet", map[string]any{"id": id.String()})

		if err := svc.DeletePetByID(r.Context(), id); err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

		m.PetsDeleted.Inc()
		w.WriteHeader(http.StatusOK)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		httperr.Write(w, r, http.StatusBadRequest,
			[]string{fmt.Sprintf("id value '%s' must be a valid UUID", raw)},
			err.Error())
		return uuid.Nil, false
	}
	return id, true
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (persons/pets) para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
