package persons

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

// BaseURL del módulo de personas.
const BaseURL = "/v1/person"

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger, m *metrics.Metrics) {
	log = log.With(map[string]any{"module": "persons"})

	r.Route(BaseURL, func(pr chi.Router) {
		pr.Post("/", createPersonHandler(svc, log, m))
		pr.Get("/", getAllPeopleHandler(svc, log))

		// "/search" antes que "/{id}"; chi prioriza rutas estáticas igual,
		// pero el orden explícito deja la intención clara.
		pr.Get("/search", searchPersonHandler(svc, log))

		pr.Get("/{id}", getPersonHandler(svc, log))
		pr.Put("/{id}", updatePersonAddressHandler(svc, log))
	})
}

// createPersonHandler crea una persona nueva.
//
//	@Summary  Create a new person
//	@Accept   json
//	@Success  201
//	@Failure  400  {object}  httperr.Body
//	@Failure  409  {object}  httperr.Body
//	@Router   /v1/person [post]
func createPersonHandler(svc *Service, log logger.Logger, m *metrics.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PersonRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, r, http.StatusBadRequest, []string{"invalid json"}, err.Error())
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			httperr.Write(w, r, http.StatusBadRequest, fault.Messages(errs), "request validation failed")
			return
		}

		log.Debug("creating new person", map[string]any{
			"firstName": req.FirstName,
			"lastName":  req.LastName,
		})

		id, err := svc.CreatePerson(r.Context(), req)
		if err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

		m.PersonsCreated.Inc()
		w.Header().Set("Location", fmt.Sprintf("%s/%s", BaseURL, id))
		w.WriteHeader(http.StatusCreated)
	}
}

// getAllPeopleHandler lista todas las personas.
//
//	@Summary  Retrieve all people
//	@Produce  json
//	@Success  200  {array}  PersonResponse
//	@Router   /v1/person [get]
func getAllPeopleHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("retrieving all people", nil)

		people, err := svc.GetAllPeople(r.Context())
		if err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, people)
	}
}

// searchPersonHandler busca por firstName y/o lastName.
//
//	@Summary  Find a person by first or last name
//	@Produce  json
//	@Param    firstName  query  string  false  "First name of the person"
//	@Param    lastName   query  string  false  "Last name of the person"
//	@Success  200  {object}  PersonResponse
//	@Failure  400  {object}  httperr.Body
//	@Failure  404  {object}  httperr.Body
//	@Router   /v1/person/search [get]
func searchPersonHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		firstName := r.URL.Query().Get("firstName")
		lastName := r.URL.Query().Get("lastName")

		if firstName == "" && lastName == "" {
			httperr.Write(w, r, http.StatusBadRequest,
				[]string{"At least one of firstName or lastName is mandatory."},
				"missing both search parameters")
			return
		}

		log.Debug("retrieving person by name", map[string]any{
			"firstName": firstName,
			"lastName":  lastName,
		})

		resp, err := svc.FindPersonByName(r.Context(), firstName, lastName)
		if err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// getPersonHandler devuelve una persona por id.
//
//	@Summary  Get person by id
//	@Produce  json
//	@Param    id  path  string  true  "Person id"
//	@Success  200  {object}  PersonResponse
//	@Failure  404  {object}  httperr.Body
//	@Router   /v1/person/{id} [get]
func getPersonHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		log.Debug("retrieving person", map[string]any{"id": id.String()})

		resp, err := svc.GetPersonByID(r.Context(), id)
		if err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// updatePersonAddressHandler actualiza solo la dirección.
// Esta ruta es la única con requisito de rol (ADMIN), que se
// resuelve en el access gate antes de llegar acá.
//
//	@Summary  Update address details for a person
//	@Accept   json
//	@Param    id  path  string  true  "Person id"
//	@Success  200
//	@Failure  400  {object}  httperr.Body
//	@Failure  404  {object}  httperr.Body
//	@Router   /v1/person/{id} [put]
func updatePersonAddressHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req UpdateAddressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httperr.Write(w, r, http.StatusBadRequest, []string{"invalid json"}, err.Error())
			return
		}

		if errs := req.Validate(); len(errs) > 0 {
			httperr.Write(w, r, http.StatusBadRequest, fault.Messages(errs), "request validation failed")
			return
		}

		log.Debug("updating person address", map[string]any{"id": id.String()})

		if err := svc.UpdatePersonAddress(r.Context(), id, req); err != nil {
			httperr.WriteFault(w, r, err)
			return
		}

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
