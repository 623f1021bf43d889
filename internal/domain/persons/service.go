package persons

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"person-pet-registry/internal/fault"
)

// Service implementa las reglas de negocio de personas.
// Colaboradores explícitos por constructor, sin registry ambiente.
type Service struct {
	repo   Repository
	mapper Mapper
}

func NewService(repo Repository, mapper Mapper) *Service {
	return &Service{repo: repo, mapper: mapper}
}

// CreatePerson exige unicidad de (firstName, lastName) antes de persistir.
// Check-then-act sin lock: bajo carga concurrente podría colarse un
// duplicado; limitación conocida, la consistencia fina es del storage.
func (s *Service) CreatePerson(ctx context.Context, req PersonRequest) (uuid.UUID, error) {
	exists, err := s.repo.ExistsByName(ctx, req.FirstName, req.LastName)
	if err != nil {
		return uuid.Nil, err
	}
	if exists {
		return uuid.Nil, fault.Conflict("Another person with the same full name is already registered.")
	}

	saved, err := s.repo.Save(ctx, s.mapper.ToPerson(req))
	if err != nil {
		return uuid.Nil, err
	}
	return saved.ID, nil
}

// FindPersonByName busca por el par exacto si vienen ambos nombres,
// o por "first match" sobre el campo presente si viene uno solo.
func (s *Service) FindPersonByName(ctx context.Context, firstName, lastName string) (PersonResponse, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if firstName == "" && lastName == "" {
		return PersonResponse{}, fault.InvalidArgument("firstName and lastName can't both be empty.")
	}

	var (
		p   Person
		err error
	)
	switch {
	case firstName != "" && lastName != "":
		p, err = s.repo.FindByName(ctx, firstName, lastName)
	case firstName != "":
		p, err = s.repo.FindFirstByFirstName(ctx, firstName)
	default:
		p, err = s.repo.FindFirstByLastName(ctx, lastName)
	}

	if errors.Is(err, ErrNotFound) {
		return PersonResponse{}, fault.NotFound("No person found with name: %s", joinName(firstName, lastName))
	}
	if err != nil {
		return PersonResponse{}, err
	}
	return s.mapper.ToResponse(p), nil
}

func (s *Service) GetAllPeople(ctx context.Context) ([]PersonResponse, error) {
	people, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PersonResponse, 0, len(people))
	for _, p := range people {
		out = append(out, s.mapper.ToResponse(p))
	}
	return out, nil
}

func (s *Service) GetPersonByID(ctx context.Context, id uuid.UUID) (PersonResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return PersonResponse{}, fault.NotFound("No person found with ID %s", id)
	}
	if err != nil {
		return PersonResponse{}, err
	}
	return s.mapper.ToResponse(p), nil
}

// UpdatePersonAddress pisa solo los campos de dirección; nombre y
// fecha de nacimiento quedan como estaban. Sin payload de retorno.
func (s *Service) UpdatePersonAddress(ctx context.Context, id uuid.UUID, req UpdateAddressRequest) error {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return fault.NotFound("No person found with ID %s", id)
	}
	if err != nil {
		return err
	}

	if _, err := s.repo.Save(ctx, s.mapper.ApplyAddress(p, req)); err != nil {
		return err
	}
	return nil
}

func joinName(firstName, lastName string) string {
	parts := make([]string, 0, 2)
	if firstName != "" {
		parts = append(parts, firstName)
	}
	if lastName != "" {
		parts = append(parts, lastName)
	}
	return strings.Join(parts, " ")
}
