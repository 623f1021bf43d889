package pets

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"person-pet-registry/internal/fault"
)

// Service implementa las reglas de negocio de mascotas.
type Service struct {
	repo    Repository
	persons PersonDirectory
	mapper  Mapper
}

func NewService(repo Repository, persons PersonDirectory, mapper Mapper) *Service {
	return &Service{repo: repo, persons: persons, mapper: mapper}
}

// CreatePet valida la referencia al dueño SOLO si viene personId;
// sin dueño se persiste incondicionalmente.
func (s *Service) CreatePet(ctx context.Context, req PetRequest) (uuid.UUID, error) {
	if req.PersonID != nil {
		exists, err := s.persons.ExistsByID(ctx, *req.PersonID)
		if err != nil {
			return uuid.Nil, err
		}
		if !exists {
			return uuid.Nil, fault.InvalidReference(
				"No person with ID %s is registered. Try registering your pet to an actual person.",
				*req.PersonID)
		}
	}

	saved, err := s.repo.Save(ctx, s.mapper.ToPet(req))
	if err != nil {
		return uuid.Nil, err
	}
	return saved.ID, nil
}

// DeletePetByID chequea existencia y borra. Entre el check y el delete
// hay una ventana sin lock; un delete concurrente gana y listo.
func (s *Service) DeletePetByID(ctx context.Context, id uuid.UUID) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return fault.NotFound("No pet found with ID %s", id)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetAllPets(ctx context.Context) ([]PetResponse, error) {
	all, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PetResponse, 0, len(all))
	for _, p := range all {
		out = append(out, s.mapper.ToResponse(p))
	}
	return out, nil
}

func (s *Service) GetPetByID(ctx context.Context, id uuid.UUID) (PetResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return PetResponse{}, fault.NotFound("No pet found with ID %s", id)
	}
	if err != nil {
		return PetResponse{}, err
	}
	return s.mapper.ToResponse(p), nil
}

// GetPetsByPersonID no chequea que el dueño exista: un personId
// desconocido da lista vacía, no error. Asimetría deliberada respecto
// de CreatePet.
func (s *Service) GetPetsByPersonID(ctx context.Context, personID uuid.UUID) ([]PetResponse, error) {
	matches, err := s.repo.ListByPersonID(ctx, personID)
	if err != nil {
		return nil, err
	}

	out := make([]PetResponse, 0, len(matches))
	for _, p := range matches {
		out = append(out, s.mapper.ToResponse(p))
	}
	return out, nil
}

// UpdatePet reemplaza name/age/personId completos. El personId nuevo
// NO se re-valida contra personas (solo create valida la referencia).
func (s *Service) UpdatePet(ctx context.Context, id uuid.UUID, req PetRequest) error {
	p, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return fault.NotFound("No pet found with ID %s", id)
	}
	if err != nil {
		return err
	}

	if _, err := s.repo.Save(ctx, s.mapper.Merge(p, req)); err != nil {
		return err
	}
	return nil
}
