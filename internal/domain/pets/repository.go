package pets

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound lo devuelven los adapters cuando no hay match.
var ErrNotFound = errors.New("pet not found")

// Repository es el boundary de persistencia de mascotas.
// Save inserta o actualiza; sin ID, el adapter asigna uno.
type Repository interface {
	Save(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id uuid.UUID) (Pet, error)
	GetAll(ctx context.Context) ([]Pet, error)
	ListByPersonID(ctx context.Context, personID uuid.UUID) ([]Pet, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PersonDirectory es lo único que este módulo necesita saber de
// personas (evita acoplar pets al paquete persons completo).
type PersonDirectory interface {
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}
