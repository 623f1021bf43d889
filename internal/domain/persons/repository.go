package persons

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound lo devuelven los adapters cuando no hay match.
var ErrNotFound = errors.New("person not found")

// Repository es el boundary de persistencia de personas.
// Save inserta o actualiza; si el record viene sin ID, el adapter
// genera uno (el service nunca se auto-asigna identidad).
type Repository interface {
	Save(ctx context.Context, p Person) (Person, error)
	GetByID(ctx context.Context, id uuid.UUID) (Person, error)
	GetAll(ctx context.Context) ([]Person, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)

	ExistsByName(ctx context.Context, firstName, lastName string) (bool, error)
	FindByName(ctx context.Context, firstName, lastName string) (Person, error)

	// Semántica "first match": si hay varias personas con el mismo
	// firstName (o lastName), se devuelve una cualquiera estable.
	FindFirstByFirstName(ctx context.Context, firstName string) (Person, error)
	FindFirstByLastName(ctx context.Context, lastName string) (Person, error)
}
