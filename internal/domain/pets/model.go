package pets

import "github.com/google/uuid"

// Pet es el registro de dominio de una mascota.
// PersonID es una referencia débil al dueño: se valida que exista al
// crear, pero no se re-valida en updates ni se limpia después.
type Pet struct {
	ID uuid.UUID

	Name string
	Age  int

	PersonID *uuid.UUID
}
