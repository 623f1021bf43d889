package persons

import (
	"time"

	"github.com/google/uuid"
)

// Person es el registro de dominio de una persona.
// El ID lo asigna el storage en el primer Save; después es inmutable.
// Tras la creación solo los campos de dirección son mutables.
type Person struct {
	ID uuid.UUID

	FirstName   string
	LastName    string
	DateOfBirth time.Time // solo fecha, sin componente horaria

	Street               string
	HouseNumber          int
	HouseNumberAdditions *string
	PostalCode           string
	City                 string
	Country              string
}
