package pets

import (
	"strings"

	"github.com/google/uuid"

	"person-pet-registry/internal/fault"
)

const (
	msgRequired    = "must not be blank"
	msgNotNull     = "must not be null"
	msgNonNegative = "must be zero or positive"
)

// PetRequest se usa tanto para crear como para actualizar (el update
// es reemplazo total de name/age/personId).
type PetRequest struct {
	Name     string     `json:"name"`
	Age      *int       `json:"age"`
	PersonID *uuid.UUID `json:"personId"`
}

func (r PetRequest) Validate() []fault.FieldError {
	var errs []fault.FieldError

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, fault.FieldError{Field: "name", Value: r.Name, Message: msgRequired})
	}

	if r.Age == nil {
		errs = append(errs, fault.FieldError{Field: "age", Value: nil, Message: msgNotNull})
	} else if *r.Age < 0 {
		errs = append(errs, fault.FieldError{Field: "age", Value: *r.Age, Message: msgNonNegative})
	}

	return errs
}

// PetResponse es el shape de lectura.
type PetResponse struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Age      int        `json:"age"`
	PersonID *uuid.UUID `json:"personId"`
}
