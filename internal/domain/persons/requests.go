package persons

import (
	"regexp"
	"strings"
	"time"

	"person-pet-registry/internal/fault"
)

// Formato de fecha en el wire (solo fecha, estilo LocalDate).
const dateLayout = "2006-01-02"

// Código postal NL: cuatro dígitos + dos letras, espacio opcional.
// Se aplica igual en create y en update de dirección.
var postalCodeRe = regexp.MustCompile(`(?i)^\d{4}\s?[A-Z]{2}$`)

const (
	msgRequired   = "must not be blank"
	msgPostalCode = `must match "(?i)^\d{4}\s?[A-Z]{2}$"`
	msgDate       = "must be a date in format 2006-01-02"
	msgPositive   = "must be positive"
)

// PersonRequest es el shape de creación de persona.
type PersonRequest struct {
	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	DateOfBirth          string  `json:"dateOfBirth"` // 2006-01-02
	Street               string  `json:"street"`
	HouseNumber          int     `json:"houseNumber"`
	HouseNumberAdditions *string `json:"houseNumberAdditions"`
	PostalCode           string  `json:"postalCode"`
	City                 string  `json:"city"`
	Country              string  `json:"country"`
}

// Validate acumula TODOS los campos inválidos (no corta en el primero);
// el boundary los devuelve como un único 400 con la lista completa.
func (r PersonRequest) Validate() []fault.FieldError {
	var errs []fault.FieldError

	errs = appendRequired(errs, "firstName", r.FirstName)
	errs = appendRequired(errs, "lastName", r.LastName)

	if strings.TrimSpace(r.DateOfBirth) == "" {
		errs = append(errs, fault.FieldError{Field: "dateOfBirth", Value: r.DateOfBirth, Message: msgRequired})
	} else if _, err := time.Parse(dateLayout, r.DateOfBirth); err != nil {
		errs = append(errs, fault.FieldError{Field: "dateOfBirth", Value: r.DateOfBirth, Message: msgDate})
	}

	errs = append(errs, validateAddress(addressFields{
		Street:      r.Street,
		HouseNumber: r.HouseNumber,
		PostalCode:  r.PostalCode,
		City:        r.City,
		Country:     r.Country,
	})...)

	return errs
}

// UpdateAddressRequest es el shape de actualización de dirección.
// Deliberadamente NO incluye nombre ni fecha de nacimiento.
type UpdateAddressRequest struct {
	Street               string  `json:"street"`
	HouseNumber          int     `json:"houseNumber"`
	HouseNumberAdditions *string `json:"houseNumberAdditions"`
	PostalCode           string  `json:"postalCode"`
	City                 string  `json:"city"`
	Country              string  `json:"country"`
}

func (r UpdateAddressRequest) Validate() []fault.FieldError {
	return validateAddress(addressFields{
		Street:      r.Street,
		HouseNumber: r.HouseNumber,
		PostalCode:  r.PostalCode,
		City:        r.City,
		Country:     r.Country,
	})
}

// PersonResponse es el shape de lectura.
type PersonResponse struct {
	ID                   string  `json:"id"`
	FirstName            string  `json:"firstName"`
	LastName             string  `json:"lastName"`
	DateOfBirth          string  `json:"dateOfBirth"`
	Street               string  `json:"street"`
	HouseNumber          int     `json:"houseNumber"`
	HouseNumberAdditions *string `json:"houseNumberAdditions"`
	PostalCode           string  `json:"postalCode"`
	City                 string  `json:"city"`
	Country              string  `json:"country"`
}

// addressFields agrupa el subset de dirección compartido entre
// PersonRequest y UpdateAddressRequest para validarlo una sola vez.
type addressFields struct {
	Street      string
	HouseNumber int
	PostalCode  string
	City        string
	Country     string
}

func validateAddress(a addressFields) []fault.FieldError {
	var errs []fault.FieldError

	errs = appendRequired(errs, "street", a.Street)

	if a.HouseNumber <= 0 {
		errs = append(errs, fault.FieldError{Field: "houseNumber", Value: a.HouseNumber, Message: msgPositive})
	}

	if strings.TrimSpace(a.PostalCode) == "" {
		errs = append(errs, fault.FieldError{Field: "postalCode", Value: a.PostalCode, Message: msgRequired})
	} else if !postalCodeRe.MatchString(a.PostalCode) {
		errs = append(errs, fault.FieldError{Field: "postalCode", Value: a.PostalCode, Message: msgPostalCode})
	}

	errs = appendRequired(errs, "city", a.City)
	errs = appendRequired(errs, "country", a.Country)

	return errs
}

func appendRequired(errs []fault.FieldError, field, value string) []fault.FieldError {
	if strings.TrimSpace(value) == "" {
		errs = append(errs, fault.FieldError{Field: field, Value: value, Message: msgRequired})
	}
	return errs
}
