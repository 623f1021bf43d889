package persons

import "time"

// Mapper traduce entre wire shapes y records de dominio.
// Puro y sin estado; con inputs ya validados no tiene modos de fallo.
type Mapper struct{}

func NewMapper() Mapper {
	return Mapper{}
}

// ToPerson mapea un request de creación a un record nuevo (sin ID:
// la identidad la asigna el storage al persistir).
func (Mapper) ToPerson(req PersonRequest) Person {
	// dateOfBirth ya pasó Validate; un parse fallido acá sería un bug
	// del boundary, no un estado alcanzable.
	dob, _ := time.Parse(dateLayout, req.DateOfBirth)

	return Person{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		DateOfBirth:          dob,
		Street:               req.Street,
		HouseNumber:          req.HouseNumber,
		HouseNumberAdditions: req.HouseNumberAdditions,
		PostalCode:           req.PostalCode,
		City:                 req.City,
		Country:              req.Country,
	}
}

func (Mapper) ToResponse(p Person) PersonResponse {
	return PersonResponse{
		ID:                   p.ID.String(),
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		DateOfBirth:          p.DateOfBirth.Format(dateLayout),
		Street:               p.Street,
		HouseNumber:          p.HouseNumber,
		HouseNumberAdditions: p.HouseNumberAdditions,
		PostalCode:           p.PostalCode,
		City:                 p.City,
		Country:              p.Country,
	}
}

// ApplyAddress es el merge parcial: pisa SOLO los campos de dirección
// y deja intactos ID, nombre y fecha de nacimiento aunque el target
// los tenga.
func (Mapper) ApplyAddress(p Person, req UpdateAddressRequest) Person {
	p.Street = req.Street
	p.HouseNumber = req.HouseNumber
	p.HouseNumberAdditions = req.HouseNumberAdditions
	p.PostalCode = req.PostalCode
	p.City = req.City
	p.Country = req.Country
	return p
}
