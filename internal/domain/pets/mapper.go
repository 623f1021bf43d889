package pets

// Mapper traduce entre wire shapes y records de dominio.
// Puro y sin estado.
type Mapper struct{}

func NewMapper() Mapper {
	return Mapper{}
}

// ToPet mapea un request validado a un record nuevo (sin ID).
func (Mapper) ToPet(req PetRequest) Pet {
	return Pet{
		Name:     req.Name,
		Age:      *req.Age, // Validate garantiza no-nil
		PersonID: req.PersonID,
	}
}

// Merge reemplaza name, age y personId completos sobre el record
// existente; solo el ID sobrevive del original.
func (Mapper) Merge(p Pet, req PetRequest) Pet {
	p.Name = req.Name
	p.Age = *req.Age
	p.PersonID = req.PersonID
	return p
}

func (Mapper) ToResponse(p Pet) PetResponse {
	return PetResponse{
		ID:       p.ID.String(),
		Name:     p.Name,
		Age:      p.Age,
		PersonID: p.PersonID,
	}
}
