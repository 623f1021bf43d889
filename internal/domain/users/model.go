package users

import "github.com/google/uuid"

// Role define los roles soportados.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User es una cuenta de autenticación. Solo lectura desde este servicio:
// no hay endpoints que creen o modifiquen usuarios, se asumen pre-cargados.
type User struct {
	ID       uuid.UUID
	Username string

	// PasswordHash es el hash bcrypt, nunca el password en claro.
	PasswordHash string

	Roles   []Role
	Enabled bool
	Locked  bool
}

// HasRole chequea pertenencia simple (la lista de roles es corta).
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
