package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"person-pet-registry/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, username, password_hash, roles, enabled, locked
		FROM users
		WHERE username = $1
	`, username)

	var u users.User
	var roles string
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &roles, &u.Enabled, &u.Locked)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}

	u.Roles = parseRoles(roles)
	return u, nil
}

// roles viaja como texto separado por comas ('USER,ADMIN').
func parseRoles(raw string) []users.Role {
	parts := strings.Split(raw, ",")
	out := make([]users.Role, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, users.Role(p))
		}
	}
	return out
}
