package memory

import (
	"context"
	"sync"

	"person-pet-registry/internal/domain/users"
)

type usersRepo struct {
	mu         sync.RWMutex
	byUsername map[string]users.User
}

// NewUsersRepo arranca con las cuentas pre-cargadas que se le pasen.
// No hay endpoints de escritura de usuarios; esto es todo lo que habrá.
func NewUsersRepo(seed ...users.User) users.Repository {
	byUsername := make(map[string]users.User, len(seed))
	for _, u := range seed {
		byUsername[u.Username] = u
	}
	return &usersRepo{byUsername: byUsername}
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[username]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}
