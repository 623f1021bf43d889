package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"person-pet-registry/internal/domain/persons"
)

type personsRepo struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]persons.Person
}

func NewPersonsRepo() persons.Repository {
	return &personsRepo{
		byID: make(map[uuid.UUID]persons.Person),
	}
}

func (r *personsRepo) Save(ctx context.Context, p persons.Person) (persons.Person, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// insert-or-update: sin ID, el storage asigna identidad
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *personsRepo) GetByID(ctx context.Context, id uuid.UUID) (persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return persons.Person{}, persons.ErrNotFound
	}
	return p, nil
}

func (r *personsRepo) GetAll(ctx context.Context) ([]persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.sortedAll(), nil
}

func (r *personsRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byID[id]
	return ok, nil
}

func (r *personsRepo) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.FirstName == firstName && p.LastName == lastName {
			return true, nil
		}
	}
	return false, nil
}

func (r *personsRepo) FindByName(ctx context.Context, firstName, lastName string) (persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.FirstName == firstName && p.LastName == lastName {
			return p, nil
		}
	}
	return persons.Person{}, persons.ErrNotFound
}

func (r *personsRepo) FindFirstByFirstName(ctx context.Context, firstName string) (persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// "first match" sobre orden estable por ID (map no tiene orden)
	for _, p := range r.sortedAll() {
		if p.FirstName == firstName {
			return p, nil
		}
	}
	return persons.Person{}, persons.ErrNotFound
}

func (r *personsRepo) FindFirstByLastName(ctx context.Context, lastName string) (persons.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.sortedAll() {
		if p.LastName == lastName {
			return p, nil
		}
	}
	return persons.Person{}, persons.ErrNotFound
}

// sortedAll asume lock tomado.
func (r *personsRepo) sortedAll() []persons.Person {
	out := make([]persons.Person, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}
