package pets

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"person-pet-registry/internal/fault"
)

// -------------------------
// Test repo + directory
// -------------------------

type testRepo struct {
	byID map[uuid.UUID]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[uuid.UUID]Pet{}}
}

func (r *testRepo) Save(ctx context.Context, p Pet) (Pet, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.byID[p.ID] = p
	return p, nil
}

func (r *testRepo) GetByID(ctx context.Context, id uuid.UUID) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) GetAll(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *testRepo) ListByPersonID(ctx context.Context, personID uuid.UUID) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.PersonID != nil && *p.PersonID == personID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := r.byID[id]
	return ok, nil
}

func (r *testRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

// testDirectory simula el módulo de personas.
type testDirectory struct {
	known map[uuid.UUID]bool
}

func (d *testDirectory) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.known[id], nil
}

func newService(repo *testRepo, knownPersons ...uuid.UUID) *Service {
	known := map[uuid.UUID]bool{}
	for _, id := range knownPersons {
		known[id] = true
	}
	return NewService(repo, &testDirectory{known: known}, NewMapper())
}

func petRequest(name string, age int, personID *uuid.UUID) PetRequest {
	return PetRequest{Name: name, Age: &age, PersonID: personID}
}

// -------------------------
// Tests
// -------------------------

func TestService_CreatePet_UnknownOwner_InvalidReference(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo) // sin personas registradas

	unknown := uuid.New()
	_, err := svc.CreatePet(context.Background(), petRequest("Rex", 3, &unknown))
	if !fault.IsKind(err, fault.KindInvalidReference) {
		t.Fatalf("expected InvalidReference, got %v", err)
	}
	if len(repo.byID) != 0 {
		t.Fatalf("failed create must not persist")
	}
}

func TestService_CreatePet_WithoutOwner_AlwaysSucceeds(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo) // el directorio vacío no importa sin personId

	id, err := svc.CreatePet(context.Background(), petRequest("Rex", 3, nil))
	if err != nil {
		t.Fatalf("CreatePet returned error: %v", err)
	}
	if id == uuid.Nil {
		t.Fatalf("expected server-assigned id")
	}
}

func TestService_CreatePet_KnownOwner(t *testing.T) {
	repo := newTestRepo()
	owner := uuid.New()
	svc := newService(repo, owner)

	id, err := svc.CreatePet(context.Background(), petRequest("Rex", 3, &owner))
	if err != nil {
		t.Fatalf("CreatePet returned error: %v", err)
	}
	saved := repo.byID[id]
	if saved.PersonID == nil || *saved.PersonID != owner {
		t.Fatalf("owner reference not persisted: %#v", saved)
	}
}

func TestService_DeletePetByID(t *testing.T) {
	repo := newTestRepo()
	svc := newService(repo)

	// borrar algo inexistente es NotFound
	err := svc.DeletePetByID(context.Background(), uuid.New())
	if !fault.IsKind(err, fault.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}

	id, err := svc.CreatePet(context.Background(), petRequest("Rex", 3, nil))
	if err != nil {
		t.Fatalf("CreatePet returned error: %v", err)
	}

	if err := svc.DeletePetByID(context.Background(), id); err != nil {
		t.Fatalf("DeletePetByID returned error: %v", err)
	}

	_, err = svc.GetPetByID(context.Background(), id)
	if !fault.IsKind(err, fault.KindNotFound) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

func TestService_GetPetsByPersonID_UnknownOwner_EmptyNotError(t *testing.T) {
	// Asimetría deliberada con CreatePet: acá NO se chequea que el
	// dueño exista; un personId desconocido da lista vacía.
	svc := newService(newTestRepo())

	matches, err := svc.GetPetsByPersonID(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("expected no error for unknown owner, got %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("expected empty result, got %d", len(matches))
	}
}

func TestService_GetPetsByPersonID_FiltersByOwner(t *testing.T) {
	repo := newTestRepo()
	owner := uuid.New()
	other := uuid.New()
	svc := newService(repo, owner, other)

	if _, err := svc.CreatePet(context.Background(), petRequest("Rex", 3, &owner)); err != nil {
		t.Fatalf("CreatePet returned error: %v", err)
	}
	if _, err := svc.CreatePet(context.Background(), petRequest("Milo", 1, &other)); err != nil {
		t.Fatalf("CreatePet returned error: %v", err)
	}
	if _, err := svc.CreatePet(context.Background(), petRequest("Stray", 2, nil)); err != nil {
		t.Fatalf("CreatePet returned error: %v", err)
	}

	matches, err := svc.GetPetsByPersonID(context.Background(), owner)
	if err != nil {
		t.Fatalf("GetPetsByPersonID returned error: %v", err)
	}
	if len(matches) != 1 || matches[0].Name != "Rex" {
		t.Fatalf("expected only Rex, got %#v", matches)
	}
}

func TestService_UpdatePet_ReplacesWholesale_NoOwnerRevalidation(t *testing.T) {
	repo := newTestRepo()
	owner := uuid.New()
	svc := newService(repo, owner)

	id, err := svc.CreatePet(context.Background(), petRequest("Rex", 3, &owner))
	if err != nil {
		t.Fatalf("CreatePet returned error: %v", err)
	}

	// el personId nuevo NO existe y el update igual pasa: la
	// referencia solo se valida en create
	dangling := uuid.New()
	if err := svc.UpdatePet(context.Background(), id, petRequest("Rexy", 4, &dangling)); err != nil {
		t.Fatalf("UpdatePet returned error: %v", err)
	}

	updated := repo.byID[id]
	if updated.ID != id {
		t.Fatalf("id must survive the update")
	}
	if updated.Name != "Rexy" || updated.Age != 4 {
		t.Fatalf("update must replace name and age: %#v", updated)
	}
	if updated.PersonID == nil || *updated.PersonID != dangling {
		t.Fatalf("update must replace personId without validation: %#v", updated)
	}
}

func TestService_UpdatePet_NotFound(t *testing.T) {
	svc := newService(newTestRepo())

	err := svc.UpdatePet(context.Background(), uuid.New(), petRequest("Rex", 3, nil))
	if !fault.IsKind(err, fault.KindNotFound) {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestService_GetAllPets_EmptyStore(t *testing.T) {
	svc := newService(newTestRepo())

	all, err := svc.GetAllPets(context.Background())
	if err != nil {
		t.Fatalf("GetAllPets returned error: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty result, got %d", len(all))
	}
}
