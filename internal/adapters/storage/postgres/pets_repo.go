package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"person-pet-registry/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Save(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, name, age, person_id)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			age = EXCLUDED.age,
			person_id = EXCLUDED.person_id
	`,
		p.ID,
		p.Name,
		p.Age,
		p.PersonID, // *uuid.UUID: nil = sin dueño
	)
	if err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id uuid.UUID) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, age, person_id
		FROM pets
		WHERE id = $1
	`, id)
	return scanPet(row)
}

func (r *PetsRepo) GetAll(ctx context.Context) ([]pets.Pet, error) {
	return r.queryPets(ctx, `
		SELECT id, name, age, person_id
		FROM pets
		ORDER BY id ASC
	`)
}

func (r *PetsRepo) ListByPersonID(ctx context.Context, personID uuid.UUID) ([]pets.Pet, error) {
	return r.queryPets(ctx, `
		SELECT id, name, age, person_id
		FROM pets
		WHERE person_id = $1
		ORDER BY id ASC
	`, personID)
}

func (r *PetsRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM pets WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PetsRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	return err
}

func (r *PetsRepo) queryPets(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var personID uuid.NullUUID

	err := row.Scan(&p.ID, &p.Name, &p.Age, &personID)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}

	if personID.Valid {
		id := personID.UUID
		p.PersonID = &id
	}
	return p, nil
}
