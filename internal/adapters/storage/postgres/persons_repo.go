package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"person-pet-registry/internal/domain/persons"
)

const personColumns = `
	id, first_name, last_name, date_of_birth,
	street, house_number, house_number_additions,
	postal_code, city, country
`

type PersonsRepo struct {
	db *sql.DB
}

func NewPersonsRepo(db *sql.DB) *PersonsRepo {
	return &PersonsRepo{db: db}
}

// Save es upsert por id; sin id, el repo asigna uno nuevo acá
// (la identidad la pone el storage, nunca el service).
func (r *PersonsRepo) Save(ctx context.Context, p persons.Person) (persons.Person, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO persons (
			id, first_name, last_name, date_of_birth,
			street, house_number, house_number_additions,
			postal_code, city, country
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			date_of_birth = EXCLUDED.date_of_birth,
			street = EXCLUDED.street,
			house_number = EXCLUDED.house_number,
			house_number_additions = EXCLUDED.house_number_additions,
			postal_code = EXCLUDED.postal_code,
			city = EXCLUDED.city,
			country = EXCLUDED.country
	`,
		p.ID,
		p.FirstName,
		p.LastName,
		p.DateOfBirth,
		p.Street,
		p.HouseNumber,
		toNullString(p.HouseNumberAdditions),
		p.PostalCode,
		p.City,
		p.Country,
	)
	if err != nil {
		return persons.Person{}, err
	}
	return p, nil
}

func (r *PersonsRepo) GetByID(ctx context.Context, id uuid.UUID) (persons.Person, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+personColumns+`
		FROM persons
		WHERE id = $1
	`, id)
	return scanPerson(row)
}

func (r *PersonsRepo) GetAll(ctx context.Context) ([]persons.Person, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+personColumns+`
		FROM persons
		ORDER BY id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]persons.Person, 0)
	for rows.Next() {
		p, err := scanPerson(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PersonsRepo) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM persons WHERE id = $1)
	`, id).Scan(&exists)
	return exists, err
}

func (r *PersonsRepo) ExistsByName(ctx context.Context, firstName, lastName string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM persons
			WHERE first_name = $1 AND last_name = $2
		)
	`, firstName, lastName).Scan(&exists)
	return exists, err
}

func (r *PersonsRepo) FindByName(ctx context.Context, firstName, lastName string) (persons.Person, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+personColumns+`
		FROM persons
		WHERE first_name = $1 AND last_name = $2
		ORDER BY id ASC
		LIMIT 1
	`, firstName, lastName)
	return scanPerson(row)
}

func (r *PersonsRepo) FindFirstByFirstName(ctx context.Context, firstName string) (persons.Person, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+personColumns+`
		FROM persons
		WHERE first_name = $1
		ORDER BY id ASC
		LIMIT 1
	`, firstName)
	return scanPerson(row)
}

func (r *PersonsRepo) FindFirstByLastName(ctx context.Context, lastName string) (persons.Person, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+personColumns+`
		FROM persons
		WHERE last_name = $1
		ORDER BY id ASC
		LIMIT 1
	`, lastName)
	return scanPerson(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPerson(row rowScanner) (persons.Person, error) {
	var p persons.Person
	var additions sql.NullString

	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DateOfBirth,
		&p.Street,
		&p.HouseNumber,
		&additions,
		&p.PostalCode,
		&p.City,
		&p.Country,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return persons.Person{}, persons.ErrNotFound
	}
	if err != nil {
		return persons.Person{}, err
	}

	if additions.Valid {
		s := additions.String
		p.HouseNumberAdditions = &s
	}
	return p, nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
