package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"dairysync/internal/domain/animals"
)

type AnimalsRepo struct {
	s *Store
}

type animalRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Species      string `db:"species"`
	Breed        string `db:"breed"`
	Gender       string `db:"gender"`
	HealthStatus string `db:"health_status"`
	CreatedAt    dbTime `db:"created_at"`
	UpdatedAt    dbTime `db:"updated_at"`
}

func (r animalRow) toDomain() animals.Animal {
	return animals.Animal{
		ID:           r.ID,
		Name:         r.Name,
		Species:      r.Species,
		Breed:        r.Breed,
		Gender:       animals.Gender(r.Gender),
		HealthStatus: animals.HealthStatus(r.HealthStatus),
		CreatedAt:    r.CreatedAt.Time,
		UpdatedAt:    r.UpdatedAt.Time,
	}
}

const animalColumns = `id, name, species, breed, gender, health_status, created_at, updated_at`

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.s.db.ExecContext(ctx, r.s.db.Rebind(`
		INSERT INTO animals (`+animalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`),
		a.ID,
		a.Name,
		a.Species,
		a.Breed,
		string(a.Gender),
		string(a.HealthStatus),
		r.s.stamp(a.CreatedAt),
		r.s.stamp(a.UpdatedAt),
	)
	return err
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	var row animalRow
	err := r.s.db.GetContext(ctx, &row, r.s.db.Rebind(`SELECT `+animalColumns+` FROM animals WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return animals.Animal{}, animals.ErrNotFound
		}
		return animals.Animal{}, err
	}
	return row.toDomain(), nil
}

func (r *AnimalsRepo) List(ctx context.Context) ([]animals.Animal, error) {
	var rows []animalRow
	if err := r.s.db.SelectContext(ctx, &rows, `SELECT `+animalColumns+` FROM animals ORDER BY created_at DESC, id`); err != nil {
		return nil, err
	}
	out := make([]animals.Animal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *AnimalsRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.s.db.GetContext(ctx, &n, `SELECT COUNT(1) FROM animals`)
	return n, err
}

// Delete: los daily logs caen por ON DELETE CASCADE.
func (r *AnimalsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, r.s.db.Rebind(`DELETE FROM animals WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return animals.ErrNotFound
	}
	return nil
}
