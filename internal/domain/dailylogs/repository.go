package dailylogs

import (
	"context"
	"time"
)

type Repository interface {
	// Create devuelve ErrConflict si ya existe un log para (animal, fecha).
	Create(ctx context.Context, l DailyLog) error
	GetByID(ctx context.Context, id string) (Entry, error)
	ExistsForDate(ctx context.Context, animalID string, date time.Time) (bool, error)
	Update(ctx context.Context, l DailyLog) error
	Delete(ctx context.Context, id string) error
	// BulkDelete borra en una sola operación los ids existentes; ignora el resto.
	BulkDelete(ctx context.Context, ids []string) (BulkDeleteResult, error)
	List(ctx context.Context, filter Filter) ([]Entry, error)
	CountOnDate(ctx context.Context, date time.Time) (int, error)
}

// Filter: cada campo es opcional y se combinan con AND.
// DateFrom/DateTo son inclusivos.
type Filter struct {
	AnimalID string
	DateFrom *time.Time
	DateTo   *time.Time
	Health   HealthObservation

	// HealthIn restringe a un conjunto de observaciones (uso interno: dashboard).
	HealthIn []HealthObservation
	// Limit <= 0 => sin límite.
	Limit int
}

type BulkDeleteResult struct {
	Deleted     int
	AnimalNames []string
	From        *time.Time
	To          *time.Time
}

// Matches aplica el filtro en memoria. Lo usan el store in-memory y los tests.
func (f Filter) Matches(e Entry) bool {
	if f.AnimalID != "" && e.Log.AnimalID != f.AnimalID {
		return false
	}
	if f.DateFrom != nil && e.Log.Date.Before(Day(*f.DateFrom)) {
		return false
	}
	if f.DateTo != nil && e.Log.Date.After(Day(*f.DateTo)) {
		return false
	}
	if f.Health != "" && e.Log.HealthObservations != f.Health {
		return false
	}
	if len(f.HealthIn) > 0 {
		ok := false
		for _, h := range f.HealthIn {
			if e.Log.HealthObservations == h {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Less es el orden por defecto: fecha desc, luego created_at desc.
func Less(a, b DailyLog) bool {
	if !a.Date.Equal(b.Date) {
		return a.Date.After(b.Date)
	}
	return a.CreatedAt.After(b.CreatedAt)
}
