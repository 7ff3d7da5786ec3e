package dailylogs

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"dairysync/internal/domain/animals"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("daily log not found")
	ErrConflict       = errors.New("daily log already exists")
	ErrAnimalNotFound = animals.ErrNotFound
)

// ConflictError: ya hay un log para ese animal y fecha. El log existente no se toca;
// el cliente tiene que editarlo.
type ConflictError struct {
	Date time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("A log entry already exists for %s. Please edit that entry instead.", e.Date.Format(DateLayout))
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// AnimalLookup evita depender del service de animals completo.
type AnimalLookup interface {
	Get(ctx context.Context, id string) (animals.Animal, error)
}

type Service struct {
	repo    Repository
	animals AnimalLookup
	now     func() time.Time
}

func NewService(repo Repository, animals AnimalLookup) *Service {
	return &Service{
		repo:    repo,
		animals: animals,
		now:     time.Now,
	}
}

type CreateInput struct {
	Date time.Time
	Fields
	// CreatedBy es opcional (id de cuenta).
	CreatedBy string
}

func (s *Service) Create(ctx context.Context, animalID string, in CreateInput) (DailyLog, error) {
	a, err := s.animals.Get(ctx, animalID)
	if err != nil {
		if errors.Is(err, animals.ErrNotFound) {
			return DailyLog{}, ErrAnimalNotFound
		}
		return DailyLog{}, err
	}

	if in.Date.IsZero() {
		return DailyLog{}, &ValidationError{Messages: []string{"Date is required."}}
	}
	fields, err := in.Fields.normalize()
	if err != nil {
		return DailyLog{}, err
	}
	date := Day(in.Date)

	// Chequeo previo para el mensaje; la unicidad real la garantiza el store.
	exists, err := s.repo.ExistsForDate(ctx, a.ID, date)
	if err != nil {
		return DailyLog{}, err
	}
	if exists {
		return DailyLog{}, &ConflictError{Date: date}
	}

	now := s.now()
	l := DailyLog{
		ID:        uuid.NewString(),
		AnimalID:  a.ID,
		Date:      date,
		CreatedAt: now,
		UpdatedAt: now,
	}
	l.apply(fields)
	if by := strings.TrimSpace(in.CreatedBy); by != "" {
		l.CreatedBy = &by
	}

	if err := s.repo.Create(ctx, l); err != nil {
		if errors.Is(err, ErrConflict) {
			return DailyLog{}, &ConflictError{Date: date}
		}
		return DailyLog{}, err
	}
	return l, nil
}

// Get devuelve el log con su animal (para precargar el form de edición).
func (s *Service) Get(ctx context.Context, id string) (Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Entry{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// Edit reemplaza todos los campos editables. Animal y fecha no cambian,
// así que no hace falta re-chequear unicidad.
func (s *Service) Edit(ctx context.Context, id string, in Fields) (Entry, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	fields, err := in.normalize()
	if err != nil {
		return Entry{}, err
	}

	e.Log.apply(fields)
	e.Log.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, e.Log); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Deleted resume el log borrado para el mensaje de confirmación.
type Deleted struct {
	AnimalID   string
	AnimalName string
	Date       time.Time
}

func (s *Service) Delete(ctx context.Context, id string) (Deleted, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return Deleted{}, err
	}
	if err := s.repo.Delete(ctx, e.Log.ID); err != nil {
		return Deleted{}, err
	}
	return Deleted{
		AnimalID:   e.Animal.ID,
		AnimalName: e.Animal.Name,
		Date:       e.Log.Date,
	}, nil
}

// BulkDelete borra los ids válidos y existentes en una sola operación.
// Lista vacía o sin ids válidos => resultado vacío, sin error.
func (s *Service) BulkDelete(ctx context.Context, ids []string) (BulkDeleteResult, error) {
	seen := make(map[string]struct{}, len(ids))
	valid := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if _, err := uuid.Parse(id); err != nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		valid = append(valid, id)
	}
	if len(valid) == 0 {
		return BulkDeleteResult{}, nil
	}

	res, err := s.repo.BulkDelete(ctx, valid)
	if err != nil {
		return BulkDeleteResult{}, fmt.Errorf("bulk delete logs: %w", err)
	}
	sort.Strings(res.AnimalNames)
	return res, nil
}

// List es perezoso: no toca el store hasta que se recorre, y cada recorrido
// vuelve a consultar.
func (s *Service) List(ctx context.Context, filter Filter) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		items, err := s.repo.List(ctx, filter)
		if err != nil {
			yield(Entry{}, err)
			return
		}
		for _, e := range items {
			if !yield(e, nil) {
				return
			}
		}
	}
}

// Collect recorre una secuencia de List y corta en el primer error.
func Collect(seq iter.Seq2[Entry, error]) ([]Entry, error) {
	out := make([]Entry, 0)
	for e, err := range seq {
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *Service) CountOnDate(ctx context.Context, date time.Time) (int, error) {
	return s.repo.CountOnDate(ctx, Day(date))
}

func (l *DailyLog) apply(f Fields) {
	l.MorningMilk = f.MorningMilk
	l.AfternoonMilk = f.AfternoonMilk
	l.EveningMilk = f.EveningMilk
	l.FeedAmount = f.FeedAmount
	l.Water = f.Water
	l.Temperature = f.Temperature
	l.HealthObservations = f.HealthObservations
	l.Activity = f.Activity
	l.Notes = f.Notes
}
