package animals

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("animal not found")
)

// ValidationError lleva los mensajes por campo de un registro inválido.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid animal: " + strings.Join(e.Messages, " ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RegisterInput struct {
	Name         string
	Species      string
	Breed        string
	Gender       string
	HealthStatus string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Animal, error) {
	var msgs []string

	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	if name == "" {
		msgs = append(msgs, "Name is required.")
	}
	if species == "" {
		msgs = append(msgs, "Species is required.")
	}

	gender := Gender(strings.ToLower(strings.TrimSpace(in.Gender)))
	if gender != "" && !gender.Valid() {
		msgs = append(msgs, "Please select a valid gender.")
	}

	hs := HealthStatus(strings.ToLower(strings.TrimSpace(in.HealthStatus)))
	if hs == "" {
		hs = HealthHealthy
	}
	if !hs.Valid() {
		msgs = append(msgs, "Please select a valid health status.")
	}

	if len(msgs) > 0 {
		return Animal{}, &ValidationError{Messages: msgs}
	}

	now := s.now()
	a := Animal{
		ID:           uuid.NewString(),
		Name:         name,
		Species:      species,
		Breed:        strings.TrimSpace(in.Breed),
		Gender:       gender,
		HealthStatus: hs,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, fmt.Errorf("create animal: %w", err)
	}
	return a, nil
}

func (s *Service) Get(ctx context.Context, id string) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Animal, error) {
	return s.repo.List(ctx)
}

// ListByName es la lista para el selector de filtros (orden alfabético).
func (s *Service) ListByName(ctx context.Context) ([]Animal, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return items, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Delete devuelve el nombre del animal borrado para el mensaje de confirmación.
func (s *Service) Delete(ctx context.Context, id string) (string, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return "", err
	}
	return a.Name, nil
}
