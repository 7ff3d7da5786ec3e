package animals

import "context"

type Repository interface {
	Create(ctx context.Context, a Animal) error
	GetByID(ctx context.Context, id string) (Animal, error)
	// List ordena por created_at desc (más nuevo primero).
	List(ctx context.Context) ([]Animal, error)
	Count(ctx context.Context) (int, error)
	// Delete borra el animal y, en cascada, sus daily logs.
	Delete(ctx context.Context, id string) error
}
