package accounts

import "context"

type Repository interface {
	// CreateWithProfile inserta cuenta y perfil de forma atómica.
	// Email duplicado => ErrEmailTaken.
	CreateWithProfile(ctx context.Context, a Account, p Profile) error
	GetByEmail(ctx context.Context, email string) (Account, error)
	GetProfile(ctx context.Context, accountID string) (Profile, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
}
