package memory

import (
	"context"
	"errors"
	"strings"

	"dairysync/internal/domain/accounts"
)

type accountRepo struct {
	s *Store
}

func (r *accountRepo) CreateWithProfile(ctx context.Context, a accounts.Account, p accounts.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(a.ID) == "" {
		return errors.New("account id required")
	}
	if _, exists := r.s.accounts[a.ID]; exists {
		return errors.New("account already exists")
	}
	for _, existing := range r.s.accounts {
		if existing.Email == a.Email {
			return accounts.ErrEmailTaken
		}
		if existing.Username == a.Username {
			return errors.New("username already exists")
		}
	}

	p.AccountID = a.ID
	r.s.accounts[a.ID] = a
	r.s.profiles[a.ID] = p
	return nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return accounts.Account{}, accounts.ErrNotFound
}

func (r *accountRepo) GetProfile(ctx context.Context, accountID string) (accounts.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[accountID]
	if !ok {
		return accounts.Profile{}, accounts.ErrNotFound
	}
	return p, nil
}

func (r *accountRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *accountRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, a := range r.s.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}
