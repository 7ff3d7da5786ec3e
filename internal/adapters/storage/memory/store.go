// Package memory es el store in-memory para dev y tests.
// Todos los repos comparten un único Store y un único lock, así que
// check-then-insert y las cascadas son atómicas.
package memory

import (
	"sync"

	"dairysync/internal/domain/accounts"
	"dairysync/internal/domain/animals"
	"dairysync/internal/domain/dailylogs"
)

type Store struct {
	mu sync.RWMutex

	accounts map[string]accounts.Account
	profiles map[string]accounts.Profile

	animals map[string]animals.Animal
	logs    map[string]dailylogs.DailyLog
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]accounts.Account),
		profiles: make(map[string]accounts.Profile),
		animals:  make(map[string]animals.Animal),
		logs:     make(map[string]dailylogs.DailyLog),
	}
}

func (s *Store) Accounts() accounts.Repository { return &accountRepo{s: s} }

func (s *Store) Animals() animals.Repository { return &animalRepo{s: s} }

func (s *Store) DailyLogs() dailylogs.Repository { return &logRepo{s: s} }

// DeleteAccount borra cuenta y perfil; los logs que creó quedan con CreatedBy nil.
func (s *Store) DeleteAccount(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.accounts, id)
	delete(s.profiles, id)
	for lid, l := range s.logs {
		if l.CreatedBy != nil && *l.CreatedBy == id {
			l.CreatedBy = nil
			s.logs[lid] = l
		}
	}
}
