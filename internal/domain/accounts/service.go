package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("account not found")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
)

type Service struct {
	repo   Repository
	hasher PasswordHasher
	now    func() time.Time
}

func NewService(repo Repository, hasher PasswordHasher) *Service {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	return &Service{
		repo:   repo,
		hasher: hasher,
		now:    time.Now,
	}
}

type RegisterInput struct {
	FullName  string
	Email     string
	Phone     string
	Farm      string
	Role      string
	Password1 string
	Password2 string
	Terms     bool
}

func (in RegisterInput) normalized() RegisterInput {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Farm = strings.TrimSpace(in.Farm)
	in.Role = strings.TrimSpace(in.Role)
	return in
}

// Register crea cuenta + perfil. Devuelve *ValidationError con todos los mensajes
// si algo no cuadra.
func (s *Service) Register(ctx context.Context, in RegisterInput) (Principal, error) {
	in = in.normalized()

	msgs := validateRegistration(in)
	if in.Email != "" {
		taken, err := s.repo.EmailExists(ctx, in.Email)
		if err != nil {
			return Principal{}, err
		}
		if taken {
			msgs = append(msgs, MsgEmailTaken)
		}
	}
	if len(msgs) > 0 {
		return Principal{}, &ValidationError{Messages: msgs}
	}

	username, err := s.uniqueUsername(ctx, in.Email)
	if err != nil {
		return Principal{}, err
	}

	hash, err := s.hasher.Hash(in.Password1)
	if err != nil {
		return Principal{}, err
	}

	first, last := splitName(in.FullName)
	now := s.now()

	a := Account{
		ID:           uuid.NewString(),
		Email:        in.Email,
		Username:     username,
		FirstName:    first,
		LastName:     last,
		PasswordHash: hash,
		CreatedAt:    now,
	}
	p := Profile{
		AccountID: a.ID,
		Phone:     in.Phone,
		FarmName:  in.Farm,
		Role:      Role(in.Role),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateWithProfile(ctx, a, p); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Principal{}, &ValidationError{Messages: []string{MsgEmailTaken}}
		}
		return Principal{}, fmt.Errorf("create account: %w", err)
	}

	return Principal{Account: a, Profile: p}, nil
}

// Authenticate valida email + password. No distingue "email inexistente"
// de "password incorrecta" para no filtrar qué cuentas existen.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Principal, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return Principal{}, ErrBadCredentials
	}

	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, ErrBadCredentials
		}
		return Principal{}, err
	}
	if !s.hasher.Verify(a.PasswordHash, password) {
		return Principal{}, ErrBadCredentials
	}

	p, err := s.repo.GetProfile(ctx, a.ID)
	if err != nil {
		return Principal{}, fmt.Errorf("load profile: %w", err)
	}
	return Principal{Account: a, Profile: p}, nil
}

// uniqueUsername usa la parte local del email y agrega un sufijo numérico si está tomado.
func (s *Service) uniqueUsername(ctx context.Context, email string) (string, error) {
	base := email
	if i := strings.Index(email, "@"); i >= 0 {
		base = email[:i]
	}
	username := base
	for n := 1; ; n++ {
		taken, err := s.repo.UsernameExists(ctx, username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, n)
	}
}

func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	if len(parts) == 0 {
		return "", ""
	}
	first := parts[0]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(full), first))
	return first, rest
}
