package accounts

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type testRepo struct {
	accounts map[string]Account
	profiles map[string]Profile
}

func newTestRepo() *testRepo {
	return &testRepo{accounts: map[string]Account{}, profiles: map[string]Profile{}}
}

func (r *testRepo) CreateWithProfile(ctx context.Context, a Account, p Profile) error {
	for _, x := range r.accounts {
		if x.Email == a.Email {
			return ErrEmailTaken
		}
	}
	r.accounts[a.ID] = a
	r.profiles[a.ID] = p
	return nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			return a, nil
		}
	}
	return Account{}, ErrNotFound
}

func (r *testRepo) GetProfile(ctx context.Context, id string) (Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	return err == nil, nil
}

func (r *testRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	return NewService(repo, BcryptHasher{Cost: bcrypt.MinCost}), repo
}

func validInput() RegisterInput {
	return RegisterInput{
		FullName:  "Mary Jane Watson",
		Email:     "Mary@Farm.test",
		Phone:     "+1 (555) 123-4567",
		Farm:      "Sunny Farm",
		Role:      "farmer",
		Password1: "Secret123",
		Password2: "Secret123",
		Terms:     true,
	}
}

func TestRegister_CreatesAccountAndProfile(t *testing.T) {
	svc, repo := newTestService()

	p, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if p.Account.Email != "mary@farm.test" || p.Account.Username != "mary" {
		t.Fatalf("unexpected account %+v", p.Account)
	}
	if p.Account.FirstName != "Mary" || p.Account.LastName != "Jane Watson" {
		t.Fatalf("unexpected name split %q / %q", p.Account.FirstName, p.Account.LastName)
	}
	if p.Account.PasswordHash == "Secret123" {
		t.Fatalf("password must be hashed")
	}
	if p.Profile.Role != RoleFarmer || repo.profiles[p.Account.ID].FarmName != "Sunny Farm" {
		t.Fatalf("profile not stored: %+v", repo.profiles)
	}
}

func TestRegister_PasswordWithoutUppercase(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.Password1, in.Password2 = "abc12345", "abc12345"

	_, err := svc.Register(context.Background(), in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Messages) != 1 || !verr.Has(MsgPasswordUpper) {
		t.Fatalf("expected only the uppercase message, got %v", verr.Messages)
	}
}

func TestRegister_PasswordTooLongForBcrypt(t *testing.T) {
	svc, repo := newTestService()

	in := validInput()
	in.Password1 = "Aa1" + strings.Repeat("x", 80)
	in.Password2 = in.Password1

	_, err := svc.Register(context.Background(), in)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Messages) != 1 || !verr.Has(MsgPasswordLong) {
		t.Fatalf("expected only the length message, got %v", verr.Messages)
	}
	if len(repo.accounts) != 0 {
		t.Fatalf("no account must be stored")
	}

	// 72 bytes justos todavía valen.
	in.Password1 = "Aa1" + strings.Repeat("x", 69)
	in.Password2 = in.Password1
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("72-byte password: %v", err)
	}
}

func TestRegister_CollectsAllMessages(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:     "not-an-email",
		Phone:     "12",
		Role:      "admin",
		Password1: "short",
		Password2: "other",
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	for _, want := range []string{
		MsgAllFieldsRequired,
		MsgInvalidEmail,
		MsgInvalidPhone,
		MsgInvalidRole,
		MsgPasswordShort,
		MsgPasswordMismatch,
		MsgPasswordUpper,
		MsgPasswordDigit,
		MsgTermsRequired,
	} {
		if !verr.Has(want) {
			t.Fatalf("missing message %q in %v", want, verr.Messages)
		}
	}
	if verr.Has(MsgPasswordLower) {
		t.Fatalf("unexpected lowercase message")
	}
}

func TestRegister_DuplicateEmailAndUsernameSuffix(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, validInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Register(ctx, validInput())
	var verr *ValidationError
	if !errors.As(err, &verr) || !verr.Has(MsgEmailTaken) {
		t.Fatalf("expected email taken, got %v", err)
	}

	in := validInput()
	in.Email = "mary@other.test"
	p, err := svc.Register(ctx, in)
	if err != nil {
		t.Fatalf("register second mary: %v", err)
	}
	if p.Account.Username != "mary1" {
		t.Fatalf("expected username mary1, got %q", p.Account.Username)
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	in := validInput()
	in.Role = "vet"
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("register: %v", err)
	}

	p, err := svc.Authenticate(ctx, "  MARY@farm.test ", "Secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if p.Profile.Role != RoleVet {
		t.Fatalf("expected vet role, got %q", p.Profile.Role)
	}

	for _, tc := range []struct{ email, pw string }{
		{"mary@farm.test", "wrong"},
		{"nobody@farm.test", "Secret123"},
		{"", ""},
	} {
		if _, err := svc.Authenticate(ctx, tc.email, tc.pw); !errors.Is(err, ErrBadCredentials) {
			t.Fatalf("expected ErrBadCredentials for %q, got %v", tc.email, err)
		}
	}
}
