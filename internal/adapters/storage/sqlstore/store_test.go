package sqlstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"dairysync/internal/domain/accounts"
	"dairysync/internal/domain/animals"
	"dairysync/internal/domain/dailylogs"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// idempotente
	if err := s.Migrate(context.Background()); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	return s
}

var base = time.Date(2024, 1, 6, 9, 30, 0, 0, time.UTC)

func createAccount(t *testing.T, s *Store, email string) accounts.Account {
	t.Helper()
	a := accounts.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     email,
		FirstName:    "Jane",
		PasswordHash: "hash",
		CreatedAt:    base,
	}
	p := accounts.Profile{Phone: "5551234567", FarmName: "Green", Role: accounts.RoleFarmer, CreatedAt: base, UpdatedAt: base}
	if err := s.Accounts().CreateWithProfile(context.Background(), a, p); err != nil {
		t.Fatalf("create account: %v", err)
	}
	return a
}

func createAnimal(t *testing.T, s *Store, name string, createdAt time.Time) animals.Animal {
	t.Helper()
	a := animals.Animal{
		ID:           uuid.NewString(),
		Name:         name,
		Species:      "cow",
		Gender:       animals.GenderFemale,
		HealthStatus: animals.HealthHealthy,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
	if err := s.Animals().Create(context.Background(), a); err != nil {
		t.Fatalf("create animal: %v", err)
	}
	return a
}

func createLog(t *testing.T, s *Store, animalID, date string, h dailylogs.HealthObservation, by *string) dailylogs.DailyLog {
	t.Helper()
	d, err := dailylogs.ParseDate(date)
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	temp := 38.25
	l := dailylogs.DailyLog{
		ID:                 uuid.NewString(),
		AnimalID:           animalID,
		Date:               d,
		MorningMilk:        10.125,
		AfternoonMilk:      5,
		EveningMilk:        2.5,
		Temperature:        &temp,
		HealthObservations: h,
		Activity:           dailylogs.ActivityGrazing,
		CreatedBy:          by,
		CreatedAt:          base,
		UpdatedAt:          base,
	}
	if err := s.DailyLogs().Create(context.Background(), l); err != nil {
		t.Fatalf("create log: %v", err)
	}
	return l
}

func TestAccounts_RoundTripAndDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := createAccount(t, s, "jane@farm.test")

	got, err := s.Accounts().GetByEmail(ctx, "jane@farm.test")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if got.ID != a.ID || !got.CreatedAt.Equal(base) {
		t.Fatalf("unexpected account %+v", got)
	}
	p, err := s.Accounts().GetProfile(ctx, a.ID)
	if err != nil || p.Role != accounts.RoleFarmer {
		t.Fatalf("unexpected profile %+v err=%v", p, err)
	}

	dup := accounts.Account{ID: uuid.NewString(), Email: "jane@farm.test", Username: "other", PasswordHash: "x", CreatedAt: base}
	err = s.Accounts().CreateWithProfile(ctx, dup, accounts.Profile{Role: accounts.RoleVet, CreatedAt: base, UpdatedAt: base})
	if !errors.Is(err, accounts.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	// la transacción no dejó un perfil suelto
	if _, err := s.Accounts().GetProfile(ctx, dup.ID); !errors.Is(err, accounts.ErrNotFound) {
		t.Fatalf("expected no profile for failed account, got %v", err)
	}

	if ok, _ := s.Accounts().UsernameExists(ctx, "jane@farm.test"); !ok {
		t.Fatalf("expected username to exist")
	}
	if ok, _ := s.Accounts().EmailExists(ctx, "nobody@farm.test"); ok {
		t.Fatalf("unexpected email")
	}
	if _, err := s.Accounts().GetByEmail(ctx, "nobody@farm.test"); !errors.Is(err, accounts.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAnimals_ListOrderAndCascade(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := createAnimal(t, s, "Bessie", base)
	newer := createAnimal(t, s, "Daisy", base.Add(time.Hour))
	l := createLog(t, s, older.ID, "2024-01-05", dailylogs.ObservationNormal, nil)

	list, err := s.Animals().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != newer.ID {
		t.Fatalf("expected newest first, got %+v", list)
	}
	if n, _ := s.Animals().Count(ctx); n != 2 {
		t.Fatalf("expected 2 animals, got %d", n)
	}

	if err := s.Animals().Delete(ctx, older.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.DailyLogs().GetByID(ctx, l.ID); !errors.Is(err, dailylogs.ErrNotFound) {
		t.Fatalf("expected log deleted by cascade, got %v", err)
	}
	if _, err := s.Animals().GetByID(ctx, older.ID); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDailyLogs_CreateGetAndConflict(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := createAnimal(t, s, "Bessie", base)
	l := createLog(t, s, a.ID, "2024-01-05", dailylogs.ObservationCritical, nil)

	e, err := s.DailyLogs().GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Animal.Name != "Bessie" || e.Log.Date.Format(dailylogs.DateLayout) != "2024-01-05" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Log.TotalMilk() != 17.625 || e.Log.Temperature == nil || *e.Log.Temperature != 38.25 {
		t.Fatalf("unexpected values %+v", e.Log)
	}

	dup := l
	dup.ID = uuid.NewString()
	if err := s.DailyLogs().Create(ctx, dup); !errors.Is(err, dailylogs.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if ok, _ := s.DailyLogs().ExistsForDate(ctx, a.ID, l.Date); !ok {
		t.Fatalf("expected log to exist for date")
	}

	orphan := l
	orphan.ID, orphan.AnimalID = uuid.NewString(), uuid.NewString()
	if err := s.DailyLogs().Create(ctx, orphan); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected animal not found, got %v", err)
	}
}

func TestDailyLogs_UpdateLeavesIdentity(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := createAnimal(t, s, "Bessie", base)
	acc := createAccount(t, s, "jane@farm.test")
	l := createLog(t, s, a.ID, "2024-01-05", dailylogs.ObservationNormal, &acc.ID)

	l.MorningMilk = 1
	l.Temperature = nil
	l.Notes = "better"
	l.UpdatedAt = base.Add(time.Hour)
	if err := s.DailyLogs().Update(ctx, l); err != nil {
		t.Fatalf("update: %v", err)
	}

	e, _ := s.DailyLogs().GetByID(ctx, l.ID)
	if e.Log.MorningMilk != 1 || e.Log.Temperature != nil || e.Log.Notes != "better" {
		t.Fatalf("unexpected log %+v", e.Log)
	}
	if e.Log.CreatedBy == nil || *e.Log.CreatedBy != acc.ID || !e.Log.CreatedAt.Equal(base) {
		t.Fatalf("identity changed %+v", e.Log)
	}

	missing := l
	missing.ID = uuid.NewString()
	if err := s.DailyLogs().Update(ctx, missing); !errors.Is(err, dailylogs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDailyLogs_CreatedBySurvivesAccountDeletion(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := createAnimal(t, s, "Bessie", base)
	acc := createAccount(t, s, "jane@farm.test")
	l := createLog(t, s, a.ID, "2024-01-05", dailylogs.ObservationNormal, &acc.ID)

	if err := s.Accounts().(*AccountsRepo).Delete(ctx, acc.ID); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	e, err := s.DailyLogs().GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("log must survive: %v", err)
	}
	if e.Log.CreatedBy != nil {
		t.Fatalf("expected created_by NULL, got %q", *e.Log.CreatedBy)
	}

	// Un autor inexistente no impide guardar el log.
	ghost := uuid.NewString()
	l2 := createLog(t, s, a.ID, "2024-01-06", dailylogs.ObservationNormal, &ghost)
	e, _ = s.DailyLogs().GetByID(ctx, l2.ID)
	if e.Log.CreatedBy != nil {
		t.Fatalf("expected created_by NULL for unknown author")
	}
}

func TestDailyLogs_ListFiltersAndBulkDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bessie := createAnimal(t, s, "Bessie", base)
	daisy := createAnimal(t, s, "Daisy", base)

	b1 := createLog(t, s, bessie.ID, "2024-01-01", dailylogs.ObservationNeedsAttention, nil)
	createLog(t, s, bessie.ID, "2024-01-03", dailylogs.ObservationNormal, nil)
	b5 := createLog(t, s, bessie.ID, "2024-01-05", dailylogs.ObservationCritical, nil)
	d3 := createLog(t, s, daisy.ID, "2024-01-03", dailylogs.ObservationCritical, nil)

	from, _ := dailylogs.ParseDate("2024-01-01")
	to, _ := dailylogs.ParseDate("2024-01-03")

	got, err := s.DailyLogs().List(ctx, dailylogs.Filter{AnimalID: bessie.ID, DateFrom: &from, DateTo: &to})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Log.Date.Format(dailylogs.DateLayout) != "2024-01-03" {
		t.Fatalf("unexpected filtered list %+v", got)
	}

	got, err = s.DailyLogs().List(ctx, dailylogs.Filter{HealthIn: dailylogs.ConcerningObservations, Limit: 2})
	if err != nil {
		t.Fatalf("list concerning: %v", err)
	}
	if len(got) != 2 || got[0].Log.ID != b5.ID || got[1].Log.ID != d3.ID {
		t.Fatalf("unexpected concerning list %+v", got)
	}

	got, _ = s.DailyLogs().List(ctx, dailylogs.Filter{Health: dailylogs.ObservationCritical, AnimalID: daisy.ID})
	if len(got) != 1 {
		t.Fatalf("expected 1 critical log for Daisy, got %d", len(got))
	}

	if n, _ := s.DailyLogs().CountOnDate(ctx, to); n != 2 {
		t.Fatalf("expected 2 logs on 2024-01-03, got %d", n)
	}

	res, err := s.DailyLogs().BulkDelete(ctx, []string{b1.ID, d3.ID, uuid.NewString()})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if res.Deleted != 2 {
		t.Fatalf("expected 2 deleted, got %d", res.Deleted)
	}
	if len(res.AnimalNames) != 2 || res.AnimalNames[0] != "Bessie" || res.AnimalNames[1] != "Daisy" {
		t.Fatalf("unexpected names %v", res.AnimalNames)
	}
	if res.From.Format(dailylogs.DateLayout) != "2024-01-01" || res.To.Format(dailylogs.DateLayout) != "2024-01-03" {
		t.Fatalf("unexpected range %v..%v", res.From, res.To)
	}

	all, _ := s.DailyLogs().List(ctx, dailylogs.Filter{})
	if len(all) != 2 {
		t.Fatalf("expected 2 logs left, got %d", len(all))
	}
}
