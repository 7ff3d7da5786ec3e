package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"dairysync/internal/domain/accounts"
	"dairysync/internal/domain/animals"
	"dairysync/internal/domain/dailylogs"
)

func seed(t *testing.T, s *Store) (animals.Animal, dailylogs.DailyLog) {
	t.Helper()
	ctx := context.Background()
	now := time.Date(2024, 1, 6, 9, 0, 0, 0, time.UTC)

	a := animals.Animal{ID: "a-1", Name: "Bessie", Species: "cow", CreatedAt: now}
	if err := s.Animals().Create(ctx, a); err != nil {
		t.Fatalf("create animal: %v", err)
	}
	by := "acc-1"
	l := dailylogs.DailyLog{
		ID:        "l-1",
		AnimalID:  a.ID,
		Date:      dailylogs.Day(now),
		CreatedBy: &by,
		CreatedAt: now,
	}
	if err := s.DailyLogs().Create(ctx, l); err != nil {
		t.Fatalf("create log: %v", err)
	}
	return a, l
}

func TestDailyLogs_UniquePerAnimalAndDate(t *testing.T) {
	s := NewStore()
	_, l := seed(t, s)

	dup := l
	dup.ID = "l-2"
	if err := s.DailyLogs().Create(context.Background(), dup); !errors.Is(err, dailylogs.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	orphan := l
	orphan.ID, orphan.AnimalID = "l-3", "missing"
	if err := s.DailyLogs().Create(context.Background(), orphan); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected animal not found, got %v", err)
	}
}

func TestAnimals_DeleteCascadesToLogs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a, l := seed(t, s)

	if err := s.Animals().Delete(ctx, a.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.DailyLogs().GetByID(ctx, l.ID); !errors.Is(err, dailylogs.ErrNotFound) {
		t.Fatalf("expected log gone, got %v", err)
	}
	if err := s.Animals().Delete(ctx, a.ID); !errors.Is(err, animals.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestDailyLogs_UpdateKeepsIdentity(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, l := seed(t, s)

	changed := l
	changed.AnimalID = "other"
	changed.Date = l.Date.AddDate(0, 0, 1)
	changed.CreatedBy = nil
	changed.MorningMilk = 7
	if err := s.DailyLogs().Update(ctx, changed); err != nil {
		t.Fatalf("update: %v", err)
	}

	e, err := s.DailyLogs().GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e.Log.MorningMilk != 7 || e.Log.AnimalID != l.AnimalID || !e.Log.Date.Equal(l.Date) || e.Log.CreatedBy == nil {
		t.Fatalf("unexpected log after update %+v", e.Log)
	}
	if e.Animal.Name != "Bessie" {
		t.Fatalf("expected joined animal, got %+v", e.Animal)
	}
}

func TestDeleteAccount_NullsCreatedBy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	_, l := seed(t, s)

	if err := s.Accounts().CreateWithProfile(ctx,
		accounts.Account{ID: "acc-1", Email: "a@b.test", Username: "a"},
		accounts.Profile{Role: accounts.RoleFarmer},
	); err != nil {
		t.Fatalf("create account: %v", err)
	}
	if err := s.Accounts().CreateWithProfile(ctx,
		accounts.Account{ID: "acc-2", Email: "a@b.test", Username: "b"},
		accounts.Profile{Role: accounts.RoleVet},
	); !errors.Is(err, accounts.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	s.DeleteAccount("acc-1")

	e, err := s.DailyLogs().GetByID(ctx, l.ID)
	if err != nil {
		t.Fatalf("log must survive account deletion: %v", err)
	}
	if e.Log.CreatedBy != nil {
		t.Fatalf("expected created_by nil, got %v", *e.Log.CreatedBy)
	}
	if _, err := s.Accounts().GetProfile(ctx, "acc-1"); !errors.Is(err, accounts.ErrNotFound) {
		t.Fatalf("expected profile gone, got %v", err)
	}
}

func TestDailyLogs_BulkDeleteAndLimit(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	a, l := seed(t, s)

	for i := 1; i <= 3; i++ {
		x := l
		x.ID = "l-extra-" + string(rune('0'+i))
		x.Date = l.Date.AddDate(0, 0, -i)
		x.HealthObservations = dailylogs.ObservationCritical
		if err := s.DailyLogs().Create(ctx, x); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := s.DailyLogs().List(ctx, dailylogs.Filter{HealthIn: dailylogs.ConcerningObservations, Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 || got[0].Log.ID != "l-extra-1" {
		t.Fatalf("unexpected limited list %+v", got)
	}

	res, err := s.DailyLogs().BulkDelete(ctx, []string{"l-extra-1", "l-extra-3", "nope"})
	if err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	if res.Deleted != 2 || len(res.AnimalNames) != 1 || res.AnimalNames[0] != a.Name {
		t.Fatalf("unexpected result %+v", res)
	}
	if !res.From.Equal(l.Date.AddDate(0, 0, -3)) || !res.To.Equal(l.Date.AddDate(0, 0, -1)) {
		t.Fatalf("unexpected range %v..%v", res.From, res.To)
	}

	n, _ := s.DailyLogs().CountOnDate(ctx, l.Date)
	if n != 1 {
		t.Fatalf("expected 1 log today, got %d", n)
	}
}
