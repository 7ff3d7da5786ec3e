package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"dairysync/internal/domain/dailylogs"
)

type logRepo struct {
	s *Store
}

func (r *logRepo) Create(ctx context.Context, l dailylogs.DailyLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(l.ID) == "" {
		return errors.New("daily log id required")
	}
	if _, ok := r.s.animals[l.AnimalID]; !ok {
		return dailylogs.ErrAnimalNotFound
	}
	for _, existing := range r.s.logs {
		if existing.AnimalID == l.AnimalID && existing.Date.Equal(l.Date) {
			return dailylogs.ErrConflict
		}
	}
	r.s.logs[l.ID] = l
	return nil
}

func (r *logRepo) GetByID(ctx context.Context, id string) (dailylogs.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	l, ok := r.s.logs[id]
	if !ok {
		return dailylogs.Entry{}, dailylogs.ErrNotFound
	}
	return dailylogs.Entry{Log: l, Animal: r.s.animals[l.AnimalID]}, nil
}

func (r *logRepo) ExistsForDate(ctx context.Context, animalID string, date time.Time) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, l := range r.s.logs {
		if l.AnimalID == animalID && l.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

// Update no toca animal, fecha, created_by ni created_at.
func (r *logRepo) Update(ctx context.Context, l dailylogs.DailyLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	cur, ok := r.s.logs[l.ID]
	if !ok {
		return dailylogs.ErrNotFound
	}
	l.AnimalID = cur.AnimalID
	l.Date = cur.Date
	l.CreatedBy = cur.CreatedBy
	l.CreatedAt = cur.CreatedAt
	r.s.logs[l.ID] = l
	return nil
}

func (r *logRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.logs[id]; !ok {
		return dailylogs.ErrNotFound
	}
	delete(r.s.logs, id)
	return nil
}

func (r *logRepo) BulkDelete(ctx context.Context, ids []string) (dailylogs.BulkDeleteResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var res dailylogs.BulkDeleteResult
	names := map[string]struct{}{}
	for _, id := range ids {
		l, ok := r.s.logs[id]
		if !ok {
			continue
		}
		delete(r.s.logs, id)
		res.Deleted++

		if a, ok := r.s.animals[l.AnimalID]; ok {
			if _, seen := names[a.Name]; !seen {
				names[a.Name] = struct{}{}
				res.AnimalNames = append(res.AnimalNames, a.Name)
			}
		}
		d := l.Date
		if res.From == nil || d.Before(*res.From) {
			res.From = &d
		}
		if res.To == nil || d.After(*res.To) {
			d2 := d
			res.To = &d2
		}
	}
	return res, nil
}

func (r *logRepo) List(ctx context.Context, filter dailylogs.Filter) ([]dailylogs.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]dailylogs.Entry, 0)
	for _, l := range r.s.logs {
		e := dailylogs.Entry{Log: l, Animal: r.s.animals[l.AnimalID]}
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return dailylogs.Less(out[i].Log, out[j].Log)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *logRepo) CountOnDate(ctx context.Context, date time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	n := 0
	for _, l := range r.s.logs {
		if l.Date.Equal(date) {
			n++
		}
	}
	return n, nil
}
