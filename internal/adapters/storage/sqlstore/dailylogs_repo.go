package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"dairysync/internal/domain/animals"
	"dairysync/internal/domain/dailylogs"
)

type DailyLogsRepo struct {
	s *Store
}

// logRow es un daily log junto con las columnas de su animal (prefijo a_).
type logRow struct {
	ID                 string          `db:"id"`
	AnimalID           string          `db:"animal_id"`
	Date               dbTime          `db:"date"`
	MorningMilk        float64         `db:"morning_milk"`
	AfternoonMilk      float64         `db:"afternoon_milk"`
	EveningMilk        float64         `db:"evening_milk"`
	FeedAmount         float64         `db:"feed_amount"`
	Water              float64         `db:"water"`
	Temperature        sql.NullFloat64 `db:"temperature"`
	HealthObservations string          `db:"health_observations"`
	Activity           string          `db:"activity"`
	Notes              string          `db:"notes"`
	CreatedBy          sql.NullString  `db:"created_by"`
	CreatedAt          dbTime          `db:"created_at"`
	UpdatedAt          dbTime          `db:"updated_at"`

	AnimalName         string `db:"a_name"`
	AnimalSpecies      string `db:"a_species"`
	AnimalBreed        string `db:"a_breed"`
	AnimalGender       string `db:"a_gender"`
	AnimalHealthStatus string `db:"a_health_status"`
	AnimalCreatedAt    dbTime `db:"a_created_at"`
	AnimalUpdatedAt    dbTime `db:"a_updated_at"`
}

func (r logRow) toEntry() dailylogs.Entry {
	l := dailylogs.DailyLog{
		ID:                 r.ID,
		AnimalID:           r.AnimalID,
		Date:               dailylogs.Day(r.Date.Time),
		MorningMilk:        r.MorningMilk,
		AfternoonMilk:      r.AfternoonMilk,
		EveningMilk:        r.EveningMilk,
		FeedAmount:         r.FeedAmount,
		Water:              r.Water,
		HealthObservations: dailylogs.HealthObservation(r.HealthObservations),
		Activity:           dailylogs.Activity(r.Activity),
		Notes:              r.Notes,
		CreatedAt:          r.CreatedAt.Time,
		UpdatedAt:          r.UpdatedAt.Time,
	}
	if r.Temperature.Valid {
		t := r.Temperature.Float64
		l.Temperature = &t
	}
	if r.CreatedBy.Valid {
		by := r.CreatedBy.String
		l.CreatedBy = &by
	}
	return dailylogs.Entry{
		Log: l,
		Animal: animals.Animal{
			ID:           r.AnimalID,
			Name:         r.AnimalName,
			Species:      r.AnimalSpecies,
			Breed:        r.AnimalBreed,
			Gender:       animals.Gender(r.AnimalGender),
			HealthStatus: animals.HealthStatus(r.AnimalHealthStatus),
			CreatedAt:    r.AnimalCreatedAt.Time,
			UpdatedAt:    r.AnimalUpdatedAt.Time,
		},
	}
}

const selectLogs = `
	SELECT
		l.id, l.animal_id, l.date,
		l.morning_milk, l.afternoon_milk, l.evening_milk,
		l.feed_amount, l.water, l.temperature,
		l.health_observations, l.activity, l.notes,
		l.created_by, l.created_at, l.updated_at,
		a.name AS a_name, a.species AS a_species, a.breed AS a_breed,
		a.gender AS a_gender, a.health_status AS a_health_status,
		a.created_at AS a_created_at, a.updated_at AS a_updated_at
	FROM daily_logs l
	JOIN animals a ON a.id = l.animal_id`

func (r *DailyLogsRepo) Create(ctx context.Context, l dailylogs.DailyLog) error {
	err := r.insert(ctx, l)
	if err != nil && isForeignKeyViolation(err) && l.CreatedBy != nil {
		// La cuenta ya no existe: se guarda sin autor, igual que ON DELETE SET NULL.
		l.CreatedBy = nil
		err = r.insert(ctx, l)
	}
	switch {
	case err == nil:
		return nil
	case isUniqueViolation(err, "date"):
		return dailylogs.ErrConflict
	case isForeignKeyViolation(err):
		return dailylogs.ErrAnimalNotFound
	default:
		return fmt.Errorf("insert daily log: %w", err)
	}
}

func (r *DailyLogsRepo) insert(ctx context.Context, l dailylogs.DailyLog) error {
	_, err := r.s.db.ExecContext(ctx, r.s.db.Rebind(`
		INSERT INTO daily_logs (
			id, animal_id, date,
			morning_milk, afternoon_milk, evening_milk,
			feed_amount, water, temperature,
			health_observations, activity, notes,
			created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`),
		l.ID,
		l.AnimalID,
		r.s.day(l.Date),
		l.MorningMilk,
		l.AfternoonMilk,
		l.EveningMilk,
		l.FeedAmount,
		l.Water,
		nullFloat(l.Temperature),
		string(l.HealthObservations),
		string(l.Activity),
		l.Notes,
		nullString(l.CreatedBy),
		r.s.stamp(l.CreatedAt),
		r.s.stamp(l.UpdatedAt),
	)
	return err
}

func (r *DailyLogsRepo) GetByID(ctx context.Context, id string) (dailylogs.Entry, error) {
	var row logRow
	err := r.s.db.GetContext(ctx, &row, r.s.db.Rebind(selectLogs+` WHERE l.id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return dailylogs.Entry{}, dailylogs.ErrNotFound
		}
		return dailylogs.Entry{}, err
	}
	return row.toEntry(), nil
}

func (r *DailyLogsRepo) ExistsForDate(ctx context.Context, animalID string, date time.Time) (bool, error) {
	var n int
	err := r.s.db.GetContext(ctx, &n, r.s.db.Rebind(`
		SELECT COUNT(1) FROM daily_logs WHERE animal_id = ? AND date = ?
	`), animalID, r.s.day(date))
	return n > 0, err
}

// Update pisa los campos editables. animal_id, date, created_by y created_at no se tocan.
func (r *DailyLogsRepo) Update(ctx context.Context, l dailylogs.DailyLog) error {
	res, err := r.s.db.ExecContext(ctx, r.s.db.Rebind(`
		UPDATE daily_logs
		SET
			morning_milk = ?,
			afternoon_milk = ?,
			evening_milk = ?,
			feed_amount = ?,
			water = ?,
			temperature = ?,
			health_observations = ?,
			activity = ?,
			notes = ?,
			updated_at = ?
		WHERE id = ?
	`),
		l.MorningMilk,
		l.AfternoonMilk,
		l.EveningMilk,
		l.FeedAmount,
		l.Water,
		nullFloat(l.Temperature),
		string(l.HealthObservations),
		string(l.Activity),
		l.Notes,
		r.s.stamp(l.UpdatedAt),
		l.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dailylogs.ErrNotFound
	}
	return nil
}

func (r *DailyLogsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, r.s.db.Rebind(`DELETE FROM daily_logs WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return dailylogs.ErrNotFound
	}
	return nil
}

// BulkDelete lee el resumen y borra dentro de la misma transacción.
func (r *DailyLogsRepo) BulkDelete(ctx context.Context, ids []string) (dailylogs.BulkDeleteResult, error) {
	if len(ids) == 0 {
		return dailylogs.BulkDeleteResult{}, nil
	}

	tx, err := r.s.db.BeginTxx(ctx, nil)
	if err != nil {
		return dailylogs.BulkDeleteResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	q, args, err := sqlx.In(`
		SELECT l.date AS date, a.name AS name
		FROM daily_logs l
		JOIN animals a ON a.id = l.animal_id
		WHERE l.id IN (?)
	`, ids)
	if err != nil {
		return dailylogs.BulkDeleteResult{}, err
	}
	var rows []struct {
		Date dbTime `db:"date"`
		Name string `db:"name"`
	}
	if err := tx.SelectContext(ctx, &rows, tx.Rebind(q), args...); err != nil {
		return dailylogs.BulkDeleteResult{}, err
	}

	q, args, err = sqlx.In(`DELETE FROM daily_logs WHERE id IN (?)`, ids)
	if err != nil {
		return dailylogs.BulkDeleteResult{}, err
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(q), args...)
	if err != nil {
		return dailylogs.BulkDeleteResult{}, err
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		return dailylogs.BulkDeleteResult{}, err
	}

	out := dailylogs.BulkDeleteResult{Deleted: int(n)}
	names := map[string]struct{}{}
	for _, row := range rows {
		if _, ok := names[row.Name]; !ok {
			names[row.Name] = struct{}{}
			out.AnimalNames = append(out.AnimalNames, row.Name)
		}
		d := dailylogs.Day(row.Date.Time)
		if out.From == nil || d.Before(*out.From) {
			from := d
			out.From = &from
		}
		if out.To == nil || d.After(*out.To) {
			to := d
			out.To = &to
		}
	}
	sort.Strings(out.AnimalNames)
	return out, nil
}

func (r *DailyLogsRepo) List(ctx context.Context, filter dailylogs.Filter) ([]dailylogs.Entry, error) {
	var (
		where []string
		args  []any
	)
	if filter.AnimalID != "" {
		where = append(where, "l.animal_id = ?")
		args = append(args, filter.AnimalID)
	}
	if filter.DateFrom != nil {
		where = append(where, "l.date >= ?")
		args = append(args, r.s.day(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		where = append(where, "l.date <= ?")
		args = append(args, r.s.day(*filter.DateTo))
	}
	if filter.Health != "" {
		where = append(where, "l.health_observations = ?")
		args = append(args, string(filter.Health))
	}
	if len(filter.HealthIn) > 0 {
		in := make([]string, 0, len(filter.HealthIn))
		for _, h := range filter.HealthIn {
			in = append(in, string(h))
		}
		where = append(where, "l.health_observations IN (?)")
		args = append(args, in)
	}

	q := selectLogs
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY l.date DESC, l.created_at DESC"
	if filter.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	q, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, err
	}

	var rows []logRow
	if err := r.s.db.SelectContext(ctx, &rows, r.s.db.Rebind(q), args...); err != nil {
		return nil, err
	}
	out := make([]dailylogs.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntry())
	}
	return out, nil
}

func (r *DailyLogsRepo) CountOnDate(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := r.s.db.GetContext(ctx, &n, r.s.db.Rebind(`SELECT COUNT(1) FROM daily_logs WHERE date = ?`), r.s.day(date))
	return n, err
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
