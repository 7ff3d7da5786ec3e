package health

import (
	"context"
	"iter"
	"time"

	"dairysync/internal/domain/animals"
	"dairysync/internal/domain/dailylogs"
)

const (
	// AttentionWindowDays: ventana (inclusive) para marcar animales con alertas.
	AttentionWindowDays = 7
	// RecentIssuesLimit: tamaño del feed de problemas recientes.
	RecentIssuesLimit = 10
)

type LogSource interface {
	List(ctx context.Context, filter dailylogs.Filter) iter.Seq2[dailylogs.Entry, error]
	CountOnDate(ctx context.Context, date time.Time) (int, error)
}

type AnimalCounter interface {
	Count(ctx context.Context) (int, error)
}

// AttentionRecord: el log preocupante más reciente de un animal dentro de la ventana.
type AttentionRecord struct {
	Animal             animals.Animal
	Log                dailylogs.DailyLog
	HealthObservations dailylogs.HealthObservation
	Date               time.Time
}

type Dashboard struct {
	Today time.Time

	TotalAnimals int
	TodayLogs    int

	AnimalsNeedingAttention []AttentionRecord
	RecentHealthIssues      []dailylogs.Entry
}

type Service struct {
	animals AnimalCounter
	logs    LogSource
	loc     *time.Location
	now     func() time.Time
}

func NewService(animals AnimalCounter, logs LogSource, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		animals: animals,
		logs:    logs,
		loc:     loc,
		now:     time.Now,
	}
}

// Dashboard calcula la vista veterinaria "a hoy". Solo lectura.
// Se basa únicamente en health_observations de los logs; el health_status
// del animal es otro concepto y no se mezcla aquí.
func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	today := dailylogs.Day(s.now().In(s.loc))
	from := today.AddDate(0, 0, -AttentionWindowDays)

	total, err := s.animals.Count(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	todayLogs, err := s.logs.CountOnDate(ctx, today)
	if err != nil {
		return Dashboard{}, err
	}

	// Los logs vienen ordenados por fecha desc, así que el primero por animal es el más reciente.
	attention := make([]AttentionRecord, 0)
	seen := map[string]struct{}{}
	for e, err := range s.logs.List(ctx, dailylogs.Filter{
		DateFrom: &from,
		DateTo:   &today,
		HealthIn: dailylogs.ConcerningObservations,
	}) {
		if err != nil {
			return Dashboard{}, err
		}
		if _, ok := seen[e.Log.AnimalID]; ok {
			continue
		}
		seen[e.Log.AnimalID] = struct{}{}
		attention = append(attention, AttentionRecord{
			Animal:             e.Animal,
			Log:                e.Log,
			HealthObservations: e.Log.HealthObservations,
			Date:               e.Log.Date,
		})
	}

	recent, err := dailylogs.Collect(s.logs.List(ctx, dailylogs.Filter{
		HealthIn: dailylogs.ConcerningObservations,
		Limit:    RecentIssuesLimit,
	}))
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Today:                   today,
		TotalAnimals:            total,
		TodayLogs:               todayLogs,
		AnimalsNeedingAttention: attention,
		RecentHealthIssues:      recent,
	}, nil
}
