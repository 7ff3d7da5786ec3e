package dailylogs

import (
	"math"
	"time"

	"dairysync/internal/domain/animals"
)

// DateLayout es el formato de fecha de calendario usado en forms, filtros y JSON.
const DateLayout = "2006-01-02"

// DailyLog es el registro de un animal para un día de calendario.
// Hay como máximo uno por (AnimalID, Date).
type DailyLog struct {
	ID       string
	AnimalID string

	// Date es un día de calendario: medianoche UTC, sin componente horaria.
	Date time.Time

	// Leche en litros
	MorningMilk   float64
	AfternoonMilk float64
	EveningMilk   float64

	FeedAmount float64 // kg
	Water      float64 // litros

	Temperature        *float64 // °C, opcional
	HealthObservations HealthObservation
	Activity           Activity
	Notes              string

	// CreatedBy queda nil si el log se creó sin sesión o si se borró la cuenta.
	CreatedBy *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalMilk no se persiste; se calcula siempre a partir de los tres ordeñes.
func (l DailyLog) TotalMilk() float64 {
	return round3(l.MorningMilk + l.AfternoonMilk + l.EveningMilk)
}

// Entry es un log junto con su animal (lo que devuelven los listados).
type Entry struct {
	Log    DailyLog
	Animal animals.Animal
}

// Day normaliza t a su día de calendario (en la zona de t) como medianoche UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
