package dailylogs

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Fields son los campos editables de un log (todo menos animal y fecha).
type Fields struct {
	MorningMilk   float64
	AfternoonMilk float64
	EveningMilk   float64
	FeedAmount    float64
	Water         float64

	Temperature        *float64
	HealthObservations HealthObservation
	Activity           Activity
	Notes              string
}

// ValidationError junta los mensajes de todos los campos inválidos.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid daily log: " + strings.Join(e.Messages, " ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

func (e *ValidationError) add(msg string) {
	e.Messages = append(e.Messages, msg)
}

func (e *ValidationError) orNil() error {
	if e == nil || len(e.Messages) == 0 {
		return nil
	}
	return e
}

// ParseDate acepta YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// Topes de las columnas NUMERIC(10,3) y NUMERIC(6,3) en Postgres.
const (
	maxQuantity    = 9999999.999
	maxTemperature = 999.999
)

// ParseFields lee los campos del formulario. Vacío => 0 para cantidades,
// nil para temperatura, normal/grazing para los enums.
func ParseFields(form url.Values) (Fields, error) {
	verr := &ValidationError{}

	f := Fields{
		MorningMilk:        decimal(form, verr, "Morning milk", "morning_milk"),
		AfternoonMilk:      decimal(form, verr, "Afternoon milk", "afternoon_milk"),
		EveningMilk:        decimal(form, verr, "Evening milk", "evening_milk"),
		FeedAmount:         decimal(form, verr, "Feed amount", "feed_amount"),
		Water:              decimal(form, verr, "Water consumption", "water_consumption", "water"),
		HealthObservations: HealthObservation(first(form, "health_observation", "health_observations")),
		Activity:           Activity(first(form, "activity")),
		Notes:              strings.TrimSpace(form.Get("notes")),
	}

	if raw := first(form, "temperature"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
			verr.add("Temperature must be a number.")
		} else {
			t = round3(t)
			f.Temperature = &t
		}
	}

	if err := verr.orNil(); err != nil {
		return Fields{}, err
	}
	return f, nil
}

// normalize aplica defaults y valida rangos/enums.
func (f Fields) normalize() (Fields, error) {
	verr := &ValidationError{}

	if f.HealthObservations == "" {
		f.HealthObservations = ObservationNormal
	}
	if f.Activity == "" {
		f.Activity = ActivityGrazing
	}
	if !f.HealthObservations.Valid() {
		verr.add("Please select a valid health observation.")
	}
	if !f.Activity.Valid() {
		verr.add("Please select a valid activity.")
	}

	for _, q := range []struct {
		label string
		v     float64
	}{
		{"Morning milk", f.MorningMilk},
		{"Afternoon milk", f.AfternoonMilk},
		{"Evening milk", f.EveningMilk},
		{"Feed amount", f.FeedAmount},
		{"Water consumption", f.Water},
	} {
		switch {
		case q.v < 0:
			verr.add(q.label + " cannot be negative.")
		case round3(q.v) > maxQuantity:
			verr.add(q.label + " must be at most " + strconv.FormatFloat(maxQuantity, 'f', -1, 64) + ".")
		}
	}
	if f.Temperature != nil {
		t := round3(*f.Temperature)
		if math.Abs(t) > maxTemperature {
			verr.add("Temperature must be between -999.999 and 999.999.")
		} else {
			f.Temperature = &t
		}
	}

	f.MorningMilk = round3(f.MorningMilk)
	f.AfternoonMilk = round3(f.AfternoonMilk)
	f.EveningMilk = round3(f.EveningMilk)
	f.FeedAmount = round3(f.FeedAmount)
	f.Water = round3(f.Water)
	f.Notes = strings.TrimSpace(f.Notes)

	if err := verr.orNil(); err != nil {
		return Fields{}, err
	}
	return f, nil
}

// ParseFilter lee los filtros de /manage-logs. Vacío => sin restricción.
func ParseFilter(q url.Values) (Filter, error) {
	verr := &ValidationError{}
	f := Filter{AnimalID: strings.TrimSpace(q.Get("animal"))}

	if v := strings.TrimSpace(q.Get("date_from")); v != "" {
		t, err := ParseDate(v)
		if err != nil {
			verr.add("date_from must be YYYY-MM-DD.")
		} else {
			f.DateFrom = &t
		}
	}
	if v := strings.TrimSpace(q.Get("date_to")); v != "" {
		t, err := ParseDate(v)
		if err != nil {
			verr.add("date_to must be YYYY-MM-DD.")
		} else {
			f.DateTo = &t
		}
	}
	if v := strings.TrimSpace(q.Get("health")); v != "" {
		h := HealthObservation(v)
		if !h.Valid() {
			verr.add("Please select a valid health observation.")
		} else {
			f.Health = h
		}
	}

	if err := verr.orNil(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

// Query es la inversa de ParseFilter (para redirect_to tras un bulk delete).
func (f Filter) Query() url.Values {
	q := url.Values{}
	if f.AnimalID != "" {
		q.Set("animal", f.AnimalID)
	}
	if f.DateFrom != nil {
		q.Set("date_from", f.DateFrom.Format(DateLayout))
	}
	if f.DateTo != nil {
		q.Set("date_to", f.DateTo.Format(DateLayout))
	}
	if f.Health != "" {
		q.Set("health", string(f.Health))
	}
	return q
}

func decimal(form url.Values, verr *ValidationError, label string, keys ...string) float64 {
	raw := first(form, keys...)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		verr.add(label + " must be a number.")
		return 0
	}
	return v
}

func first(form url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(form.Get(k)); v != "" {
			return v
		}
	}
	return ""
}
