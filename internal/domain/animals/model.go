package animals

import "time"

// Gender define el sexo del animal.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// HealthStatus es el estado de salud "permanente" del animal.
// No confundir con la observación diaria de dailylogs.
// @Enum healthy, sick, recovering, unknown
type HealthStatus string

const (
	HealthHealthy    HealthStatus = "healthy"
	HealthSick       HealthStatus = "sick"
	HealthRecovering HealthStatus = "recovering"
	HealthUnknown    HealthStatus = "unknown"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

func (h HealthStatus) Valid() bool {
	switch h {
	case HealthHealthy, HealthSick, HealthRecovering, HealthUnknown:
		return true
	}
	return false
}

// Animal representa un animal registrado en la granja.
type Animal struct {
	ID string

	Name    string
	Species string
	Breed   string
	Gender  Gender

	HealthStatus HealthStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
