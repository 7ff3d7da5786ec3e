package dailylogs

// HealthObservation es la observación de salud del día.
// @Enum normal, slight_concern, needs_attention, critical
type HealthObservation string

const (
	ObservationNormal         HealthObservation = "normal"
	ObservationSlightConcern  HealthObservation = "slight_concern"
	ObservationNeedsAttention HealthObservation = "needs_attention"
	ObservationCritical       HealthObservation = "critical"
)

// ConcerningObservations son las que disparan alertas en el dashboard veterinario.
// slight_concern queda fuera a propósito.
var ConcerningObservations = []HealthObservation{
	ObservationNeedsAttention,
	ObservationCritical,
}

func (h HealthObservation) Valid() bool {
	switch h {
	case ObservationNormal, ObservationSlightConcern, ObservationNeedsAttention, ObservationCritical:
		return true
	}
	return false
}

func (h HealthObservation) Concerning() bool {
	return h == ObservationNeedsAttention || h == ObservationCritical
}

// Activity es la actividad principal del día.
// @Enum grazing, resting, medical_treatment, exercise, breeding, other
type Activity string

const (
	ActivityGrazing          Activity = "grazing"
	ActivityResting          Activity = "resting"
	ActivityMedicalTreatment Activity = "medical_treatment"
	ActivityExercise         Activity = "exercise"
	ActivityBreeding         Activity = "breeding"
	ActivityOther            Activity = "other"
)

func (a Activity) Valid() bool {
	switch a {
	case ActivityGrazing, ActivityResting, ActivityMedicalTreatment, ActivityExercise, ActivityBreeding, ActivityOther:
		return true
	}
	return false
}
