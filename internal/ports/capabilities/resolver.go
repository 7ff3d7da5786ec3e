package capabilities

import "context"

type Capability string

const (
	AnimalsManage Capability = "animals:manage"
	LogsManage    Capability = "logs:manage"
	VetDashboard  Capability = "dashboard:vet"
)

// CapabilityCheck pregunta si un rol tiene una capability concreta.
type CapabilityCheck struct {
	Role       string
	Capability Capability
}

type CapabilitiesResolver interface {
	HasFeature(ctx context.Context, in CapabilityCheck) (bool, error)
	Resolve(ctx context.Context, role string) ([]Capability, error)
}
