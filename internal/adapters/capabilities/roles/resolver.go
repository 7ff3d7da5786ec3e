package roles

import (
	"context"
	"errors"
	"slices"
	"strings"

	"dairysync/internal/ports/capabilities"
)

var ErrUnknownRole = errors.New("unknown role")

// Resolver mapea roles de perfil a capabilities con una tabla fija.
// Si algún día los permisos salen de un servicio externo, se reemplaza este adapter.
type Resolver struct {
	byRole map[string][]capabilities.Capability
}

func NewResolver() *Resolver {
	return &Resolver{
		byRole: map[string][]capabilities.Capability{
			"farmer": {
				capabilities.AnimalsManage,
				capabilities.LogsManage,
			},
			"vet": {
				capabilities.AnimalsManage,
				capabilities.LogsManage,
				capabilities.VetDashboard,
			},
		},
	}
}

// Resolve devuelve las capabilities del rol. Rol desconocido => ErrUnknownRole
// (sin capabilities: preferimos negar antes que permitir sin control).
func (r *Resolver) Resolve(_ context.Context, role string) ([]capabilities.Capability, error) {
	caps, ok := r.byRole[strings.ToLower(strings.TrimSpace(role))]
	if !ok {
		return nil, ErrUnknownRole
	}
	return slices.Clone(caps), nil
}

func (r *Resolver) HasFeature(ctx context.Context, in capabilities.CapabilityCheck) (bool, error) {
	if strings.TrimSpace(string(in.Capability)) == "" {
		return false, errors.New("capability required")
	}
	caps, err := r.Resolve(ctx, in.Role)
	if err != nil {
		return false, err
	}
	return slices.Contains(caps, in.Capability), nil
}
