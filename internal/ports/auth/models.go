package auth

import (
	"slices"
	"strings"

	"dairysync/internal/ports/capabilities"
)

// Claims representa al usuario de la sesión.
// El rol y las capabilities se resuelven una sola vez al autenticar;
// los handlers no vuelven a consultar el perfil.
type Claims struct {
	UserID string
	Email  string
	Name   string

	UserRole     string
	Capabilities []capabilities.Capability
}

func (c Claims) Authenticated() bool {
	return strings.TrimSpace(c.UserID) != ""
}

func (c Claims) Role() string {
	return c.UserRole
}

func (c Claims) Can(capability capabilities.Capability) bool {
	return slices.Contains(c.Capabilities, capability)
}
