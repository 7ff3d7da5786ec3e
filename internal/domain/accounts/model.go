package accounts

import "time"

// Role del perfil. No se puede cambiar después del registro.
// @Enum farmer, vet
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleVet    Role = "vet"
)

func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleVet
}

type Account struct {
	ID       string
	Email    string
	Username string

	FirstName string
	LastName  string

	PasswordHash string

	CreatedAt time.Time
}

func (a Account) FullName() string {
	if a.LastName == "" {
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Profile es 1:1 con Account.
type Profile struct {
	AccountID string
	Phone     string
	FarmName  string
	Role      Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Principal es lo que devuelve un login correcto: cuenta + perfil resueltos una vez.
type Principal struct {
	Account Account
	Profile Profile
}
