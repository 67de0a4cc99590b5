package account

import "fmt"

type Role string

const (
	RolePatient Role = "P"
	RoleDoctor  Role = "D"
	RoleAdmin   Role = "A"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleDoctor, RoleAdmin:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}
