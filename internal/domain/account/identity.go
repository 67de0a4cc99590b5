package account

import (
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Profile é o perfil ligado à conta. Exatamente um dos tipos abaixo.
type Profile interface {
	Role() Role
}

type PatientProfile struct {
	Patient models.Patient
}

func (PatientProfile) Role() Role { return RolePatient }

type DoctorProfile struct {
	Doctor models.Doctor
}

func (DoctorProfile) Role() Role { return RoleDoctor }

type AdminProfile struct{}

func (AdminProfile) Role() Role { return RoleAdmin }

// Identity é o chamador autenticado. Resolvida uma vez pelo middleware e
// carregada no contexto da requisição.
type Identity struct {
	User    models.User
	Profile Profile
}

// IdentityFor monta a identidade a partir de um usuário com o perfil
// pré-carregado. Falha se o perfil exigido pelo papel estiver ausente.
func IdentityFor(u *models.User) (Identity, error) {
	role, err := ParseRole(u.Role)
	if err != nil {
		return Identity{}, err
	}

	id := Identity{User: *u}
	id.User.Patient = nil
	id.User.Doctor = nil

	switch role {
	case RolePatient:
		if u.Patient == nil {
			return Identity{}, fmt.Errorf("user %d has role P but no patient profile", u.ID)
		}
		id.Profile = PatientProfile{Patient: *u.Patient}
	case RoleDoctor:
		if u.Doctor == nil {
			return Identity{}, fmt.Errorf("user %d has role D but no doctor profile", u.ID)
		}
		id.Profile = DoctorProfile{Doctor: *u.Doctor}
	default:
		id.Profile = AdminProfile{}
	}

	return id, nil
}

func (i Identity) UserID() uint {
	return i.User.ID
}

func (i Identity) Role() Role {
	if i.Profile == nil {
		return ""
	}
	return i.Profile.Role()
}

func (i Identity) Patient() (models.Patient, bool) {
	p, ok := i.Profile.(PatientProfile)
	return p.Patient, ok
}

func (i Identity) Doctor() (models.Doctor, bool) {
	d, ok := i.Profile.(DoctorProfile)
	return d.Doctor, ok
}

func (i Identity) IsAdmin() bool {
	_, ok := i.Profile.(AdminProfile)
	return ok
}
