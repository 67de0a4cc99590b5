package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const DateLayout = "2006-01-02"

type UserDTO struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type PatientDTO struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type DoctorDTO struct {
	ID          uint          `json:"id"`
	UserID      uint          `json:"user_id"`
	Code        string        `json:"code"`
	Phone       string        `json:"phone"`
	SpecialtyID uint          `json:"specialty_id"`
	Specialty   *SpecialtyDTO `json:"specialty,omitempty"`
}

// UserRoleDTO: só o perfil do papel do usuário vem preenchido; o outro é null.
type UserRoleDTO struct {
	User        UserDTO     `json:"user"`
	PatientData *PatientDTO `json:"patient_data"`
	DoctorData  *DoctorDTO  `json:"doctor_data"`
}

type LoginDTO struct {
	Token    string      `json:"token"`
	UserRole UserRoleDTO `json:"user_role"`
}

// DoctorListDTO é a linha da listagem de médicos.
type DoctorListDTO struct {
	DoctorDTO
	Name string `json:"name"`
}

type PatientListDTO struct {
	PatientDTO
	Name string `json:"name"`
}

func User(u models.User) UserDTO {
	return UserDTO{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
	}
}

func Patient(p models.Patient) PatientDTO {
	return PatientDTO{
		ID:        p.ID,
		UserID:    p.UserID,
		BirthDate: time.Time(p.BirthDate).Format(DateLayout),
		Gender:    p.Gender,
		Phone:     p.Phone,
		Address:   p.Address,
	}
}

func Doctor(d models.Doctor) DoctorDTO {
	out := DoctorDTO{
		ID:          d.ID,
		UserID:      d.UserID,
		Code:        d.Code,
		Phone:       d.Phone,
		SpecialtyID: d.SpecialtyID,
	}
	if d.Specialty.ID != 0 {
		s := Specialty(d.Specialty)
		out.Specialty = &s
	}
	return out
}

// UserRole monta o payload a partir de um usuário com perfil carregado.
func UserRole(u models.User) UserRoleDTO {
	out := UserRoleDTO{User: User(u)}

	switch u.Role {
	case "P":
		if u.Patient != nil {
			p := Patient(*u.Patient)
			out.PatientData = &p
		}
	case "D":
		if u.Doctor != nil {
			d := Doctor(*u.Doctor)
			out.DoctorData = &d
		}
	}
	return out
}

func UserRoles(users []models.User) []UserRoleDTO {
	out := make([]UserRoleDTO, 0, len(users))
	for _, u := range users {
		out = append(out, UserRole(u))
	}
	return out
}

func DoctorList(doctors []models.Doctor) []DoctorListDTO {
	out := make([]DoctorListDTO, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, DoctorListDTO{DoctorDTO: Doctor(d), Name: d.User.FullName()})
	}
	return out
}

func PatientList(patients []models.Patient) []PatientListDTO {
	out := make([]PatientListDTO, 0, len(patients))
	for _, p := range patients {
		out = append(out, PatientListDTO{PatientDTO: Patient(p), Name: p.User.FullName()})
	}
	return out
}
