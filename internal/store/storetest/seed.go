package storetest

import (
	"context"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Atalhos de fixture. Falhas de seed são bug do teste, então entram em pânico.

func must(err error) {
	if err != nil {
		panic(err)
	}
}

func (m *MemoryStore) SeedSpecialty(description string) models.Specialty {
	s := &models.Specialty{Description: description}
	must(m.Repos().Accounts.CreateSpecialty(context.Background(), s))
	return *s
}

func (m *MemoryStore) seedUser(username, role string) *models.User {
	u := &models.User{
		Username:     username,
		Email:        username + "@clinic.test",
		PasswordHash: "x",
		FirstName:    username,
		LastName:     "Silva",
		Role:         role,
		IsActive:     true,
	}
	must(m.Repos().Accounts.CreateUser(context.Background(), u))
	return u
}

// SeedPatient cria usuário P + perfil e devolve o usuário com o perfil.
func (m *MemoryStore) SeedPatient(username string) models.User {
	u := m.seedUser(username, "P")
	p := &models.Patient{
		UserID:    u.ID,
		BirthDate: datatypes.Date(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)),
		Gender:    models.GenderMale,
		Phone:     "11999999999",
		Address:   "Rua A",
	}
	must(m.Repos().Accounts.CreatePatient(context.Background(), p))
	u.Patient = p
	return *u
}

func (m *MemoryStore) SeedDoctor(username string, specialtyID uint) models.User {
	u := m.seedUser(username, "D")
	d := &models.Doctor{
		UserID:      u.ID,
		Code:        "CRM" + username,
		Phone:       "1133334444",
		SpecialtyID: specialtyID,
	}
	must(m.Repos().Accounts.CreateDoctor(context.Background(), d))
	u.Doctor = d
	return *u
}

func (m *MemoryStore) SeedAdmin(username string) models.User {
	return *m.seedUser(username, "A")
}

// SeedConsultation agenda uma consulta com status S.
func (m *MemoryStore) SeedConsultation(patientID, doctorID uint) models.Consultation {
	c := &models.Consultation{
		Date:      datatypes.Date(time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)),
		Time:      datatypes.NewTime(9, 30, 0, 0),
		Status:    "S",
		PatientID: patientID,
		DoctorID:  doctorID,
	}
	must(m.Repos().Consultations.Create(context.Background(), c))
	return *c
}
