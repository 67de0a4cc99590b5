package account

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type UserFilter struct {
	ID   *uint
	Role *Role
}

// IDMembership restringe a listagem aos ids do conjunto (In=true) ou aos
// que estão fora dele (In=false).
type IDMembership struct {
	IDs []uint
	In  bool
}

type DoctorFilter struct {
	ID         *uint
	Membership *IDMembership
}

type PatientFilter struct {
	ID *uint
}

type Repository interface {
	// -------- Users --------
	CreateUser(ctx context.Context, u *models.User) error

	// GetUser carrega o usuário com o perfil do papel (e a especialidade,
	// no caso de médico).
	GetUser(ctx context.Context, id uint) (*models.User, error)

	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	ListUsers(ctx context.Context, f UserFilter) ([]models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uint) error

	// -------- Profiles --------
	CreatePatient(ctx context.Context, p *models.Patient) error
	SavePatient(ctx context.Context, p *models.Patient) error
	DeletePatient(ctx context.Context, id uint) error
	GetPatient(ctx context.Context, id uint) (*models.Patient, error)
	ListPatients(ctx context.Context, f PatientFilter) ([]models.Patient, error)

	CreateDoctor(ctx context.Context, d *models.Doctor) error
	SaveDoctor(ctx context.Context, d *models.Doctor) error
	DeleteDoctor(ctx context.Context, id uint) error
	GetDoctor(ctx context.Context, id uint) (*models.Doctor, error)
	ListDoctors(ctx context.Context, f DoctorFilter) ([]models.Doctor, error)

	// -------- Specialties --------
	CreateSpecialty(ctx context.Context, s *models.Specialty) error
	GetSpecialty(ctx context.Context, id uint) (*models.Specialty, error)
	ListSpecialties(ctx context.Context) ([]models.Specialty, error)
	DeleteSpecialty(ctx context.Context, id uint) error
}
