package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AccountGormRepository struct {
	db *gorm.DB
}

func NewAccountGormRepository(db *gorm.DB) *AccountGormRepository {
	return &AccountGormRepository{db: db}
}

func (r *AccountGormRepository) withProfiles(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.Specialty")
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AccountGormRepository) CreateUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(u).Error)
}

func (r *AccountGormRepository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.withProfiles(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *AccountGormRepository) FindUserByUsername(
	ctx context.Context,
	username string,
) (*models.User, error) {

	var u models.User
	if err := r.withProfiles(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *AccountGormRepository) ListUsers(
	ctx context.Context,
	f account.UserFilter,
) ([]models.User, error) {

	q := r.withProfiles(ctx)

	if f.ID != nil {
		q = q.Where("id = ?", *f.ID)
	}
	if f.Role != nil {
		q = q.Where("role = ?", string(*f.Role))
	}

	var users []models.User
	if err := q.Order("id ASC").Find(&users).Error; err != nil {
		return nil, translate(err)
	}
	return users, nil
}

func (r *AccountGormRepository) SaveUser(ctx context.Context, u *models.User) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(u).Error)
}

func (r *AccountGormRepository) DeleteUser(ctx context.Context, id uint) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.User{}, id))
}

// --------------------------------------------------
// Patients
// --------------------------------------------------

func (r *AccountGormRepository) CreatePatient(ctx context.Context, p *models.Patient) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error)
}

func (r *AccountGormRepository) SavePatient(ctx context.Context, p *models.Patient) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error)
}

func (r *AccountGormRepository) DeletePatient(ctx context.Context, id uint) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Patient{}, id))
}

func (r *AccountGormRepository) GetPatient(ctx context.Context, id uint) (*models.Patient, error) {
	var p models.Patient
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *AccountGormRepository) ListPatients(
	ctx context.Context,
	f account.PatientFilter,
) ([]models.Patient, error) {

	q := r.db.WithContext(ctx).Preload("User")

	if f.ID != nil {
		q = q.Where("id = ?", *f.ID)
	}

	var patients []models.Patient
	if err := q.Order("id ASC").Find(&patients).Error; err != nil {
		return nil, translate(err)
	}
	return patients, nil
}

// --------------------------------------------------
// Doctors
// --------------------------------------------------

func (r *AccountGormRepository) CreateDoctor(ctx context.Context, d *models.Doctor) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(d).Error)
}

func (r *AccountGormRepository) SaveDoctor(ctx context.Context, d *models.Doctor) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(d).Error)
}

func (r *AccountGormRepository) DeleteDoctor(ctx context.Context, id uint) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Doctor{}, id))
}

func (r *AccountGormRepository) GetDoctor(ctx context.Context, id uint) (*models.Doctor, error) {
	var d models.Doctor
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Specialty").
		First(&d, id).Error; err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

func (r *AccountGormRepository) ListDoctors(
	ctx context.Context,
	f account.DoctorFilter,
) ([]models.Doctor, error) {

	q := r.db.WithContext(ctx).
		Preload("User").
		Preload("Specialty")

	if f.ID != nil {
		q = q.Where("doctors.id = ?", *f.ID)
	}

	if m := f.Membership; m != nil {
		switch {
		case m.In && len(m.IDs) == 0:
			return []models.Doctor{}, nil
		case m.In:
			q = q.Where("doctors.id IN ?", m.IDs)
		case len(m.IDs) > 0:
			// NOT IN com lista vazia não filtra nada; só aplica com ids.
			q = q.Where("doctors.id NOT IN ?", m.IDs)
		}
	}

	var doctors []models.Doctor
	if err := q.Order("doctors.id ASC").Find(&doctors).Error; err != nil {
		return nil, translate(err)
	}
	return doctors, nil
}

// --------------------------------------------------
// Specialties
// --------------------------------------------------

func (r *AccountGormRepository) CreateSpecialty(ctx context.Context, s *models.Specialty) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *AccountGormRepository) GetSpecialty(ctx context.Context, id uint) (*models.Specialty, error) {
	var s models.Specialty
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *AccountGormRepository) ListSpecialties(ctx context.Context) ([]models.Specialty, error) {
	var out []models.Specialty
	if err := r.db.WithContext(ctx).Order("description ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *AccountGormRepository) DeleteSpecialty(ctx context.Context, id uint) error {
	return deleted(r.db.WithContext(ctx).Delete(&models.Specialty{}, id))
}

// Compile-time check
var _ account.Repository = (*AccountGormRepository)(nil)
