package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ConsultationGormRepository struct {
	db *gorm.DB
}

func NewConsultationGormRepository(db *gorm.DB) *ConsultationGormRepository {
	return &ConsultationGormRepository{db: db}
}

func (r *ConsultationGormRepository) withParties(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Patient.User").
		Preload("Doctor.User")
}

// --------------------------------------------------
// Consultation
// --------------------------------------------------

func (r *ConsultationGormRepository) Create(ctx context.Context, c *models.Consultation) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(c).Error)
}

func (r *ConsultationGormRepository) Get(ctx context.Context, id uint) (*models.Consultation, error) {
	var c models.Consultation
	if err := r.withParties(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ConsultationGormRepository) GetForUpdate(
	ctx context.Context,
	id uint,
) (*models.Consultation, error) {

	var c models.Consultation
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *ConsultationGormRepository) Save(ctx context.Context, c *models.Consultation) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(c).Error)
}

func (r *ConsultationGormRepository) List(
	ctx context.Context,
	f domain.Filter,
) ([]models.Consultation, error) {

	q := r.withParties(ctx)

	if f.Status != nil {
		q = q.Where("status = ?", string(*f.Status))
	}
	if f.PatientID != nil {
		q = q.Where("patient_id = ?", *f.PatientID)
	}
	if f.DoctorID != nil {
		q = q.Where("doctor_id = ?", *f.DoctorID)
	}

	var out []models.Consultation
	if err := q.Order("date ASC, time ASC, id ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

func (r *ConsultationGormRepository) PendingDoctorIDs(
	ctx context.Context,
	patientID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("patient_id = ? AND status = ?", patientID, string(domain.StatusScheduled)).
		Distinct("doctor_id").
		Pluck("doctor_id", &ids).Error; err != nil {
		return nil, translate(err)
	}
	return ids, nil
}

// --------------------------------------------------
// Attendance
// --------------------------------------------------

func (r *ConsultationGormRepository) CreateAttendance(ctx context.Context, a *models.Attendance) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error)
}

func (r *ConsultationGormRepository) GetAttendance(ctx context.Context, id uint) (*models.Attendance, error) {
	var a models.Attendance
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *ConsultationGormRepository) ListAttendances(
	ctx context.Context,
	f domain.AttendanceFilter,
) ([]models.Attendance, error) {

	q := r.db.WithContext(ctx)

	if f.ConsultationID != nil {
		q = q.Where("consultation_id = ?", *f.ConsultationID)
	}

	var out []models.Attendance
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, translate(err)
	}
	return out, nil
}

// Compile-time check
var _ domain.Repository = (*ConsultationGormRepository)(nil)
