package consultation

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Filter: igualdade exata em cada campo preenchido.
type Filter struct {
	Status    *Status
	PatientID *uint
	DoctorID  *uint
}

type AttendanceFilter struct {
	ConsultationID *uint
}

type Repository interface {
	// -------- Consultation --------
	Create(ctx context.Context, c *models.Consultation) error

	// Get carrega paciente e médico com seus usuários.
	Get(ctx context.Context, id uint) (*models.Consultation, error)

	// GetForUpdate trava a linha até o fim da transação.
	GetForUpdate(ctx context.Context, id uint) (*models.Consultation, error)

	Save(ctx context.Context, c *models.Consultation) error
	List(ctx context.Context, f Filter) ([]models.Consultation, error)

	// PendingDoctorIDs: médicos distintos com consulta agendada (S) para o paciente.
	PendingDoctorIDs(ctx context.Context, patientID uint) ([]uint, error)

	// -------- Attendance --------
	CreateAttendance(ctx context.Context, a *models.Attendance) error
	GetAttendance(ctx context.Context, id uint) (*models.Attendance, error)
	ListAttendances(ctx context.Context, f AttendanceFilter) ([]models.Attendance, error)
}
