package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ConsultationDTO struct {
	ID           uint       `json:"id"`
	Date         string     `json:"date"`
	Time         string     `json:"time"`
	Status       string     `json:"status"`
	Observations string     `json:"observations"`
	PatientID    uint       `json:"patient_id"`
	PatientName  string     `json:"patient_name"`
	DoctorID     uint       `json:"doctor_id"`
	DoctorName   string     `json:"doctor_name"`
	CanceledAt   *time.Time `json:"canceled_at"`
	FinishedAt   *time.Time `json:"finished_at"`
}

type AttendanceDTO struct {
	ID             uint      `json:"id"`
	Observations   string    `json:"observations"`
	ConsultationID uint      `json:"consultation_id"`
	CreatedAt      time.Time `json:"created_at"`
}

type SpecialtyDTO struct {
	ID          uint   `json:"id"`
	Description string `json:"description"`
}

func Consultation(c models.Consultation) ConsultationDTO {
	return ConsultationDTO{
		ID:           c.ID,
		Date:         time.Time(c.Date).Format(DateLayout),
		Time:         c.Time.String(),
		Status:       c.Status,
		Observations: c.Observations,
		PatientID:    c.PatientID,
		PatientName:  c.Patient.User.FullName(),
		DoctorID:     c.DoctorID,
		DoctorName:   c.Doctor.User.FullName(),
		CanceledAt:   c.CanceledAt,
		FinishedAt:   c.FinishedAt,
	}
}

func Consultations(list []models.Consultation) []ConsultationDTO {
	out := make([]ConsultationDTO, 0, len(list))
	for _, c := range list {
		out = append(out, Consultation(c))
	}
	return out
}

func Attendance(a models.Attendance) AttendanceDTO {
	return AttendanceDTO{
		ID:             a.ID,
		Observations:   a.Observations,
		ConsultationID: a.ConsultationID,
		CreatedAt:      a.CreatedAt,
	}
}

func Attendances(list []models.Attendance) []AttendanceDTO {
	out := make([]AttendanceDTO, 0, len(list))
	for _, a := range list {
		out = append(out, Attendance(a))
	}
	return out
}

func Specialty(s models.Specialty) SpecialtyDTO {
	return SpecialtyDTO{ID: s.ID, Description: s.Description}
}

func Specialties(list []models.Specialty) []SpecialtyDTO {
	out := make([]SpecialtyDTO, 0, len(list))
	for _, s := range list {
		out = append(out, Specialty(s))
	}
	return out
}
