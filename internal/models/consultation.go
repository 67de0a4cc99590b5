package models

import (
	"time"

	"gorm.io/datatypes"
)

type Consultation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Date datatypes.Date `gorm:"not null" json:"date"`
	Time datatypes.Time `gorm:"not null" json:"time"`

	// S = agendada, F = finalizada, C = cancelada
	Status       string `gorm:"size:1;not null;default:'S'" json:"status"`
	Observations string `gorm:"size:200;not null;default:''" json:"observations"`

	PatientID uint    `gorm:"not null;index" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	DoctorID uint   `gorm:"not null;index" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CanceledAt *time.Time `json:"canceled_at"`
	FinishedAt *time.Time `json:"finished_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Attendance struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Observations string `gorm:"type:text;not null" json:"observations"`

	ConsultationID uint         `gorm:"not null;index" json:"consultation_id"`
	Consultation   Consultation `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
