package models

import "time"

type Specialty struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Description string `gorm:"size:200;not null" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}

type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Code  string `gorm:"size:10;not null" json:"code"`
	Phone string `gorm:"size:11" json:"phone"`

	SpecialtyID uint      `gorm:"not null" json:"specialty_id"`
	Specialty   Specialty `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"specialty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
