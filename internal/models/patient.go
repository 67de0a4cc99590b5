package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	GenderMale   = "M"
	GenderFemale = "F"
)

type Patient struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	BirthDate datatypes.Date `gorm:"not null" json:"birth_date"`
	Gender    string         `gorm:"size:1;not null" json:"gender"`
	Phone     string         `gorm:"size:11" json:"phone"`
	Address   string         `gorm:"size:200" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
