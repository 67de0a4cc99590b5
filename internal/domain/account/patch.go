package account

import (
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// HashFunc gera o hash de uma senha em texto puro.
type HashFunc func(plain string) (string, error)

// UserPatch é a edição parcial de uma conta. Campos nil não mudam.
type UserPatch struct {
	Username  *string
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
}

// Apply copia os campos presentes para u. A senha passa sempre por hash;
// o texto puro nunca chega ao modelo.
func (p UserPatch) Apply(u *models.User, hash HashFunc) error {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Password != nil {
		hashed, err := hash(*p.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hashed
	}
	return nil
}

type PatientPatch struct {
	BirthDate *time.Time
	Gender    *string
	Phone     *string
	Address   *string
}

func (p PatientPatch) Apply(pt *models.Patient) {
	if p.BirthDate != nil {
		pt.BirthDate = datatypes.Date(*p.BirthDate)
	}
	if p.Gender != nil {
		pt.Gender = *p.Gender
	}
	if p.Phone != nil {
		pt.Phone = *p.Phone
	}
	if p.Address != nil {
		pt.Address = *p.Address
	}
}

type DoctorPatch struct {
	Code        *string
	Phone       *string
	SpecialtyID *uint
}

func (p DoctorPatch) Apply(d *models.Doctor) {
	if p.Code != nil {
		d.Code = *p.Code
	}
	if p.Phone != nil {
		d.Phone = *p.Phone
	}
	if p.SpecialtyID != nil {
		d.SpecialtyID = *p.SpecialtyID
		d.Specialty = models.Specialty{}
	}
}
