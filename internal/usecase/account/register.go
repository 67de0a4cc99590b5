package account

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/metrics"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

// ======================================================
// INPUT
// ======================================================

type NewUser struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type RegisterPatientInput struct {
	User NewUser

	BirthDate time.Time
	Gender    string
	Phone     string
	Address   string
}

type RegisterDoctorInput struct {
	User NewUser

	Code        string
	Phone       string
	SpecialtyID uint
}

// ======================================================
// USE CASE
// ======================================================

// Register cria contas. Usuário e perfil nascem na mesma transação; a
// unicidade do username fica a cargo do banco.
type Register struct {
	store  store.Store
	hasher auth.Hasher
}

func NewRegister(s store.Store, hasher auth.Hasher) *Register {
	return &Register{store: s, hasher: hasher}
}

func (uc *Register) newUser(in NewUser, role domain.Role) (*models.User, error) {
	hashed, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	return &models.User{
		Username:     strings.TrimSpace(in.Username),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hashed,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         string(role),
		IsActive:     true,
	}, nil
}

// ======================================================
// PATIENT
// ======================================================

func (uc *Register) Patient(
	ctx context.Context,
	in RegisterPatientInput,
) (*models.User, error) {

	u, err := uc.newUser(in.User, domain.RolePatient)
	if err != nil {
		return nil, err
	}

	err = uc.store.Atomic(ctx, func(r store.Repos) error {
		if err := r.Accounts.CreateUser(ctx, u); err != nil {
			return err
		}

		p := &models.Patient{
			UserID:    u.ID,
			BirthDate: datatypes.Date(in.BirthDate),
			Gender:    in.Gender,
			Phone:     in.Phone,
			Address:   in.Address,
		}
		if err := r.Accounts.CreatePatient(ctx, p); err != nil {
			return err
		}
		u.Patient = p

		return r.Audit.Record(ctx, audit.Event{
			UserID:   audit.Ptr(u.ID),
			Action:   "patient_registered",
			Entity:   "user",
			EntityID: audit.Ptr(u.ID),
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(domain.RolePatient)).Inc()
	return u, nil
}

// ======================================================
// DOCTOR
// ======================================================

func (uc *Register) Doctor(
	ctx context.Context,
	actorID *uint,
	in RegisterDoctorInput,
) (*models.User, error) {

	u, err := uc.newUser(in.User, domain.RoleDoctor)
	if err != nil {
		return nil, err
	}

	err = uc.store.Atomic(ctx, func(r store.Repos) error {
		spec, err := r.Accounts.GetSpecialty(ctx, in.SpecialtyID)
		if err != nil {
			return orNotFound(err, errSpecialtyNotFound)
		}

		if err := r.Accounts.CreateUser(ctx, u); err != nil {
			return err
		}

		d := &models.Doctor{
			UserID:      u.ID,
			Code:        in.Code,
			Phone:       in.Phone,
			SpecialtyID: spec.ID,
		}
		if err := r.Accounts.CreateDoctor(ctx, d); err != nil {
			return err
		}
		d.Specialty = *spec
		u.Doctor = d

		return r.Audit.Record(ctx, audit.Event{
			UserID:   actorID,
			Action:   "doctor_registered",
			Entity:   "user",
			EntityID: audit.Ptr(u.ID),
			Metadata: map[string]any{"specialty_id": spec.ID},
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(domain.RoleDoctor)).Inc()
	return u, nil
}

// ======================================================
// ADMIN
// ======================================================

// Admin cria um administrador. Só o CLI chama.
func (uc *Register) Admin(ctx context.Context, in NewUser) (*models.User, error) {
	u, err := uc.newUser(in, domain.RoleAdmin)
	if err != nil {
		return nil, err
	}

	err = uc.store.Atomic(ctx, func(r store.Repos) error {
		if err := r.Accounts.CreateUser(ctx, u); err != nil {
			return err
		}
		return r.Audit.Record(ctx, audit.Event{
			Action:   "admin_created",
			Entity:   "user",
			EntityID: audit.Ptr(u.ID),
		})
	})
	if err != nil {
		return nil, err
	}

	metrics.AccountsRegisteredTotal.WithLabelValues(string(domain.RoleAdmin)).Inc()
	return u, nil
}
