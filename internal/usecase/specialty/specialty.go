package specialty

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

var errNotFound = httperr.ErrNotFound("specialty_not_found", "Especialidade não existe.")

type Specialties struct {
	store store.Store
}

func NewSpecialties(s store.Store) *Specialties {
	return &Specialties{store: s}
}

func (uc *Specialties) List(ctx context.Context) ([]models.Specialty, error) {
	return uc.store.Repos().Accounts.ListSpecialties(ctx)
}

func (uc *Specialties) Create(ctx context.Context, actorID *uint, description string) (*models.Specialty, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, httperr.ErrValidation("invalid_request", "description é obrigatório")
	}

	s := &models.Specialty{Description: description}
	err := uc.store.Atomic(ctx, func(r store.Repos) error {
		if err := r.Accounts.CreateSpecialty(ctx, s); err != nil {
			return err
		}
		return r.Audit.Record(ctx, audit.Event{
			UserID:   actorID,
			Action:   "specialty_created",
			Entity:   "specialty",
			EntityID: audit.Ptr(s.ID),
		})
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Delete falha com PersistenceError enquanto algum médico referenciar a
// especialidade.
func (uc *Specialties) Delete(ctx context.Context, actorID *uint, id uint) error {
	return uc.store.Atomic(ctx, func(r store.Repos) error {
		if err := r.Accounts.DeleteSpecialty(ctx, id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return errNotFound
			}
			return err
		}
		return r.Audit.Record(ctx, audit.Event{
			UserID:   actorID,
			Action:   "specialty_deleted",
			Entity:   "specialty",
			EntityID: audit.Ptr(id),
		})
	})
}
