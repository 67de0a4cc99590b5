package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func reposFor(db *gorm.DB) store.Repos {
	return store.Repos{
		Accounts:      NewAccountGormRepository(db),
		Consultations: NewConsultationGormRepository(db),
		Audit:         audit.New(db),
	}
}

func (s *GormStore) Repos() store.Repos {
	return reposFor(s.db)
}

// Atomic usa db.Transaction: rollback em erro ou pânico, commit em nil.
func (s *GormStore) Atomic(ctx context.Context, fn func(r store.Repos) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

var _ store.Store = (*GormStore)(nil)
