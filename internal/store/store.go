// Package store define a fronteira transacional usada pelos use cases.
package store

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
)

// ErrNotFound é devolvido pelos repositórios quando a linha não existe.
var ErrNotFound = errors.New("record not found")

// Repos agrupa os repositórios ligados a uma mesma conexão ou transação.
type Repos struct {
	Accounts      account.Repository
	Consultations consultation.Repository
	Audit         audit.Store
}

type Store interface {
	// Repos fora de transação, para leituras.
	Repos() Repos

	// Atomic executa fn numa transação. Retorno com erro (ou pânico) faz
	// rollback de tudo; nil faz commit.
	Atomic(ctx context.Context, fn func(r Repos) error) error
}
