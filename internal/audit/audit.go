package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type Query struct {
	Action string
	Entity string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// Store grava eventos de auditoria. Dentro de uma transação, o evento é
// confirmado ou desfeito junto com a mutação que o gerou.
type Store interface {
	Record(ctx context.Context, ev Event) error
	List(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

// Ptr ajuda a preencher UserID/EntityID.
func Ptr(v uint) *uint {
	return &v
}
