package dto

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AuditLogDTO struct {
	ID       uint            `json:"id"`
	UserID   *uint           `json:"user_id"`
	Action   string          `json:"action"`
	Entity   string          `json:"entity"`
	EntityID *uint           `json:"entity_id"`
	Metadata json.RawMessage `json:"metadata"`
	At       time.Time       `json:"created_at"`
}

// AuditLog devolve metadata como JSON aninhado; texto inválido vira null.
func AuditLog(l models.AuditLog) AuditLogDTO {
	out := AuditLogDTO{
		ID:       l.ID,
		UserID:   l.UserID,
		Action:   l.Action,
		Entity:   l.Entity,
		EntityID: l.EntityID,
		At:       l.CreatedAt,
	}
	if l.Metadata != "" && json.Valid([]byte(l.Metadata)) {
		out.Metadata = json.RawMessage(l.Metadata)
	}
	return out
}

func AuditLogs(list []models.AuditLog) []AuditLogDTO {
	out := make([]AuditLogDTO, 0, len(list))
	for _, l := range list {
		out = append(out, AuditLog(l))
	}
	return out
}
