package specialty

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store/storetest"
)

func TestCreateAndList(t *testing.T) {
	m := storetest.New()
	uc := NewSpecialties(m)

	if _, err := uc.Create(context.Background(), nil, "   "); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	s, err := uc.Create(context.Background(), nil, " Cardiologia ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.ID == 0 || s.Description != "Cardiologia" {
		t.Fatalf("unexpected specialty %+v", s)
	}

	list, err := uc.List(context.Background())
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %+v", err, list)
	}
	if len(m.AuditLogs()) != 1 {
		t.Fatalf("expected one audit row")
	}
}

func TestDelete(t *testing.T) {
	m := storetest.New()
	uc := NewSpecialties(m)

	used := m.SeedSpecialty("Cardiologia")
	free := m.SeedSpecialty("Neurologia")
	m.SeedDoctor("house", used.ID)

	if err := uc.Delete(context.Background(), nil, 999); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := uc.Delete(context.Background(), nil, used.ID); !httperr.IsKind(err, httperr.KindPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if err := uc.Delete(context.Background(), nil, free.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, _ := uc.List(context.Background())
	if len(list) != 1 || list[0].ID != used.ID {
		t.Fatalf("unexpected specialties %+v", list)
	}
}
