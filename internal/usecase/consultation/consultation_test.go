package consultation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store/storetest"
)

var fixedNow = time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

type fixture struct {
	m       *storetest.MemoryStore
	patient account.Identity
	doctor  account.Identity
	doc     models.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	m := storetest.New()
	spec := m.SeedSpecialty("Clínica geral")
	doc := m.SeedDoctor("house", spec.ID)
	joao := m.SeedPatient("joao")

	return fixture{
		m:       m,
		patient: identity(t, m, joao.ID),
		doctor:  identity(t, m, doc.ID),
		doc:     doc,
	}
}

func identity(t *testing.T, m *storetest.MemoryStore, userID uint) account.Identity {
	t.Helper()
	u, err := m.Repos().Accounts.GetUser(context.Background(), userID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	id, err := account.IdentityFor(u)
	if err != nil {
		t.Fatalf("identity: %v", err)
	}
	return id
}

func (f fixture) schedule(t *testing.T) models.Consultation {
	t.Helper()
	c, err := NewRegisterConsultation(f.m, "UTC").Execute(context.Background(), f.patient, RegisterInput{
		DoctorID: f.doc.Doctor.ID,
		Date:     "2024-05-20",
		Time:     "09:30",
	})
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return *c
}

func (f fixture) status(t *testing.T, id uint) string {
	t.Helper()
	c, ok := f.m.Consultation(id)
	if !ok {
		t.Fatalf("consultation %d missing", id)
	}
	return c.Status
}

// ======================================================
// REGISTER
// ======================================================

func TestRegisterConsultation(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(t)

	patient, _ := f.patient.Patient()
	if c.Status != "S" || c.PatientID != patient.ID || c.DoctorID != f.doc.Doctor.ID {
		t.Fatalf("unexpected consultation %+v", c)
	}
	if got := time.Time(c.Date).Format("2006-01-02"); got != "2024-05-20" {
		t.Fatalf("date = %s", got)
	}
	if got := c.Time.String(); got != "09:30:00" {
		t.Fatalf("time = %s", got)
	}
	if c.Doctor.User.Username != "house" || c.Patient.User.Username != "joao" {
		t.Fatalf("parties not loaded: %+v", c)
	}

	logs := f.m.AuditLogs()
	if len(logs) != 1 || logs[0].Action != "consultation_registered" {
		t.Fatalf("expected audit row, got %+v", logs)
	}
}

func TestRegisterConsultationNonPatientForbidden(t *testing.T) {
	f := newFixture(t)

	_, err := NewRegisterConsultation(f.m, "UTC").Execute(context.Background(), f.doctor, RegisterInput{
		DoctorID: f.doc.Doctor.ID,
		Date:     "2024-05-20",
		Time:     "09:30",
	})
	if !httperr.IsKind(err, httperr.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
	if len(f.m.AuditLogs()) != 0 {
		t.Fatalf("rejected request wrote audit")
	}
}

func TestRegisterConsultationRejectsBadDateTime(t *testing.T) {
	f := newFixture(t)
	uc := NewRegisterConsultation(f.m, "UTC")

	for _, in := range []RegisterInput{
		{DoctorID: f.doc.Doctor.ID, Date: "20/05/2024", Time: "09:30"},
		{DoctorID: f.doc.Doctor.ID, Date: "2024-05-20", Time: "25:00"},
		{DoctorID: f.doc.Doctor.ID, Date: "2024-02-30", Time: "09:30"},
	} {
		if _, err := uc.Execute(context.Background(), f.patient, in); !httperr.IsKind(err, httperr.KindValidation) {
			t.Fatalf("%+v: expected validation error, got %v", in, err)
		}
	}
}

func TestRegisterConsultationUnknownDoctorIsPersistenceError(t *testing.T) {
	f := newFixture(t)

	_, err := NewRegisterConsultation(f.m, "UTC").Execute(context.Background(), f.patient, RegisterInput{
		DoctorID: 999,
		Date:     "2024-05-20",
		Time:     "09:30",
	})
	if !httperr.IsKind(err, httperr.KindPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if len(f.m.AuditLogs()) != 0 {
		t.Fatalf("failed insert wrote audit")
	}
}

// ======================================================
// CANCEL
// ======================================================

func TestCancelScheduled(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(t)

	out, err := NewCancelConsultation(f.m, domain.Lifecycle{Strict: true}, clock).
		Execute(context.Background(), f.patient, c.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if out.Status != "C" || out.CanceledAt == nil || !out.CanceledAt.Equal(fixedNow) {
		t.Fatalf("unexpected result %+v", out)
	}
	if f.status(t, c.ID) != "C" {
		t.Fatalf("cancel not persisted")
	}
}

func TestCancelFinishedStrictRejected(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(t)
	lc := domain.Lifecycle{Strict: true}

	if _, err := NewRegisterAttendance(f.m, lc, clock).Execute(context.Background(), f.doctor, RegisterAttendanceInput{
		ConsultationID: c.ID,
	}); err != nil {
		t.Fatalf("attendance: %v", err)
	}
	before := len(f.m.AuditLogs())

	_, err := NewCancelConsultation(f.m, lc, clock).Execute(context.Background(), f.patient, c.ID)
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
	if f.status(t, c.ID) != "F" {
		t.Fatalf("status changed on rejected cancel")
	}
	if len(f.m.AuditLogs()) != before {
		t.Fatalf("rejected cancel wrote audit")
	}
}

func TestCancelPermissiveAllowsAnyState(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(t)
	lc := domain.Lifecycle{Strict: false}

	if _, err := NewRegisterAttendance(f.m, lc, clock).Execute(context.Background(), f.doctor, RegisterAttendanceInput{
		ConsultationID: c.ID,
	}); err != nil {
		t.Fatalf("attendance: %v", err)
	}

	out, err := NewCancelConsultation(f.m, lc, clock).Execute(context.Background(), f.patient, c.ID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if out.Status != "C" {
		t.Fatalf("expected C, got %s", out.Status)
	}
}

func TestCancelMissing(t *testing.T) {
	f := newFixture(t)

	_, err := NewCancelConsultation(f.m, domain.Lifecycle{Strict: true}, clock).
		Execute(context.Background(), f.patient, 999)
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(f.m.AuditLogs()) != 0 {
		t.Fatalf("not-found cancel wrote audit")
	}
}

// ======================================================
// ATTENDANCE
// ======================================================

func TestRegisterAttendanceFinishesConsultation(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(t)

	a, err := NewRegisterAttendance(f.m, domain.Lifecycle{Strict: true}, clock).
		Execute(context.Background(), f.doctor, RegisterAttendanceInput{ConsultationID: c.ID, Observations: "ok"})
	if err != nil {
		t.Fatalf("attendance: %v", err)
	}
	if a.ConsultationID != c.ID || a.Observations != "ok" {
		t.Fatalf("unexpected attendance %+v", a)
	}

	got, _ := f.m.Consultation(c.ID)
	if got.Status != "F" || got.FinishedAt == nil {
		t.Fatalf("consultation not finished: %+v", got)
	}
	if len(f.m.Attendances()) != 1 {
		t.Fatalf("expected one attendance")
	}
}

func TestRegisterAttendanceOnCanceledStrictRejected(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(t)
	lc := domain.Lifecycle{Strict: true}

	if _, err := NewCancelConsultation(f.m, lc, clock).Execute(context.Background(), f.patient, c.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	_, err := NewRegisterAttendance(f.m, lc, clock).
		Execute(context.Background(), f.doctor, RegisterAttendanceInput{ConsultationID: c.ID})
	if !httperr.IsBusiness(err, "invalid_state") {
		t.Fatalf("expected invalid_state, got %v", err)
	}
	if len(f.m.Attendances()) != 0 {
		t.Fatalf("attendance created for canceled consultation")
	}
	if f.status(t, c.ID) != "C" {
		t.Fatalf("status changed")
	}
}

func TestRegisterAttendanceAtomic(t *testing.T) {
	f := newFixture(t)
	c := f.schedule(t)

	f.m.FailOn("CreateAttendance", storetest.ErrInjected())

	_, err := NewRegisterAttendance(f.m, domain.Lifecycle{Strict: true}, clock).
		Execute(context.Background(), f.doctor, RegisterAttendanceInput{ConsultationID: c.ID})
	if !errors.Is(err, storetest.ErrInjected()) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if f.status(t, c.ID) != "S" {
		t.Fatalf("status change survived rollback")
	}
	if len(f.m.Attendances()) != 0 {
		t.Fatalf("attendance survived rollback")
	}
}

func TestRegisterAttendanceMissingConsultation(t *testing.T) {
	f := newFixture(t)

	_, err := NewRegisterAttendance(f.m, domain.Lifecycle{Strict: true}, clock).
		Execute(context.Background(), f.doctor, RegisterAttendanceInput{ConsultationID: 999})

	var e *httperr.Error
	if !errors.As(err, &e) || e.Kind != httperr.KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if e.Message != "Não foi possível encontrar essa consulta." {
		t.Fatalf("unexpected message %q", e.Message)
	}
	if len(f.m.Attendances()) != 0 || len(f.m.AuditLogs()) != 0 {
		t.Fatalf("not-found attendance wrote rows")
	}
}

// Cancelamento e atendimento concorrentes: no modo estrito exatamente um vence.
func TestCancelAndAttendanceRace(t *testing.T) {
	for i := 0; i < 20; i++ {
		f := newFixture(t)
		c := f.schedule(t)
		lc := domain.Lifecycle{Strict: true}

		var (
			wg                sync.WaitGroup
			cancelErr, attErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, cancelErr = NewCancelConsultation(f.m, lc, clock).Execute(context.Background(), f.patient, c.ID)
		}()
		go func() {
			defer wg.Done()
			_, attErr = NewRegisterAttendance(f.m, lc, clock).
				Execute(context.Background(), f.doctor, RegisterAttendanceInput{ConsultationID: c.ID})
		}()
		wg.Wait()

		if (cancelErr == nil) == (attErr == nil) {
			t.Fatalf("expected exactly one winner: cancel=%v attendance=%v", cancelErr, attErr)
		}

		status := f.status(t, c.ID)
		switch {
		case cancelErr == nil && status != "C":
			t.Fatalf("cancel won but status=%s", status)
		case attErr == nil && (status != "F" || len(f.m.Attendances()) != 1):
			t.Fatalf("attendance won but status=%s attendances=%d", status, len(f.m.Attendances()))
		case cancelErr == nil && len(f.m.Attendances()) != 0:
			t.Fatalf("cancel won but attendance exists")
		}
	}
}

// ======================================================
// QUERIES
// ======================================================

func TestQueries(t *testing.T) {
	f := newFixture(t)
	c1 := f.schedule(t)
	c2 := f.schedule(t)

	if _, err := NewCancelConsultation(f.m, domain.Lifecycle{Strict: true}, clock).
		Execute(context.Background(), f.patient, c2.ID); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	q := NewQueries(f.m)

	scheduled := domain.StatusScheduled
	list, err := q.Consultations(context.Background(), domain.Filter{Status: &scheduled})
	if err != nil || len(list) != 1 || list[0].ID != c1.ID {
		t.Fatalf("status filter: %v %+v", err, list)
	}

	all, err := q.Consultations(context.Background(), domain.Filter{DoctorID: &f.doc.Doctor.ID})
	if err != nil || len(all) != 2 {
		t.Fatalf("doctor filter: %v (%d)", err, len(all))
	}

	if _, err := q.Consultation(context.Background(), 999); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := q.Attendance(context.Background(), 999); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	empty, err := q.Attendances(context.Background(), domain.AttendanceFilter{ConsultationID: &c1.ID})
	if err != nil || len(empty) != 0 {
		t.Fatalf("attendances: %v %+v", err, empty)
	}
}
