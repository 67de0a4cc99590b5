// Package storetest fornece um store.Store em memória para testes. Ele
// respeita rollback de transação, unicidade de username e as FKs com
// RESTRICT do schema real.
package storetest

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type state struct {
	seq uint

	users         map[uint]models.User
	patients      map[uint]models.Patient
	doctors       map[uint]models.Doctor
	specialties   map[uint]models.Specialty
	consultations map[uint]models.Consultation
	attendances   map[uint]models.Attendance
	audits        []models.AuditLog
}

func newState() *state {
	return &state{
		users:         map[uint]models.User{},
		patients:      map[uint]models.Patient{},
		doctors:       map[uint]models.Doctor{},
		specialties:   map[uint]models.Specialty{},
		consultations: map[uint]models.Consultation{},
		attendances:   map[uint]models.Attendance{},
	}
}

func cloneMap[T any](in map[uint]T) map[uint]T {
	out := make(map[uint]T, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func (s *state) clone() *state {
	return &state{
		seq:           s.seq,
		users:         cloneMap(s.users),
		patients:      cloneMap(s.patients),
		doctors:       cloneMap(s.doctors),
		specialties:   cloneMap(s.specialties),
		consultations: cloneMap(s.consultations),
		attendances:   cloneMap(s.attendances),
		audits:        append([]models.AuditLog(nil), s.audits...),
	}
}

func (s *state) nextID() uint {
	s.seq++
	return s.seq
}

func sortedKeys[T any](in map[uint]T) []uint {
	keys := make([]uint, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ======================================================
// HYDRATION
// ======================================================

func (s *state) userWithProfile(u models.User) models.User {
	u.Patient = nil
	u.Doctor = nil
	for _, p := range s.patients {
		if p.UserID == u.ID {
			pc := p
			u.Patient = &pc
		}
	}
	for _, d := range s.doctors {
		if d.UserID == u.ID {
			dc := d
			dc.Specialty = s.specialties[d.SpecialtyID]
			u.Doctor = &dc
		}
	}
	return u
}

func (s *state) patientWithUser(p models.Patient) models.Patient {
	p.User = s.users[p.UserID]
	return p
}

func (s *state) doctorWithUser(d models.Doctor) models.Doctor {
	d.User = s.users[d.UserID]
	d.Specialty = s.specialties[d.SpecialtyID]
	return d
}

func (s *state) consultationWithParties(c models.Consultation) models.Consultation {
	c.Patient = s.patientWithUser(s.patients[c.PatientID])
	c.Doctor = s.doctorWithUser(s.doctors[c.DoctorID])
	return c
}

// ======================================================
// STORE
// ======================================================

type MemoryStore struct {
	mu sync.Mutex
	st *state

	failMu sync.Mutex
	fail   map[string]error

	now func() time.Time
}

func New() *MemoryStore {
	return &MemoryStore{
		st:   newState(),
		fail: map[string]error{},
		now:  time.Now,
	}
}

// FailOn faz a próxima chamada da operação op (ex.: "CreateAttendance")
// devolver err.
func (m *MemoryStore) FailOn(op string, err error) {
	m.failMu.Lock()
	defer m.failMu.Unlock()
	m.fail[op] = err
}

func (m *MemoryStore) injected(op string) error {
	m.failMu.Lock()
	defer m.failMu.Unlock()
	if err, ok := m.fail[op]; ok {
		delete(m.fail, op)
		return err
	}
	return nil
}

var errInjected = errors.New("injected failure")

// ErrInjected é um erro genérico para FailOn.
func ErrInjected() error { return errInjected }

// ======================================================
// SNAPSHOTS (asserções de teste)
// ======================================================

func (m *MemoryStore) Users() []models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.User{}
	for _, id := range sortedKeys(m.st.users) {
		out = append(out, m.st.userWithProfile(m.st.users[id]))
	}
	return out
}

func (m *MemoryStore) Patients() []models.Patient {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Patient{}
	for _, id := range sortedKeys(m.st.patients) {
		out = append(out, m.st.patientWithUser(m.st.patients[id]))
	}
	return out
}

func (m *MemoryStore) Doctors() []models.Doctor {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Doctor{}
	for _, id := range sortedKeys(m.st.doctors) {
		out = append(out, m.st.doctorWithUser(m.st.doctors[id]))
	}
	return out
}

func (m *MemoryStore) Consultation(id uint) (models.Consultation, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.st.consultations[id]
	return c, ok
}

func (m *MemoryStore) Attendances() []models.Attendance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Attendance{}
	for _, id := range sortedKeys(m.st.attendances) {
		out = append(out, m.st.attendances[id])
	}
	return out
}

func (m *MemoryStore) AuditLogs() []models.AuditLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.AuditLog(nil), m.st.audits...)
}

// SetNow troca o relógio usado nos timestamps.
func (m *MemoryStore) SetNow(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}
