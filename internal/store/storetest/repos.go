package storetest

import (
	"context"
	"fmt"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
)

// handle liga os repositórios ao estado certo: o estado publicado (com
// lock por operação) ou a cópia de trabalho de uma transação.
type handle struct {
	m     *MemoryStore
	state func() *state
	lock  func() func()
}

func (m *MemoryStore) Repos() store.Repos {
	return reposFor(&handle{
		m:     m,
		state: func() *state { return m.st },
		lock: func() func() {
			m.mu.Lock()
			return m.mu.Unlock
		},
	})
}

func (m *MemoryStore) Atomic(ctx context.Context, fn func(r store.Repos) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	work := m.st.clone()
	h := &handle{
		m:     m,
		state: func() *state { return work },
		lock:  func() func() { return func() {} },
	}

	// Pânico em fn sobe sem publicar work: rollback implícito.
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(reposFor(h)); err != nil {
		return err
	}

	m.st = work
	return nil
}

func reposFor(h *handle) store.Repos {
	return store.Repos{
		Accounts:      &accountRepo{h},
		Consultations: &consultationRepo{h},
		Audit:         &auditRepo{h},
	}
}

func uniqueViolation(constraint string) error {
	return httperr.ErrPersistence(fmt.Errorf(
		"ERROR: duplicate key value violates unique constraint %q (SQLSTATE 23505)", constraint))
}

func fkViolation(table, constraint string) error {
	return httperr.ErrPersistence(fmt.Errorf(
		"ERROR: insert or update on table %q violates foreign key constraint %q (SQLSTATE 23503)", table, constraint))
}

func restrictViolation(table, constraint string) error {
	return httperr.ErrPersistence(fmt.Errorf(
		"ERROR: update or delete on table %q violates foreign key constraint %q (SQLSTATE 23503)", table, constraint))
}

// ======================================================
// ACCOUNTS
// ======================================================

type accountRepo struct{ h *handle }

func (r *accountRepo) CreateUser(_ context.Context, u *models.User) error {
	defer r.h.lock()()
	if err := r.h.m.injected("CreateUser"); err != nil {
		return err
	}
	st := r.h.state()

	for _, other := range st.users {
		if other.Username == u.Username {
			return uniqueViolation("idx_users_username")
		}
	}

	u.ID = st.nextID()
	u.CreatedAt = r.h.m.now()
	u.UpdatedAt = u.CreatedAt
	row := *u
	row.Patient, row.Doctor = nil, nil
	st.users[u.ID] = row
	return nil
}

func (r *accountRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	defer r.h.lock()()
	st := r.h.state()
	u, ok := st.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	u = st.userWithProfile(u)
	return &u, nil
}

func (r *accountRepo) FindUserByUsername(_ context.Context, username string) (*models.User, error) {
	defer r.h.lock()()
	st := r.h.state()
	for _, u := range st.users {
		if u.Username == username {
			u = st.userWithProfile(u)
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (r *accountRepo) ListUsers(_ context.Context, f account.UserFilter) ([]models.User, error) {
	defer r.h.lock()()
	st := r.h.state()
	out := []models.User{}
	for _, id := range sortedKeys(st.users) {
		u := st.users[id]
		if f.ID != nil && u.ID != *f.ID {
			continue
		}
		if f.Role != nil && u.Role != string(*f.Role) {
			continue
		}
		out = append(out, st.userWithProfile(u))
	}
	return out, nil
}

func (r *accountRepo) SaveUser(_ context.Context, u *models.User) error {
	defer r.h.lock()()
	if err := r.h.m.injected("SaveUser"); err != nil {
		return err
	}
	st := r.h.state()
	for _, other := range st.users {
		if other.ID != u.ID && other.Username == u.Username {
			return uniqueViolation("idx_users_username")
		}
	}
	u.UpdatedAt = r.h.m.now()
	row := *u
	row.Patient, row.Doctor = nil, nil
	st.users[u.ID] = row
	return nil
}

func (r *accountRepo) DeleteUser(_ context.Context, id uint) error {
	defer r.h.lock()()
	if err := r.h.m.injected("DeleteUser"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.users[id]; !ok {
		return store.ErrNotFound
	}
	for _, p := range st.patients {
		if p.UserID == id {
			return restrictViolation("users", "fk_patients_user")
		}
	}
	for _, d := range st.doctors {
		if d.UserID == id {
			return restrictViolation("users", "fk_doctors_user")
		}
	}
	delete(st.users, id)
	return nil
}

func (r *accountRepo) CreatePatient(_ context.Context, p *models.Patient) error {
	defer r.h.lock()()
	if err := r.h.m.injected("CreatePatient"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.users[p.UserID]; !ok {
		return fkViolation("patients", "fk_patients_user")
	}
	for _, other := range st.patients {
		if other.UserID == p.UserID {
			return uniqueViolation("idx_patients_user_id")
		}
	}
	p.ID = st.nextID()
	p.CreatedAt = r.h.m.now()
	p.UpdatedAt = p.CreatedAt
	row := *p
	row.User = models.User{}
	st.patients[p.ID] = row
	return nil
}

func (r *accountRepo) SavePatient(_ context.Context, p *models.Patient) error {
	defer r.h.lock()()
	if err := r.h.m.injected("SavePatient"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.users[p.UserID]; !ok {
		return fkViolation("patients", "fk_patients_user")
	}
	p.UpdatedAt = r.h.m.now()
	row := *p
	row.User = models.User{}
	st.patients[p.ID] = row
	return nil
}

func (r *accountRepo) DeletePatient(_ context.Context, id uint) error {
	defer r.h.lock()()
	if err := r.h.m.injected("DeletePatient"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.patients[id]; !ok {
		return store.ErrNotFound
	}
	for _, c := range st.consultations {
		if c.PatientID == id {
			return restrictViolation("patients", "fk_consultations_patient")
		}
	}
	delete(st.patients, id)
	return nil
}

func (r *accountRepo) GetPatient(_ context.Context, id uint) (*models.Patient, error) {
	defer r.h.lock()()
	st := r.h.state()
	p, ok := st.patients[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	p = st.patientWithUser(p)
	return &p, nil
}

func (r *accountRepo) ListPatients(_ context.Context, f account.PatientFilter) ([]models.Patient, error) {
	defer r.h.lock()()
	st := r.h.state()
	out := []models.Patient{}
	for _, id := range sortedKeys(st.patients) {
		if f.ID != nil && id != *f.ID {
			continue
		}
		out = append(out, st.patientWithUser(st.patients[id]))
	}
	return out, nil
}

func (r *accountRepo) CreateDoctor(_ context.Context, d *models.Doctor) error {
	defer r.h.lock()()
	if err := r.h.m.injected("CreateDoctor"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.users[d.UserID]; !ok {
		return fkViolation("doctors", "fk_doctors_user")
	}
	if _, ok := st.specialties[d.SpecialtyID]; !ok {
		return fkViolation("doctors", "fk_doctors_specialty")
	}
	for _, other := range st.doctors {
		if other.UserID == d.UserID {
			return uniqueViolation("idx_doctors_user_id")
		}
	}
	d.ID = st.nextID()
	d.CreatedAt = r.h.m.now()
	d.UpdatedAt = d.CreatedAt
	row := *d
	row.User, row.Specialty = models.User{}, models.Specialty{}
	st.doctors[d.ID] = row
	return nil
}

func (r *accountRepo) SaveDoctor(_ context.Context, d *models.Doctor) error {
	defer r.h.lock()()
	if err := r.h.m.injected("SaveDoctor"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.specialties[d.SpecialtyID]; !ok {
		return fkViolation("doctors", "fk_doctors_specialty")
	}
	d.UpdatedAt = r.h.m.now()
	row := *d
	row.User, row.Specialty = models.User{}, models.Specialty{}
	st.doctors[d.ID] = row
	return nil
}

func (r *accountRepo) DeleteDoctor(_ context.Context, id uint) error {
	defer r.h.lock()()
	if err := r.h.m.injected("DeleteDoctor"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.doctors[id]; !ok {
		return store.ErrNotFound
	}
	for _, c := range st.consultations {
		if c.DoctorID == id {
			return restrictViolation("doctors", "fk_consultations_doctor")
		}
	}
	delete(st.doctors, id)
	return nil
}

func (r *accountRepo) GetDoctor(_ context.Context, id uint) (*models.Doctor, error) {
	defer r.h.lock()()
	st := r.h.state()
	d, ok := st.doctors[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	d = st.doctorWithUser(d)
	return &d, nil
}

func (r *accountRepo) ListDoctors(_ context.Context, f account.DoctorFilter) ([]models.Doctor, error) {
	defer r.h.lock()()
	st := r.h.state()

	var set map[uint]bool
	if f.Membership != nil {
		set = map[uint]bool{}
		for _, id := range f.Membership.IDs {
			set[id] = true
		}
	}

	out := []models.Doctor{}
	for _, id := range sortedKeys(st.doctors) {
		if f.ID != nil && id != *f.ID {
			continue
		}
		if f.Membership != nil && set[id] != f.Membership.In {
			continue
		}
		out = append(out, st.doctorWithUser(st.doctors[id]))
	}
	return out, nil
}

func (r *accountRepo) CreateSpecialty(_ context.Context, s *models.Specialty) error {
	defer r.h.lock()()
	if err := r.h.m.injected("CreateSpecialty"); err != nil {
		return err
	}
	st := r.h.state()
	s.ID = st.nextID()
	s.CreatedAt = r.h.m.now()
	st.specialties[s.ID] = *s
	return nil
}

func (r *accountRepo) GetSpecialty(_ context.Context, id uint) (*models.Specialty, error) {
	defer r.h.lock()()
	s, ok := r.h.state().specialties[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &s, nil
}

func (r *accountRepo) ListSpecialties(_ context.Context) ([]models.Specialty, error) {
	defer r.h.lock()()
	st := r.h.state()
	out := []models.Specialty{}
	for _, id := range sortedKeys(st.specialties) {
		out = append(out, st.specialties[id])
	}
	return out, nil
}

func (r *accountRepo) DeleteSpecialty(_ context.Context, id uint) error {
	defer r.h.lock()()
	st := r.h.state()
	if _, ok := st.specialties[id]; !ok {
		return store.ErrNotFound
	}
	for _, d := range st.doctors {
		if d.SpecialtyID == id {
			return restrictViolation("specialties", "fk_doctors_specialty")
		}
	}
	delete(st.specialties, id)
	return nil
}

// ======================================================
// CONSULTATIONS
// ======================================================

type consultationRepo struct{ h *handle }

func (r *consultationRepo) Create(_ context.Context, c *models.Consultation) error {
	defer r.h.lock()()
	if err := r.h.m.injected("CreateConsultation"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.patients[c.PatientID]; !ok {
		return fkViolation("consultations", "fk_consultations_patient")
	}
	if _, ok := st.doctors[c.DoctorID]; !ok {
		return fkViolation("consultations", "fk_consultations_doctor")
	}
	if c.Status == "" {
		c.Status = string(consultation.StatusScheduled)
	}
	c.ID = st.nextID()
	c.CreatedAt = r.h.m.now()
	c.UpdatedAt = c.CreatedAt
	row := *c
	row.Patient, row.Doctor = models.Patient{}, models.Doctor{}
	st.consultations[c.ID] = row
	return nil
}

func (r *consultationRepo) Get(_ context.Context, id uint) (*models.Consultation, error) {
	defer r.h.lock()()
	st := r.h.state()
	c, ok := st.consultations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	c = st.consultationWithParties(c)
	return &c, nil
}

// Em memória a transação já é serializada pelo lock do store.
func (r *consultationRepo) GetForUpdate(_ context.Context, id uint) (*models.Consultation, error) {
	defer r.h.lock()()
	c, ok := r.h.state().consultations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &c, nil
}

func (r *consultationRepo) Save(_ context.Context, c *models.Consultation) error {
	defer r.h.lock()()
	if err := r.h.m.injected("SaveConsultation"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.consultations[c.ID]; !ok {
		return store.ErrNotFound
	}
	c.UpdatedAt = r.h.m.now()
	row := *c
	row.Patient, row.Doctor = models.Patient{}, models.Doctor{}
	st.consultations[c.ID] = row
	return nil
}

func (r *consultationRepo) List(_ context.Context, f consultation.Filter) ([]models.Consultation, error) {
	defer r.h.lock()()
	st := r.h.state()
	out := []models.Consultation{}
	for _, id := range sortedKeys(st.consultations) {
		c := st.consultations[id]
		if f.Status != nil && c.Status != string(*f.Status) {
			continue
		}
		if f.PatientID != nil && c.PatientID != *f.PatientID {
			continue
		}
		if f.DoctorID != nil && c.DoctorID != *f.DoctorID {
			continue
		}
		out = append(out, st.consultationWithParties(c))
	}
	return out, nil
}

func (r *consultationRepo) PendingDoctorIDs(_ context.Context, patientID uint) ([]uint, error) {
	defer r.h.lock()()
	st := r.h.state()
	seen := map[uint]bool{}
	ids := []uint{}
	for _, id := range sortedKeys(st.consultations) {
		c := st.consultations[id]
		if c.PatientID != patientID || c.Status != string(consultation.StatusScheduled) {
			continue
		}
		if !seen[c.DoctorID] {
			seen[c.DoctorID] = true
			ids = append(ids, c.DoctorID)
		}
	}
	return ids, nil
}

func (r *consultationRepo) CreateAttendance(_ context.Context, a *models.Attendance) error {
	defer r.h.lock()()
	if err := r.h.m.injected("CreateAttendance"); err != nil {
		return err
	}
	st := r.h.state()
	if _, ok := st.consultations[a.ConsultationID]; !ok {
		return fkViolation("attendances", "fk_attendances_consultation")
	}
	a.ID = st.nextID()
	a.CreatedAt = r.h.m.now()
	row := *a
	row.Consultation = models.Consultation{}
	st.attendances[a.ID] = row
	return nil
}

func (r *consultationRepo) GetAttendance(_ context.Context, id uint) (*models.Attendance, error) {
	defer r.h.lock()()
	a, ok := r.h.state().attendances[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (r *consultationRepo) ListAttendances(_ context.Context, f consultation.AttendanceFilter) ([]models.Attendance, error) {
	defer r.h.lock()()
	st := r.h.state()
	out := []models.Attendance{}
	for _, id := range sortedKeys(st.attendances) {
		a := st.attendances[id]
		if f.ConsultationID != nil && a.ConsultationID != *f.ConsultationID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ======================================================
// AUDIT
// ======================================================

type auditRepo struct{ h *handle }

func (r *auditRepo) Record(_ context.Context, ev audit.Event) error {
	defer r.h.lock()()
	if err := r.h.m.injected("RecordAudit"); err != nil {
		return err
	}
	st := r.h.state()
	st.audits = append(st.audits, models.AuditLog{
		ID:        st.nextID(),
		UserID:    ev.UserID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  audit.EncodeMetadata(ev.Metadata),
		CreatedAt: r.h.m.now(),
	})
	return nil
}

func (r *auditRepo) List(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	defer r.h.lock()()
	st := r.h.state()

	matched := []models.AuditLog{}
	for i := len(st.audits) - 1; i >= 0; i-- {
		l := st.audits[i]
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if q.Entity != "" && l.Entity != q.Entity {
			continue
		}
		if q.From != nil && l.CreatedAt.Before(*q.From) {
			continue
		}
		if q.To != nil && !l.CreatedAt.Before(*q.To) {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	if q.Offset >= len(matched) {
		return []models.AuditLog{}, total, nil
	}
	matched = matched[q.Offset:]
	if q.Limit > 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}

var (
	_ account.Repository      = (*accountRepo)(nil)
	_ consultation.Repository = (*consultationRepo)(nil)
	_ audit.Store             = (*auditRepo)(nil)
	_ store.Store             = (*MemoryStore)(nil)
)

// IsPersistence ajuda nas asserções.
func IsPersistence(err error) bool {
	return httperr.IsKind(err, httperr.KindPersistence)
}
