package account

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store/storetest"
)

// fakeHasher evita o custo do bcrypt nos testes.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) { return "h:" + plain, nil }
func (fakeHasher) Verify(hash, plain string) bool  { return hash == "h:"+plain }

func strPtr(s string) *string { return &s }

func joaoInput() RegisterPatientInput {
	return RegisterPatientInput{
		User: NewUser{
			Username:  "joao",
			Email:     "Joao@Example.com",
			Password:  "pw1",
			FirstName: "João",
			LastName:  "Souza",
		},
		BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		Gender:    "M",
		Phone:     "11999999999",
		Address:   "Rua A",
	}
}

func identityOf(t *testing.T, m *storetest.MemoryStore, userID uint) domain.Identity {
	t.Helper()
	id, err := NewResolveIdentity(m).Execute(context.Background(), userID)
	if err != nil {
		t.Fatalf("resolve identity: %v", err)
	}
	return id
}

// ======================================================
// REGISTER
// ======================================================

func TestRegisterPatientCreatesUserAndProfile(t *testing.T) {
	m := storetest.New()
	u, err := NewRegister(m, fakeHasher{}).Patient(context.Background(), joaoInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if u.Role != "P" || u.Patient == nil || u.Patient.UserID != u.ID {
		t.Fatalf("unexpected user %+v", u)
	}
	if u.PasswordHash != "h:pw1" {
		t.Fatalf("password not hashed: %q", u.PasswordHash)
	}
	if u.Email != "joao@example.com" {
		t.Fatalf("email not normalized: %q", u.Email)
	}

	if len(m.Users()) != 1 || len(m.Patients()) != 1 {
		t.Fatalf("expected exactly one user and one patient")
	}

	logs := m.AuditLogs()
	if len(logs) != 1 || logs[0].Action != "patient_registered" {
		t.Fatalf("expected audit row, got %+v", logs)
	}
}

func TestRegisterPatientAtomicOnProfileFailure(t *testing.T) {
	m := storetest.New()
	m.FailOn("CreatePatient", storetest.ErrInjected())

	if _, err := NewRegister(m, fakeHasher{}).Patient(context.Background(), joaoInput()); err == nil {
		t.Fatalf("expected failure")
	}

	if len(m.Users()) != 0 || len(m.Patients()) != 0 {
		t.Fatalf("partial write visible: users=%d patients=%d", len(m.Users()), len(m.Patients()))
	}
	if len(m.AuditLogs()) != 0 {
		t.Fatalf("audit row survived rollback")
	}
}

func TestRegisterPatientDuplicateUsername(t *testing.T) {
	m := storetest.New()
	uc := NewRegister(m, fakeHasher{})

	if _, err := uc.Patient(context.Background(), joaoInput()); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := uc.Patient(context.Background(), joaoInput())
	if !httperr.IsKind(err, httperr.KindPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if len(m.Users()) != 1 {
		t.Fatalf("duplicate created a second user")
	}
}

func TestRegisterDoctorRequiresSpecialty(t *testing.T) {
	m := storetest.New()
	uc := NewRegister(m, fakeHasher{})

	_, err := uc.Doctor(context.Background(), nil, RegisterDoctorInput{
		User:        NewUser{Username: "house", Password: "x"},
		Code:        "CRM1",
		SpecialtyID: 99,
	})
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	spec := m.SeedSpecialty("Cardiologia")
	u, err := uc.Doctor(context.Background(), nil, RegisterDoctorInput{
		User:        NewUser{Username: "house", Password: "x"},
		Code:        "CRM1",
		SpecialtyID: spec.ID,
	})
	if err != nil {
		t.Fatalf("register doctor: %v", err)
	}
	if u.Role != "D" || u.Doctor == nil || u.Doctor.Specialty.Description != "Cardiologia" {
		t.Fatalf("unexpected doctor %+v", u)
	}
}

func TestRegisterAdmin(t *testing.T) {
	m := storetest.New()
	u, err := NewRegister(m, fakeHasher{}).Admin(context.Background(), NewUser{Username: "root", Password: "x"})
	if err != nil {
		t.Fatalf("admin: %v", err)
	}
	if u.Role != "A" {
		t.Fatalf("expected role A, got %s", u.Role)
	}
}

// ======================================================
// LOGIN / IDENTITY
// ======================================================

func TestLogin(t *testing.T) {
	m := storetest.New()
	if _, err := NewRegister(m, fakeHasher{}).Patient(context.Background(), joaoInput()); err != nil {
		t.Fatalf("register: %v", err)
	}

	tokens := auth.NewTokenIssuer("secret", time.Hour)
	uc := NewLogin(m, fakeHasher{}, tokens)

	res, err := uc.Execute(context.Background(), "joao", "pw1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token.Value == "" || res.User.Patient == nil {
		t.Fatalf("unexpected login result %+v", res)
	}

	claims, err := tokens.Parse(res.Token.Value)
	if err != nil || claims.UserID != res.User.ID {
		t.Fatalf("token does not bind user: %v", err)
	}

	for _, tc := range []struct{ user, pass string }{
		{"joao", "wrong"},
		{"maria", "pw1"},
	} {
		_, err := uc.Execute(context.Background(), tc.user, tc.pass)
		if !httperr.IsKind(err, httperr.KindAuthentication) {
			t.Fatalf("%s/%s: expected authentication error, got %v", tc.user, tc.pass, err)
		}
	}
}

func TestInactiveAccountCannotAuthenticate(t *testing.T) {
	m := storetest.New()
	u, err := NewRegister(m, fakeHasher{}).Patient(context.Background(), joaoInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := NewDeactivate(m).Execute(context.Background(), "joao"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, err = NewLogin(m, fakeHasher{}, auth.NewTokenIssuer("s", time.Hour)).Execute(context.Background(), "joao", "pw1")
	if !httperr.IsKind(err, httperr.KindAuthentication) {
		t.Fatalf("login: expected authentication error, got %v", err)
	}

	_, err = NewResolveIdentity(m).Execute(context.Background(), u.ID)
	if !httperr.IsKind(err, httperr.KindAuthentication) {
		t.Fatalf("resolve: expected authentication error, got %v", err)
	}
}

func TestResolveIdentityMissingUser(t *testing.T) {
	_, err := NewResolveIdentity(storetest.New()).Execute(context.Background(), 123)
	if !httperr.IsKind(err, httperr.KindAuthentication) {
		t.Fatalf("expected authentication error, got %v", err)
	}
}

// ======================================================
// EDIT
// ======================================================

func TestEditPatientRehashesPassword(t *testing.T) {
	m := storetest.New()
	hasher := auth.NewBcryptHasher(4)

	u, err := NewRegister(m, hasher).Patient(context.Background(), joaoInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	caller := identityOf(t, m, u.ID)

	updated, err := NewEdit(m, hasher).Patient(context.Background(), caller, EditPatientInput{
		User:    domain.UserPatch{Password: strPtr("pw2"), FirstName: strPtr("Joãozinho")},
		Patient: domain.PatientPatch{Address: strPtr("Rua B")},
	})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}

	if !hasher.Verify(updated.PasswordHash, "pw2") {
		t.Fatalf("new password does not verify")
	}
	if hasher.Verify(updated.PasswordHash, "pw1") {
		t.Fatalf("old password still verifies")
	}
	if updated.FirstName != "Joãozinho" || updated.Patient.Address != "Rua B" {
		t.Fatalf("fields not overwritten: %+v", updated)
	}
	if updated.LastName != "Souza" || updated.Patient.Phone != "11999999999" {
		t.Fatalf("absent fields changed: %+v", updated)
	}

	stored := m.Patients()[0]
	if stored.Address != "Rua B" {
		t.Fatalf("patient not persisted")
	}
}

func TestEditPatientRollsBackOnProfileFailure(t *testing.T) {
	m := storetest.New()
	u, err := NewRegister(m, fakeHasher{}).Patient(context.Background(), joaoInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	caller := identityOf(t, m, u.ID)

	m.FailOn("SavePatient", storetest.ErrInjected())
	_, err = NewEdit(m, fakeHasher{}).Patient(context.Background(), caller, EditPatientInput{
		User: domain.UserPatch{FirstName: strPtr("Outro")},
	})
	if !errors.Is(err, storetest.ErrInjected()) {
		t.Fatalf("expected injected error, got %v", err)
	}
	if m.Users()[0].FirstName != "João" {
		t.Fatalf("user update survived rollback")
	}
}

func TestEditWrongRoleForbidden(t *testing.T) {
	m := storetest.New()
	spec := m.SeedSpecialty("Cardiologia")
	doc := m.SeedDoctor("house", spec.ID)

	_, err := NewEdit(m, fakeHasher{}).Patient(context.Background(), identityOf(t, m, doc.ID), EditPatientInput{})
	if !httperr.IsKind(err, httperr.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestEditDoctorChangesSpecialty(t *testing.T) {
	m := storetest.New()
	cardio := m.SeedSpecialty("Cardiologia")
	neuro := m.SeedSpecialty("Neurologia")
	doc := m.SeedDoctor("house", cardio.ID)

	updated, err := NewEdit(m, fakeHasher{}).Doctor(context.Background(), identityOf(t, m, doc.ID), EditDoctorInput{
		Doctor: domain.DoctorPatch{SpecialtyID: &neuro.ID},
	})
	if err != nil {
		t.Fatalf("edit doctor: %v", err)
	}
	if updated.Doctor.SpecialtyID != neuro.ID || updated.Doctor.Specialty.Description != "Neurologia" {
		t.Fatalf("specialty not updated: %+v", updated.Doctor)
	}

	missing := uint(999)
	_, err = NewEdit(m, fakeHasher{}).Doctor(context.Background(), identityOf(t, m, doc.ID), EditDoctorInput{
		Doctor: domain.DoctorPatch{SpecialtyID: &missing},
	})
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

// ======================================================
// DELETE
// ======================================================

func TestDeleteAccountRemovesOnlyOwnRows(t *testing.T) {
	m := storetest.New()
	joao := m.SeedPatient("joao")
	maria := m.SeedPatient("maria")

	if err := NewDeleteAccount(m).Execute(context.Background(), identityOf(t, m, joao.ID)); err != nil {
		t.Fatalf("delete: %v", err)
	}

	users := m.Users()
	if len(users) != 1 || users[0].ID != maria.ID {
		t.Fatalf("unexpected users after delete: %+v", users)
	}
	patients := m.Patients()
	if len(patients) != 1 || patients[0].UserID != maria.ID {
		t.Fatalf("unexpected patients after delete: %+v", patients)
	}
}

func TestDeleteAccountTwiceIsNotFound(t *testing.T) {
	m := storetest.New()
	joao := m.SeedPatient("joao")
	caller := identityOf(t, m, joao.ID)

	uc := NewDeleteAccount(m)
	if err := uc.Execute(context.Background(), caller); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := uc.Execute(context.Background(), caller); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteAccountWithConsultationsIsRestricted(t *testing.T) {
	m := storetest.New()
	spec := m.SeedSpecialty("Cardiologia")
	doc := m.SeedDoctor("house", spec.ID)
	joao := m.SeedPatient("joao")
	m.SeedConsultation(joao.Patient.ID, doc.Doctor.ID)

	err := NewDeleteAccount(m).Execute(context.Background(), identityOf(t, m, joao.ID))
	if !httperr.IsKind(err, httperr.KindPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
	if len(m.Users()) != 2 || len(m.Patients()) != 1 {
		t.Fatalf("rows removed despite restrict")
	}
}

// ======================================================
// DIRECTORY
// ======================================================

func TestDoctorsPendingFilter(t *testing.T) {
	m := storetest.New()
	spec := m.SeedSpecialty("Clínica geral")
	d1 := m.SeedDoctor("d1", spec.ID)
	d2 := m.SeedDoctor("d2", spec.ID)
	joao := m.SeedPatient("joao")
	m.SeedConsultation(joao.Patient.ID, d1.Doctor.ID)

	dir := NewDirectory(m)
	caller := identityOf(t, m, joao.ID)

	yes, no := true, false

	got, err := dir.Doctors(context.Background(), caller, DoctorQuery{Pending: &yes})
	if err != nil {
		t.Fatalf("pending=true: %v", err)
	}
	if len(got) != 1 || got[0].ID != d1.Doctor.ID {
		t.Fatalf("pending=true: expected d1, got %+v", got)
	}

	got, err = dir.Doctors(context.Background(), caller, DoctorQuery{Pending: &no})
	if err != nil {
		t.Fatalf("pending=false: %v", err)
	}
	if len(got) != 1 || got[0].ID != d2.Doctor.ID {
		t.Fatalf("pending=false: expected d2, got %+v", got)
	}

	all, err := dir.Doctors(context.Background(), caller, DoctorQuery{})
	if err != nil || len(all) != 2 {
		t.Fatalf("no filter: expected 2 doctors, got %d (%v)", len(all), err)
	}
}

func TestDoctorsPendingFilterForbiddenForNonPatient(t *testing.T) {
	m := storetest.New()
	spec := m.SeedSpecialty("Clínica geral")
	doc := m.SeedDoctor("d1", spec.ID)
	admin := m.SeedAdmin("root")

	yes := true
	for _, userID := range []uint{doc.ID, admin.ID} {
		got, err := NewDirectory(m).Doctors(context.Background(), identityOf(t, m, userID), DoctorQuery{Pending: &yes})
		if !httperr.IsKind(err, httperr.KindAuthorization) {
			t.Fatalf("user %d: expected authorization error, got %v", userID, err)
		}
		if got != nil {
			t.Fatalf("user %d: list returned with error", userID)
		}
	}
}

func TestDirectoryFiltersAndNotFound(t *testing.T) {
	m := storetest.New()
	joao := m.SeedPatient("joao")
	m.SeedAdmin("root")

	dir := NewDirectory(m)
	role := domain.RolePatient

	users, err := dir.Users(context.Background(), domain.UserFilter{Role: &role})
	if err != nil || len(users) != 1 || users[0].ID != joao.ID {
		t.Fatalf("role filter: %v %+v", err, users)
	}

	_, err = dir.User(context.Background(), 999)
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	var e *httperr.Error
	if errors.As(err, &e) && !strings.Contains(e.Message, "não existe") {
		t.Fatalf("unexpected message %q", e.Message)
	}

	if _, err := dir.Patient(context.Background(), 999); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("patient: expected not found, got %v", err)
	}
	if _, err := dir.Doctor(context.Background(), 999); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("doctor: expected not found, got %v", err)
	}

	patients, err := dir.Patients(context.Background(), domain.PatientFilter{ID: &joao.Patient.ID})
	if err != nil || len(patients) != 1 || patients[0].User.Username != "joao" {
		t.Fatalf("patients: %v %+v", err, patients)
	}
}

