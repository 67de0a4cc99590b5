package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
)

// ======================================================
// HANDLER
// ======================================================

type UserHandler struct {
	register  *ucAccount.Register
	edit      *ucAccount.Edit
	deleteAcc *ucAccount.DeleteAccount
	directory *ucAccount.Directory
	timezone  string
}

func NewUserHandler(
	register *ucAccount.Register,
	edit *ucAccount.Edit,
	deleteAcc *ucAccount.DeleteAccount,
	directory *ucAccount.Directory,
	tz string,
) *UserHandler {
	return &UserHandler{
		register:  register,
		edit:      edit,
		deleteAcc: deleteAcc,
		directory: directory,
		timezone:  tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UserRequest struct {
	Username  string `json:"username" binding:"required,max=150"`
	Email     string `json:"email" binding:"omitempty,email,max=254"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type PatientRequest struct {
	BirthDate string `json:"birth_date" binding:"required,date"`
	Gender    string `json:"gender" binding:"required,gender"`
	Phone     string `json:"phone" binding:"omitempty,phone"`
	Address   string `json:"address" binding:"max=200"`
}

type DoctorRequest struct {
	Code        string `json:"code" binding:"required,max=10"`
	Phone       string `json:"phone" binding:"omitempty,phone"`
	SpecialtyID uint   `json:"specialty_id" binding:"required"`
}

type RegisterPatientRequest struct {
	User    *UserRequest    `json:"user" binding:"required"`
	Patient *PatientRequest `json:"patient" binding:"required"`
}

type RegisterDoctorRequest struct {
	User   *UserRequest   `json:"user" binding:"required"`
	Doctor *DoctorRequest `json:"doctor" binding:"required"`
}

// Edição: campo ausente não muda.
type UserPatchRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=1,max=150"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	Password  *string `json:"password" binding:"omitempty,min=1"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
}

type PatientPatchRequest struct {
	BirthDate *string `json:"birth_date" binding:"omitempty,date"`
	Gender    *string `json:"gender" binding:"omitempty,gender"`
	Phone     *string `json:"phone" binding:"omitempty,phone"`
	Address   *string `json:"address" binding:"omitempty,max=200"`
}

type DoctorPatchRequest struct {
	Code        *string `json:"code" binding:"omitempty,min=1,max=10"`
	Phone       *string `json:"phone" binding:"omitempty,phone"`
	SpecialtyID *uint   `json:"specialty_id" binding:"omitempty,min=1"`
}

type EditPatientRequest struct {
	User    *UserPatchRequest    `json:"user"`
	Patient *PatientPatchRequest `json:"patient"`
}

type EditDoctorRequest struct {
	User   *UserPatchRequest   `json:"user"`
	Doctor *DoctorPatchRequest `json:"doctor"`
}

// ======================================================
// HELPERS
// ======================================================

func (r *UserRequest) toNewUser() ucAccount.NewUser {
	return ucAccount.NewUser{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

func (r *UserPatchRequest) toPatch() account.UserPatch {
	if r == nil {
		return account.UserPatch{}
	}
	return account.UserPatch{
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		FirstName: r.FirstName,
		LastName:  r.LastName,
	}
}

func (h *UserHandler) patientPatch(r *PatientPatchRequest) (account.PatientPatch, error) {
	if r == nil {
		return account.PatientPatch{}, nil
	}
	p := account.PatientPatch{
		Gender:  r.Gender,
		Phone:   r.Phone,
		Address: r.Address,
	}
	if r.BirthDate != nil {
		d, err := timezone.ParseDate(h.timezone, *r.BirthDate)
		if err != nil {
			return p, httperr.ErrValidation("invalid_request", "birth_date deve estar no formato AAAA-MM-DD")
		}
		p.BirthDate = &d
	}
	return p, nil
}

func (r *DoctorPatchRequest) toPatch() account.DoctorPatch {
	if r == nil {
		return account.DoctorPatch{}
	}
	return account.DoctorPatch{
		Code:        r.Code,
		Phone:       r.Phone,
		SpecialtyID: r.SpecialtyID,
	}
}

// ======================================================
// REGISTER
// ======================================================

func (h *UserHandler) RegisterPatient(c *gin.Context) {
	var req RegisterPatientRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	birth, err := timezone.ParseDate(h.timezone, req.Patient.BirthDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "birth_date deve estar no formato AAAA-MM-DD")
		return
	}

	u, err := h.register.Patient(c.Request.Context(), ucAccount.RegisterPatientInput{
		User:      req.User.toNewUser(),
		BirthDate: birth,
		Gender:    req.Patient.Gender,
		Phone:     req.Patient.Phone,
		Address:   req.Patient.Address,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.UserRole(*u))
}

func (h *UserHandler) RegisterDoctor(c *gin.Context) {
	var req RegisterDoctorRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.register.Doctor(c.Request.Context(), actorID(c), ucAccount.RegisterDoctorInput{
		User:        req.User.toNewUser(),
		Code:        req.Doctor.Code,
		Phone:       req.Doctor.Phone,
		SpecialtyID: req.Doctor.SpecialtyID,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, dto.UserRole(*u))
}

// ======================================================
// SELF-EDIT
// ======================================================

func (h *UserHandler) EditPatient(c *gin.Context) {
	caller, _ := currentIdentity(c)

	var req EditPatientRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	patch, err := h.patientPatch(req.Patient)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.edit.Patient(c.Request.Context(), caller, ucAccount.EditPatientInput{
		User:    req.User.toPatch(),
		Patient: patch,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.UserRole(*u))
}

func (h *UserHandler) EditDoctor(c *gin.Context) {
	caller, _ := currentIdentity(c)

	var req EditDoctorRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.edit.Doctor(c.Request.Context(), caller, ucAccount.EditDoctorInput{
		User:   req.User.toPatch(),
		Doctor: req.Doctor.toPatch(),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.UserRole(*u))
}

// ======================================================
// DELETE
// ======================================================

func (h *UserHandler) DeleteAccount(c *gin.Context) {
	caller, _ := currentIdentity(c)

	if err := h.deleteAcc.Execute(c.Request.Context(), caller); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}

// ======================================================
// READ
// ======================================================

func (h *UserHandler) List(c *gin.Context) {
	id, err := queryUint(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	f := account.UserFilter{ID: id}
	if raw := c.Query("role"); raw != "" {
		role, err := account.ParseRole(raw)
		if err != nil {
			httperr.BadRequest(c, "invalid_filter", "Filtro inválido: role.")
			return
		}
		f.Role = &role
	}

	users, err := h.directory.Users(c.Request.Context(), f)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, dto.UserRoles(users))
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	u, err := h.directory.User(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.UserRole(*u))
}
