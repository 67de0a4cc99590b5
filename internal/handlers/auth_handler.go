package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
)

type AuthHandler struct {
	login  *ucAccount.Login
	logout *ucAccount.Logout
}

func NewAuthHandler(login *ucAccount.Login, logout *ucAccount.Logout) *AuthHandler {
	return &AuthHandler{login: login, logout: logout}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		httperr.Respond(c, err)
		return
	}

	res, err := h.login.Execute(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, dto.LoginDTO{
		Token:    res.Token.Value,
		UserRole: dto.UserRole(res.User),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		httperr.Unauthorized(c, "missing_authorization_header", "Credenciais não informadas.")
		return
	}

	if err := h.logout.Execute(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.NoContent(c)
}
