package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BruksfildServices01/clinic-scheduler/internal/auth"
	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/account"
	domainConsultation "github.com/BruksfildServices01/clinic-scheduler/internal/domain/consultation"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/store"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
	ucAccount "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/account"
	ucConsultation "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/consultation"
	ucSpecialty "github.com/BruksfildServices01/clinic-scheduler/internal/usecase/specialty"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// Deps são as peças de infraestrutura montadas no main (ou no teste).
type Deps struct {
	Config      *config.Config
	Store       store.Store
	Hasher      auth.Hasher
	Tokens      *auth.TokenIssuer
	Revocations auth.RevocationStore
}

// NewRouter monta o engine com os middlewares globais e todas as rotas.
func NewRouter(deps Deps) (*gin.Engine, error) {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins...),
	)

	if err := RegisterRoutes(r, deps); err != nil {
		return nil, err
	}
	return r, nil
}

func RegisterRoutes(r *gin.Engine, deps Deps) error {
	if err := validators.Register(); err != nil {
		return err
	}

	cfg := deps.Config
	lifecycle := domainConsultation.Lifecycle{Strict: cfg.LifecycleStrict}
	clock := timezone.Clock(cfg.Timezone)

	// ======================================================
	// USE CASES: ACCOUNTS
	// ======================================================
	registerUC := ucAccount.NewRegister(deps.Store, deps.Hasher)
	loginUC := ucAccount.NewLogin(deps.Store, deps.Hasher, deps.Tokens)
	logoutUC := ucAccount.NewLogout(deps.Revocations)
	resolveUC := ucAccount.NewResolveIdentity(deps.Store)
	editUC := ucAccount.NewEdit(deps.Store, deps.Hasher)
	deleteUC := ucAccount.NewDeleteAccount(deps.Store)
	directoryUC := ucAccount.NewDirectory(deps.Store)

	specialtiesUC := ucSpecialty.NewSpecialties(deps.Store)

	// ======================================================
	// USE CASES: CONSULTATIONS
	// ======================================================
	registerConsultationUC := ucConsultation.NewRegisterConsultation(deps.Store, cfg.Timezone)
	cancelConsultationUC := ucConsultation.NewCancelConsultation(deps.Store, lifecycle, clock)
	registerAttendanceUC := ucConsultation.NewRegisterAttendance(deps.Store, lifecycle, clock)
	consultationQueries := ucConsultation.NewQueries(deps.Store)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(loginUC, logoutUC)
	meHandler := handlers.NewMeHandler(directoryUC)
	userHandler := handlers.NewUserHandler(registerUC, editUC, deleteUC, directoryUC, cfg.Timezone)
	directoryHandler := handlers.NewDirectoryHandler(directoryUC)
	specialtyHandler := handlers.NewSpecialtyHandler(specialtiesUC)
	consultationHandler := handlers.NewConsultationHandler(
		registerConsultationUC,
		cancelConsultationUC,
		consultationQueries,
	)
	attendanceHandler := handlers.NewAttendanceHandler(registerAttendanceUC, consultationQueries)
	auditLogsHandler := handlers.NewAuditLogsHandler(deps.Store.Repos().Audit, cfg.Timezone)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateRPS, cfg.LoginRateBurst)
	authRequired := middleware.AuthMiddleware(deps.Tokens, deps.Revocations, resolveUC)
	adminOnly := middleware.RequireRole(account.RoleAdmin)

	// ======================================================
	// INFRA
	// ======================================================
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PÚBLICO
		// ------------------------------
		api.POST("/auth/token", middleware.RateLimit(loginLimiter), authHandler.Login)
		api.POST("/users/patient/register", userHandler.RegisterPatient)

		// ------------------------------
		// AUTENTICADO
		// ------------------------------
		secured := api.Group("/")
		secured.Use(authRequired)
		{
			secured.POST("/auth/logout", authHandler.Logout)

			// USERS
			secured.GET("/users", userHandler.List)
			secured.GET("/users/me", meHandler.GetMe)
			secured.GET("/users/:id", userHandler.Get)
			secured.POST("/users/doctor/register", adminOnly, userHandler.RegisterDoctor)
			secured.PUT("/users/patient/edit", middleware.RequireRole(account.RolePatient), userHandler.EditPatient)
			secured.PUT("/users/doctor/edit", middleware.RequireRole(account.RoleDoctor), userHandler.EditDoctor)
			secured.DELETE("/users/delete-account", userHandler.DeleteAccount)

			// DOCTORS / PATIENTS
			secured.GET("/doctors", directoryHandler.ListDoctors)
			secured.GET("/doctors/:id", directoryHandler.GetDoctor)
			secured.GET("/patients", directoryHandler.ListPatients)
			secured.GET("/patients/:id", directoryHandler.GetPatient)

			// SPECIALTIES
			secured.GET("/specialties", specialtyHandler.List)
			secured.POST("/specialties", adminOnly, specialtyHandler.Create)
			secured.DELETE("/specialties/:id", adminOnly, specialtyHandler.Delete)

			// CONSULTATIONS
			secured.GET("/consultations", consultationHandler.List)
			secured.GET("/consultations/:id", consultationHandler.Get)
			secured.POST("/consultations", consultationHandler.Create)
			secured.PUT("/consultations/:id/cancel", consultationHandler.Cancel)

			// ATTENDANCES
			secured.GET("/attendances", attendanceHandler.List)
			secured.GET("/attendances/:id", attendanceHandler.Get)
			secured.POST("/attendances", attendanceHandler.Create)

			secured.GET("/audit-logs", adminOnly, auditLogsHandler.List)
		}
	}

	return nil
}
