// Package handler wires the HTTP surface. Handlers bind and validate
// input, resolve the caller's profile, call into the store and the
// schedule core, and map outcomes onto statuses: bad input 400,
// booking rejection 409, missing-or-not-owned 404, storage 500.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"hospital-portal-api/internal/middleware"
	"hospital-portal-api/internal/model"
	"hospital-portal-api/internal/store"
)

type Handler struct {
	store  *store.Store
	secret string
	log    zerolog.Logger
}

func New(st *store.Store, secret string, log zerolog.Logger) *Handler {
	return &Handler{store: st, secret: secret, log: log}
}

// Register mounts all routes. The credential endpoints sit behind the
// rate limiter; everything under /patient, /doctor and /admin requires
// a token plus the matching role.
func (h *Handler) Register(r *gin.Engine, rl *middleware.RateLimiter) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	authGrp := v1.Group("/auth")
	authGrp.POST("/register", middleware.RateLimit(rl), h.RegisterPatient)
	authGrp.POST("/login", middleware.RateLimit(rl), h.Login)
	authGrp.POST("/refresh", h.Refresh)
	authGrp.POST("/logout", h.Logout)

	// public directory
	v1.GET("/departments", h.ListDepartments)
	v1.GET("/departments/:id/doctors", h.DepartmentDoctors)
	v1.GET("/doctors/:id", h.DoctorProfile)

	patient := v1.Group("/patient", middleware.Auth(h.secret), middleware.RequireRole(model.RolePatient))
	patient.GET("/dashboard", h.PatientDashboard)
	patient.GET("/doctors/:id/availability", h.DoctorAvailability)
	patient.POST("/doctors/:id/appointments", h.BookAppointment)
	patient.POST("/appointments/:id/cancel", h.PatientCancelAppointment)
	patient.GET("/history", h.PatientHistory)
	patient.GET("/profile", h.PatientProfile)
	patient.PUT("/profile", h.UpdatePatientProfile)
	patient.GET("/search", h.PatientSearch)

	doctor := v1.Group("/doctor", middleware.Auth(h.secret), middleware.RequireRole(model.RoleDoctor))
	doctor.GET("/dashboard", h.DoctorDashboard)
	doctor.GET("/availability", h.GetAvailability)
	doctor.PUT("/availability", h.DeclareAvailability)
	doctor.POST("/appointments/:id/complete", h.CompleteAppointment)
	doctor.POST("/appointments/:id/cancel", h.DoctorCancelAppointment)
	doctor.GET("/appointments/:id/treatment", h.GetTreatment)
	doctor.PUT("/appointments/:id/treatment", h.UpsertTreatment)
	doctor.GET("/patients/:id/history", h.DoctorPatientHistory)

	admin := v1.Group("/admin", middleware.Auth(h.secret), middleware.RequireRole(model.RoleAdmin))
	admin.GET("/dashboard", h.AdminDashboard)
	admin.POST("/doctors", h.CreateDoctor)
	admin.PUT("/doctors/:id", h.UpdateDoctor)
	admin.POST("/doctors/:id/blacklist", h.BlacklistDoctor)
	admin.PUT("/patients/:id", h.UpdatePatient)
	admin.POST("/patients/:id/blacklist", h.BlacklistPatient)
	admin.GET("/search", h.AdminSearch)
	admin.GET("/appointments/:id/history", h.AppointmentPatientHistory)
}

// storeError maps a persistence failure onto the response. Missing and
// not-owned rows surface the same way.
func (h *Handler) storeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found or access denied"})
		return
	}
	h.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("storage error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

// currentPatient resolves the caller's patient profile.
func (h *Handler) currentPatient(c *gin.Context) (*model.Patient, bool) {
	p, err := h.store.PatientByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.storeError(c, err)
		return nil, false
	}
	return p, true
}

// currentDoctor resolves the caller's doctor profile.
func (h *Handler) currentDoctor(c *gin.Context) (*model.Doctor, bool) {
	d, err := h.store.DoctorByUserID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.storeError(c, err)
		return nil, false
	}
	return d, true
}
