package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-portal-api/internal/auth"
	"hospital-portal-api/internal/model"
)

func (h *Handler) AdminDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	doctorCount, err := h.store.CountDoctors(ctx)
	if err != nil {
		h.storeError(c, err)
		return
	}
	patientCount, err := h.store.CountPatients(ctx)
	if err != nil {
		h.storeError(c, err)
		return
	}
	bookedCount, err := h.store.CountBookedAppointments(ctx)
	if err != nil {
		h.storeError(c, err)
		return
	}
	doctors, err := h.store.ListDoctors(ctx)
	if err != nil {
		h.storeError(c, err)
		return
	}
	upcoming, err := h.store.UpcomingAppointments(ctx)
	if err != nil {
		h.storeError(c, err)
		return
	}
	past, err := h.store.PastAppointments(ctx, 50)
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor_count":          doctorCount,
		"patient_count":         patientCount,
		"appointment_count":     bookedCount,
		"doctors":               doctors,
		"upcoming_appointments": upcoming,
		"past_appointments":     past,
	})
}

type createDoctorRequest struct {
	Username        string  `json:"username" binding:"required"`
	Password        string  `json:"password" binding:"required"`
	Fullname        string  `json:"fullname" binding:"required"`
	Specialization  string  `json:"specialization" binding:"required"`
	DepartmentID    *string `json:"department_id"`
	ExperienceYears int     `json:"experience_years"`
	Qualification   string  `json:"qualification"`
	Bio             string  `json:"bio"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req createDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "username, password, fullname and specialization required")
		return
	}
	if len(req.Password) < 8 {
		badRequest(c, "password too short")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.storeError(c, err)
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         model.RoleDoctor,
		Fullname:     req.Fullname,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	d := &model.Doctor{
		ID:              uuid.New().String(),
		UserID:          u.ID,
		Fullname:        req.Fullname,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialization:  req.Specialization,
		DepartmentID:    req.DepartmentID,
		ExperienceYears: req.ExperienceYears,
		Qualification:   req.Qualification,
		Bio:             req.Bio,
	}

	if err := h.store.CreateDoctor(c.Request.Context(), u, d); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "could not create doctor"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"doctor": d})
}

type updateDoctorRequest struct {
	Fullname        string  `json:"fullname" binding:"required"`
	Specialization  string  `json:"specialization" binding:"required"`
	DepartmentID    *string `json:"department_id"`
	ExperienceYears int     `json:"experience_years"`
	Qualification   string  `json:"qualification"`
	Bio             string  `json:"bio"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	var req updateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "fullname and specialization required")
		return
	}

	d := &model.Doctor{
		ID:              c.Param("id"),
		Fullname:        req.Fullname,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialization:  req.Specialization,
		DepartmentID:    req.DepartmentID,
		ExperienceYears: req.ExperienceYears,
		Qualification:   req.Qualification,
		Bio:             req.Bio,
	}
	if err := h.store.UpdateDoctor(c.Request.Context(), d); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor": d})
}

// BlacklistDoctor hides the doctor from listings and blocks their
// login. Their appointments stay on record.
func (h *Handler) BlacklistDoctor(c *gin.Context) {
	userID, err := h.store.DoctorUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	if err := h.store.BlacklistUser(c.Request.Context(), userID); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "blacklisted"})
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	var req patientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "fullname and email required")
		return
	}
	p, err := h.store.PatientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}

	p.Fullname = req.Fullname
	p.Email = req.Email
	p.Phone = req.Phone
	p.Age = req.Age
	p.Gender = req.Gender
	p.Address = req.Address
	p.BloodGroup = req.BloodGroup

	if err := h.store.UpdatePatientProfile(c.Request.Context(), p); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": p})
}

func (h *Handler) BlacklistPatient(c *gin.Context) {
	userID, err := h.store.PatientUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	if err := h.store.BlacklistUser(c.Request.Context(), userID); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "blacklisted"})
}

// AdminSearch looks across doctors (including blacklisted) and
// patients.
func (h *Handler) AdminSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		badRequest(c, "query required")
		return
	}
	docs, err := h.store.SearchDoctors(c.Request.Context(), query, true)
	if err != nil {
		h.storeError(c, err)
		return
	}
	pats, err := h.store.SearchPatients(c.Request.Context(), query)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": docs, "patients": pats})
}

// AppointmentPatientHistory shows the full treatment history of the
// patient behind an appointment.
func (h *Handler) AppointmentPatientHistory(c *gin.Context) {
	apt, err := h.store.AppointmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	records, err := h.store.TreatmentsForPatient(c.Request.Context(), apt.PatientID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointment": apt, "treatments": records})
}
