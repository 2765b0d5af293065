package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hospital-portal-api/internal/model"
	"hospital-portal-api/internal/schedule"
)

const (
	dateFmt = "2006-01-02"
	// rolling declaration/display horizon, today included
	horizonDays = 7
)

func weekRange(now time.Time) (from, to string) {
	return now.Format(dateFmt), now.AddDate(0, 0, horizonDays-1).Format(dateFmt)
}

func (h *Handler) PatientDashboard(c *gin.Context) {
	p, ok := h.currentPatient(c)
	if !ok {
		return
	}

	deps, err := h.store.ListDepartments(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	upcoming, err := h.store.BookedForPatient(c.Request.Context(), p.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"departments":           deps,
		"upcoming_appointments": upcoming,
	})
}

// DoctorAvailability returns the doctor's declared windows over the
// 7-day horizon together with the slots already taken, so the client
// can render what is bookable.
func (h *Handler) DoctorAvailability(c *gin.Context) {
	d, err := h.store.DoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}

	from, to := weekRange(time.Now())
	windows, err := h.store.AvailabilityRange(c.Request.Context(), d.ID, from, to)
	if err != nil {
		h.storeError(c, err)
		return
	}
	booked, err := h.store.BookedSlots(c.Request.Context(), d.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor":       d,
		"from":         from,
		"to":           to,
		"availability": windows,
		"booked_slots": booked,
	})
}

type bookRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

// BookAppointment validates the requested slot against the doctor's
// availability index and inserts the appointment on accept. The check
// and the insert are two store round-trips; no lock closes the gap
// between them.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req bookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "date and time required")
		return
	}
	if _, err := time.Parse(dateFmt, req.Date); err != nil {
		badRequest(c, "invalid date")
		return
	}
	tod, err := schedule.ParseTimeOfDay(req.Time)
	if err != nil {
		badRequest(c, "invalid time")
		return
	}

	p, ok := h.currentPatient(c)
	if !ok {
		return
	}
	d, err := h.store.DoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}

	ix, err := h.store.AvailabilityIndex(c.Request.Context(), d.ID, req.Date, req.Date)
	if err != nil {
		h.storeError(c, err)
		return
	}

	decision := ix.Validate(schedule.Slot{Date: req.Date, Time: req.Time}, tod)
	if !decision.Accepted {
		c.JSON(http.StatusConflict, gin.H{"error": decision.Reason})
		return
	}

	apt := &model.Appointment{
		ID:        uuid.New().String(),
		PatientID: p.ID,
		DoctorID:  d.ID,
		Date:      req.Date,
		Time:      tod.String(),
		Status:    schedule.StatusBooked,
	}
	if err := h.store.CreateAppointment(c.Request.Context(), apt); err != nil {
		h.storeError(c, err)
		return
	}

	h.log.Info().Str("doctor", d.ID).Str("patient", p.ID).
		Str("date", apt.Date).Str("time", apt.Time).Msg("appointment booked")
	c.JSON(http.StatusCreated, gin.H{"appointment": apt})
}

func (h *Handler) PatientCancelAppointment(c *gin.Context) {
	p, ok := h.currentPatient(c)
	if !ok {
		return
	}
	if !schedule.CanTransition(schedule.ActorPatient, schedule.StatusCancelled) {
		c.JSON(http.StatusForbidden, gin.H{"error": "transition not allowed"})
		return
	}
	if err := h.store.SetStatusByPatient(c.Request.Context(), c.Param("id"), p.ID, schedule.StatusCancelled); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": schedule.StatusCancelled})
}

func (h *Handler) PatientHistory(c *gin.Context) {
	p, ok := h.currentPatient(c)
	if !ok {
		return
	}
	records, err := h.store.TreatmentsForPatient(c.Request.Context(), p.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatments": records})
}

func (h *Handler) PatientProfile(c *gin.Context) {
	p, ok := h.currentPatient(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

type patientProfileRequest struct {
	Fullname   string `json:"fullname" binding:"required"`
	Email      string `json:"email" binding:"required"`
	Phone      string `json:"phone"`
	Age        *int   `json:"age"`
	Gender     string `json:"gender"`
	Address    string `json:"address"`
	BloodGroup string `json:"blood_group"`
}

func (h *Handler) UpdatePatientProfile(c *gin.Context) {
	var req patientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "fullname and email required")
		return
	}
	p, ok := h.currentPatient(c)
	if !ok {
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
	c.JSON(http.StatusOK, gin.H{"profile": p})
}

// PatientSearch finds bookable doctors by name, specialization or
// department.
func (h *Handler) PatientSearch(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		badRequest(c, "query required")
		return
	}
	docs, err := h.store.SearchDoctors(c.Request.Context(), query, false)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": docs})
}
