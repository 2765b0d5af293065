package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hospital-portal-api/internal/model"
	"hospital-portal-api/internal/schedule"
)

func (h *Handler) DoctorDashboard(c *gin.Context) {
	d, ok := h.currentDoctor(c)
	if !ok {
		return
	}

	now := time.Now()
	from, to := weekRange(now)
	today := now.Format(dateFmt)

	week, err := h.store.BookedForDoctor(c.Request.Context(), d.ID, from, to)
	if err != nil {
		h.storeError(c, err)
		return
	}
	todays, err := h.store.BookedForDoctor(c.Request.Context(), d.ID, today, today)
	if err != nil {
		h.storeError(c, err)
		return
	}
	patients, err := h.store.PatientsSeenByDoctor(c.Request.Context(), d.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"doctor":             d,
		"week_appointments":  week,
		"today_appointments": todays,
		"patients":           patients,
	})
}

func (h *Handler) GetAvailability(c *gin.Context) {
	d, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	from, to := weekRange(time.Now())
	windows, err := h.store.AvailabilityRange(c.Request.Context(), d.ID, from, to)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "availability": windows})
}

type availabilityDay struct {
	Date         string  `json:"date" binding:"required"`
	MorningStart *string `json:"morning_start"`
	MorningEnd   *string `json:"morning_end"`
	EveningStart *string `json:"evening_start"`
	EveningEnd   *string `json:"evening_end"`
}

type declareAvailabilityRequest struct {
	Days []availabilityDay `json:"days" binding:"required"`
}

// DeclareAvailability replaces the doctor's windows for the rolling
// 7-day horizon with the submitted days. Days without at least one
// complete sub-window are dropped; a day submitted twice is rejected
// (one window row per doctor-day).
func (h *Handler) DeclareAvailability(c *gin.Context) {
	var req declareAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "days required")
		return
	}
	from, to := weekRange(time.Now())
	seen := make(map[string]bool)
	var windows []model.AvailabilityWindow

	for _, day := range req.Days {
		if _, err := time.Parse(dateFmt, day.Date); err != nil {
			badRequest(c, "invalid date "+day.Date)
			return
		}
		if day.Date < from || day.Date > to {
			badRequest(c, "date "+day.Date+" outside the 7-day horizon")
			return
		}
		if seen[day.Date] {
			badRequest(c, "duplicate date "+day.Date)
			return
		}
		seen[day.Date] = true

		w := model.AvailabilityWindow{Date: day.Date}
		okM, err := validPair(day.MorningStart, day.MorningEnd)
		if err != nil {
			badRequest(c, "invalid morning window on "+day.Date)
			return
		}
		if okM {
			w.MorningStart, w.MorningEnd = day.MorningStart, day.MorningEnd
		}
		okE, err := validPair(day.EveningStart, day.EveningEnd)
		if err != nil {
			badRequest(c, "invalid evening window on "+day.Date)
			return
		}
		if okE {
			w.EveningStart, w.EveningEnd = day.EveningStart, day.EveningEnd
		}
		if okM || okE {
			windows = append(windows, w)
		}
	}

	d, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	for i := range windows {
		windows[i].DoctorID = d.ID
	}

	if err := h.store.ReplaceAvailability(c.Request.Context(), d.ID, from, to, windows); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"from": from, "to": to, "days": len(windows)})
}

// validPair reports whether a sub-window is complete, and errors when
// it is malformed (half-set, unparsable, or start after end).
func validPair(start, end *string) (bool, error) {
	if start == nil && end == nil {
		return false, nil
	}
	if start == nil || end == nil {
		return false, schedule.ErrBadTime
	}
	s, err := schedule.ParseTimeOfDay(*start)
	if err != nil {
		return false, err
	}
	e, err := schedule.ParseTimeOfDay(*end)
	if err != nil {
		return false, err
	}
	if s > e {
		return false, schedule.ErrBadTime
	}
	return true, nil
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	h.doctorTransition(c, schedule.StatusCompleted)
}

func (h *Handler) DoctorCancelAppointment(c *gin.Context) {
	h.doctorTransition(c, schedule.StatusCancelled)
}

func (h *Handler) doctorTransition(c *gin.Context, target string) {
	d, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	if !schedule.CanTransition(schedule.ActorDoctor, target) {
		c.JSON(http.StatusForbidden, gin.H{"error": "transition not allowed"})
		return
	}
	if err := h.store.SetStatusByDoctor(c.Request.Context(), c.Param("id"), d.ID, target); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": target})
}

func (h *Handler) GetTreatment(c *gin.Context) {
	d, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	apt, err := h.store.AppointmentOwnedByDoctor(c.Request.Context(), c.Param("id"), d.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	t, err := h.store.TreatmentByAppointment(c.Request.Context(), apt.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatment": t})
}

type treatmentRequest struct {
	VisitType    string `json:"visit_type"`
	TestsDone    string `json:"tests_done"`
	Diagnosis    string `json:"diagnosis"`
	Prescription string `json:"prescription"`
	Medicines    string `json:"medicines"`
	Notes        string `json:"notes"`
}

// UpsertTreatment writes the appointment's treatment record. Only the
// assigned doctor may write it, regardless of the appointment's
// lifecycle status.
func (h *Handler) UpsertTreatment(c *gin.Context) {
	var req treatmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid body")
		return
	}
	d, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	apt, err := h.store.AppointmentOwnedByDoctor(c.Request.Context(), c.Param("id"), d.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	t := &model.Treatment{
		AppointmentID: apt.ID,
		VisitType:     req.VisitType,
		TestsDone:     req.TestsDone,
		Diagnosis:     req.Diagnosis,
		Prescription:  req.Prescription,
		Medicines:     req.Medicines,
		Notes:         req.Notes,
	}
	if err := h.store.UpsertTreatment(c.Request.Context(), t); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"treatment": t})
}

// DoctorPatientHistory shows the treatments this doctor has recorded
// for the patient.
func (h *Handler) DoctorPatientHistory(c *gin.Context) {
	d, ok := h.currentDoctor(c)
	if !ok {
		return
	}
	p, err := h.store.PatientByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	records, err := h.store.TreatmentsForPatientWithDoctor(c.Request.Context(), p.ID, d.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": p, "treatments": records})
}
