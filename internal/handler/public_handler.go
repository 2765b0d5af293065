package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListDepartments(c *gin.Context) {
	deps, err := h.store.ListDepartments(c.Request.Context())
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"departments": deps})
}

// DepartmentDoctors lists the bookable doctors of a department.
func (h *Handler) DepartmentDoctors(c *gin.Context) {
	dep, err := h.store.DepartmentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	docs, err := h.store.DoctorsByDepartment(c.Request.Context(), dep.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": dep, "doctors": docs})
}

func (h *Handler) DoctorProfile(c *gin.Context) {
	d, err := h.store.DoctorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctor": d})
}
