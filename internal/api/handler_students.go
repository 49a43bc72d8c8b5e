package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name    *string `json:"name"`
	FloorNo *int    `json:"floor_no"`
	PageNo  *int    `json:"page_no"`
}

// RegisterStudent handles POST /api/students/register. Presence is checked
// explicitly, so a provided floor_no or page_no of 0 is accepted; only
// absent fields (or a blank name) are rejected. No duplicate check is
// performed: registering the same identity twice creates two students.
func (h *Handler) RegisterStudent(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing name, floor_no or page_no"})
		return
	}

	if req.Name == nil || strings.TrimSpace(*req.Name) == "" || req.FloorNo == nil || req.PageNo == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing name, floor_no or page_no"})
		return
	}

	studentID, err := h.store.RegisterStudent(c.Request.Context(), *req.Name, *req.FloorNo, *req.PageNo)
	if err != nil {
		h.fail("register: create student", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error registering student."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Student registered", "studentId": studentID})
}

// SearchStudents handles GET /api/students/search, a diagnostic lookup using
// the same normalized matching as submission but returning every match. An
// empty result is an empty array, never a 404.
func (h *Handler) SearchStudents(c *gin.Context) {
	students, err := h.store.SearchStudents(
		c.Request.Context(),
		c.Query("name"),
		c.Query("floor"),
		c.Query("page"),
	)
	if err != nil {
		h.fail("search: query students", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error searching students."})
		return
	}

	c.JSON(http.StatusOK, students)
}
