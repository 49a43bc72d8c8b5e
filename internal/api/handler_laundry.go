package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VishalRj23/laundry-management-system/internal/model"
	"github.com/VishalRj23/laundry-management-system/internal/store"
)

type giveRequest struct {
	Name     string `json:"name"`
	Floor    int    `json:"floor"`
	PageNo   int    `json:"page_no"`
	TShirt   int    `json:"tshirt"`
	Shirt    int    `json:"shirt"`
	Pant     int    `json:"pant"`
	Bedsheet int    `json:"bedsheet"`
	Total    int    `json:"total"`
}

// GiveClothes handles POST /api/give: it resolves the student by the
// normalized (name, floor, page) identity, creates a laundry record dated
// today, and persists the positive item quantities as detail rows.
func (h *Handler) GiveClothes(c *gin.Context) {
	var req giveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body."})
		return
	}

	student, err := h.store.ResolveStudent(c.Request.Context(), req.Name, req.Floor, req.PageNo)
	if errors.Is(err, store.ErrStudentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Student not found! Please register first.",
			"searched": gin.H{
				"name":    strings.TrimSpace(req.Name),
				"floor":   req.Floor,
				"page_no": req.PageNo,
			},
		})
		return
	}
	if err != nil {
		h.fail("give: resolve student", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding clothes record."})
		return
	}

	quantities := model.Quantities{
		model.ItemTShirt:   req.TShirt,
		model.ItemShirt:    req.Shirt,
		model.ItemPant:     req.Pant,
		model.ItemBedsheet: req.Bedsheet,
	}

	recordID, err := h.store.CreateRecord(c.Request.Context(), student.StudentID, req.Total, quantities)
	if err != nil {
		h.fail("give: create record", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error adding clothes record."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Clothes submitted successfully!", "recordId": recordID})
}

// lastRecordView is the flattened response for GET /api/last.
type lastRecordView struct {
	RecordID  int64  `json:"record_id"`
	Name      string `json:"name"`
	Floor     int    `json:"floor"`
	PageNo    int    `json:"page_no"`
	GivenDate string `json:"given_date"`
	Total     int    `json:"total"`
	Confirmed bool   `json:"confirmed"`
	TShirt    int    `json:"tshirt"`
	Shirt     int    `json:"shirt"`
	Pant      int    `json:"pant"`
	Bedsheet  int    `json:"bedsheet"`
}

// LastRecord handles GET /api/last/:floor/:pageNo. The student is looked up
// by floor and page alone; a student with no records yields a JSON null body.
func (h *Handler) LastRecord(c *gin.Context) {
	floor := c.Param("floor")
	pageNo := c.Param("pageNo")

	student, err := h.store.FindStudentByRoom(c.Request.Context(), floor, pageNo)
	if errors.Is(err, store.ErrStudentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Student not found!"})
		return
	}
	if err != nil {
		h.fail("last: find student", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching last record."})
		return
	}

	record, breakdown, err := h.store.LastRecord(c.Request.Context(), student.StudentID)
	if err != nil {
		h.fail("last: fetch record", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching last record."})
		return
	}
	if record == nil {
		c.JSON(http.StatusOK, nil)
		return
	}

	c.JSON(http.StatusOK, lastRecordView{
		RecordID:  record.RecordID,
		Name:      student.Name,
		Floor:     student.FloorNo,
		PageNo:    student.PageNo,
		GivenDate: record.DateGiven.Format("2006-01-02"),
		Total:     record.TotalClothes,
		Confirmed: record.IsCollected,
		TShirt:    breakdown[model.ItemTShirt],
		Shirt:     breakdown[model.ItemShirt],
		Pant:      breakdown[model.ItemPant],
		Bedsheet:  breakdown[model.ItemBedsheet],
	})
}

// ConfirmCollection handles PUT /api/confirm/:recordId. Confirming an
// already collected record reports success again.
func (h *Handler) ConfirmCollection(c *gin.Context) {
	recordID, err := strconv.ParseInt(c.Param("recordId"), 10, 64)
	if err != nil {
		// A non-numeric id can never match a record.
		c.JSON(http.StatusNotFound, gin.H{"message": "Record not found!"})
		return
	}

	err = h.store.ConfirmCollection(c.Request.Context(), recordID)
	if errors.Is(err, store.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Record not found!"})
		return
	}
	if err != nil {
		h.fail("confirm: update record", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error confirming collection."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collection confirmed!", "recordId": recordID, "confirmed": true})
}
