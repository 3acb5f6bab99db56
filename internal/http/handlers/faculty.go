package handlers

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"dcportal/internal/auth"
	"dcportal/internal/complaint"
	"dcportal/internal/deadline"
	"dcportal/internal/meeting"
	"dcportal/internal/scan"
	"dcportal/internal/user"
)

// maxCardPhotoBytes caps the uploaded ID-card image size.
const maxCardPhotoBytes = 10 << 20

// FacultyHandler serves the faculty-facing routes.
type FacultyHandler struct {
	complaints    *complaint.Repository
	complaintSvc  *complaint.Service
	meetings      *meeting.Repository
	users         *user.Repository
	scanner       *scan.Service
	facultyWindow time.Duration
	grace         time.Duration
	clock         func() time.Time
}

// NewFacultyHandler creates the handler.
func NewFacultyHandler(complaints *complaint.Repository, complaintSvc *complaint.Service, meetings *meeting.Repository, users *user.Repository, scanner *scan.Service, facultyWindow, grace time.Duration) *FacultyHandler {
	return &FacultyHandler{
		complaints:    complaints,
		complaintSvc:  complaintSvc,
		meetings:      meetings,
		users:         users,
		scanner:       scanner,
		facultyWindow: facultyWindow,
		grace:         grace,
		clock:         time.Now,
	}
}

// Register mounts the faculty routes.
func (h *FacultyHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/complaints", h.fileComplaint)
	rg.GET("/complaints/:complaint_id", h.getComplaint)
	rg.PUT("/updatecomplaint/:complaint_id/:faculty_id", h.updateComplaint)
	rg.GET("/get_complaints/:faculty_id", h.getComplaints)
	rg.GET("/get_complaints_history/:faculty_id", h.getComplaintsHistory)
	rg.GET("/get_schedule_meetings/:faculty_id", h.getScheduleMeetings)
	rg.POST("/resolve_complaint/:complaint_id", h.resolveComplaint)
	rg.GET("/get_students", h.getStudents)
	rg.GET("/profile/:faculty_id", h.profile)
	rg.POST("/scan_id_card", h.scanIDCard)
}

type complaintForm struct {
	FacultyID   string `json:"faculty_id" binding:"required"`
	StudentName string `json:"student_name" binding:"required"`
	RegNum      string `json:"reg_num" binding:"required"`
	Venue       string `json:"venue" binding:"required"`
	Complaint   string `json:"complaint" binding:"required"`
}

func (h *FacultyHandler) fileComplaint(c *gin.Context) {
	var req complaintForm
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "all fields are required"})
		return
	}
	if !requireSelf(c, req.FacultyID) {
		return
	}
	cm, err := h.complaintSvc.File(c.Request.Context(), req.FacultyID, req.StudentName, req.RegNum, req.Venue, req.Complaint)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "no student matches the given name and register number"})
			return
		}
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Complaint registered successfully!", "complaint_id": cm.ID})
}

func (h *FacultyHandler) getComplaint(c *gin.Context) {
	cm, err := h.complaints.GetByID(c.Request.Context(), c.Param("complaint_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if !requireSelf(c, cm.FacultyID) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": cm})
}

func (h *FacultyHandler) updateComplaint(c *gin.Context) {
	facultyID := c.Param("faculty_id")
	if !requireSelf(c, facultyID) {
		return
	}
	var req struct {
		StudentName string `json:"student_name" binding:"required"`
		RegNum      string `json:"reg_num" binding:"required"`
		Venue       string `json:"venue" binding:"required"`
		Complaint   string `json:"complaint" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "all fields are required"})
		return
	}
	err := h.complaintSvc.Amend(c.Request.Context(), c.Param("complaint_id"), facultyID, req.StudentName, req.RegNum, req.Venue, req.Complaint)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Complaint updated successfully!"})
}

// getComplaints lists complaints still inside the faculty review window, each
// with its live countdown.
func (h *FacultyHandler) getComplaints(c *gin.Context) {
	id := c.Param("faculty_id")
	if !requireSelf(c, id) {
		return
	}
	list, err := h.complaints.ListByFaculty(c.Request.Context(), id, h.facultyWindow, true)
	if err != nil {
		writeError(c, err)
		return
	}

	now := h.clock()
	views := make([]complaintView, 0, len(list))
	for _, cm := range list {
		views = append(views, complaintView{
			Complaint: cm,
			Countdown: deadline.ForComplaint(cm.CreatedAt, cm.Status, h.facultyWindow, now),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return deadline.CompareFacultyComplaints(views[i].Status, views[i].Complaint.CreatedAt, views[j].Status, views[j].Complaint.CreatedAt) < 0
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

func (h *FacultyHandler) getComplaintsHistory(c *gin.Context) {
	id := c.Param("faculty_id")
	if !requireSelf(c, id) {
		return
	}
	list, err := h.complaints.ListByFaculty(c.Request.Context(), id, h.facultyWindow, false)
	if err != nil {
		writeError(c, err)
		return
	}
	sort.SliceStable(list, func(i, j int) bool {
		return deadline.CompareFacultyComplaints(list[i].Status, list[i].CreatedAt, list[j].Status, list[j].CreatedAt) < 0
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

func (h *FacultyHandler) getScheduleMeetings(c *gin.Context) {
	id := c.Param("faculty_id")
	if !requireSelf(c, id) {
		return
	}
	list, err := h.meetings.ListByFaculty(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": meetingViews(list, h.grace, h.clock())})
}

func (h *FacultyHandler) resolveComplaint(c *gin.Context) {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "user mismatch"})
		return
	}
	if err := h.complaintSvc.Resolve(c.Request.Context(), c.Param("complaint_id"), claims.UserID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Complaint resolved successfully!"})
}

func (h *FacultyHandler) getStudents(c *gin.Context) {
	roster, err := h.users.ListRoster(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": roster})
}

func (h *FacultyHandler) profile(c *gin.Context) {
	id := c.Param("faculty_id")
	if !requireSelf(c, id) {
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	counts, err := h.complaints.CountsByFaculty(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u, "counts": counts})
}

// scanIDCard runs the card scan pipeline on an uploaded photo. The image
// arrives either as a multipart "image" file or as a JSON body with a base64
// data URL. Extraction failures come back 422 with the missing fields so the
// client can offer retry or manual entry; match outcomes ride in the payload.
func (h *FacultyHandler) scanIDCard(c *gin.Context) {
	if h.scanner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "card scanning is not configured"})
		return
	}
	img, ok := h.readCardImage(c)
	if !ok {
		return
	}

	res, err := h.scanner.ScanCard(c.Request.Context(), img)
	if err != nil {
		var exErr *scan.ExtractionError
		if errors.As(err, &exErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"success":        false,
				"error":          exErr.Error(),
				"missing_fields": exErr.Missing,
				"image_url":      res.ImageURL,
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": "scan failed, try again or enter details manually"})
		return
	}

	body := gin.H{
		"success":   true,
		"image_url": res.ImageURL,
		"outcome":   res.Match.Outcome,
	}
	switch res.Match.Outcome {
	case scan.OutcomeMatched:
		body["student"] = res.Match.Student
	case scan.OutcomeNameMismatch:
		body["extracted"] = res.Extracted
		body["similarity"] = res.Match.Similarity
		body["error"] = "scanned name does not match the roster entry for this register number"
	case scan.OutcomeNotFound:
		body["extracted"] = res.Extracted
		body["error"] = "no student with this register number"
	}
	c.JSON(http.StatusOK, body)
}

func (h *FacultyHandler) readCardImage(c *gin.Context) (scan.CardImage, bool) {
	if file, err := c.FormFile("image"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not read image"})
			return scan.CardImage{}, false
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, maxCardPhotoBytes))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not read image"})
			return scan.CardImage{}, false
		}
		return scan.CardImage{Data: data, Filename: file.Filename}, true
	}

	var req struct {
		Image string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "image is required"})
		return scan.CardImage{}, false
	}
	return scan.CardImage{Base64: req.Image}, true
}
