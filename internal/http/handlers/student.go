package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"dcportal/internal/complaint"
	"dcportal/internal/deadline"
	"dcportal/internal/meeting"
	"dcportal/internal/user"
)

// StudentHandler serves the student-facing routes.
type StudentHandler struct {
	complaints    *complaint.Repository
	complaintSvc  *complaint.Service
	meetings      *meeting.Repository
	users         *user.Repository
	studentWindow time.Duration
	grace         time.Duration
	clock         func() time.Time
}

// NewStudentHandler creates the handler.
func NewStudentHandler(complaints *complaint.Repository, complaintSvc *complaint.Service, meetings *meeting.Repository, users *user.Repository, studentWindow, grace time.Duration) *StudentHandler {
	return &StudentHandler{
		complaints:    complaints,
		complaintSvc:  complaintSvc,
		meetings:      meetings,
		users:         users,
		studentWindow: studentWindow,
		grace:         grace,
		clock:         time.Now,
	}
}

// Register mounts the student routes.
func (h *StudentHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/get_complaints/:id", h.getComplaints)
	rg.PATCH("/action_complaint/:complaint_id/:student_id", h.actionComplaint)
	rg.GET("/get_complaints_history/:student_id", h.getComplaintsHistory)
	rg.GET("/get_schedule_meetings/:student_id", h.getScheduleMeetings)
	rg.GET("/profile/:student_id", h.profile)
}

// getComplaints lists the student's complaints still inside the decision
// window, each with its live countdown, pending-first and soonest-deadline
// leading.
func (h *StudentHandler) getComplaints(c *gin.Context) {
	id := c.Param("id")
	if !requireSelf(c, id) {
		return
	}
	list, err := h.complaints.ListByStudent(c.Request.Context(), id, h.studentWindow, true)
	if err != nil {
		writeError(c, err)
		return
	}

	now := h.clock()
	views := make([]complaintView, 0, len(list))
	for _, cm := range list {
		views = append(views, complaintView{
			Complaint: cm,
			Countdown: deadline.ForComplaint(cm.CreatedAt, cm.Status, h.studentWindow, now),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return deadline.CompareStudentComplaints(views[i].Status, views[i].Complaint.CreatedAt, views[j].Status, views[j].Complaint.CreatedAt) < 0
	})
	c.JSON(http.StatusOK, gin.H{"success": true, "data": views})
}

func (h *StudentHandler) actionComplaint(c *gin.Context) {
	studentID := c.Param("student_id")
	if !requireSelf(c, studentID) {
		return
	}
	var req struct {
		Action string `json:"action" binding:"required"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "action is required"})
		return
	}
	if err := h.complaintSvc.Decide(c.Request.Context(), c.Param("complaint_id"), studentID, req.Action, req.Reason); err != nil {
		writeError(c, err)
		return
	}
	msg := "Complaint accepted!"
	if req.Action == "revoke" {
		msg = "Complaint revoked successfully!"
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

func (h *StudentHandler) getComplaintsHistory(c *gin.Context) {
	id := c.Param("student_id")
	if !requireSelf(c, id) {
		return
	}
	list, err := h.complaints.ListByStudent(c.Request.Context(), id, h.studentWindow, false)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

func (h *StudentHandler) getScheduleMeetings(c *gin.Context) {
	id := c.Param("student_id")
	if !requireSelf(c, id) {
		return
	}
	list, err := h.meetings.ListByStudent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": meetingViews(list, h.grace, h.clock())})
}

func (h *StudentHandler) profile(c *gin.Context) {
	id := c.Param("student_id")
	if !requireSelf(c, id) {
		return
	}
	u, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	counts, err := h.complaints.CountsByStudent(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u, "counts": counts})
}

// meetingViews derives countdown state for each meeting and applies the
// running > upcoming > ended display order.
func meetingViews(list []meeting.Meeting, grace time.Duration, now time.Time) []meetingView {
	views := make([]meetingView, 0, len(list))
	for _, m := range list {
		views = append(views, meetingView{
			Meeting:   m,
			Countdown: deadline.ForMeeting(m.DateTime, m.Attendance, grace, now),
			Phase:     deadline.Phase(m.DateTime, m.Attendance, grace, now),
		})
	}
	sort.SliceStable(views, func(i, j int) bool {
		return deadline.CompareMeetings(views[i].DateTime, views[i].Attendance, views[j].DateTime, views[j].Attendance, grace, now) < 0
	})
	return views
}
