package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"dcportal/internal/complaint"
	"dcportal/internal/meeting"
	"dcportal/internal/user"
)

// AdminHandler serves the admin-facing routes.
type AdminHandler struct {
	complaints   *complaint.Repository
	complaintSvc *complaint.Service
	meetings     *meeting.Repository
	meetingSvc   *meeting.Service
	users        *user.Repository
	grace        time.Duration
	clock        func() time.Time
}

// NewAdminHandler creates the handler.
func NewAdminHandler(complaints *complaint.Repository, complaintSvc *complaint.Service, meetings *meeting.Repository, meetingSvc *meeting.Service, users *user.Repository, grace time.Duration) *AdminHandler {
	return &AdminHandler{
		complaints:   complaints,
		complaintSvc: complaintSvc,
		meetings:     meetings,
		meetingSvc:   meetingSvc,
		users:        users,
		grace:        grace,
		clock:        time.Now,
	}
}

// Register mounts the admin routes.
func (h *AdminHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/schedule_meetings/:complaint_id/:admin_id", h.scheduleMeeting)
	rg.GET("/get_schedule_meetings/:admin_id", h.getScheduleMeetings)
	rg.GET("/get_complaints", h.getComplaints)
	rg.GET("/get_rejected_complaints", h.getRejectedComplaints)
	rg.POST("/post_attendance", h.postAttendance)
	rg.POST("/post_accept_or_resolve", h.postAcceptOrResolve)
	rg.GET("/get_complaints_summary", h.getComplaintsSummary)
	rg.GET("/getStudents", h.getStudents)
	rg.GET("/getAllStudentsCounts", h.getAllStudentsCounts)
	rg.GET("/getStudentProfile/:student_name/:student_reg_num", h.getStudentProfile)
}

func (h *AdminHandler) scheduleMeeting(c *gin.Context) {
	adminID := c.Param("admin_id")
	if !requireSelf(c, adminID) {
		return
	}
	var req struct {
		Venue    string    `json:"venue" binding:"required"`
		Info     string    `json:"info"`
		DateTime time.Time `json:"meeting_date_time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "venue and meeting_date_time are required"})
		return
	}
	m, err := h.meetingSvc.Schedule(c.Request.Context(), c.Param("complaint_id"), adminID, req.Venue, req.Info, req.DateTime)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Meeting scheduled successfully!", "meeting_id": m.ID})
}

func (h *AdminHandler) getScheduleMeetings(c *gin.Context) {
	id := c.Param("admin_id")
	if !requireSelf(c, id) {
		return
	}
	list, err := h.meetings.ListByAdmin(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": meetingViews(list, h.grace, h.clock())})
}

func (h *AdminHandler) getComplaints(c *gin.Context) {
	list, err := h.complaints.ListAll(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

// getRejectedComplaints returns the scheduling worklist: rejected complaints
// with no meeting alloted yet.
func (h *AdminHandler) getRejectedComplaints(c *gin.Context) {
	list, err := h.complaints.ListRejected(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": list})
}

func (h *AdminHandler) postAttendance(c *gin.Context) {
	var req struct {
		MeetingID  string `json:"meeting_id" binding:"required"`
		Attendance string `json:"attendance" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "meeting_id and attendance are required"})
		return
	}
	if err := h.meetingSvc.MarkAttendance(c.Request.Context(), req.MeetingID, req.Attendance); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Attendance recorded!"})
}

// postAcceptOrResolve settles a post-meeting rejected complaint.
func (h *AdminHandler) postAcceptOrResolve(c *gin.Context) {
	var req struct {
		ComplaintID string `json:"complaint_id" binding:"required"`
		Status      string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "complaint_id and status are required"})
		return
	}
	if err := h.complaintSvc.Settle(c.Request.Context(), req.ComplaintID, req.Status); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Complaint settled!"})
}

func (h *AdminHandler) getComplaintsSummary(c *gin.Context) {
	summary, err := h.complaints.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": summary})
}

func (h *AdminHandler) getStudents(c *gin.Context) {
	roster, err := h.users.ListRoster(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": roster})
}

// getAllStudentsCounts returns per-student complaint totals across the whole
// roster, including students with no complaints.
func (h *AdminHandler) getAllStudentsCounts(c *gin.Context) {
	counts, err := h.complaints.CountsForAllStudents(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": counts})
}

// getStudentProfile looks a student up by the exact name and register number
// pair and returns their account with complaint totals.
func (h *AdminHandler) getStudentProfile(c *gin.Context) {
	u, err := h.users.StudentByNameAndRegNum(c.Request.Context(), c.Param("student_name"), c.Param("student_reg_num"))
	if err != nil {
		writeError(c, err)
		return
	}
	counts, err := h.complaints.CountsByStudent(c.Request.Context(), u.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": u, "counts": counts})
}
