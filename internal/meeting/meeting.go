package meeting

import (
	"math/rand"
	"time"

	"dcportal/internal/complaint"
)

// Attendance states for an enquiry meeting.
const (
	AttendanceScheduled = "scheduled"
	AttendancePresent   = "present"
	AttendanceAbsent    = "absent"
)

// Meeting is an enquiry session scheduled by an admin for a rejected
// complaint. Joined complaint and party fields are populated by list queries.
type Meeting struct {
	ID          string    `json:"meeting_id"`
	ComplaintID string    `json:"complaint_id"`
	AdminID     string    `json:"admin_id"`
	Venue       string    `json:"venue"`
	Info        string    `json:"info"`
	DateTime    time.Time `json:"meeting_date_time"`
	Attendance  string    `json:"attendance"`
	CreatedAt   time.Time `json:"created_at"`

	ComplaintVenue  string    `json:"fl_venue,omitempty"`
	ComplaintTime   time.Time `json:"fl_date_time,omitempty"`
	ComplaintText   string    `json:"fl_complaint,omitempty"`
	ComplaintStatus string    `json:"fl_status,omitempty"`
	RevokeMessage   *string   `json:"revoke_message,omitempty"`
	StudentID       string    `json:"student_id,omitempty"`
	StudentName     string    `json:"student_name,omitempty"`
	StudentEmail    string    `json:"student_email,omitempty"`
	StudentRegNum   string    `json:"student_reg_num,omitempty"`
	FacultyID       string    `json:"faculty_id,omitempty"`
	FacultyName     string    `json:"faculty_name,omitempty"`
	FacultyEmail    string    `json:"faculty_email,omitempty"`
	AdminName       string    `json:"admin_name,omitempty"`
	AdminEmail      string    `json:"admin_email,omitempty"`
}

// NewID generates a meeting id of the form MEET-XXXX: four shuffled
// characters with at least one letter and one digit.
func NewID() string {
	return "MEET-" + complaint.RandomCode(4, 1+rand.Intn(3))
}
