package complaint

import "time"

// Complaint statuses. A complaint starts pending, moves to accepted or
// rejected by student action (or the auto-accept sweep), and ends resolved.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
	StatusResolved = "resolved"
)

// Complaint is a disciplinary report filed by faculty against a student.
// The joined student/faculty fields are populated by list queries.
type Complaint struct {
	ID             string    `json:"complaint_id"`
	StudentID      string    `json:"student_id"`
	FacultyID      string    `json:"faculty_id"`
	Description    string    `json:"complaint"`
	Venue          string    `json:"venue"`
	Status         string    `json:"status"`
	RevokeMessage  *string   `json:"revoke_message,omitempty"`
	MeetingAlloted bool      `json:"meeting_alloted"`
	CreatedAt      time.Time `json:"date_time"`

	StudentName   string `json:"student_name,omitempty"`
	StudentRegNum string `json:"student_reg_num,omitempty"`
	StudentEmail  string `json:"student_emailid,omitempty"`
	FacultyName   string `json:"faculty_name,omitempty"`
	FacultyEmail  string `json:"faculty_emailid,omitempty"`
}

// StatusCounts aggregates a user's complaints by status.
type StatusCounts struct {
	Pending  int `json:"pending_count"`
	Accepted int `json:"accepted_count"`
	Rejected int `json:"rejected_count"`
	Resolved int `json:"resolved_count"`
}

// StudentCounts pairs a student with their complaint totals.
type StudentCounts struct {
	StudentID     string `json:"student_id"`
	StudentName   string `json:"student_name"`
	StudentRegNum string `json:"student_reg_num"`
	StatusCounts
}
