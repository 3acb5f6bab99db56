package meeting

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrInvalidInput is returned for malformed or incomplete requests.
var ErrInvalidInput = errors.New("invalid input")

// Service coordinates enquiry meeting scheduling and attendance.
type Service struct {
	repo  *Repository
	clock func() time.Time
}

// NewService creates a service backed by the meeting repository.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo, clock: time.Now}
}

// Schedule creates a meeting for a rejected complaint that has none yet.
func (s *Service) Schedule(ctx context.Context, complaintID, adminID, venue, info string, dateTime time.Time) (Meeting, error) {
	if complaintID == "" || adminID == "" || strings.TrimSpace(venue) == "" || dateTime.IsZero() {
		return Meeting{}, ErrInvalidInput
	}
	m := Meeting{
		ID:          NewID(),
		ComplaintID: complaintID,
		AdminID:     adminID,
		Venue:       venue,
		Info:        info,
		DateTime:    dateTime.UTC(),
		Attendance:  AttendanceScheduled,
		CreatedAt:   s.clock().UTC(),
	}
	if err := s.repo.Schedule(ctx, m); err != nil {
		return Meeting{}, err
	}
	return m, nil
}

// MarkAttendance records a manual present/absent decision.
func (s *Service) MarkAttendance(ctx context.Context, meetingID, attendance string) error {
	if meetingID == "" || (attendance != AttendancePresent && attendance != AttendanceAbsent) {
		return ErrInvalidInput
	}
	return s.repo.SetAttendance(ctx, meetingID, attendance)
}

// AutoAbsent applies the deadline sweep's transition for a meeting whose
// attendance window elapsed without admin action. ErrConflict means a manual
// mark won the race, which the caller treats as done.
func (s *Service) AutoAbsent(ctx context.Context, meetingID string) error {
	if meetingID == "" {
		return ErrInvalidInput
	}
	return s.repo.SetAttendance(ctx, meetingID, AttendanceAbsent)
}
