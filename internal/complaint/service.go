package complaint

import (
	"context"
	"errors"
	"strings"
	"time"

	"dcportal/internal/user"
)

// ErrInvalidInput is returned for malformed or incomplete requests.
var ErrInvalidInput = errors.New("invalid input")

// Service coordinates the complaint lifecycle.
type Service struct {
	repo  *Repository
	users *user.Repository
	clock func() time.Time
}

// NewService creates a service backed by the complaint and user repositories.
func NewService(repo *Repository, users *user.Repository) *Service {
	return &Service{repo: repo, users: users, clock: time.Now}
}

// File registers a new complaint. The student is resolved from the exact
// {name, reg_num} pair the form submits, which is either manual entry or the
// canonical roster entry the scanner auto-filled.
func (s *Service) File(ctx context.Context, facultyID, studentName, regNum, venue, description string) (Complaint, error) {
	if facultyID == "" || studentName == "" || regNum == "" || venue == "" || description == "" {
		return Complaint{}, ErrInvalidInput
	}
	student, err := s.users.StudentByNameAndRegNum(ctx, studentName, regNum)
	if err != nil {
		return Complaint{}, err
	}

	c := Complaint{
		ID:          NewID(),
		StudentID:   student.ID,
		FacultyID:   facultyID,
		Description: description,
		Venue:       venue,
		Status:      StatusPending,
		CreatedAt:   s.clock().UTC(),
	}
	if err := s.repo.Insert(ctx, c); err != nil {
		return Complaint{}, err
	}
	return c, nil
}

// Amend updates a pending complaint's details on behalf of the filing faculty.
func (s *Service) Amend(ctx context.Context, complaintID, facultyID, studentName, regNum, venue, description string) error {
	if complaintID == "" || facultyID == "" || studentName == "" || regNum == "" || venue == "" || description == "" {
		return ErrInvalidInput
	}
	student, err := s.users.StudentByNameAndRegNum(ctx, studentName, regNum)
	if err != nil {
		return err
	}
	return s.repo.Update(ctx, complaintID, facultyID, student.ID, description, venue)
}

// Decide applies a student's accept or revoke decision. Revoking requires a
// reason; accepting clears any previous one.
func (s *Service) Decide(ctx context.Context, complaintID, studentID, action, reason string) error {
	if complaintID == "" || studentID == "" {
		return ErrInvalidInput
	}
	switch action {
	case "accept":
		return s.repo.Action(ctx, complaintID, studentID, StatusAccepted, nil)
	case "revoke":
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return ErrInvalidInput
		}
		return s.repo.Action(ctx, complaintID, studentID, StatusRejected, &reason)
	default:
		return ErrInvalidInput
	}
}

// AutoAccept applies the deadline sweep's transition for a complaint whose
// decision window elapsed without student action. ErrConflict means a manual
// decision won the race, which the caller treats as done.
func (s *Service) AutoAccept(ctx context.Context, complaintID string) error {
	if complaintID == "" {
		return ErrInvalidInput
	}
	return s.repo.AutoAccept(ctx, complaintID)
}

// Resolve closes a complaint on behalf of the faculty member who filed it.
func (s *Service) Resolve(ctx context.Context, complaintID, facultyID string) error {
	if strings.TrimSpace(complaintID) == "" || facultyID == "" {
		return ErrInvalidInput
	}
	return s.repo.MarkResolved(ctx, complaintID, facultyID)
}

// Settle moves a post-meeting rejected complaint to its final status.
func (s *Service) Settle(ctx context.Context, complaintID, status string) error {
	if complaintID == "" || (status != StatusAccepted && status != StatusResolved) {
		return ErrInvalidInput
	}
	return s.repo.Settle(ctx, complaintID, status)
}
