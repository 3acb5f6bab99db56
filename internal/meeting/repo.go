package meeting

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no meeting matches the lookup.
	ErrNotFound = errors.New("meeting not found")
	// ErrConflict is returned when a conditional update matched no row.
	ErrConflict = errors.New("meeting already transitioned")
	// ErrAlreadyScheduled is returned when the complaint already has a meeting.
	ErrAlreadyScheduled = errors.New("meeting already alloted for complaint")
	// ErrNotSchedulable is returned when the complaint is not in the rejected state.
	ErrNotSchedulable = errors.New("complaint is not rejected")
)

// Repository persists meetings in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Schedule inserts a meeting for a rejected complaint and flips the
// complaint's meeting_alloted flag, in one transaction. The flag update's
// WHERE clause is the guard against double scheduling.
func (r *Repository) Schedule(ctx context.Context, m Meeting) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var status string
	var alloted bool
	row := tx.QueryRowContext(ctx, `
		SELECT status, meeting_alloted FROM complaints WHERE complaint_id = $1 FOR UPDATE
	`, m.ComplaintID)
	if err := row.Scan(&status, &alloted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	if alloted {
		return ErrAlreadyScheduled
	}
	if status != "rejected" {
		return ErrNotSchedulable
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO meetings (meeting_id, complaint_id, admin_id, venue, info, date_time, attendance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, m.ID, m.ComplaintID, m.AdminID, m.Venue, m.Info, m.DateTime, m.Attendance, m.CreatedAt); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `
		UPDATE complaints SET meeting_alloted = TRUE WHERE complaint_id = $1
	`, m.ComplaintID); err != nil {
		return err
	}
	return tx.Commit()
}

const listQuery = `
	SELECT
		m.meeting_id, m.complaint_id, m.admin_id, m.venue, m.info,
		m.date_time, m.attendance, m.created_at,
		c.venue, c.created_at, c.complaint, c.status, c.revoke_message,
		s.user_id, s.name, s.email, COALESCE(s.reg_num, ''),
		f.user_id, f.name, f.email,
		a.name, a.email
	FROM meetings m
	JOIN complaints c ON c.complaint_id = m.complaint_id
	JOIN users s ON s.user_id = c.student_id
	JOIN users f ON f.user_id = c.faculty_id
	JOIN users a ON a.user_id = m.admin_id
`

func (r *Repository) list(ctx context.Context, where string, args ...any) ([]Meeting, error) {
	rows, err := r.db.QueryContext(ctx, listQuery+where+` ORDER BY m.date_time DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Meeting
	for rows.Next() {
		var m Meeting
		if err := rows.Scan(
			&m.ID, &m.ComplaintID, &m.AdminID, &m.Venue, &m.Info,
			&m.DateTime, &m.Attendance, &m.CreatedAt,
			&m.ComplaintVenue, &m.ComplaintTime, &m.ComplaintText, &m.ComplaintStatus, &m.RevokeMessage,
			&m.StudentID, &m.StudentName, &m.StudentEmail, &m.StudentRegNum,
			&m.FacultyID, &m.FacultyName, &m.FacultyEmail,
			&m.AdminName, &m.AdminEmail,
		); err != nil {
			return nil, err
		}
		res = append(res, m)
	}
	return res, rows.Err()
}

// ListByStudent returns meetings for complaints against the student.
func (r *Repository) ListByStudent(ctx context.Context, studentID string) ([]Meeting, error) {
	return r.list(ctx, ` WHERE c.student_id = $1`, studentID)
}

// ListByFaculty returns meetings for complaints the faculty member filed.
func (r *Repository) ListByFaculty(ctx context.Context, facultyID string) ([]Meeting, error) {
	return r.list(ctx, ` WHERE c.faculty_id = $1`, facultyID)
}

// ListByAdmin returns meetings the admin scheduled.
func (r *Repository) ListByAdmin(ctx context.Context, adminID string) ([]Meeting, error) {
	return r.list(ctx, ` WHERE m.admin_id = $1`, adminID)
}

// SetAttendance marks a scheduled meeting present or absent. The WHERE
// clause is the compare-and-swap guard against a concurrent manual mark or
// auto-absent sweep.
func (r *Repository) SetAttendance(ctx context.Context, meetingID, attendance string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE meetings SET attendance = $2
		WHERE meeting_id = $1 AND attendance = 'scheduled'
	`, meetingID, attendance)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrConflict
	}
	return nil
}

// DueForAutoAbsent returns ids of scheduled meetings whose attendance window
// (meeting time plus grace) has fully elapsed as of now.
func (r *Repository) DueForAutoAbsent(ctx context.Context, now time.Time, grace time.Duration) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT meeting_id FROM meetings
		WHERE attendance = 'scheduled' AND date_time + ($2 * interval '1 second') <= $1
	`, now, grace.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
