package complaint

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when no complaint matches the lookup.
	ErrNotFound = errors.New("complaint not found")
	// ErrConflict is returned when a conditional transition matched no row,
	// i.e. someone else already moved the complaint out of the expected state.
	ErrConflict = errors.New("complaint already transitioned")
)

// Repository persists complaints in Postgres.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repo.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Insert writes a new complaint.
func (r *Repository) Insert(ctx context.Context, c Complaint) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO complaints (complaint_id, student_id, faculty_id, complaint, venue, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, c.ID, c.StudentID, c.FacultyID, c.Description, c.Venue, c.Status, c.CreatedAt)
	return err
}

// Update rewrites an editable complaint's details. Only the owning faculty
// may update, and only while the complaint is still pending.
func (r *Repository) Update(ctx context.Context, id, facultyID, studentID, description, venue string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE complaints
		SET student_id = $3, complaint = $4, venue = $5
		WHERE complaint_id = $1 AND faculty_id = $2 AND status = 'pending'
	`, id, facultyID, studentID, description, venue)
	if err != nil {
		return err
	}
	return oneRowOr(res, ErrNotFound)
}

const baseColumns = `
	c.complaint_id, c.student_id, c.faculty_id, c.complaint, c.venue,
	c.status, c.revoke_message, c.meeting_alloted, c.created_at`

// GetByID returns a single complaint with its student details joined.
func (r *Repository) GetByID(ctx context.Context, id string) (Complaint, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+baseColumns+`, s.name, COALESCE(s.reg_num, ''), s.email
		FROM complaints c
		JOIN users s ON s.user_id = c.student_id
		WHERE c.complaint_id = $1
	`, id)
	var c Complaint
	err := row.Scan(
		&c.ID, &c.StudentID, &c.FacultyID, &c.Description, &c.Venue,
		&c.Status, &c.RevokeMessage, &c.MeetingAlloted, &c.CreatedAt,
		&c.StudentName, &c.StudentRegNum, &c.StudentEmail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Complaint{}, ErrNotFound
	}
	return c, err
}

// ListByStudent returns a student's complaints on one side of the decision
// window boundary, with the filing faculty joined. Active complaints come
// oldest-first so the soonest deadline leads; history comes newest-first.
func (r *Repository) ListByStudent(ctx context.Context, studentID string, window time.Duration, active bool) ([]Complaint, error) {
	cmp, order := "<", "DESC"
	if active {
		cmp, order = ">=", "ASC"
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+baseColumns+`, f.name, f.email
		FROM complaints c
		LEFT JOIN users f ON f.user_id = c.faculty_id
		WHERE c.student_id = $1
		  AND c.created_at `+cmp+` NOW() - ($2 * interval '1 second')
		ORDER BY c.created_at `+order, studentID, window.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Complaint
	for rows.Next() {
		var c Complaint
		if err := rows.Scan(
			&c.ID, &c.StudentID, &c.FacultyID, &c.Description, &c.Venue,
			&c.Status, &c.RevokeMessage, &c.MeetingAlloted, &c.CreatedAt,
			&c.FacultyName, &c.FacultyEmail,
		); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// ListByFaculty returns a faculty member's complaints on one side of the
// window boundary, with the accused student joined. Both sides come
// newest-first.
func (r *Repository) ListByFaculty(ctx context.Context, facultyID string, window time.Duration, active bool) ([]Complaint, error) {
	cmp := "<"
	if active {
		cmp = ">="
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+baseColumns+`, s.name, COALESCE(s.reg_num, ''), s.email
		FROM complaints c
		LEFT JOIN users s ON s.user_id = c.student_id
		WHERE c.faculty_id = $1
		  AND c.created_at `+cmp+` NOW() - ($2 * interval '1 second')
		ORDER BY c.created_at DESC`, facultyID, window.Seconds())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWithStudent(rows)
}

// ListAll returns every complaint with both parties joined, newest-first.
func (r *Repository) ListAll(ctx context.Context) ([]Complaint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+baseColumns+`, s.name, COALESCE(s.reg_num, ''), s.email, f.name, f.email
		FROM complaints c
		LEFT JOIN users s ON s.user_id = c.student_id
		LEFT JOIN users f ON f.user_id = c.faculty_id
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Complaint
	for rows.Next() {
		var c Complaint
		if err := rows.Scan(
			&c.ID, &c.StudentID, &c.FacultyID, &c.Description, &c.Venue,
			&c.Status, &c.RevokeMessage, &c.MeetingAlloted, &c.CreatedAt,
			&c.StudentName, &c.StudentRegNum, &c.StudentEmail,
			&c.FacultyName, &c.FacultyEmail,
		); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// ListRejected returns rejected complaints that have no meeting alloted yet,
// the admin's scheduling worklist.
func (r *Repository) ListRejected(ctx context.Context) ([]Complaint, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+baseColumns+`, s.name, COALESCE(s.reg_num, ''), s.email
		FROM complaints c
		LEFT JOIN users s ON s.user_id = c.student_id
		WHERE c.status = 'rejected' AND NOT c.meeting_alloted
		ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWithStudent(rows)
}

func collectWithStudent(rows *sql.Rows) ([]Complaint, error) {
	var res []Complaint
	for rows.Next() {
		var c Complaint
		if err := rows.Scan(
			&c.ID, &c.StudentID, &c.FacultyID, &c.Description, &c.Venue,
			&c.Status, &c.RevokeMessage, &c.MeetingAlloted, &c.CreatedAt,
			&c.StudentName, &c.StudentRegNum, &c.StudentEmail,
		); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// Action applies a student decision. The WHERE clause is the compare-and-swap
// guard: a concurrent manual action or auto-accept that got there first makes
// this a no-op reported as ErrConflict.
func (r *Repository) Action(ctx context.Context, id, studentID, status string, revokeMessage *string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE complaints
		SET status = $3, revoke_message = $4
		WHERE complaint_id = $1 AND student_id = $2 AND status = 'pending'
	`, id, studentID, status, revokeMessage)
	if err != nil {
		return err
	}
	return oneRowOr(res, ErrConflict)
}

// AutoAccept transitions a pending complaint to accepted on behalf of the
// deadline sweep. Same guard as Action, minus the student check.
func (r *Repository) AutoAccept(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE complaints
		SET status = 'accepted', revoke_message = NULL
		WHERE complaint_id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return err
	}
	return oneRowOr(res, ErrConflict)
}

// MarkResolved closes a complaint as resolved. Only the filing faculty's id
// matches.
func (r *Repository) MarkResolved(ctx context.Context, id, facultyID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE complaints SET status = 'resolved'
		WHERE complaint_id = $1 AND faculty_id = $2 AND status <> 'resolved'
	`, id, facultyID)
	if err != nil {
		return err
	}
	return oneRowOr(res, ErrNotFound)
}

// Settle moves a post-meeting rejected complaint to accepted or resolved.
func (r *Repository) Settle(ctx context.Context, id, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE complaints SET status = $2
		WHERE complaint_id = $1 AND status = 'rejected'
	`, id, status)
	if err != nil {
		return err
	}
	return oneRowOr(res, ErrConflict)
}

// DueForAutoAccept returns ids of pending complaints whose student decision
// window has fully elapsed as of now.
func (r *Repository) DueForAutoAccept(ctx context.Context, now time.Time, window time.Duration) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT complaint_id FROM complaints
		WHERE status = 'pending' AND created_at <= $1 - ($2 * interval '1 second')
	`, now, window.Seconds())
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

// CountsByStudent aggregates a student's complaints by status.
func (r *Repository) CountsByStudent(ctx context.Context, studentID string) (StatusCounts, error) {
	return r.counts(ctx, "student_id", studentID)
}

// CountsByFaculty aggregates a faculty member's complaints by status.
func (r *Repository) CountsByFaculty(ctx context.Context, facultyID string) (StatusCounts, error) {
	return r.counts(ctx, "faculty_id", facultyID)
}

func (r *Repository) counts(ctx context.Context, column, id string) (StatusCounts, error) {
	// column is one of the two fixed names above, never user input.
	row := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'accepted'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'resolved')
		FROM complaints WHERE `+column+` = $1
	`, id)
	var c StatusCounts
	err := row.Scan(&c.Pending, &c.Accepted, &c.Rejected, &c.Resolved)
	return c, err
}

// CountsForAllStudents aggregates complaints by status for every student,
// zero rows included.
func (r *Repository) CountsForAllStudents(ctx context.Context) ([]StudentCounts, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT u.user_id, u.name, COALESCE(u.reg_num, ''),
			COUNT(c.complaint_id) FILTER (WHERE c.status = 'pending'),
			COUNT(c.complaint_id) FILTER (WHERE c.status = 'accepted'),
			COUNT(c.complaint_id) FILTER (WHERE c.status = 'rejected'),
			COUNT(c.complaint_id) FILTER (WHERE c.status = 'resolved')
		FROM users u
		LEFT JOIN complaints c ON c.student_id = u.user_id
		WHERE u.role = 'student'
		GROUP BY u.user_id, u.name, u.reg_num
		ORDER BY u.name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []StudentCounts
	for rows.Next() {
		var sc StudentCounts
		if err := rows.Scan(
			&sc.StudentID, &sc.StudentName, &sc.StudentRegNum,
			&sc.Pending, &sc.Accepted, &sc.Rejected, &sc.Resolved,
		); err != nil {
			return nil, err
		}
		res = append(res, sc)
	}
	return res, rows.Err()
}

// Summary aggregates all complaints by status.
func (r *Repository) Summary(ctx context.Context) (StatusCounts, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'accepted'),
			COUNT(*) FILTER (WHERE status = 'rejected'),
			COUNT(*) FILTER (WHERE status = 'resolved')
		FROM complaints
	`)
	var c StatusCounts
	err := row.Scan(&c.Pending, &c.Accepted, &c.Rejected, &c.Resolved)
	return c, err
}

func oneRowOr(res sql.Result, fallback error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fallback
	}
	return nil
}
