package deadline

import "time"

var phasePriority = map[string]int{
	PhaseRunning:  1,
	PhaseUpcoming: 2,
	PhaseEnded:    3,
}

// CompareStudentComplaints orders the student dashboard: the pending bucket
// first, pending records oldest-first so the soonest deadline leads, settled
// records newest-first.
func CompareStudentComplaints(statusA string, createdA time.Time, statusB string, createdB time.Time) int {
	pendingA, pendingB := statusA == "pending", statusB == "pending"
	switch {
	case pendingA && !pendingB:
		return -1
	case !pendingA && pendingB:
		return 1
	case pendingA:
		return createdA.Compare(createdB)
	default:
		return createdB.Compare(createdA)
	}
}

var facultyStatusPriority = map[string]int{
	"pending":  0,
	"accepted": 1,
	"rejected": 2,
	"resolved": 3,
}

// CompareFacultyComplaints orders the faculty dashboard, which is not the
// student rule: statuses rank pending > accepted > rejected > resolved as
// fixed buckets, pending records show the most remaining time first (newest
// first), and settled records keep their fetched order.
func CompareFacultyComplaints(statusA string, createdA time.Time, statusB string, createdB time.Time) int {
	if d := facultyPriority(statusA) - facultyPriority(statusB); d != 0 {
		return d
	}
	if statusA == "pending" {
		return createdB.Compare(createdA)
	}
	return 0
}

func facultyPriority(status string) int {
	if p, ok := facultyStatusPriority[status]; ok {
		return p
	}
	return len(facultyStatusPriority)
}

// CompareMeetings orders meeting records for display: running before
// upcoming before ended, active meetings soonest-first, ended meetings
// newest-first.
func CompareMeetings(timeA time.Time, attendanceA string, timeB time.Time, attendanceB string, grace time.Duration, now time.Time) int {
	phaseA := Phase(timeA, attendanceA, grace, now)
	phaseB := Phase(timeB, attendanceB, grace, now)
	if d := phasePriority[phaseA] - phasePriority[phaseB]; d != 0 {
		return d
	}
	if phaseA == PhaseEnded {
		return timeB.Compare(timeA)
	}
	return timeA.Compare(timeB)
}
