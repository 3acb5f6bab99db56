// Package deadline derives countdown state for complaints and meetings and
// owns the automatic transitions that fire when a decision window elapses.
// Derived state is recomputed from the stored record on every request or
// sweep tick; the database status stays the single source of truth.
package deadline

import (
	"fmt"
	"time"
)

// Meeting phases, in display priority order.
const (
	PhaseRunning  = "running"
	PhaseUpcoming = "upcoming"
	PhaseEnded    = "ended"
)

// preStartVisibility is how long before a meeting starts its countdown
// becomes visible.
const preStartVisibility = 5 * time.Minute

// Countdown is transient view state derived from a record and the clock.
// It is never persisted and never authoritative.
type Countdown struct {
	RemainingSeconds int64  `json:"remaining_seconds"`
	Active           bool   `json:"is_active"`
	Visible          bool   `json:"is_visible"`
	Label            string `json:"timer_label"`
}

// ForComplaint derives the decision-window countdown for a complaint.
// window is the role-specific decision window (12h student, 6h faculty).
func ForComplaint(createdAt time.Time, status string, window time.Duration, now time.Time) Countdown {
	remaining := window - now.Sub(createdAt)
	if remaining < 0 {
		remaining = 0
	}
	secs := int64(remaining / time.Second)

	cd := Countdown{
		RemainingSeconds: secs,
		Active:           secs > 0 && status == "pending",
		Visible:          secs > 0 || status == "resolved",
	}
	if secs == 0 {
		cd.Label = "Expired"
	} else {
		cd.Label = FormatRemaining(secs)
	}
	return cd
}

// ForMeeting derives the attendance countdown for a meeting. Before the
// meeting it counts down to the start; during the grace window it counts down
// to auto-absent; afterwards it reads "Time expired". The countdown is only
// visible from shortly before the start until the grace window closes, and
// only while attendance is still scheduled.
func ForMeeting(dateTime time.Time, attendance string, grace time.Duration, now time.Time) Countdown {
	if attendance != "scheduled" {
		return Countdown{}
	}

	windowEnd := dateTime.Add(grace)
	visible := !now.Before(dateTime.Add(-preStartVisibility)) && now.Before(windowEnd)

	switch {
	case now.Before(dateTime):
		secs := int64(dateTime.Sub(now) / time.Second)
		label := FormatRemaining(secs)
		if secs == 0 {
			label = "Starting now..."
		}
		return Countdown{RemainingSeconds: secs, Visible: visible, Label: label}
	case now.Before(windowEnd):
		secs := int64(windowEnd.Sub(now) / time.Second)
		return Countdown{RemainingSeconds: secs, Active: true, Visible: visible, Label: FormatRemaining(secs)}
	default:
		return Countdown{Label: "Time expired"}
	}
}

// Phase classifies a meeting for sorting: running while the attendance
// window is open, upcoming before the start, ended otherwise.
func Phase(dateTime time.Time, attendance string, grace time.Duration, now time.Time) string {
	if attendance != "scheduled" {
		return PhaseEnded
	}
	if !now.Before(dateTime) && now.Before(dateTime.Add(grace)) {
		return PhaseRunning
	}
	if now.Before(dateTime) {
		return PhaseUpcoming
	}
	return PhaseEnded
}

// FormatRemaining renders seconds as "Hh Mm Ss", dropping the hours unit
// when zero and the minutes unit when both are zero.
func FormatRemaining(seconds int64) string {
	if seconds <= 0 {
		return "0s"
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm %ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
