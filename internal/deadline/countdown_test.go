package deadline

import (
	"testing"
	"time"
)

var base = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		secs int64
		want string
	}{
		{0, "0s"},
		{-5, "0s"},
		{42, "42s"},
		{60, "1m 0s"},
		{3599, "59m 59s"},
		{3600, "1h 0m 0s"},
		{43199, "11h 59m 59s"},
	}
	for _, tc := range cases {
		if got := FormatRemaining(tc.secs); got != tc.want {
			t.Errorf("FormatRemaining(%d) = %q, want %q", tc.secs, got, tc.want)
		}
	}
}

func TestForComplaint(t *testing.T) {
	window := 12 * time.Hour

	cases := []struct {
		name    string
		status  string
		elapsed time.Duration
		want    Countdown
	}{
		{
			name:    "pending mid window",
			status:  "pending",
			elapsed: 2 * time.Hour,
			want:    Countdown{RemainingSeconds: 36000, Active: true, Visible: true, Label: "10h 0m 0s"},
		},
		{
			name:    "pending at expiry",
			status:  "pending",
			elapsed: 12 * time.Hour,
			want:    Countdown{Label: "Expired"},
		},
		{
			name:    "pending past expiry",
			status:  "pending",
			elapsed: 13 * time.Hour,
			want:    Countdown{Label: "Expired"},
		},
		{
			name:    "accepted inside window stays visible but inactive",
			status:  "accepted",
			elapsed: time.Hour,
			want:    Countdown{RemainingSeconds: 39600, Visible: true, Label: "11h 0m 0s"},
		},
		{
			name:    "rejected past window is hidden",
			status:  "rejected",
			elapsed: 13 * time.Hour,
			want:    Countdown{Label: "Expired"},
		},
		{
			name:    "resolved past window stays visible",
			status:  "resolved",
			elapsed: 13 * time.Hour,
			want:    Countdown{Visible: true, Label: "Expired"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ForComplaint(base, tc.status, window, base.Add(tc.elapsed))
			if got != tc.want {
				t.Fatalf("ForComplaint() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestForMeeting(t *testing.T) {
	grace := time.Hour
	start := base

	cases := []struct {
		name       string
		attendance string
		now        time.Time
		want       Countdown
	}{
		{
			name:       "long before start counts down but stays hidden",
			attendance: "scheduled",
			now:        start.Add(-time.Hour),
			want:       Countdown{RemainingSeconds: 3600, Label: "1h 0m 0s"},
		},
		{
			name:       "inside pre-start visibility",
			attendance: "scheduled",
			now:        start.Add(-3 * time.Minute),
			want:       Countdown{RemainingSeconds: 180, Visible: true, Label: "3m 0s"},
		},
		{
			name:       "moments before start",
			attendance: "scheduled",
			now:        start.Add(-500 * time.Millisecond),
			want:       Countdown{Visible: true, Label: "Starting now..."},
		},
		{
			name:       "at the start",
			attendance: "scheduled",
			now:        start,
			want:       Countdown{RemainingSeconds: 3600, Active: true, Visible: true, Label: "1h 0m 0s"},
		},
		{
			name:       "inside the grace window",
			attendance: "scheduled",
			now:        start.Add(45 * time.Minute),
			want:       Countdown{RemainingSeconds: 900, Active: true, Visible: true, Label: "15m 0s"},
		},
		{
			name:       "grace window closed",
			attendance: "scheduled",
			now:        start.Add(time.Hour),
			want:       Countdown{Label: "Time expired"},
		},
		{
			name:       "attendance already marked hides the timer",
			attendance: "present",
			now:        start.Add(10 * time.Minute),
			want:       Countdown{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ForMeeting(start, tc.attendance, grace, tc.now)
			if got != tc.want {
				t.Fatalf("ForMeeting() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestPhase(t *testing.T) {
	grace := time.Hour
	cases := []struct {
		name       string
		attendance string
		now        time.Time
		want       string
	}{
		{"before start", "scheduled", base.Add(-time.Minute), PhaseUpcoming},
		{"at start", "scheduled", base, PhaseRunning},
		{"inside grace", "scheduled", base.Add(59 * time.Minute), PhaseRunning},
		{"after grace", "scheduled", base.Add(61 * time.Minute), PhaseEnded},
		{"marked present", "present", base, PhaseEnded},
		{"marked absent", "absent", base.Add(-time.Hour), PhaseEnded},
	}
	for _, tc := range cases {
		if got := Phase(base, tc.attendance, grace, tc.now); got != tc.want {
			t.Errorf("%s: Phase() = %q, want %q", tc.name, got, tc.want)
		}
	}
}
