package deadline

import (
	"sort"
	"testing"
	"time"
)

func TestCompareStudentComplaints(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	type rec struct {
		id      string
		status  string
		created time.Time
	}
	// Two pending filed at different times, one accepted, one resolved.
	recs := []rec{
		{"resolved-old", "resolved", t0.Add(-48 * time.Hour)},
		{"pending-late", "pending", t0.Add(-time.Hour)},
		{"accepted-recent", "accepted", t0.Add(-2 * time.Hour)},
		{"pending-early", "pending", t0.Add(-10 * time.Hour)},
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return CompareStudentComplaints(recs[i].status, recs[i].created, recs[j].status, recs[j].created) < 0
	})

	want := []string{"pending-early", "pending-late", "accepted-recent", "resolved-old"}
	for i, w := range want {
		if recs[i].id != w {
			t.Fatalf("position %d = %s, want %s (order %v)", i, recs[i].id, w, recs)
		}
	}
}

// The faculty dashboard rule differs from the student one: pending records
// show the most remaining time first, and settled records sit in fixed
// accepted > rejected > resolved buckets keeping fetch order.
func TestCompareFacultyComplaints(t *testing.T) {
	t0 := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	type rec struct {
		id      string
		status  string
		created time.Time
	}
	// Fetch order as the repository returns it, newest-first.
	recs := []rec{
		{"resolved-new", "resolved", t0.Add(-30 * time.Minute)},
		{"pending-1h-left", "pending", t0.Add(-5 * time.Hour)},
		{"rejected-new", "rejected", t0.Add(-time.Hour)},
		{"pending-5h-left", "pending", t0.Add(-time.Hour)},
		{"accepted-old", "accepted", t0.Add(-4 * time.Hour)},
		{"rejected-old", "rejected", t0.Add(-3 * time.Hour)},
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return CompareFacultyComplaints(recs[i].status, recs[i].created, recs[j].status, recs[j].created) < 0
	})

	want := []string{
		"pending-5h-left", "pending-1h-left",
		"accepted-old",
		"rejected-new", "rejected-old",
		"resolved-new",
	}
	for i, w := range want {
		if recs[i].id != w {
			t.Fatalf("position %d = %s, want %s (order %v)", i, recs[i].id, w, recs)
		}
	}
}

func TestCompareMeetings(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	grace := time.Hour

	type rec struct {
		id         string
		dateTime   time.Time
		attendance string
	}
	recs := []rec{
		{"ended-old", now.Add(-72 * time.Hour), "present"},
		{"upcoming-far", now.Add(5 * time.Hour), "scheduled"},
		{"running", now.Add(-30 * time.Minute), "scheduled"},
		{"ended-recent", now.Add(-3 * time.Hour), "absent"},
		{"upcoming-soon", now.Add(time.Hour), "scheduled"},
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return CompareMeetings(recs[i].dateTime, recs[i].attendance, recs[j].dateTime, recs[j].attendance, grace, now) < 0
	})

	want := []string{"running", "upcoming-soon", "upcoming-far", "ended-recent", "ended-old"}
	for i, w := range want {
		if recs[i].id != w {
			t.Fatalf("position %d = %s, want %s (order %v)", i, recs[i].id, w, recs)
		}
	}
}
