package meeting

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestScheduleValidation(t *testing.T) {
	s := NewService(nil)
	ctx := context.Background()
	when := time.Date(2025, 3, 12, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name                 string
		complaintID, adminID string
		venue                string
		dateTime             time.Time
	}{
		{"missing complaint", "", "ADM1", "Conference Hall", when},
		{"missing admin", "CMP-AB12CD", "", "Conference Hall", when},
		{"blank venue", "CMP-AB12CD", "ADM1", "   ", when},
		{"zero time", "CMP-AB12CD", "ADM1", "Conference Hall", time.Time{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Schedule(ctx, tc.complaintID, tc.adminID, tc.venue, "", tc.dateTime)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Schedule() = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestMarkAttendanceValidation(t *testing.T) {
	s := NewService(nil)
	ctx := context.Background()

	for _, att := range []string{"", "scheduled", "late", "PRESENT"} {
		if err := s.MarkAttendance(ctx, "MEET-A1B2", att); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("MarkAttendance(%q) = %v, want ErrInvalidInput", att, err)
		}
	}
	if err := s.MarkAttendance(ctx, "", AttendancePresent); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("MarkAttendance(empty id) = %v, want ErrInvalidInput", err)
	}
}

func TestNewIDFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := NewID()
		if len(id) != len("MEET-")+4 || id[:5] != "MEET-" {
			t.Fatalf("id %q has wrong shape", id)
		}
		var letters, digits int
		for _, r := range id[5:] {
			switch {
			case r >= 'A' && r <= 'Z':
				letters++
			case r >= '0' && r <= '9':
				digits++
			default:
				t.Fatalf("id %q contains unexpected character %q", id, r)
			}
		}
		if letters < 1 || digits < 1 {
			t.Fatalf("id %q needs at least one letter and one digit", id)
		}
	}
}
