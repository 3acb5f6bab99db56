package scan

import (
	"math"
	"testing"

	"dcportal/internal/user"
)

func TestSimilarity(t *testing.T) {
	cases := []struct {
		a, b string
		want float64
	}{
		{"JOHN SMITH", "JOHN SMITH", 1},
		{"JOHN SMITH", "john smith", 1},
		{"JOHN SMITH", "JON SMITH", 0.9},
		{"ABCD", "WXYZ", 0},
		{"", "", 1},
		{"", "ABCD", 0},
	}
	for _, tc := range cases {
		if got := Similarity(tc.a, tc.b); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLevenshtein(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"", "abc", 3},
		{"abc", "abc", 0},
	}
	for _, tc := range cases {
		if got := levenshtein(tc.a, tc.b); got != tc.want {
			t.Errorf("levenshtein(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestMatchRoster(t *testing.T) {
	roster := []user.RosterEntry{
		{Name: "JOHN SMITH", RegNum: "7376241CS322"},
		{Name: "JANE DOE", RegNum: "7376242EC117"},
	}

	t.Run("close name matches and returns the canonical entry", func(t *testing.T) {
		got := MatchRoster(Extracted{Name: "JON SMITH", RegNum: "7376241cs322"}, roster)
		if got.Outcome != OutcomeMatched {
			t.Fatalf("outcome = %q, want %q", got.Outcome, OutcomeMatched)
		}
		if got.Student == nil || got.Student.Name != "JOHN SMITH" || got.Student.RegNum != "7376241CS322" {
			t.Fatalf("student = %+v, want canonical roster entry", got.Student)
		}
		if got.Similarity <= MatchThreshold {
			t.Fatalf("similarity = %v, want > %v", got.Similarity, MatchThreshold)
		}
	})

	t.Run("wrong name on a known reg num is a mismatch", func(t *testing.T) {
		got := MatchRoster(Extracted{Name: "JANE DOE", RegNum: "7376241CS322"}, roster)
		if got.Outcome != OutcomeNameMismatch {
			t.Fatalf("outcome = %q, want %q", got.Outcome, OutcomeNameMismatch)
		}
		if got.Student != nil {
			t.Fatalf("student = %+v, want nil on mismatch", got.Student)
		}
		if got.Similarity > MatchThreshold {
			t.Fatalf("similarity = %v, want <= %v", got.Similarity, MatchThreshold)
		}
	})

	t.Run("unknown reg num is not found", func(t *testing.T) {
		got := MatchRoster(Extracted{Name: "JOHN SMITH", RegNum: "7376249ME999"}, roster)
		if got.Outcome != OutcomeNotFound {
			t.Fatalf("outcome = %q, want %q", got.Outcome, OutcomeNotFound)
		}
	})
}
