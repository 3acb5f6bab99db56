package complaint

import (
	"strings"
	"testing"
)

func TestNewIDFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		id := NewID()
		if !strings.HasPrefix(id, "CMP-") {
			t.Fatalf("id %q missing CMP- prefix", id)
		}
		code := strings.TrimPrefix(id, "CMP-")
		if len(code) != 6 {
			t.Fatalf("id %q code length = %d, want 6", id, len(code))
		}
		letters, digits := countClasses(t, id, code)
		if letters < 2 || letters > 4 {
			t.Fatalf("id %q has %d letters, want 2-4", id, letters)
		}
		if letters+digits != 6 {
			t.Fatalf("id %q has unexpected characters", id)
		}
	}
}

func TestRandomCodeComposition(t *testing.T) {
	for letters := 0; letters <= 4; letters++ {
		code := RandomCode(4, letters)
		if len(code) != 4 {
			t.Fatalf("RandomCode(4, %d) length = %d", letters, len(code))
		}
		gotLetters, gotDigits := countClasses(t, code, code)
		if gotLetters != letters || gotDigits != 4-letters {
			t.Fatalf("RandomCode(4, %d) = %q: %d letters %d digits", letters, code, gotLetters, gotDigits)
		}
	}
}

func countClasses(t *testing.T, label, code string) (letters, digits int) {
	t.Helper()
	for _, r := range code {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		default:
			t.Fatalf("%q contains unexpected character %q", label, r)
		}
	}
	return letters, digits
}
