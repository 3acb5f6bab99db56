package scan

import (
	"strings"

	"dcportal/internal/user"
)

// MatchThreshold is the minimum name similarity for an automatic match.
const MatchThreshold = 0.7

// Match outcomes.
const (
	OutcomeMatched      = "matched"
	OutcomeNameMismatch = "name_mismatch"
	OutcomeNotFound     = "not_found"
)

// MatchResult is the outcome of reconciling scanned data against the roster.
// On a match the Student carries the canonical roster entry: canonical data
// wins over OCR noise.
type MatchResult struct {
	Outcome    string            `json:"outcome"`
	Student    *user.RosterEntry `json:"student,omitempty"`
	Similarity float64           `json:"similarity"`
}

// MatchRoster finds the roster entry whose reg_num equals the scanned one,
// case-insensitively, then scores the scanned name against the canonical
// name. Above the threshold the canonical entry is returned for auto-fill;
// below it the caller offers a rescan or manual entry.
func MatchRoster(extracted Extracted, roster []user.RosterEntry) MatchResult {
	for i := range roster {
		if !strings.EqualFold(roster[i].RegNum, extracted.RegNum) {
			continue
		}
		sim := Similarity(roster[i].Name, extracted.Name)
		if sim > MatchThreshold {
			return MatchResult{Outcome: OutcomeMatched, Student: &roster[i], Similarity: sim}
		}
		return MatchResult{Outcome: OutcomeNameMismatch, Similarity: sim}
	}
	return MatchResult{Outcome: OutcomeNotFound}
}
