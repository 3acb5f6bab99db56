// Package scan turns recognised ID-card text into a validated student
// identity: it extracts a name and registration number from raw OCR output
// and reconciles them against the authoritative roster.
package scan

import (
	"regexp"
	"strings"
)

// regNumPattern is the fixed registration number format: seven digits, two
// or three letters, three digits, e.g. 7376241CS322.
var regNumPattern = regexp.MustCompile(`(?i)\b\d{7}[A-Z]{2,3}\d{3}\b`)

// namePattern accepts lines of uppercase letters and spaces, 5-50 chars.
var namePattern = regexp.MustCompile(`^[A-Z\s]{5,50}$`)

// skipWords is institutional boilerplate that disqualifies a line as a name
// candidate: college name, department abbreviations, card template words.
var skipWords = []string{
	"BANNARI", "AMMAN", "INSTITUTE", "TECHNOLOGY",
	"PRINCIPAL", "B. E", "CSE", "ECE", "MECH", "CIVIL",
	"EEE", "IT", "DEPARTMENT", "STUDENT", "ID", "CARD",
}

// Extracted is the transient result of parsing OCR text. Either field may be
// empty when extraction failed; it is discarded after roster reconciliation.
type Extracted struct {
	Name   string `json:"name"`
	RegNum string `json:"reg_num"`
}

// Complete reports whether both fields were extracted.
func (e Extracted) Complete() bool {
	return e.Name != "" && e.RegNum != ""
}

// Missing names the fields extraction could not produce.
func (e Extracted) Missing() []string {
	var missing []string
	if e.Name == "" {
		missing = append(missing, "name")
	}
	if e.RegNum == "" {
		missing = append(missing, "registration number")
	}
	return missing
}

// Extract parses student info out of raw OCR text. The registration number
// is the first match of the fixed format, normalised to uppercase. The name
// is the first line of uppercase letters with at least two tokens and no
// boilerplate word; first match wins, with no further ranking.
func Extract(text string) Extracted {
	var out Extracted

	if m := regNumPattern.FindString(text); m != "" {
		out.RegNum = strings.ToUpper(m)
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if !namePattern.MatchString(line) {
			continue
		}
		if containsSkipWord(line) {
			continue
		}
		if len(strings.Fields(line)) < 2 {
			continue
		}
		out.Name = line
		break
	}
	return out
}

func containsSkipWord(line string) bool {
	for _, tok := range strings.Fields(line) {
		for _, w := range skipWords {
			if tok == w {
				return true
			}
		}
	}
	return false
}
