// Package plate validates French vehicle registration plates.
//
// Two formats are accepted: the current SIV format (AB-123-CD) and the
// legacy FNI format (1234 AB 75). Input is normalized before matching, so
// dashes, spaces and lowercase letters are tolerated.
package plate

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format names a plate format. The values are part of the public API.
type Format string

const (
	FormatCurrent Format = "nouveau"
	FormatLegacy  Format = "ancien"
	FormatInvalid Format = "invalide"
)

var (
	currentPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{3}[A-Z]{2}$`)
	legacyPattern  = regexp.MustCompile(`^[0-9]{1,4}[A-Z]{2,3}[0-9]{2}$`)
)

// Result is the outcome of validating a plate.
type Result struct {
	Valid  bool   `json:"valide"`
	Plate  string `json:"plaque"` // normalized value
	Format Format `json:"format"`
}

// upper applies full Unicode case mapping, so "ß" becomes "SS" and the
// ligature "ﬀ" becomes "FF" as in browser-side normalization.
var upper = cases.Upper(language.Und)

// Normalize uppercases s and removes every character outside [A-Z0-9].
func Normalize(s string) string {
	s = upper.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Classify returns the format of an already normalized plate.
func Classify(normalized string) Format {
	switch {
	case currentPattern.MatchString(normalized):
		return FormatCurrent
	case legacyPattern.MatchString(normalized):
		return FormatLegacy
	default:
		return FormatInvalid
	}
}

// Validate normalizes s and classifies it.
func Validate(s string) Result {
	n := Normalize(s)
	f := Classify(n)
	return Result{Valid: f != FormatInvalid, Plate: n, Format: f}
}

// IsValid reports whether s is a plate in either accepted format.
func IsValid(s string) bool {
	return Validate(s).Valid
}

// Display formats a plate for forms: current-format plates become
// "AB-123-CD"; anything else is returned normalized.
func Display(s string) string {
	n := Normalize(s)
	if Classify(n) == FormatCurrent {
		return n[:2] + "-" + n[2:5] + "-" + n[5:]
	}
	return n
}
