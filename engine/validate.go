/*
validate.go - Work-log input validation

PURPOSE:
  Validates operator-entered start/end strings before a work log is
  submitted to the backend. Rejects blank and malformed values, rewrites
  the "24:00" end-of-day sentinel to a storable time, and canonicalizes
  the pair to two-digit HH:mm.

SENTINEL NORMALIZATION:
  An end of "24:00" is rewritten to "23:59" before the format check. This
  is deliberately lossy - a stored work log never contains the literal
  "24:00", so the sentinel stays confined to the UI boundary.

SINGLE-DIGIT HOURS:
  The format check accepts a single-digit hour ("9:00") for operator
  convenience; the validated pair is re-emitted in canonical two-digit
  form, so "9:00" never reaches the backend as-is.

SEE ALSO:
  - errors.go: EmptyFieldError / InvalidFormatError
  - clock.go: Canonical formatting
*/
package engine

import (
	"regexp"
	"strings"
)

// clockPattern accepts 24-hour H:mm and HH:mm with hours 0-23.
var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ValidatedInterval is a start/end pair that passed validation, in canonical
// two-digit HH:mm form, ready for submission.
type ValidatedInterval struct {
	Start string
	End   string
}

// ValidateWorkLog validates an operator-entered start/end pair.
//
// Failure modes:
//   - EmptyFieldError when either value is empty or blank after trimming
//   - InvalidFormatError when either value does not match HH:mm with hours
//     00-23 and minutes 00-59
//
// An end of "24:00" is normalized to "23:59" before the format check, so
// the sentinel itself never has to satisfy the pattern.
func ValidateWorkLog(start, end string) (ValidatedInterval, error) {
	start = strings.TrimSpace(start)
	end = strings.TrimSpace(end)

	if start == "" {
		return ValidatedInterval{}, &EmptyFieldError{Field: "startTime"}
	}
	if end == "" {
		return ValidatedInterval{}, &EmptyFieldError{Field: "endTime"}
	}

	if end == EndOfDay.String() {
		end = "23:59"
	}

	if !clockPattern.MatchString(start) {
		return ValidatedInterval{}, &InvalidFormatError{Field: "startTime", Value: start}
	}
	if !clockPattern.MatchString(end) {
		return ValidatedInterval{}, &InvalidFormatError{Field: "endTime", Value: end}
	}

	// Canonicalize to two-digit HH:mm. The pattern guarantees parseability.
	startTod, _ := ParseTimeOfDay(start)
	endTod, _ := ParseTimeOfDay(end)

	return ValidatedInterval{Start: startTod.String(), End: endTod.String()}, nil
}
