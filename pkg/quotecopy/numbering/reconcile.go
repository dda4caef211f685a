// Package numbering tracks the next quote number across runs.
package numbering

import (
	"regexp"
	"strconv"
)

var digitRun = regexp.MustCompile(`[0-9]+`)

// ExtractNumber returns the leftmost run of decimal digits in text as an
// integer, or 1 when text holds no digits or the run does not fit an int.
func ExtractNumber(text string) int {
	run := digitRun.FindString(text)
	if run == "" {
		return 1
	}
	n, err := strconv.Atoi(run)
	if err != nil {
		return 1
	}
	return n
}

// Reconcile returns the number to propose for a new copy: the number after
// the one found in the template label, unless the persisted value is ahead.
func Reconcile(labelText string, persisted int) int {
	return max(ExtractNumber(labelText)+1, persisted)
}
