// Package models defines the data structures shared by the quote pipeline.
package models

// DefaultHint is used when a hint is replaced with an empty string.
const DefaultHint = "PLACEHOLDER"

// Entry is one editable slot bound to a cell. It is either a placeholder
// (Unset, showing a hint that is never written) or real (Set, written verbatim).
type Entry struct {
	// Cell is the target cell address (e.g. "B6").
	Cell string

	hint  string
	value string
	set   bool
}

// Placeholder returns an entry in placeholder state.
func Placeholder(cell, hint string) Entry {
	return Entry{Cell: cell, hint: hint}
}

// Real returns an entry in real state. An empty value is an explicit clear.
func Real(cell, value string) Entry {
	return Entry{Cell: cell, value: value, set: true}
}

// Value returns the text to write: "" for a placeholder, the exact text otherwise.
func (e Entry) Value() string {
	if !e.set {
		return ""
	}
	return e.value
}

// Display returns what a form would show for the entry.
func (e Entry) Display() string {
	if !e.set {
		return e.hint
	}
	return e.value
}

// Hint returns the placeholder hint, kept even while the entry is real.
func (e Entry) Hint() string {
	return e.hint
}

// IsSet reports whether the entry holds a real value.
func (e Entry) IsSet() bool {
	return e.set
}

// Edit applies typed text. Empty text returns the entry to placeholder state;
// a placeholder only becomes real once the text differs from its hint.
func (e *Entry) Edit(text string) {
	switch {
	case text == "":
		e.set = false
		e.value = ""
	case !e.set && text == e.hint:
		// still showing the hint
	default:
		e.set = true
		e.value = text
	}
}

// Clear sets an explicit empty real value, which clears the target cell.
func (e *Entry) Clear() {
	e.set = true
	e.value = ""
}

// SetHint replaces the hint and resets the entry to placeholder state.
func (e *Entry) SetHint(hint string) {
	if hint == "" {
		hint = DefaultHint
	}
	e.hint = hint
	e.set = false
	e.value = ""
}

// SetReal forces the entry into real state with the given text.
func (e *Entry) SetReal(value string) {
	e.set = true
	e.value = value
}
