package ui

import (
	"errors"
	"strings"

	"obrabot/lib/constants"
)

// levelPreference fixes the canonical hierarchy order. Types discovered in
// the database but not listed here are appended after the known ones,
// preserving their discovery order.
var levelPreference = []string{"Edificio", "Planta", "Zona", "Trabajo"}

// ErrNoLevels is returned when the location table holds no types at all;
// callers must abort the flow with an error message rather than default.
var ErrNoLevels = errors.New("no location levels configured")

// SortLevels orders the discovered location types by the canonical
// preference list. The input slice is not modified.
func SortLevels(discovered []string) ([]string, error) {
	if len(discovered) == 0 {
		return nil, ErrNoLevels
	}

	rank := make(map[string]int, len(levelPreference))
	for i, name := range levelPreference {
		rank[name] = i
	}

	var known []string
	var unknown []string
	for _, name := range levelPreference {
		for _, d := range discovered {
			if d == name {
				known = append(known, name)
				break
			}
		}
	}
	for _, d := range discovered {
		if _, ok := rank[d]; !ok {
			unknown = append(unknown, d)
		}
	}
	return append(known, unknown...), nil
}

// LevelChoice is one picked (level, value) pair of a walk in progress.
type LevelChoice struct {
	Level string
	Value string
}

// Walk tracks a user's descent through the location hierarchy: one value
// picked per level, in order. It lives inside the per-user session and is
// reset on confirmation or cancellation.
type Walk struct {
	Levels  []string
	Choices []LevelChoice
}

// NewWalk starts a walk over the given ordered levels.
func NewWalk(levels []string) *Walk {
	return &Walk{Levels: levels}
}

// CurrentLevel returns the level the user must pick next, or "" when the
// walk is complete.
func (w *Walk) CurrentLevel() string {
	if w.Done() {
		return ""
	}
	return w.Levels[len(w.Choices)]
}

// Done reports whether a value has been chosen for every level.
func (w *Walk) Done() bool {
	return len(w.Choices) >= len(w.Levels)
}

// Select records the value for the current level and advances. It returns
// true when this was the last level and the walk is now finished.
func (w *Walk) Select(value string) bool {
	if w.Done() {
		return true
	}
	w.Choices = append(w.Choices, LevelChoice{Level: w.CurrentLevel(), Value: value})
	return w.Done()
}

// Back pops the last choice. It returns true when the selection is now
// empty, which signals "return to the wizard start".
func (w *Walk) Back() bool {
	if len(w.Choices) > 0 {
		w.Choices = w.Choices[:len(w.Choices)-1]
	}
	return len(w.Choices) == 0
}

// Path joins the chosen values with the canonical separator, in hierarchy
// order. The same string is stored as ubicacion_completa and used as a
// LIKE prefix, so display and filtering can never diverge.
func (w *Walk) Path() string {
	values := make([]string, len(w.Choices))
	for i, c := range w.Choices {
		values[i] = c.Value
	}
	return strings.Join(values, constants.PathSeparator)
}

// SplitPath breaks a stored path back into its ordered values.
func SplitPath(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, constants.PathSeparator)
}
