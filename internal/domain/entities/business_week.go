package entities

import "time"

// BusinessWeek is a Wednesday-to-Tuesday accounting period. It is derived,
// never persisted. The zero value marks an invalid source instant.
type BusinessWeek struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Key   string    `json:"key"`
}

func (w BusinessWeek) IsZero() bool {
	return w.Key == "" && w.Start.IsZero()
}

// Contains reports whether t falls inside [Start, End].
func (w BusinessWeek) Contains(t time.Time) bool {
	if w.IsZero() || t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}
