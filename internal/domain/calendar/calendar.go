// Package calendar maps instants onto business weeks.
//
// A business week runs from the anchor weekday (Wednesday) through the
// following Tuesday. Week keys use a Jan-1 relative day count that is close to,
// but not the same as, ISO-8601 week numbering; payment aggregation keys on it,
// so the formula is kept as is.
package calendar

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"mimo_finance/internal/domain/entities"
)

// DefaultAnchor is the weekday a business week starts on.
const DefaultAnchor = time.Wednesday

const msPerDay = 86_400_000

// Calendar maps instants onto business weeks in one location.
type Calendar struct {
	loc    *time.Location
	anchor time.Weekday
}

// New builds a calendar projecting instants into loc. A nil loc means the
// device-local zone.
func New(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc, anchor: DefaultAnchor}
}

// InZone builds a calendar for a named IANA zone. An empty name yields the
// device-local calendar.
func InZone(name string) (Calendar, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(nil), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Calendar{}, fmt.Errorf("load business timezone %q: %w", name, err)
	}
	return New(loc), nil
}

// WithAnchor returns a copy starting weeks on d.
func (c Calendar) WithAnchor(d time.Weekday) Calendar {
	c.anchor = d
	return c
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// WeekContaining returns the business week holding t. The zero instant maps to
// the zero week so callers can filter invalid dates out.
func (c Calendar) WeekContaining(t time.Time) entities.BusinessWeek {
	if t.IsZero() {
		return entities.BusinessWeek{}
	}
	loc := c.Location()
	wall := t.In(loc)

	dow := int(wall.Weekday())
	anchor := int(c.anchor)
	offset := dow - anchor
	if dow < anchor {
		offset = dow + (7 - anchor)
	}

	y, m, d := wall.Date()
	start := time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d-offset+6, 23, 59, 59, int(999*time.Millisecond), loc)
	return entities.BusinessWeek{Start: start, End: end, Key: WeekKey(start)}
}

// Current is the week containing now.
func (c Calendar) Current(now time.Time) entities.BusinessWeek {
	return c.WeekContaining(now)
}

func (c Calendar) Next(w entities.BusinessWeek) entities.BusinessWeek {
	if w.IsZero() {
		return w
	}
	return c.WeekContaining(w.Start.AddDate(0, 0, 7))
}

func (c Calendar) Previous(w entities.BusinessWeek) entities.BusinessWeek {
	if w.IsZero() {
		return w
	}
	return c.WeekContaining(w.Start.AddDate(0, 0, -7))
}

// WeekKey formats "<year>-W<nn>" for a week start.
//
// diffDays is measured in elapsed milliseconds from local Jan 1, so zones with
// DST lose a day after the spring transition. That matches the numbering
// already stored downstream.
func WeekKey(start time.Time) string {
	jan1 := time.Date(start.Year(), time.January, 1, 0, 0, 0, 0, start.Location())
	diffDays := int(math.Floor(float64(start.Sub(jan1).Milliseconds()) / msPerDay))
	week := int(math.Ceil(float64(diffDays+int(jan1.Weekday())+1) / 7))
	return fmt.Sprintf("%d-W%02d", start.Year(), week)
}

// WeeksIntersectingMonth lists the weeks attributed to a month, ascending. A
// week spanning two months belongs to the month holding its start.
func (c Calendar) WeeksIntersectingMonth(year int, month time.Month) []entities.BusinessWeek {
	loc := c.Location()
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	seen := make(map[string]struct{}, 6)
	weeks := make([]entities.BusinessWeek, 0, 5)
	for d := 1; d <= days; d++ {
		w := c.WeekContaining(time.Date(year, month, d, 0, 0, 0, 0, loc))
		if _, ok := seen[w.Key]; ok {
			continue
		}
		seen[w.Key] = struct{}{}
		if w.Start.Year() != year || w.Start.Month() != month {
			continue
		}
		weeks = append(weeks, w)
	}
	sort.SliceStable(weeks, func(i, j int) bool { return weeks[i].Start.Before(weeks[j].Start) })
	return weeks
}

// InMonth reports whether t falls in the given calendar month, in the
// calendar's zone.
func (c Calendar) InMonth(t time.Time, year int, month time.Month) bool {
	if t.IsZero() {
		return false
	}
	wall := t.In(c.Location())
	return wall.Year() == year && wall.Month() == month
}

// ParseDate reads "YYYY-MM-DD" as midnight in the calendar's zone.
func (c Calendar) ParseDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(s), c.Location())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseMonth reads "YYYY-MM".
func ParseMonth(s string) (int, time.Month, bool) {
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}
