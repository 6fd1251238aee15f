// Package calendar implements the rolling multi-week view: ISO week-start
// date math, the rendered week window and per-day/per-week totals.
package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// WeeksBefore and WeeksAfter bound the rendered window relative to the
// current week.
const (
	WeeksBefore = 4
	WeeksAfter  = 1
)

// ISODay maps a date's weekday to Monday=0..Sunday=6.
func ISODay(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MondayOf returns the Monday of t's week at midnight in t's location.
func MondayOf(t time.Time) time.Time {
	d := t.AddDate(0, 0, -ISODay(t))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// AddDays shifts a date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DateString formats a date as YYYY-MM-DD.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD string in the local location.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.Local)
}

// Weeks returns the Mondays of the rendered window: WeeksBefore weeks back
// through WeeksAfter weeks ahead of today's week, oldest first.
func Weeks(today time.Time) []time.Time {
	monday := MondayOf(today)
	weeks := make([]time.Time, 0, WeeksBefore+WeeksAfter+1)
	for i := -WeeksBefore; i <= WeeksAfter; i++ {
		weeks = append(weeks, AddDays(monday, i*7))
	}
	return weeks
}

// FetchWindow returns the inclusive date range covering the whole rendered
// window: 4 weeks before this Monday through 13 days after it.
func FetchWindow(today time.Time) (from, to string) {
	monday := MondayOf(today)
	return DateString(AddDays(monday, -28)), DateString(AddDays(monday, 13))
}

// WeekLabel renders the ISO-8601 week label for a Monday, e.g. "2025.W07".
// The label is textual only; range queries never derive from it.
func WeekLabel(monday time.Time) string {
	year, week := monday.ISOWeek()
	return fmt.Sprintf("%d.W%02d", year, week)
}

// DayTotal sums the duration of the cached workouts on one date.
func (c *Cache) DayTotal(date string) int {
	total := 0
	for _, w := range c.byDate[date] {
		total += w.DurationMinutes
	}
	return total
}

// WeekTotal sums the cached durations across the week starting at monday.
func (c *Cache) WeekTotal(monday time.Time) int {
	total := 0
	for d := 0; d < 7; d++ {
		total += c.DayTotal(DateString(AddDays(monday, d)))
	}
	return total
}
