package service

import (
	"fmt"
	"math"
	"time"
)

// Arithmetic conventions shared by every metric: a percentage with a zero
// denominator is 0, and growth against a zero previous period is 100 when
// the current period is non-zero.

func percent(numerator, denominator int) int {
	if denominator == 0 {
		return 0
	}
	return int(math.Round(float64(numerator) / float64(denominator) * 100))
}

func growthPercent(current, previous int) int {
	if previous == 0 {
		if current > 0 {
			return 100
		}
		return 0
	}
	return int(math.Round(float64(current-previous) / float64(previous) * 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// weekStart truncates t to the Monday of its ISO week.
func weekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// monthAxis returns one anchor per calendar month, oldest first, ending at
// the month containing now. Anchors are first-of-month so arithmetic never
// normalizes across short months.
func monthAxis(now time.Time, months int) []time.Time {
	start := monthStart(now)
	anchors := make([]time.Time, months)
	for i := range anchors {
		anchors[i] = start.AddDate(0, -(months - 1 - i), 0)
	}
	return anchors
}

// weekAxis returns one anchor per week, oldest first, ending at the week
// containing now.
func weekAxis(now time.Time, weeks int) []time.Time {
	anchors := make([]time.Time, weeks)
	for i := range anchors {
		anchors[i] = now.AddDate(0, 0, -7*(weeks-1-i))
	}
	return anchors
}

func monthLabel(t time.Time) string {
	return t.Format("Jan 2006")
}

func weekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("Week %d, %d", week, year)
}
