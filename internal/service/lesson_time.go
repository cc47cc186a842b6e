package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"lectio/backend/internal/model"
)

const dateLayout = "2006-01-02"

// parseClock converts "HH:MM" or "HH:MM:SS" to minutes since midnight.
// Postgres returns time columns with seconds, requests come without them.
func parseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time %q", value)
	}
	return hour*60 + minute, nil
}

// durationHours computes the span between two clock values in hours,
// rounded to two decimals. Returns ErrInvalidInterval when the end does
// not come strictly after the start.
func durationHours(startTime, endTime string) (float64, error) {
	start, err := parseClock(startTime)
	if err != nil {
		return 0, err
	}
	end, err := parseClock(endTime)
	if err != nil {
		return 0, err
	}
	if end <= start {
		return 0, ErrInvalidInterval
	}
	return round2(float64(end-start) / 60.0), nil
}

// overlaps reports whether two same-day intervals intersect. Touching
// endpoints (one ends exactly when the other starts) do not overlap.
func overlaps(start1, end1, start2, end2 string) bool {
	s1, err1 := parseClock(start1)
	e1, err2 := parseClock(end1)
	s2, err3 := parseClock(start2)
	e2, err4 := parseClock(end2)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return s1 < e2 && e1 > s2
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// effectiveClassroomID resolves the classroom a lesson actually happens in:
// the lesson's own override when set, otherwise the course module default,
// otherwise none.
func effectiveClassroomID(lessonClassroomID *uint, cm *model.CourseModule) *uint {
	if lessonClassroomID != nil {
		return lessonClassroomID
	}
	if cm != nil && cm.ClassroomID != nil {
		return cm.ClassroomID
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	return time.Parse(dateLayout, value)
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// normalizeClock renders a clock value as "HH:MM" regardless of whether it
// came in with seconds.
func normalizeClock(value string) string {
	minutes, err := parseClock(value)
	if err != nil {
		return value
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
