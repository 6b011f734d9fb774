package models

import (
	"strconv"
	"strings"
	"time"
)

// ScheduleType distinguishes the session kind.
type ScheduleType string

const (
	ScheduleTypeLecture  ScheduleType = "lecture"
	ScheduleTypeLab      ScheduleType = "lab"
	ScheduleTypeTutorial ScheduleType = "tutorial"
)

// ValidScheduleType reports whether t is one of the known session kinds.
func ValidScheduleType(t ScheduleType) bool {
	switch t {
	case ScheduleTypeLecture, ScheduleTypeLab, ScheduleTypeTutorial:
		return true
	}
	return false
}

// TimeBucket is the coarse class-time filter dimension, derived from the
// start time rather than stored.
type TimeBucket string

const (
	TimeBucketMorning   TimeBucket = "morning"
	TimeBucketAfternoon TimeBucket = "afternoon"
	TimeBucketEvening   TimeBucket = "evening"
)

// TimeBucketFor maps an "HH:mm" start time onto its bucket. Unparseable
// values fall into the morning bucket.
func TimeBucketFor(startTime string) TimeBucket {
	hour := 0
	if parts := strings.SplitN(startTime, ":", 2); len(parts) == 2 {
		if h, err := strconv.Atoi(parts[0]); err == nil {
			hour = h
		}
	}
	switch {
	case hour < 12:
		return TimeBucketMorning
	case hour < 18:
		return TimeBucketAfternoon
	default:
		return TimeBucketEvening
	}
}

// Schedule represents one weekly session. Entries are not deduplicated by
// day/time/room; overlapping entries stack in the same grid cell.
type Schedule struct {
	ID           string       `json:"id"`
	CourseCode   string       `json:"course_code"`
	CourseName   string       `json:"course_name"`
	CourseNameEn string       `json:"course_name_en"`
	Teacher      string       `json:"teacher"`
	Room         string       `json:"room"`
	DayOfWeek    int          `json:"day_of_week"`
	StartTime    string       `json:"start_time"`
	EndTime      string       `json:"end_time"`
	Type         ScheduleType `json:"type"`
	Year         int          `json:"year"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ScheduleFilter is a conjunction of optional predicates; zero values pass
// all records for that dimension.
type ScheduleFilter struct {
	CourseCode string
	TimeBucket TimeBucket
	Year       int
}

// Matches applies the filter conjunction to a single entry.
func (f ScheduleFilter) Matches(s Schedule) bool {
	if f.CourseCode != "" && s.CourseCode != f.CourseCode {
		return false
	}
	if f.TimeBucket != "" && TimeBucketFor(s.StartTime) != f.TimeBucket {
		return false
	}
	if f.Year != 0 && s.Year != f.Year {
		return false
	}
	return true
}
