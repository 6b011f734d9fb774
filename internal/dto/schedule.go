package dto

import "github.com/noah-isme/his-portal-api/internal/models"

// UpsertScheduleRequest creates or replaces a schedule entry. An empty ID
// creates a new entry with a minted ID.
type UpsertScheduleRequest struct {
	ID           string `json:"id"`
	CourseCode   string `json:"courseCode" validate:"required"`
	CourseName   string `json:"courseName" validate:"required"`
	CourseNameEn string `json:"courseNameEn"`
	Teacher      string `json:"teacher" validate:"required"`
	Room         string `json:"room" validate:"required"`
	DayOfWeek    *int   `json:"dayOfWeek" validate:"required,min=0,max=6"`
	StartTime    string `json:"startTime" validate:"required"`
	EndTime      string `json:"endTime" validate:"required"`
	Type         string `json:"type" validate:"required"`
	Year         int    `json:"year"`
}

// ScheduleGridCell groups the entries sharing a day and start time. Entries
// keep insertion order; overlaps are stacked, never rejected.
type ScheduleGridCell struct {
	StartTime string            `json:"startTime"`
	Entries   []models.Schedule `json:"entries"`
}

// ScheduleGridDay is one weekday column of the grid.
type ScheduleGridDay struct {
	DayOfWeek int                `json:"dayOfWeek"`
	Cells     []ScheduleGridCell `json:"cells"`
}

// ScheduleGrid is the day-by-timeslot projection of the filtered entries.
type ScheduleGrid struct {
	TimeSlots []string          `json:"timeSlots"`
	Days      []ScheduleGridDay `json:"days"`
}
