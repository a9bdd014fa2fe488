package model

import "time"

// Weekday tags used in Schedule.Days, matching time.Time.Weekday()
// three-letter prefixes.
var WeekdayTags = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Schedule is a weekly recurrence rule bound to exactly one checklist.
// At most one schedule exists per checklist; it is created or replaced by
// upsert on ChecklistID and removed when the checklist is deleted.
type Schedule struct {
	ChecklistID string    `json:"checklist_id"`
	Days        []string  `json:"days"`
	Time        string    `json:"time"` // "HH:MM", 24-hour
	Enabled     bool      `json:"enabled"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasDay reports whether the schedule recurs on the given weekday tag.
func (s *Schedule) HasDay(tag string) bool {
	for _, d := range s.Days {
		if d == tag {
			return true
		}
	}
	return false
}
