package model

import "time"

// CalendarEvent is an ad-hoc event with optional packing checklists
// attached. CheckedItems tracks items packed for this specific event,
// independent of the checklist's own checked state.
type CalendarEvent struct {
	ID                    string    `json:"id"`
	Title                 string    `json:"title"`
	Date                  time.Time `json:"date"` // calendar date, midnight local
	Time                  *string   `json:"time"` // "HH:MM", nil for all-day
	SuggestedChecklistIDs []string  `json:"suggested_checklist_ids"`
	Notes                 string    `json:"notes"`
	CheckedItems          []string  `json:"checked_items"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// IsItemChecked reports whether the given checklist item has been packed
// for this event.
func (e *CalendarEvent) IsItemChecked(itemID string) bool {
	for _, id := range e.CheckedItems {
		if id == itemID {
			return true
		}
	}
	return false
}

// OnDate reports whether the event falls on the same calendar day as t,
// compared in t's location.
func (e *CalendarEvent) OnDate(t time.Time) bool {
	ey, em, ed := e.Date.Date()
	ty, tm, td := t.Date()
	return ey == ty && em == tm && ed == td
}
