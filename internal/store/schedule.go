package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/prepcheck/prepcheck/internal/model"
)

type ScheduleStore struct {
	db *sql.DB
}

func NewScheduleStore(db *sql.DB) *ScheduleStore {
	return &ScheduleStore{db: db}
}

func scanSchedule(scanner interface{ Scan(...any) error }) (*model.Schedule, error) {
	var s model.Schedule
	var days string
	var enabled int
	err := scanner.Scan(&s.ChecklistID, &days, &s.Time, &enabled, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if days != "" {
		s.Days = strings.Split(days, ",")
	}
	s.Enabled = enabled != 0
	return &s, nil
}

const scheduleCols = `checklist_id, days, time, enabled, updated_at`

// List returns all schedules in checklist-id order.
func (s *ScheduleStore) List() ([]model.Schedule, error) {
	rows, err := s.db.Query(`SELECT ` + scheduleCols + ` FROM schedules ORDER BY checklist_id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.Schedule
	for rows.Next() {
		sched, err := scanSchedule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, *sched)
	}
	return schedules, rows.Err()
}

// GetByChecklist returns the schedule for a checklist, or nil if none exists.
func (s *ScheduleStore) GetByChecklist(checklistID string) (*model.Schedule, error) {
	row := s.db.QueryRow(`SELECT `+scheduleCols+` FROM schedules WHERE checklist_id = ?`, checklistID)
	sched, err := scanSchedule(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get schedule: %w", err)
	}
	return sched, nil
}

// Upsert creates or replaces the schedule for a checklist.
func (s *ScheduleStore) Upsert(checklistID string, days []string, timeOfDay string, enabled bool) (*model.Schedule, error) {
	var enabledInt int
	if enabled {
		enabledInt = 1
	}

	_, err := s.db.Exec(
		`INSERT INTO schedules (checklist_id, days, time, enabled, updated_at) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(checklist_id) DO UPDATE SET days = excluded.days, time = excluded.time,
		 enabled = excluded.enabled, updated_at = excluded.updated_at`,
		checklistID, strings.Join(days, ","), timeOfDay, enabledInt, time.Now().UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert schedule: %w", err)
	}
	return s.GetByChecklist(checklistID)
}

// Delete removes the schedule for a checklist.
func (s *ScheduleStore) Delete(checklistID string) error {
	_, err := s.db.Exec(`DELETE FROM schedules WHERE checklist_id = ?`, checklistID)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	return nil
}
