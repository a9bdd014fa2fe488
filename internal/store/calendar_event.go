package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepcheck/prepcheck/internal/model"
)

// dateLayout is how event dates round-trip through the database.
const dateLayout = "2006-01-02"

type EventStore struct {
	db *sql.DB
}

func NewEventStore(db *sql.DB) *EventStore {
	return &EventStore{db: db}
}

const eventCols = `id, title, date, time, notes, created_at, updated_at`

func scanEvent(scanner interface{ Scan(...any) error }) (*model.CalendarEvent, error) {
	var e model.CalendarEvent
	var date string
	var eventTime sql.NullString

	err := scanner.Scan(&e.ID, &e.Title, &date, &eventTime, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}

	e.Date, err = time.ParseInLocation(dateLayout, date, time.Local)
	if err != nil {
		return nil, fmt.Errorf("parse event date %q: %w", date, err)
	}
	if eventTime.Valid {
		e.Time = &eventTime.String
	}
	return &e, nil
}

// Create inserts an event with a fresh id and an empty checked-item set.
func (s *EventStore) Create(title string, date time.Time, eventTime *string, suggestedChecklistIDs []string, notes string) (*model.CalendarEvent, error) {
	id := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var t sql.NullString
	if eventTime != nil {
		t = sql.NullString{String: *eventTime, Valid: true}
	}

	if _, err := tx.Exec(
		`INSERT INTO calendar_events (id, title, date, time, notes) VALUES (?, ?, ?, ?, ?)`,
		id, title, date.Format(dateLayout), t, notes,
	); err != nil {
		return nil, fmt.Errorf("insert calendar event: %w", err)
	}

	for i, checklistID := range suggestedChecklistIDs {
		if _, err := tx.Exec(
			`INSERT INTO event_suggested_checklists (event_id, checklist_id, position) VALUES (?, ?, ?)`,
			id, checklistID, i,
		); err != nil {
			return nil, fmt.Errorf("insert event checklist: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// GetByID returns the event with its checklist and checked-item sets, or
// nil if it does not exist.
func (s *EventStore) GetByID(id string) (*model.CalendarEvent, error) {
	row := s.db.QueryRow(`SELECT `+eventCols+` FROM calendar_events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get calendar event: %w", err)
	}
	if err := s.loadSets(e); err != nil {
		return nil, err
	}
	return e, nil
}

// List returns all events ordered by date then time.
func (s *EventStore) List() ([]model.CalendarEvent, error) {
	rows, err := s.db.Query(`SELECT ` + eventCols + ` FROM calendar_events ORDER BY date ASC, time ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list calendar events: %w", err)
	}
	defer rows.Close()

	var events []model.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range events {
		if err := s.loadSets(&events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

// ListOn returns events falling on the given calendar date, in creation order.
func (s *EventStore) ListOn(date time.Time) ([]model.CalendarEvent, error) {
	rows, err := s.db.Query(
		`SELECT `+eventCols+` FROM calendar_events WHERE date = ? ORDER BY created_at ASC`,
		date.Format(dateLayout),
	)
	if err != nil {
		return nil, fmt.Errorf("list events on date: %w", err)
	}
	defer rows.Close()

	var events []model.CalendarEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan calendar event: %w", err)
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range events {
		if err := s.loadSets(&events[i]); err != nil {
			return nil, err
		}
	}
	return events, nil
}

func (s *EventStore) loadSets(e *model.CalendarEvent) error {
	rows, err := s.db.Query(
		`SELECT checklist_id FROM event_suggested_checklists WHERE event_id = ? ORDER BY position ASC`,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("list event checklists: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan event checklist: %w", err)
		}
		e.SuggestedChecklistIDs = append(e.SuggestedChecklistIDs, id)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	checked, err := s.db.Query(
		`SELECT item_id FROM event_checked_items WHERE event_id = ? ORDER BY item_id ASC`,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("list event checked items: %w", err)
	}
	defer checked.Close()

	for checked.Next() {
		var id string
		if err := checked.Scan(&id); err != nil {
			return fmt.Errorf("scan event checked item: %w", err)
		}
		e.CheckedItems = append(e.CheckedItems, id)
	}
	return checked.Err()
}

// Update replaces the event's fields and suggested-checklist set. The
// checked-item set is managed separately via ToggleCheckedItem.
func (s *EventStore) Update(id, title string, date time.Time, eventTime *string, suggestedChecklistIDs []string, notes string) (*model.CalendarEvent, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var t sql.NullString
	if eventTime != nil {
		t = sql.NullString{String: *eventTime, Valid: true}
	}

	if _, err := tx.Exec(
		`UPDATE calendar_events SET title = ?, date = ?, time = ?, notes = ?, updated_at = ? WHERE id = ?`,
		title, date.Format(dateLayout), t, notes, time.Now().UTC(), id,
	); err != nil {
		return nil, fmt.Errorf("update calendar event: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM event_suggested_checklists WHERE event_id = ?`, id); err != nil {
		return nil, fmt.Errorf("clear event checklists: %w", err)
	}
	for i, checklistID := range suggestedChecklistIDs {
		if _, err := tx.Exec(
			`INSERT INTO event_suggested_checklists (event_id, checklist_id, position) VALUES (?, ?, ?)`,
			id, checklistID, i,
		); err != nil {
			return nil, fmt.Errorf("insert event checklist: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// ToggleCheckedItem flips whether an item is packed for this event and
// returns the new state.
func (s *EventStore) ToggleCheckedItem(eventID, itemID string) (bool, error) {
	var exists int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM event_checked_items WHERE event_id = ? AND item_id = ?`,
		eventID, itemID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check event item: %w", err)
	}

	if exists > 0 {
		if _, err := s.db.Exec(
			`DELETE FROM event_checked_items WHERE event_id = ? AND item_id = ?`,
			eventID, itemID,
		); err != nil {
			return false, fmt.Errorf("uncheck event item: %w", err)
		}
		return false, nil
	}

	if _, err := s.db.Exec(
		`INSERT INTO event_checked_items (event_id, item_id) VALUES (?, ?)`,
		eventID, itemID,
	); err != nil {
		return false, fmt.Errorf("check event item: %w", err)
	}
	return true, nil
}

// Delete removes an event and its join rows.
func (s *EventStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM calendar_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete calendar event: %w", err)
	}
	return nil
}
