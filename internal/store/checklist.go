package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepcheck/prepcheck/internal/model"
)

type ChecklistStore struct {
	db *sql.DB
}

func NewChecklistStore(db *sql.DB) *ChecklistStore {
	return &ChecklistStore{db: db}
}

const checklistCols = `id, name, icon, color, created_at, updated_at`

func scanChecklist(scanner interface{ Scan(...any) error }) (*model.Checklist, error) {
	var c model.Checklist
	err := scanner.Scan(&c.ID, &c.Name, &c.Icon, &c.Color, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all checklists with their items, in creation order.
func (s *ChecklistStore) List() ([]model.Checklist, error) {
	rows, err := s.db.Query(`SELECT ` + checklistCols + ` FROM checklists ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	defer rows.Close()

	var checklists []model.Checklist
	for rows.Next() {
		c, err := scanChecklist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan checklist: %w", err)
		}
		checklists = append(checklists, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range checklists {
		items, err := s.listItems(checklists[i].ID)
		if err != nil {
			return nil, err
		}
		checklists[i].Items = items
	}
	return checklists, nil
}

// GetByID returns the checklist with its items, or nil if it does not exist.
func (s *ChecklistStore) GetByID(id string) (*model.Checklist, error) {
	row := s.db.QueryRow(`SELECT `+checklistCols+` FROM checklists WHERE id = ?`, id)
	c, err := scanChecklist(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get checklist: %w", err)
	}

	items, err := s.listItems(c.ID)
	if err != nil {
		return nil, err
	}
	c.Items = items
	return c, nil
}

func (s *ChecklistStore) listItems(checklistID string) ([]model.ChecklistItem, error) {
	rows, err := s.db.Query(
		`SELECT id, text, checked FROM checklist_items WHERE checklist_id = ? ORDER BY position ASC`,
		checklistID,
	)
	if err != nil {
		return nil, fmt.Errorf("list checklist items: %w", err)
	}
	defer rows.Close()

	var items []model.ChecklistItem
	for rows.Next() {
		var item model.ChecklistItem
		var checked int
		if err := rows.Scan(&item.ID, &item.Text, &checked); err != nil {
			return nil, fmt.Errorf("scan checklist item: %w", err)
		}
		item.Checked = checked != 0
		items = append(items, item)
	}
	return items, rows.Err()
}

// Create inserts a checklist with the given items, assigning fresh ids.
func (s *ChecklistStore) Create(name, icon, color string, itemTexts []string) (*model.Checklist, error) {
	id := uuid.New().String()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO checklists (id, name, icon, color) VALUES (?, ?, ?, ?)`,
		id, name, icon, color,
	); err != nil {
		return nil, fmt.Errorf("insert checklist: %w", err)
	}

	for i, text := range itemTexts {
		if _, err := tx.Exec(
			`INSERT INTO checklist_items (checklist_id, id, text, position) VALUES (?, ?, ?, ?)`,
			id, uuid.New().String(), text, i,
		); err != nil {
			return nil, fmt.Errorf("insert checklist item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetByID(id)
}

// Update changes the checklist's name, icon, and color.
func (s *ChecklistStore) Update(id, name, icon, color string) (*model.Checklist, error) {
	_, err := s.db.Exec(
		`UPDATE checklists SET name = ?, icon = ?, color = ?, updated_at = ? WHERE id = ?`,
		name, icon, color, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update checklist: %w", err)
	}
	return s.GetByID(id)
}

// Delete removes a checklist. The schedule and items cascade with it.
func (s *ChecklistStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM checklists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete checklist: %w", err)
	}
	return nil
}

// AddItem appends an item to the end of the checklist.
func (s *ChecklistStore) AddItem(checklistID, text string) (*model.ChecklistItem, error) {
	var maxPos sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(position) FROM checklist_items WHERE checklist_id = ?`, checklistID,
	).Scan(&maxPos)
	if err != nil {
		return nil, fmt.Errorf("max item position: %w", err)
	}

	item := model.ChecklistItem{ID: uuid.New().String(), Text: text}
	_, err = s.db.Exec(
		`INSERT INTO checklist_items (checklist_id, id, text, position) VALUES (?, ?, ?, ?)`,
		checklistID, item.ID, item.Text, maxPos.Int64+1,
	)
	if err != nil {
		return nil, fmt.Errorf("insert checklist item: %w", err)
	}
	return &item, nil
}

// UpdateItem renames an item.
func (s *ChecklistStore) UpdateItem(checklistID, itemID, text string) error {
	_, err := s.db.Exec(
		`UPDATE checklist_items SET text = ? WHERE checklist_id = ? AND id = ?`,
		text, checklistID, itemID,
	)
	if err != nil {
		return fmt.Errorf("update checklist item: %w", err)
	}
	return nil
}

// DeleteItem removes an item from the checklist.
func (s *ChecklistStore) DeleteItem(checklistID, itemID string) error {
	_, err := s.db.Exec(
		`DELETE FROM checklist_items WHERE checklist_id = ? AND id = ?`,
		checklistID, itemID,
	)
	if err != nil {
		return fmt.Errorf("delete checklist item: %w", err)
	}
	return nil
}

// ToggleItem flips an item's checked state and returns the new state.
func (s *ChecklistStore) ToggleItem(checklistID, itemID string) (bool, error) {
	_, err := s.db.Exec(
		`UPDATE checklist_items SET checked = 1 - checked WHERE checklist_id = ? AND id = ?`,
		checklistID, itemID,
	)
	if err != nil {
		return false, fmt.Errorf("toggle checklist item: %w", err)
	}

	var checked int
	err = s.db.QueryRow(
		`SELECT checked FROM checklist_items WHERE checklist_id = ? AND id = ?`,
		checklistID, itemID,
	).Scan(&checked)
	if err != nil {
		return false, fmt.Errorf("read toggled item: %w", err)
	}
	return checked != 0, nil
}

// ResetItems unchecks every item in the checklist.
func (s *ChecklistStore) ResetItems(checklistID string) error {
	_, err := s.db.Exec(
		`UPDATE checklist_items SET checked = 0 WHERE checklist_id = ?`, checklistID,
	)
	if err != nil {
		return fmt.Errorf("reset checklist items: %w", err)
	}
	return nil
}
