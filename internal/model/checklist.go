package model

import "time"

// ChecklistItem is a single packing item inside a checklist. The ID is
// unique within the parent checklist only.
type ChecklistItem struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Checklist is a named, ordered list of packing items.
type Checklist struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Color     string          `json:"color"`
	Items     []ChecklistItem `json:"items"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// UncheckedItems returns the labels of items not yet checked off, in order.
func (c *Checklist) UncheckedItems() []string {
	var labels []string
	for _, item := range c.Items {
		if !item.Checked {
			labels = append(labels, item.Text)
		}
	}
	return labels
}
