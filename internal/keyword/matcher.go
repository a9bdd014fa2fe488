// Package keyword maps free-text event titles to packing checklists using
// fixed per-category keyword tables, and supplies template items when no
// saved checklist matches.
package keyword

import (
	"fmt"
	"strings"

	"github.com/prepcheck/prepcheck/internal/model"
)

type category struct {
	name     string
	keywords []string
}

// Categories are checked in this fixed order; the first category whose
// vocabulary intersects a title wins for template lookup.
var categories = []category{
	{"gym", []string{"gym", "workout", "exercise", "fitness", "training", "sport", "yoga", "pilates", "spin", "zumba", "crossfit", "cardio", "weights", "run", "running", "jog", "jogging", "class", "session"}},
	{"work", []string{"work", "office", "meeting", "presentation", "conference", "business", "seminar", "workshop", "client", "appointment", "call", "zoom"}},
	{"beach", []string{"beach", "pool", "swim", "swimming", "ocean", "sea", "coast", "water park", "waterpark", "water", "amusement", "splash", "dive", "snorkel", "surf", "surfing", "bay", "lake", "aquatic"}},
	{"travel", []string{"travel", "trip", "vacation", "holiday", "flight", "airport", "hotel", "tour", "getaway", "cruise", "road trip", "journey", "visit", "touring", "sightseeing"}},
	{"hiking", []string{"hike", "hiking", "trek", "trekking", "mountain", "trail", "camp", "camping", "outdoor", "backpack", "backpacking", "climb", "climbing", "nature", "wilderness"}},
	{"home", []string{"home", "house", "apartment", "place", "residence"}},
	{"shopping", []string{"shop", "shopping", "grocery", "groceries", "store", "market", "mall", "errands", "supplies", "purchase", "buy"}},
	{"school", []string{"school", "class", "college", "university", "study", "exam", "lecture", "homework", "assignment", "education", "learning", "course"}},
}

// templates are the fallback item lists per category, used when a title
// matches a category but no saved checklist does.
var templates = map[string][]string{
	"gym":      {"Water bottle", "Towel", "Gym shoes", "Workout clothes"},
	"work":     {"Laptop", "Charger", "Notebook", "ID badge"},
	"beach":    {"Swim wear", "Towel", "Sunscreen", "Sunglasses", "Flip flops"},
	"travel":   {"Passport", "Tickets", "Phone charger", "Toiletries", "Change of clothes"},
	"hiking":   {"Water bottle", "Hiking boots", "Snacks", "First aid kit"},
	"shopping": {"Shopping bags", "Wallet", "Shopping list"},
	"school":   {"Notebook", "Pens", "Laptop", "Student ID"},
}

// MatchChecklists returns the ids of checklists relevant to the event
// title, preserving checklist order. A checklist whose name appears
// verbatim in the title matches immediately; otherwise it matches a
// category only if both the title and the checklist's own name contain a
// keyword from that category's vocabulary.
func MatchChecklists(title string, checklists []model.Checklist) []string {
	titleLower := strings.ToLower(strings.TrimSpace(title))
	if titleLower == "" {
		return nil
	}

	var matches []string
	seen := make(map[string]struct{})
	add := func(id string) {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			matches = append(matches, id)
		}
	}

	for _, checklist := range checklists {
		nameLower := strings.ToLower(checklist.Name)

		if strings.Contains(titleLower, nameLower) {
			add(checklist.ID)
			continue
		}

		for _, cat := range categories {
			if containsAny(titleLower, cat.keywords) && containsAny(nameLower, cat.keywords) {
				add(checklist.ID)
				break
			}
		}
	}
	return matches
}

// TemplateItems returns fallback items for the first category matching the
// title, with synthetic ids "<category>-<n>". Empty when no category
// matches or the matched category has no template.
func TemplateItems(title string) []model.ChecklistItem {
	titleLower := strings.ToLower(strings.TrimSpace(title))
	if titleLower == "" {
		return nil
	}

	for _, cat := range categories {
		if !containsAny(titleLower, cat.keywords) {
			continue
		}
		texts, ok := templates[cat.name]
		if !ok {
			return nil
		}
		items := make([]model.ChecklistItem, len(texts))
		for i, text := range texts {
			items[i] = model.ChecklistItem{
				ID:   fmt.Sprintf("%s-%d", cat.name, i+1),
				Text: text,
			}
		}
		return items
	}
	return nil
}

// displayKeywords is a short per-category hint vocabulary shown in the
// event form.
var displayKeywords = [][]string{
	{"gym", "workout", "fitness"},
	{"work", "meeting", "office"},
	{"beach", "pool", "water"},
	{"travel", "trip", "vacation"},
	{"hiking", "camping", "trail"},
	{"home", "house", "apartment"},
	{"shopping", "grocery", "mall"},
	{"school", "class", "study"},
}

// DisplayKeywords returns up to 15 unique hint keywords for the UI.
func DisplayKeywords() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, group := range displayKeywords {
		for _, kw := range group {
			if _, ok := seen[kw]; ok {
				continue
			}
			seen[kw] = struct{}{}
			out = append(out, kw)
			if len(out) == 15 {
				return out
			}
		}
	}
	return out
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
