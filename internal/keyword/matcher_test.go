package keyword

import (
	"reflect"
	"testing"

	"github.com/prepcheck/prepcheck/internal/model"
)

func testChecklists() []model.Checklist {
	return []model.Checklist{
		{ID: "cl-gym", Name: "Gym"},
		{ID: "cl-work", Name: "Work"},
		{ID: "cl-beach", Name: "Beach"},
	}
}

func TestMatchChecklistsNameInTitle(t *testing.T) {
	got := MatchChecklists("Gym session tonight", testChecklists())
	if len(got) == 0 || got[0] != "cl-gym" {
		t.Fatalf("MatchChecklists = %v, want cl-gym first", got)
	}
}

func TestMatchChecklistsCategoryKeyword(t *testing.T) {
	// "fitness" is a gym keyword and the checklist named "Gym" shares
	// that category, so it matches without a literal name hit.
	got := MatchChecklists("Morning fitness routine", testChecklists())
	if !reflect.DeepEqual(got, []string{"cl-gym"}) {
		t.Fatalf("MatchChecklists = %v, want [cl-gym]", got)
	}
}

func TestMatchChecklistsPoolMatchesBeach(t *testing.T) {
	// "pool" and "beach" are both in the beach vocabulary; the checklist
	// name never appears in the title.
	got := MatchChecklists("Pool Party", testChecklists())
	if !reflect.DeepEqual(got, []string{"cl-beach"}) {
		t.Fatalf("MatchChecklists = %v, want [cl-beach]", got)
	}
}

func TestMatchChecklistsUnrelatedName(t *testing.T) {
	checklists := []model.Checklist{{ID: "cl-misc", Name: "Miscellaneous"}}
	got := MatchChecklists("Beach trip", checklists)
	if len(got) != 0 {
		t.Fatalf("MatchChecklists = %v, want none", got)
	}
}

func TestMatchChecklistsEmptyTitle(t *testing.T) {
	if got := MatchChecklists("", testChecklists()); got != nil {
		t.Fatalf("MatchChecklists = %v, want nil", got)
	}
	if got := MatchChecklists("   ", testChecklists()); got != nil {
		t.Fatalf("MatchChecklists = %v, want nil", got)
	}
}

func TestMatchChecklistsNoDuplicates(t *testing.T) {
	checklists := []model.Checklist{
		{ID: "cl-1", Name: "Beach"},
		{ID: "cl-1", Name: "Beach"},
	}
	got := MatchChecklists("Beach day", checklists)
	if !reflect.DeepEqual(got, []string{"cl-1"}) {
		t.Fatalf("MatchChecklists = %v, want single cl-1", got)
	}
}

func TestTemplateItemsHiking(t *testing.T) {
	items := TemplateItems("Weekend hike")
	want := []string{"Water bottle", "Hiking boots", "Snacks", "First aid kit"}
	if len(items) != len(want) {
		t.Fatalf("got %d items, want %d", len(items), len(want))
	}
	for i, item := range items {
		if item.Text != want[i] {
			t.Errorf("item %d = %q, want %q", i, item.Text, want[i])
		}
	}
	if items[0].ID != "hiking-1" {
		t.Errorf("first item id = %q, want %q", items[0].ID, "hiking-1")
	}
	if items[3].ID != "hiking-4" {
		t.Errorf("last item id = %q, want %q", items[3].ID, "hiking-4")
	}
}

func TestTemplateItemsFirstCategoryWins(t *testing.T) {
	// "class" appears in both the gym and school vocabularies; gym is
	// checked first.
	items := TemplateItems("Evening class")
	if len(items) == 0 {
		t.Fatal("expected template items")
	}
	if items[0].ID != "gym-1" {
		t.Errorf("first item id = %q, want %q", items[0].ID, "gym-1")
	}
}

func TestTemplateItemsHomeHasNoTemplate(t *testing.T) {
	if items := TemplateItems("Clean the house"); items != nil {
		t.Fatalf("TemplateItems = %v, want nil for home category", items)
	}
}

func TestTemplateItemsNoMatch(t *testing.T) {
	if items := TemplateItems("Dentist at noon"); items != nil {
		t.Fatalf("TemplateItems = %v, want nil", items)
	}
}

func TestDisplayKeywords(t *testing.T) {
	kws := DisplayKeywords()
	if len(kws) != 15 {
		t.Fatalf("got %d keywords, want 15", len(kws))
	}
	seen := make(map[string]struct{})
	for _, kw := range kws {
		if _, ok := seen[kw]; ok {
			t.Errorf("duplicate keyword %q", kw)
		}
		seen[kw] = struct{}{}
	}
	if kws[0] != "gym" {
		t.Errorf("first keyword = %q, want %q", kws[0], "gym")
	}
}
