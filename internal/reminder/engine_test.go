package reminder

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/prepcheck/prepcheck/internal/model"
	"github.com/prepcheck/prepcheck/internal/weather"
)

type fakeRepo struct {
	checklists []model.Checklist
	schedules  []model.Schedule
	events     []model.CalendarEvent
	settings   model.Settings
}

func (f *fakeRepo) ListChecklists() ([]model.Checklist, error) { return f.checklists, nil }
func (f *fakeRepo) ListSchedules() ([]model.Schedule, error)   { return f.schedules, nil }
func (f *fakeRepo) GetSettings() (*model.Settings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeRepo) EventsOn(date time.Time) ([]model.CalendarEvent, error) {
	var out []model.CalendarEvent
	for _, e := range f.events {
		if e.OnDate(date) {
			out = append(out, e)
		}
	}
	return out, nil
}

func strptr(s string) *string { return &s }

// Monday 2025-03-10.
func monday(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func gymRepo() *fakeRepo {
	return &fakeRepo{
		checklists: []model.Checklist{
			{
				ID:   "cl-gym",
				Name: "Gym",
				Items: []model.ChecklistItem{
					{ID: "1", Text: "Water bottle"},
					{ID: "2", Text: "Towel", Checked: true},
					{ID: "3", Text: "Gym shoes"},
				},
			},
		},
		schedules: []model.Schedule{
			{ChecklistID: "cl-gym", Days: []string{"Mon", "Wed"}, Time: "16:00", Enabled: true},
		},
		settings: model.Settings{ReminderMinutesBefore: 15},
	}
}

func newTestEngine(repo Repository, src weather.Source) *Engine {
	return NewEngine(repo, src, slog.New(slog.DiscardHandler))
}

func checkAt(t *testing.T, e *Engine, at time.Time) []Reminder {
	t.Helper()
	reminders, err := e.Check(context.Background(), at)
	if err != nil {
		t.Fatalf("check at %s: %v", at.Format("15:04"), err)
	}
	return reminders
}

func TestCheckScheduleWindow(t *testing.T) {
	e := newTestEngine(gymRepo(), nil)

	// 16:00 schedule minus 15 minutes lead puts the reminder at 15:45;
	// it fires at 15:44, 15:45 and 15:46 and nowhere else.
	fires := []time.Time{monday(15, 44), monday(15, 45), monday(15, 46)}
	for _, at := range fires {
		got := checkAt(t, e, at)
		if len(got) != 1 {
			t.Fatalf("at %s got %d reminders, want 1", at.Format("15:04"), len(got))
		}
		r := got[0]
		if r.Source != model.ReminderSourceSchedule {
			t.Errorf("source = %q, want %q", r.Source, model.ReminderSourceSchedule)
		}
		if r.RefID != "cl-gym" {
			t.Errorf("ref id = %q, want %q", r.RefID, "cl-gym")
		}
		if r.Message != "Time to prepare for Gym!" {
			t.Errorf("message = %q", r.Message)
		}
		if r.WindowStart != 15*60+44 {
			t.Errorf("window start = %d, want %d", r.WindowStart, 15*60+44)
		}
		want := []string{"Water bottle", "Gym shoes"}
		if len(r.Items) != len(want) {
			t.Fatalf("items = %v, want %v", r.Items, want)
		}
		for i, item := range r.Items {
			if item != want[i] {
				t.Errorf("item %d = %q, want %q", i, item, want[i])
			}
		}
	}

	for _, at := range []time.Time{monday(15, 43), monday(15, 47), monday(16, 0)} {
		if got := checkAt(t, e, at); len(got) != 0 {
			t.Errorf("at %s got %d reminders, want 0", at.Format("15:04"), len(got))
		}
	}
}

func TestCheckScheduleRefiresEveryPoll(t *testing.T) {
	e := newTestEngine(gymRepo(), nil)

	first := checkAt(t, e, monday(15, 45))
	second := checkAt(t, e, monday(15, 45))
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("got %d then %d reminders, want 1 and 1", len(first), len(second))
	}
	if first[0].WindowStart != second[0].WindowStart {
		t.Errorf("window start changed between polls: %d vs %d", first[0].WindowStart, second[0].WindowStart)
	}
}

func TestCheckScheduleWrongDay(t *testing.T) {
	e := newTestEngine(gymRepo(), nil)

	// Tuesday is not in the schedule's day set.
	tuesday := monday(15, 45).AddDate(0, 0, 1)
	if got := checkAt(t, e, tuesday); len(got) != 0 {
		t.Fatalf("got %d reminders on Tue, want 0", len(got))
	}
}

func TestCheckScheduleDisabled(t *testing.T) {
	repo := gymRepo()
	repo.schedules[0].Enabled = false
	e := newTestEngine(repo, nil)

	if got := checkAt(t, e, monday(15, 45)); len(got) != 0 {
		t.Fatalf("got %d reminders for disabled schedule, want 0", len(got))
	}
}

func TestCheckScheduleStaleChecklist(t *testing.T) {
	repo := gymRepo()
	repo.checklists = nil
	e := newTestEngine(repo, nil)

	if got := checkAt(t, e, monday(15, 45)); len(got) != 0 {
		t.Fatalf("got %d reminders for stale schedule, want 0", len(got))
	}
}

func TestCheckScheduleMidnightWrap(t *testing.T) {
	repo := gymRepo()
	repo.schedules[0].Time = "00:05"
	repo.settings.ReminderMinutesBefore = 30
	e := newTestEngine(repo, nil)

	// Lead time pushes the reminder before midnight; it never fires,
	// not even at 00:00 where the window arithmetic would otherwise
	// overlap.
	for _, at := range []time.Time{monday(0, 0), monday(23, 35), monday(23, 59)} {
		if got := checkAt(t, e, at); len(got) != 0 {
			t.Errorf("at %s got %d reminders, want 0", at.Format("15:04"), len(got))
		}
	}
}

func TestCheckScheduleZeroLead(t *testing.T) {
	repo := gymRepo()
	repo.settings.ReminderMinutesBefore = 0
	e := newTestEngine(repo, nil)

	got := checkAt(t, e, monday(16, 0))
	if len(got) != 1 {
		t.Fatalf("got %d reminders, want 1", len(got))
	}
}

func TestCheckEventWindow(t *testing.T) {
	repo := gymRepo()
	repo.events = []model.CalendarEvent{
		{
			ID:                    "ev-1",
			Title:                 "Gym session",
			Date:                  monday(0, 0),
			Time:                  strptr("18:00"),
			SuggestedChecklistIDs: []string{"cl-gym"},
		},
	}
	e := newTestEngine(repo, nil)

	// The pre-event window runs from 17:45 through 18:00 inclusive.
	for _, at := range []time.Time{monday(17, 45), monday(17, 52), monday(18, 0)} {
		got := checkAt(t, e, at)
		if len(got) != 1 {
			t.Fatalf("at %s got %d reminders, want 1", at.Format("15:04"), len(got))
		}
		r := got[0]
		if r.Source != model.ReminderSourceEvent {
			t.Errorf("source = %q, want %q", r.Source, model.ReminderSourceEvent)
		}
		if r.RefID != "ev-1" {
			t.Errorf("ref id = %q, want %q", r.RefID, "ev-1")
		}
		if r.Message != "Gym session at 18:00 — 2 items left to pack" {
			t.Errorf("message = %q", r.Message)
		}
		if r.WindowStart != 17*60+45 {
			t.Errorf("window start = %d, want %d", r.WindowStart, 17*60+45)
		}
	}

	for _, at := range []time.Time{monday(17, 44), monday(18, 1)} {
		if got := checkAt(t, e, at); len(got) != 0 {
			t.Errorf("at %s got %d reminders, want 0", at.Format("15:04"), len(got))
		}
	}
}

func TestCheckEventWithoutTime(t *testing.T) {
	repo := gymRepo()
	repo.schedules = nil
	repo.events = []model.CalendarEvent{
		{ID: "ev-1", Title: "All day", Date: monday(0, 0), SuggestedChecklistIDs: []string{"cl-gym"}},
	}
	e := newTestEngine(repo, nil)

	if got := checkAt(t, e, monday(12, 0)); len(got) != 0 {
		t.Fatalf("got %d reminders for all-day event, want 0", len(got))
	}
}

func TestCheckEventAllItemsPacked(t *testing.T) {
	repo := gymRepo()
	repo.schedules = nil
	repo.events = []model.CalendarEvent{
		{
			ID:                    "ev-1",
			Title:                 "Gym session",
			Date:                  monday(0, 0),
			Time:                  strptr("18:00"),
			SuggestedChecklistIDs: []string{"cl-gym"},
			CheckedItems:          []string{"1", "3"},
		},
	}
	e := newTestEngine(repo, nil)

	// Items "1" and "3" are packed per-event, "2" on the checklist
	// itself; nothing outstanding means nothing fires.
	if got := checkAt(t, e, monday(17, 50)); len(got) != 0 {
		t.Fatalf("got %d reminders with nothing to pack, want 0", len(got))
	}
}

func TestCheckWeatherAttached(t *testing.T) {
	repo := gymRepo()
	repo.settings.HomeLocation = &model.Location{Latitude: 38.72, Longitude: -9.14}
	fixed := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	src := &weather.Stub{Now: func() time.Time { return fixed }}
	e := newTestEngine(repo, src)

	got := checkAt(t, e, monday(15, 45))
	if len(got) != 1 {
		t.Fatalf("got %d reminders, want 1", len(got))
	}
	r := got[0]
	if r.Weather == nil {
		t.Fatal("expected weather on reminder")
	}
	prefix := "Time to prepare for Gym! " + weather.Emoji(r.Weather)
	if !strings.HasPrefix(r.Message, prefix) || !strings.HasSuffix(r.Message, "°C") {
		t.Errorf("message %q missing weather suffix", r.Message)
	}
}

func TestCheckNoLocationNoWeather(t *testing.T) {
	e := newTestEngine(gymRepo(), &weather.Stub{})

	got := checkAt(t, e, monday(15, 45))
	if len(got) != 1 {
		t.Fatalf("got %d reminders, want 1", len(got))
	}
	if got[0].Weather != nil {
		t.Error("expected no weather without a location")
	}
}

func TestUpcoming(t *testing.T) {
	repo := gymRepo()
	repo.checklists = append(repo.checklists, model.Checklist{ID: "cl-work", Name: "Work"})
	repo.schedules = append(repo.schedules,
		model.Schedule{ChecklistID: "cl-work", Days: []string{"Fri"}, Time: "08:30", Enabled: false},
		model.Schedule{ChecklistID: "cl-gone", Days: []string{"Sun"}, Time: "09:00", Enabled: true},
	)
	e := newTestEngine(repo, nil)

	previews, err := e.Upcoming(context.Background())
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}

	// Disabled and orphaned schedules are excluded.
	if len(previews) != 1 {
		t.Fatalf("got %d previews, want 1", len(previews))
	}
	p := previews[0]
	if p.ChecklistName != "Gym" {
		t.Errorf("checklist name = %q, want %q", p.ChecklistName, "Gym")
	}
	if p.Time != "16:00" {
		t.Errorf("time = %q, want %q", p.Time, "16:00")
	}
	if p.Days != "Mon, Wed" {
		t.Errorf("days = %q, want %q", p.Days, "Mon, Wed")
	}
	if p.Items != 2 {
		t.Errorf("items = %d, want 2", p.Items)
	}
}

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"16:00", 960, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseMinutes(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseMinutes(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseMinutes(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseMinutes(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
