// Package reminder decides which packing reminders are due. The engine is
// stateless: every call recomputes from persisted state, the wall clock,
// and one weather lookup.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/prepcheck/prepcheck/internal/model"
	"github.com/prepcheck/prepcheck/internal/weather"
)

// Repository is the persisted state the engine reads. Stores satisfy it;
// tests use in-memory fakes.
type Repository interface {
	ListChecklists() ([]model.Checklist, error)
	ListSchedules() ([]model.Schedule, error)
	EventsOn(date time.Time) ([]model.CalendarEvent, error)
	GetSettings() (*model.Settings, error)
}

// Reminder is one due notification. WindowStart identifies the trigger
// window (minutes since midnight) so delivery layers can dedup across
// polls; the engine itself fires on every poll inside the window.
type Reminder struct {
	Source      string               `json:"source"` // "schedule" or "event"
	RefID       string               `json:"ref_id"` // checklist id or event id
	Name        string               `json:"name"`
	Message     string               `json:"message"`
	Items       []string             `json:"items"`
	WindowStart int                  `json:"-"`
	Weather     *weather.Condition   `json:"weather,omitempty"`
	Suggestions []weather.Suggestion `json:"weather_suggestions,omitempty"`
}

// Preview is a display projection of an enabled schedule, independent of
// whether it is currently due.
type Preview struct {
	ChecklistName string               `json:"checklist_name"`
	Time          string               `json:"time"`
	Days          string               `json:"days"`
	Items         int                  `json:"items"`
	Weather       *weather.Condition   `json:"weather,omitempty"`
	Suggestions   []weather.Suggestion `json:"weather_suggestions,omitempty"`
}

// eventLeadMinutes is the fixed pre-event reminder window.
const eventLeadMinutes = 15

type Engine struct {
	repo   Repository
	source weather.Source
	logger *slog.Logger
}

// NewEngine creates a reminder engine. The weather source may be nil, in
// which case reminders carry no weather.
func NewEngine(repo Repository, source weather.Source, logger *slog.Logger) *Engine {
	return &Engine{repo: repo, source: source, logger: logger}
}

// Check returns the reminders due at the given wall-clock instant:
// schedule reminders inside their ±1-minute trigger window, then event
// reminders inside their 15-minute pre-event window, each in source
// collection order. Weather is fetched at most once and shared by every
// reminder in the call. A schedule whose lead time crosses midnight
// computes a negative reminder minute and never fires.
func (e *Engine) Check(ctx context.Context, now time.Time) ([]Reminder, error) {
	settings, err := e.repo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	checklists, err := e.repo.ListChecklists()
	if err != nil {
		return nil, fmt.Errorf("load checklists: %w", err)
	}
	schedules, err := e.repo.ListSchedules()
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	currentDay := model.WeekdayTags[now.Weekday()]
	currentTime := now.Hour()*60 + now.Minute()

	cond, suggestions := e.fetchWeather(ctx, settings)

	byID := make(map[string]*model.Checklist, len(checklists))
	for i := range checklists {
		byID[checklists[i].ID] = &checklists[i]
	}

	var reminders []Reminder

	for _, schedule := range schedules {
		if !schedule.Enabled || !schedule.HasDay(currentDay) {
			continue
		}

		checklist, ok := byID[schedule.ChecklistID]
		if !ok {
			// Stale schedule; cleanup is eventual, not an error.
			continue
		}

		scheduleTime, err := parseMinutes(schedule.Time)
		if err != nil {
			e.logger.Warn("skipping schedule with bad time", "checklist_id", schedule.ChecklistID, "time", schedule.Time)
			continue
		}

		reminderTime := scheduleTime - settings.ReminderMinutesBefore
		if reminderTime < 0 {
			continue
		}
		if abs(currentTime-reminderTime) > 1 {
			continue
		}

		message := fmt.Sprintf("Time to prepare for %s!", checklist.Name)
		if cond != nil {
			message = fmt.Sprintf("%s %s %.0f°C", message, weather.Emoji(cond), cond.Temp)
		}

		reminders = append(reminders, Reminder{
			Source:      model.ReminderSourceSchedule,
			RefID:       checklist.ID,
			Name:        checklist.Name,
			Message:     message,
			Items:       checklist.UncheckedItems(),
			WindowStart: reminderTime - 1,
			Weather:     cond,
			Suggestions: suggestions,
		})
	}

	events, err := e.repo.EventsOn(now)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}

	for _, event := range events {
		if event.Time == nil {
			continue
		}

		items := outstandingItems(&event, byID)
		if len(items) == 0 {
			continue
		}

		eventTime, err := parseMinutes(*event.Time)
		if err != nil {
			e.logger.Warn("skipping event with bad time", "event_id", event.ID, "time", *event.Time)
			continue
		}

		windowStart := eventTime - eventLeadMinutes
		if currentTime < windowStart || currentTime > eventTime {
			continue
		}

		message := fmt.Sprintf("%s at %s — %d items left to pack", event.Title, *event.Time, len(items))
		if cond != nil {
			message = fmt.Sprintf("%s %s %.0f°C", message, weather.Emoji(cond), cond.Temp)
		}

		reminders = append(reminders, Reminder{
			Source:      model.ReminderSourceEvent,
			RefID:       event.ID,
			Name:        event.Title,
			Message:     message,
			Items:       items,
			WindowStart: windowStart,
			Weather:     cond,
			Suggestions: suggestions,
		})
	}

	return reminders, nil
}

// Upcoming lists every enabled schedule as a preview entry, regardless of
// current time or day. Entries whose checklist no longer exists are
// dropped.
func (e *Engine) Upcoming(ctx context.Context) ([]Preview, error) {
	settings, err := e.repo.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	checklists, err := e.repo.ListChecklists()
	if err != nil {
		return nil, fmt.Errorf("load checklists: %w", err)
	}
	schedules, err := e.repo.ListSchedules()
	if err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	cond, suggestions := e.fetchWeather(ctx, settings)

	byID := make(map[string]*model.Checklist, len(checklists))
	for i := range checklists {
		byID[checklists[i].ID] = &checklists[i]
	}

	var previews []Preview
	for _, schedule := range schedules {
		if !schedule.Enabled {
			continue
		}
		checklist, ok := byID[schedule.ChecklistID]
		if !ok {
			continue
		}
		previews = append(previews, Preview{
			ChecklistName: checklist.Name,
			Time:          schedule.Time,
			Days:          strings.Join(schedule.Days, ", "),
			Items:         len(checklist.UncheckedItems()),
			Weather:       cond,
			Suggestions:   suggestions,
		})
	}
	return previews, nil
}

// fetchWeather resolves the active location and fetches conditions once.
// Failures degrade to no weather, never an error.
func (e *Engine) fetchWeather(ctx context.Context, settings *model.Settings) (*weather.Condition, []weather.Suggestion) {
	if e.source == nil {
		return nil, nil
	}
	loc := settings.ActiveLocation()
	if loc == nil {
		return nil, nil
	}

	cond, err := e.source.Current(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		e.logger.Warn("weather unavailable", "error", err)
		return nil, nil
	}
	return cond, weather.Suggestions(cond)
}

// outstandingItems gathers unchecked item labels from an event's suggested
// checklists, excluding items already packed for this event. Missing
// checklists are skipped silently.
func outstandingItems(event *model.CalendarEvent, byID map[string]*model.Checklist) []string {
	var items []string
	for _, checklistID := range event.SuggestedChecklistIDs {
		checklist, ok := byID[checklistID]
		if !ok {
			continue
		}
		for _, item := range checklist.Items {
			if item.Checked || event.IsItemChecked(item.ID) {
				continue
			}
			items = append(items, item.Text)
		}
	}
	return items
}

// parseMinutes converts a 24-hour "HH:MM" string to minutes since
// midnight.
func parseMinutes(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	hours, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	minutes, err := strconv.Atoi(mm)
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", s)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", s)
	}
	return hours*60 + minutes, nil
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
