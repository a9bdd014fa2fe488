package reminder

import (
	"time"

	"github.com/prepcheck/prepcheck/internal/model"
	"github.com/prepcheck/prepcheck/internal/store"
)

// StoreRepository adapts the SQLite stores to the engine's Repository.
type StoreRepository struct {
	Checklists *store.ChecklistStore
	Schedules  *store.ScheduleStore
	Events     *store.EventStore
	Settings   *store.SettingsStore
}

func (r *StoreRepository) ListChecklists() ([]model.Checklist, error) {
	return r.Checklists.List()
}

func (r *StoreRepository) ListSchedules() ([]model.Schedule, error) {
	return r.Schedules.List()
}

func (r *StoreRepository) EventsOn(date time.Time) ([]model.CalendarEvent, error) {
	return r.Events.ListOn(date)
}

func (r *StoreRepository) GetSettings() (*model.Settings, error) {
	return r.Settings.Get()
}
