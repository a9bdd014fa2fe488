package server

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prepcheck/prepcheck/internal/geocode"
	"github.com/prepcheck/prepcheck/internal/handler"
	"github.com/prepcheck/prepcheck/internal/middleware"
	"github.com/prepcheck/prepcheck/internal/push"
	"github.com/prepcheck/prepcheck/internal/reminder"
	"github.com/prepcheck/prepcheck/internal/store"
	"github.com/prepcheck/prepcheck/internal/weather"
	ws "github.com/prepcheck/prepcheck/internal/websocket"
)

type Server struct {
	db          *sql.DB
	hub         *ws.Hub
	checklistH  *handler.ChecklistHandler
	scheduleH   *handler.ScheduleHandler
	eventH      *handler.EventHandler
	settingsH   *handler.SettingsHandler
	reminderH   *handler.ReminderHandler
	geocodeH    *handler.GeocodeHandler
	pushH       *handler.PushHandler
	scheduler   *reminder.Scheduler
	pushService *push.Service
	logger      *slog.Logger
}

func New(db *sql.DB, weatherSrc weather.Source, geoClient *geocode.Client, pushCfg push.Config, logger *slog.Logger) *Server {
	hub := ws.NewHub(logger.With("component", "websocket"))

	checklistStore := store.NewChecklistStore(db)
	scheduleStore := store.NewScheduleStore(db)
	eventStore := store.NewEventStore(db)
	settingsStore := store.NewSettingsStore(db)
	pushStore := store.NewPushStore(db)

	var pushSvc *push.Service
	if pushCfg.VAPIDPublicKey != "" && pushCfg.VAPIDPrivateKey != "" {
		pushSvc = push.NewService(pushCfg.VAPIDPublicKey, pushCfg.VAPIDPrivateKey)
	}

	repo := &reminder.StoreRepository{
		Checklists: checklistStore,
		Schedules:  scheduleStore,
		Events:     eventStore,
		Settings:   settingsStore,
	}
	engine := reminder.NewEngine(repo, weatherSrc, logger.With("component", "reminder"))
	scheduler := reminder.NewScheduler(engine, hub, pushSvc, pushStore, logger.With("component", "scheduler"))

	return &Server{
		db:          db,
		hub:         hub,
		checklistH:  handler.NewChecklistHandler(checklistStore, hub, logger.With("component", "checklist")),
		scheduleH:   handler.NewScheduleHandler(scheduleStore, checklistStore, hub, logger.With("component", "schedule")),
		eventH:      handler.NewEventHandler(eventStore, checklistStore, hub, logger.With("component", "event")),
		settingsH:   handler.NewSettingsHandler(settingsStore, hub, logger.With("component", "settings")),
		reminderH:   handler.NewReminderHandler(engine, logger.With("component", "reminder_api")),
		geocodeH:    handler.NewGeocodeHandler(geoClient, logger.With("component", "geocode")),
		pushH:       handler.NewPushHandler(pushStore, pushSvc, logger.With("component", "push")),
		scheduler:   scheduler,
		pushService: pushSvc,
		logger:      logger,
	}
}

// Scheduler returns the reminder scheduler so main can manage its lifecycle.
func (s *Server) Scheduler() *reminder.Scheduler {
	return s.scheduler
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	// Checklist API routes
	mux.HandleFunc("GET /api/checklists", s.checklistH.List)
	mux.HandleFunc("POST /api/checklists", s.checklistH.Create)
	mux.HandleFunc("GET /api/checklists/{id}", s.checklistH.Get)
	mux.HandleFunc("PUT /api/checklists/{id}", s.checklistH.Update)
	mux.HandleFunc("DELETE /api/checklists/{id}", s.checklistH.Delete)
	mux.HandleFunc("POST /api/checklists/{id}/items", s.checklistH.AddItem)
	mux.HandleFunc("PUT /api/checklists/{id}/items/{item_id}", s.checklistH.UpdateItem)
	mux.HandleFunc("DELETE /api/checklists/{id}/items/{item_id}", s.checklistH.DeleteItem)
	mux.HandleFunc("POST /api/checklists/{id}/items/{item_id}/toggle", s.checklistH.ToggleItem)
	mux.HandleFunc("POST /api/checklists/{id}/reset", s.checklistH.Reset)

	// Schedule API routes
	mux.HandleFunc("GET /api/schedules", s.scheduleH.List)
	mux.HandleFunc("GET /api/checklists/{id}/schedule", s.scheduleH.Get)
	mux.HandleFunc("PUT /api/checklists/{id}/schedule", s.scheduleH.Upsert)
	mux.HandleFunc("DELETE /api/checklists/{id}/schedule", s.scheduleH.Delete)

	// Calendar event API routes
	mux.HandleFunc("GET /api/events", s.eventH.List)
	mux.HandleFunc("POST /api/events", s.eventH.Create)
	mux.HandleFunc("GET /api/events/suggest", s.eventH.Suggest)
	mux.HandleFunc("GET /api/events/{id}", s.eventH.Get)
	mux.HandleFunc("PUT /api/events/{id}", s.eventH.Update)
	mux.HandleFunc("DELETE /api/events/{id}", s.eventH.Delete)
	mux.HandleFunc("POST /api/events/{id}/items/{item_id}/toggle", s.eventH.ToggleItem)

	// Settings API routes
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PATCH /api/settings", s.settingsH.Update)

	// Reminder API routes
	mux.HandleFunc("GET /api/reminders/due", s.reminderH.Due)
	mux.HandleFunc("GET /api/reminders/upcoming", s.reminderH.Upcoming)

	// Geocoding
	mux.HandleFunc("GET /api/geocode", s.geocodeH.Search)

	// Push notification API routes
	mux.HandleFunc("GET /api/push/vapid-key", s.pushH.VAPIDKey)
	mux.HandleFunc("POST /api/push/subscribe", s.pushH.Subscribe)
	mux.HandleFunc("POST /api/push/unsubscribe", s.pushH.Unsubscribe)
	mux.HandleFunc("DELETE /api/push/subscriptions/{id}", s.pushH.Delete)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.Handle(s.hub, s.logger.With("component", "websocket")))

	mux.HandleFunc("GET /health", s.healthHandler)

	return middleware.RequestLogger(s.logger.With("component", "http"))(mux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
