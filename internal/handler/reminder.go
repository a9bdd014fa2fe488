package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prepcheck/prepcheck/internal/reminder"
)

type ReminderHandler struct {
	engine *reminder.Engine
	logger *slog.Logger
}

func NewReminderHandler(engine *reminder.Engine, logger *slog.Logger) *ReminderHandler {
	return &ReminderHandler{engine: engine, logger: logger}
}

// Due answers what would fire right now. The scheduler runs the same check
// every minute; this endpoint lets clients poll on demand.
func (h *ReminderHandler) Due(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.engine.Check(r.Context(), time.Now())
	if err != nil {
		h.logger.Error("check reminders", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to check reminders"))
		return
	}
	if reminders == nil {
		reminders = []reminder.Reminder{}
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (h *ReminderHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	previews, err := h.engine.Upcoming(r.Context())
	if err != nil {
		h.logger.Error("upcoming reminders", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list upcoming reminders"))
		return
	}
	if previews == nil {
		previews = []reminder.Preview{}
	}
	writeJSON(w, http.StatusOK, previews)
}
