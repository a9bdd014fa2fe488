package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prepcheck/prepcheck/internal/model"
	"github.com/prepcheck/prepcheck/internal/store"
	ws "github.com/prepcheck/prepcheck/internal/websocket"
)

type ScheduleHandler struct {
	schedules  *store.ScheduleStore
	checklists *store.ChecklistStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewScheduleHandler(ss *store.ScheduleStore, cs *store.ChecklistStore, hub *ws.Hub, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{schedules: ss, checklists: cs, hub: hub, logger: logger}
}

func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	schedules, err := h.schedules.List()
	if err != nil {
		h.logger.Error("list schedules", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list schedules"))
		return
	}
	if schedules == nil {
		schedules = []model.Schedule{}
	}
	writeJSON(w, http.StatusOK, schedules)
}

func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.schedules.GetByChecklist(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get schedule"))
		return
	}
	if schedule == nil {
		writeJSON(w, http.StatusNotFound, errorBody("schedule not found"))
		return
	}
	writeJSON(w, http.StatusOK, schedule)
}

type scheduleRequest struct {
	Days    []string `json:"days"`
	Time    string   `json:"time"`
	Enabled bool     `json:"enabled"`
}

// Upsert creates or replaces the schedule for a checklist. A checklist
// carries at most one schedule.
func (h *ScheduleHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	checklist, err := h.checklists.GetByID(id)
	if err != nil {
		h.logger.Error("get checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get checklist"))
		return
	}
	if checklist == nil {
		writeJSON(w, http.StatusNotFound, errorBody("checklist not found"))
		return
	}

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}

	if len(req.Days) == 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("at least one day is required"))
		return
	}
	for _, day := range req.Days {
		if !validWeekday(day) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid day: "+day))
			return
		}
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("time must be HH:MM"))
		return
	}

	schedule, err := h.schedules.Upsert(id, req.Days, req.Time, req.Enabled)
	if err != nil {
		h.logger.Error("upsert schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to save schedule"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("schedule", "updated", id, nil))
	writeJSON(w, http.StatusOK, schedule)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.schedules.Delete(id); err != nil {
		h.logger.Error("delete schedule", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete schedule"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("schedule", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func validWeekday(day string) bool {
	for _, tag := range model.WeekdayTags {
		if day == tag {
			return true
		}
	}
	return false
}
