package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/prepcheck/prepcheck/internal/keyword"
	"github.com/prepcheck/prepcheck/internal/model"
	"github.com/prepcheck/prepcheck/internal/store"
	ws "github.com/prepcheck/prepcheck/internal/websocket"
)

type EventHandler struct {
	events     *store.EventStore
	checklists *store.ChecklistStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewEventHandler(es *store.EventStore, cs *store.ChecklistStore, hub *ws.Hub, logger *slog.Logger) *EventHandler {
	return &EventHandler{events: es, checklists: cs, hub: hub, logger: logger}
}

type eventRequest struct {
	Title                 string   `json:"title"`
	Date                  string   `json:"date"`
	Time                  *string  `json:"time"`
	SuggestedChecklistIDs []string `json:"suggested_checklist_ids"`
	Notes                 string   `json:"notes"`
}

func (req *eventRequest) validate() (time.Time, string) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return time.Time{}, "title is required"
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return time.Time{}, "date must be YYYY-MM-DD"
	}
	if req.Time != nil {
		if _, err := time.Parse("15:04", *req.Time); err != nil {
			return time.Time{}, "time must be HH:MM"
		}
	}
	return date, ""
}

func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		events []model.CalendarEvent
		err    error
	)
	if q := r.URL.Query().Get("date"); q != "" {
		date, perr := time.Parse("2006-01-02", q)
		if perr != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("date must be YYYY-MM-DD"))
			return
		}
		events, err = h.events.ListOn(date)
	} else {
		events, err = h.events.List()
	}
	if err != nil {
		h.logger.Error("list events", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list events"))
		return
	}
	if events == nil {
		events = []model.CalendarEvent{}
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}
	date, msg := req.validate()
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errorBody(msg))
		return
	}

	event, err := h.events.Create(req.Title, date, req.Time, req.SuggestedChecklistIDs, req.Notes)
	if err != nil {
		h.logger.Error("create event", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create event"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "created", event.ID, nil))
	writeJSON(w, http.StatusCreated, event)
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.events.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get event"))
		return
	}
	if event == nil {
		writeJSON(w, http.StatusNotFound, errorBody("event not found"))
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get event"))
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, errorBody("event not found"))
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}
	date, msg := req.validate()
	if msg != "" {
		writeJSON(w, http.StatusBadRequest, errorBody(msg))
		return
	}

	event, err := h.events.Update(id, req.Title, date, req.Time, req.SuggestedChecklistIDs, req.Notes)
	if err != nil {
		h.logger.Error("update event", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to update event"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "updated", id, nil))
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get event"))
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, errorBody("event not found"))
		return
	}

	if err := h.events.Delete(id); err != nil {
		h.logger.Error("delete event", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete event"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

// ToggleItem marks a packing item checked or unchecked for this event only;
// the underlying checklist is untouched.
func (h *EventHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	itemID := r.PathValue("item_id")

	existing, err := h.events.GetByID(id)
	if err != nil {
		h.logger.Error("get event", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get event"))
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, errorBody("event not found"))
		return
	}

	checked, err := h.events.ToggleCheckedItem(id, itemID)
	if err != nil {
		h.logger.Error("toggle event item", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to toggle item"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("event", "updated", id, nil))
	writeJSON(w, http.StatusOK, map[string]bool{"checked": checked})
}

type suggestResponse struct {
	ChecklistIDs  []string              `json:"checklist_ids"`
	TemplateItems []model.ChecklistItem `json:"template_items"`
	Keywords      []string              `json:"keywords"`
}

// Suggest matches an event title against existing checklists. When nothing
// matches it falls back to a built-in template for the detected category.
func (h *EventHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if strings.TrimSpace(title) == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("title is required"))
		return
	}

	checklists, err := h.checklists.List()
	if err != nil {
		h.logger.Error("list checklists", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list checklists"))
		return
	}

	resp := suggestResponse{
		ChecklistIDs:  keyword.MatchChecklists(title, checklists),
		TemplateItems: []model.ChecklistItem{},
		Keywords:      keyword.DisplayKeywords(),
	}
	if len(resp.ChecklistIDs) == 0 {
		resp.TemplateItems = keyword.TemplateItems(title)
	}
	if resp.ChecklistIDs == nil {
		resp.ChecklistIDs = []string{}
	}
	if resp.TemplateItems == nil {
		resp.TemplateItems = []model.ChecklistItem{}
	}
	writeJSON(w, http.StatusOK, resp)
}
