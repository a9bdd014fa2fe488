package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/prepcheck/prepcheck/internal/model"
	"github.com/prepcheck/prepcheck/internal/store"
	ws "github.com/prepcheck/prepcheck/internal/websocket"
)

type ChecklistHandler struct {
	checklists *store.ChecklistStore
	hub        *ws.Hub
	logger     *slog.Logger
}

func NewChecklistHandler(cs *store.ChecklistStore, hub *ws.Hub, logger *slog.Logger) *ChecklistHandler {
	return &ChecklistHandler{checklists: cs, hub: hub, logger: logger}
}

type checklistRequest struct {
	Name  string   `json:"name"`
	Icon  string   `json:"icon"`
	Color string   `json:"color"`
	Items []string `json:"items"`
}

func (h *ChecklistHandler) List(w http.ResponseWriter, r *http.Request) {
	checklists, err := h.checklists.List()
	if err != nil {
		h.logger.Error("list checklists", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to list checklists"))
		return
	}
	if checklists == nil {
		checklists = []model.Checklist{}
	}
	writeJSON(w, http.StatusOK, checklists)
}

func (h *ChecklistHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req checklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}

	checklist, err := h.checklists.Create(req.Name, req.Icon, req.Color, req.Items)
	if err != nil {
		h.logger.Error("create checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to create checklist"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("checklist", "created", checklist.ID, nil))
	writeJSON(w, http.StatusCreated, checklist)
}

func (h *ChecklistHandler) Get(w http.ResponseWriter, r *http.Request) {
	checklist, err := h.checklists.GetByID(r.PathValue("id"))
	if err != nil {
		h.logger.Error("get checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get checklist"))
		return
	}
	if checklist == nil {
		writeJSON(w, http.StatusNotFound, errorBody("checklist not found"))
		return
	}
	writeJSON(w, http.StatusOK, checklist)
}

func (h *ChecklistHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.checklists.GetByID(id)
	if err != nil {
		h.logger.Error("get checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get checklist"))
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, errorBody("checklist not found"))
		return
	}

	var req checklistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name is required"))
		return
	}

	checklist, err := h.checklists.Update(id, req.Name, req.Icon, req.Color)
	if err != nil {
		h.logger.Error("update checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to update checklist"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("checklist", "updated", id, nil))
	writeJSON(w, http.StatusOK, checklist)
}

// Delete removes a checklist; its schedule is removed with it.
func (h *ChecklistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, err := h.checklists.GetByID(id)
	if err != nil {
		h.logger.Error("get checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get checklist"))
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, errorBody("checklist not found"))
		return
	}

	if err := h.checklists.Delete(id); err != nil {
		h.logger.Error("delete checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete checklist"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("checklist", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

type itemRequest struct {
	Text string `json:"text"`
}

func (h *ChecklistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}

	existing, err := h.checklists.GetByID(id)
	if err != nil {
		h.logger.Error("get checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get checklist"))
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, errorBody("checklist not found"))
		return
	}

	item, err := h.checklists.AddItem(id, req.Text)
	if err != nil {
		h.logger.Error("add checklist item", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to add item"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("checklist", "updated", id, nil))
	writeJSON(w, http.StatusCreated, item)
}

func (h *ChecklistHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	itemID := r.PathValue("item_id")

	var req itemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}
	req.Text = strings.TrimSpace(req.Text)
	if req.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("text is required"))
		return
	}

	if err := h.checklists.UpdateItem(id, itemID, req.Text); err != nil {
		h.logger.Error("update checklist item", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to update item"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("checklist", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChecklistHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	itemID := r.PathValue("item_id")

	if err := h.checklists.DeleteItem(id, itemID); err != nil {
		h.logger.Error("delete checklist item", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to delete item"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("checklist", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func (h *ChecklistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	itemID := r.PathValue("item_id")

	checked, err := h.checklists.ToggleItem(id, itemID)
	if err != nil {
		h.logger.Error("toggle checklist item", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to toggle item"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("checklist", "updated", id, nil))
	writeJSON(w, http.StatusOK, map[string]bool{"checked": checked})
}

// Reset unchecks every item so the list is ready for the next outing.
func (h *ChecklistHandler) Reset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.checklists.ResetItems(id); err != nil {
		h.logger.Error("reset checklist", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to reset checklist"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("checklist", "updated", id, nil))
	w.WriteHeader(http.StatusNoContent)
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
