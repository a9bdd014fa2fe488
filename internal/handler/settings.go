package handler

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prepcheck/prepcheck/internal/model"
	"github.com/prepcheck/prepcheck/internal/store"
	ws "github.com/prepcheck/prepcheck/internal/websocket"
)

type SettingsHandler struct {
	settings *store.SettingsStore
	hub      *ws.Hub
	logger   *slog.Logger
}

func NewSettingsHandler(ss *store.SettingsStore, hub *ws.Hub, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: ss, hub: hub, logger: logger}
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.Get()
	if err != nil {
		h.logger.Error("get settings", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to get settings"))
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// settingsPatch distinguishes absent fields from explicit nulls: an absent
// location is left alone, a null clears it.
type settingsPatch struct {
	HomeLocation          json.RawMessage `json:"home_location"`
	ManualLocation        json.RawMessage `json:"manual_location"`
	UseManualLocation     *bool           `json:"use_manual_location"`
	ReminderMinutesBefore *int            `json:"reminder_minutes_before"`
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req settingsPatch
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON"))
		return
	}

	patch := store.Patch{
		UseManualLocation:     req.UseManualLocation,
		ReminderMinutesBefore: req.ReminderMinutesBefore,
	}

	var ok bool
	if patch.HomeLocation, patch.SetHomeLocation, ok = parseLocation(req.HomeLocation); !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid home_location"))
		return
	}
	if patch.ManualLocation, patch.SetManualLocation, ok = parseLocation(req.ManualLocation); !ok {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid manual_location"))
		return
	}

	if patch.ReminderMinutesBefore != nil && *patch.ReminderMinutesBefore < 0 {
		writeJSON(w, http.StatusBadRequest, errorBody("reminder_minutes_before must not be negative"))
		return
	}

	settings, err := h.settings.Update(patch)
	if err != nil {
		h.logger.Error("update settings", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody("failed to update settings"))
		return
	}

	h.hub.Broadcast(ws.NewMessage("settings", "updated", "", nil))
	writeJSON(w, http.StatusOK, settings)
}

func parseLocation(raw json.RawMessage) (loc *model.Location, set, ok bool) {
	if raw == nil {
		return nil, false, true
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, true, true
	}
	var l model.Location
	if err := json.Unmarshal(raw, &l); err != nil {
		return nil, false, false
	}
	return &l, true, true
}
