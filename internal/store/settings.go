package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/prepcheck/prepcheck/internal/model"
)

// Settings are persisted as key/value rows and assembled into the typed
// singleton on read. Missing keys fall back to defaults, so the record
// logically always exists.
const (
	keyHomeLatitude          = "home_latitude"
	keyHomeLongitude         = "home_longitude"
	keyHomeAddress           = "home_address"
	keyManualLatitude        = "manual_latitude"
	keyManualLongitude       = "manual_longitude"
	keyManualAddress         = "manual_address"
	keyUseManualLocation     = "use_manual_location"
	keyReminderMinutesBefore = "reminder_minutes_before"
)

const defaultReminderMinutesBefore = 15

type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

func (s *SettingsStore) get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get setting %q: %w", key, err)
	}
	return value, true, nil
}

func (s *SettingsStore) set(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("set setting %q: %w", key, err)
	}
	return nil
}

func (s *SettingsStore) unset(keys ...string) error {
	for _, key := range keys {
		if _, err := s.db.Exec(`DELETE FROM settings WHERE key = ?`, key); err != nil {
			return fmt.Errorf("unset setting %q: %w", key, err)
		}
	}
	return nil
}

func (s *SettingsStore) location(latKey, lonKey, addrKey string) (*model.Location, error) {
	latStr, ok, err := s.get(latKey)
	if err != nil || !ok {
		return nil, err
	}
	lonStr, ok, err := s.get(lonKey)
	if err != nil || !ok {
		return nil, err
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", latKey, err)
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", lonKey, err)
	}

	addr, _, err := s.get(addrKey)
	if err != nil {
		return nil, err
	}
	return &model.Location{Latitude: lat, Longitude: lon, Address: addr}, nil
}

// Get assembles the settings singleton.
func (s *SettingsStore) Get() (*model.Settings, error) {
	home, err := s.location(keyHomeLatitude, keyHomeLongitude, keyHomeAddress)
	if err != nil {
		return nil, err
	}
	manual, err := s.location(keyManualLatitude, keyManualLongitude, keyManualAddress)
	if err != nil {
		return nil, err
	}

	useManual, _, err := s.get(keyUseManualLocation)
	if err != nil {
		return nil, err
	}

	minutes := defaultReminderMinutesBefore
	if v, ok, err := s.get(keyReminderMinutesBefore); err != nil {
		return nil, err
	} else if ok {
		if n, err := strconv.Atoi(v); err == nil {
			minutes = n
		}
	}

	return &model.Settings{
		HomeLocation:          home,
		ManualLocation:        manual,
		UseManualLocation:     useManual == "true",
		ReminderMinutesBefore: minutes,
	}, nil
}

// Patch describes a partial settings update. Nil fields are untouched.
// SetHomeLocation/SetManualLocation distinguish "clear" from "leave alone"
// for the nullable locations.
type Patch struct {
	HomeLocation          *model.Location
	SetHomeLocation       bool
	ManualLocation        *model.Location
	SetManualLocation     bool
	UseManualLocation     *bool
	ReminderMinutesBefore *int
}

// Update merges the patch into the stored settings.
func (s *SettingsStore) Update(p Patch) (*model.Settings, error) {
	if p.SetHomeLocation {
		if err := s.writeLocation(p.HomeLocation, keyHomeLatitude, keyHomeLongitude, keyHomeAddress); err != nil {
			return nil, err
		}
	}
	if p.SetManualLocation {
		if err := s.writeLocation(p.ManualLocation, keyManualLatitude, keyManualLongitude, keyManualAddress); err != nil {
			return nil, err
		}
	}
	if p.UseManualLocation != nil {
		if err := s.set(keyUseManualLocation, strconv.FormatBool(*p.UseManualLocation)); err != nil {
			return nil, err
		}
	}
	if p.ReminderMinutesBefore != nil {
		if err := s.set(keyReminderMinutesBefore, strconv.Itoa(*p.ReminderMinutesBefore)); err != nil {
			return nil, err
		}
	}
	return s.Get()
}

func (s *SettingsStore) writeLocation(loc *model.Location, latKey, lonKey, addrKey string) error {
	if loc == nil {
		return s.unset(latKey, lonKey, addrKey)
	}
	if err := s.set(latKey, strconv.FormatFloat(loc.Latitude, 'f', -1, 64)); err != nil {
		return err
	}
	if err := s.set(lonKey, strconv.FormatFloat(loc.Longitude, 'f', -1, 64)); err != nil {
		return err
	}
	return s.set(addrKey, loc.Address)
}
