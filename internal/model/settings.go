package model

// Location is a coordinate pair with an optional display address. It has
// no identity of its own.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// Settings is the singleton application settings record. It always exists;
// the store seeds defaults on first run.
type Settings struct {
	HomeLocation          *Location `json:"home_location"`
	ManualLocation        *Location `json:"manual_location"`
	UseManualLocation     bool      `json:"use_manual_location"`
	ReminderMinutesBefore int       `json:"reminder_minutes_before"`
}

// ActiveLocation resolves the location reminders should use: the manual
// override when enabled, otherwise the home location. Nil when neither is
// set.
func (s *Settings) ActiveLocation() *Location {
	if s.UseManualLocation {
		return s.ManualLocation
	}
	return s.HomeLocation
}
