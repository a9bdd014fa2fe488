package weather

import (
	"fmt"
	"strings"
)

// Suggestion is a single packing hint derived from current conditions.
type Suggestion struct {
	Item   string `json:"item"`
	Reason string `json:"reason"`
}

// Suggestions derives packing hints from the condition. Rules are checked
// independently and accumulate; the cold-weather rule skips gloves and
// coats already suggested by the snow rule. Nil conditions yield nothing.
func Suggestions(cond *Condition) []Suggestion {
	if cond == nil {
		return nil
	}

	var out []Suggestion
	temp := cond.Temp
	condition := strings.ToLower(cond.Main)

	if strings.Contains(condition, "rain") || strings.Contains(condition, "drizzle") || strings.Contains(condition, "thunderstorm") {
		out = append(out,
			Suggestion{Item: "☔ Umbrella", Reason: "Rainy weather"},
			Suggestion{Item: "🧥 Rain jacket", Reason: "Stay dry"},
		)
	}

	if strings.Contains(condition, "snow") {
		out = append(out,
			Suggestion{Item: "🧤 Gloves", Reason: "Snowy weather"},
			Suggestion{Item: "🧣 Scarf", Reason: "Keep warm"},
			Suggestion{Item: "🧥 Winter coat", Reason: "Cold weather"},
		)
	}

	if temp < 10 {
		cold := fmt.Sprintf("Cold: %.0f°C", temp)
		if !hasItem(out, "Gloves") {
			out = append(out, Suggestion{Item: "🧤 Gloves", Reason: cold})
		}
		if !hasItem(out, "coat") {
			out = append(out, Suggestion{Item: "🧥 Warm jacket", Reason: cold})
		}
		out = append(out, Suggestion{Item: "🧢 Warm cap", Reason: cold})
	}

	if temp > 25 {
		hot := fmt.Sprintf("Hot: %.0f°C", temp)
		out = append(out,
			Suggestion{Item: "😎 Sunglasses", Reason: hot},
			Suggestion{Item: "💧 Extra water", Reason: "Stay hydrated"},
			Suggestion{Item: "🧴 Sunscreen", Reason: "Protect skin"},
		)
	}

	if strings.Contains(condition, "wind") {
		out = append(out, Suggestion{Item: "🧢 Cap", Reason: "Windy weather"})
	}

	if strings.Contains(condition, "cloud") && !strings.Contains(condition, "rain") && temp < 20 {
		out = append(out, Suggestion{Item: "🧥 Light jacket", Reason: "Cloudy & cool"})
	}

	return out
}

func hasItem(suggestions []Suggestion, substr string) bool {
	for _, s := range suggestions {
		if strings.Contains(s.Item, substr) {
			return true
		}
	}
	return false
}

// Emoji maps a condition to a display glyph. The first matching keyword
// wins; unknown or nil conditions get the thermometer.
func Emoji(cond *Condition) string {
	if cond == nil {
		return "🌡️"
	}

	condition := strings.ToLower(cond.Main)
	switch {
	case strings.Contains(condition, "clear"):
		return "☀️"
	case strings.Contains(condition, "cloud"):
		return "☁️"
	case strings.Contains(condition, "rain"), strings.Contains(condition, "drizzle"):
		return "🌧️"
	case strings.Contains(condition, "thunderstorm"):
		return "⛈️"
	case strings.Contains(condition, "snow"):
		return "❄️"
	case strings.Contains(condition, "mist"), strings.Contains(condition, "fog"):
		return "🌫️"
	}
	return "🌡️"
}
