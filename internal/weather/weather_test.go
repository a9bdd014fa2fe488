package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func TestClientCurrent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("appid"); got != "test-key" {
			t.Errorf("appid = %q, want %q", got, "test-key")
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units = %q, want %q", got, "metric")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"weather": [{"main": "Rain", "description": "light rain", "icon": "10d"}],
			"main": {"temp": 17.6, "feels_like": 16.2}
		}`))
	})

	cond, err := c.Current(context.Background(), 51.5, -0.12)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cond.Main != "Rain" {
		t.Errorf("main = %q, want %q", cond.Main, "Rain")
	}
	if cond.Description != "light rain" {
		t.Errorf("description = %q, want %q", cond.Description, "light rain")
	}
	if cond.Temp != 18 {
		t.Errorf("temp = %v, want 18 (rounded)", cond.Temp)
	}
	if cond.FeelsLike != 16 {
		t.Errorf("feels_like = %v, want 16 (rounded)", cond.FeelsLike)
	}
	if cond.Icon != "10d" {
		t.Errorf("icon = %q, want %q", cond.Icon, "10d")
	}
}

func TestClientCurrentAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := c.Current(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for 401 response, got nil")
	}
}

func TestClientCurrentEmptyConditions(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"weather": [], "main": {"temp": 10}}`))
	})

	if _, err := c.Current(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for empty weather array, got nil")
	}
}

func TestStubDeterministic(t *testing.T) {
	fixed := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	stub := &Stub{Now: func() time.Time { return fixed }}

	first, err := stub.Current(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	second, err := stub.Current(context.Background(), 0, 0)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if *first != *second {
		t.Fatalf("same minute gave %v then %v", first, second)
	}
}

func TestStubRotates(t *testing.T) {
	base := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	seen := make(map[string]struct{})
	for i := 0; i < len(stubConditions); i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		stub := &Stub{Now: func() time.Time { return at }}
		cond, err := stub.Current(context.Background(), 0, 0)
		if err != nil {
			t.Fatalf("current: %v", err)
		}
		seen[cond.Main] = struct{}{}
	}
	if len(seen) != len(stubConditions) {
		t.Fatalf("saw %d distinct conditions over %d minutes, want %d", len(seen), len(stubConditions), len(stubConditions))
	}
}
