package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := NewClient("test-key")
	c.baseURL = srv.URL
	return c
}

func TestSearch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Lisbon" {
			t.Errorf("q = %q, want %q", got, "Lisbon")
		}
		if got := r.URL.Query().Get("limit"); got != "5" {
			t.Errorf("limit = %q, want %q", got, "5")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"name": "Lisbon", "country": "PT", "lat": 38.72, "lon": -9.14},
			{"name": "Lisbon", "country": "US", "state": "Maine", "lat": 44.03, "lon": -70.1}
		]`))
	})

	places, err := c.Search(context.Background(), "Lisbon")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(places) != 2 {
		t.Fatalf("got %d places, want 2", len(places))
	}
	if places[0].Country != "PT" {
		t.Errorf("first country = %q, want %q", places[0].Country, "PT")
	}
	if places[1].State != "Maine" {
		t.Errorf("second state = %q, want %q", places[1].State, "Maine")
	}
}

func TestSearchQueryEscaping(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "San José, CR" {
			t.Errorf("q = %q, want %q", got, "San José, CR")
		}
		w.Write([]byte(`[]`))
	})

	places, err := c.Search(context.Background(), "San José, CR")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(places) != 0 {
		t.Fatalf("got %d places, want 0", len(places))
	}
}

func TestSearchAPIError(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := c.Search(context.Background(), "anywhere"); err == nil {
		t.Fatal("expected error for 401 response, got nil")
	}
}
