package health

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Aguus467/angulismotv/internal/agenda"
	"github.com/Aguus467/angulismotv/internal/pkg/b64"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
	"github.com/Aguus467/angulismotv/internal/resolver"
)

type memPrefs struct {
	data map[string]map[string]string
}

func (m *memPrefs) Get(_ context.Context, viewer string) (map[string]string, error) {
	if p, ok := m.data[viewer]; ok {
		return p, nil
	}
	return map[string]string{}, nil
}

func (m *memPrefs) Set(_ context.Context, viewer string, prefs map[string]string) error {
	m.data[viewer] = prefs
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := agenda.NewStore()
	events := []models.Event{
		{
			ID:        "streamtp-42",
			Title:     "Rangers vs Bruins",
			StartTime: "2024-01-01 18:30",
			Teams:     []models.Team{{Name: "Rangers"}, {Name: "Bruins"}},
			Source:    "streamtp",
			Options:   []models.Option{{Name: "ESPN", Locator: "https://embed.example.com/espn"}},
		},
	}
	store.ReplacePass(agenda.Group(events), events, map[string]error{}, false, time.Now())

	res := resolver.New(nil, store, resolver.Defaults{DisplayName: "AngulismoTV"})
	return NewServer("test", store, res, &memPrefs{data: map[string]map[string]string{}})
}

func TestHandleAgenda(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agenda", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Banner string                `json:"banner"`
		Events []models.GroupedEvent `json:"events"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if len(body.Events) != 1 {
		t.Errorf("events = %+v", body.Events)
	}
	if !strings.HasPrefix(body.Banner, "Agenda - ") {
		t.Errorf("banner = %q", body.Banner)
	}
}

func TestHandleResolveStatuses(t *testing.T) {
	srv := newTestServer(t).Handler()

	tests := []struct {
		name   string
		query  string
		status int
	}{
		{"no params", "", http.StatusBadRequest},
		{"bad payload", "e=%21%21%21", http.StatusBadRequest},
		{"unknown match", "m=missing&c=ESPN", http.StatusNotFound},
		{"match without channel redirects", "m=streamtp-42", http.StatusFound},
		{"resolved", "m=streamtp-42&c=espn", http.StatusOK},
		{"direct link", "e=" + b64.Encode("https://cdn.example.com/live.m3u8"), http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/resolve?"+tt.query, nil))
			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
		})
	}
}

func TestHandleResolveRedirectLocation(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).Handler().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/resolve?m=streamtp-42", nil))

	loc := rec.Header().Get("Location")
	if !strings.Contains(loc, "c=ESPN") || !strings.Contains(loc, "m=streamtp-42") {
		t.Errorf("redirect location = %q", loc)
	}
}

func TestHandlePrefsRoundTrip(t *testing.T) {
	srv := newTestServer(t).Handler()

	put := httptest.NewRequest(http.MethodPut, "/prefs/viewer1",
		strings.NewReader(`{"espn_opt":"1","theme":"dark"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, put)
	if rec.Code != http.StatusOK {
		t.Fatalf("put status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prefs/viewer1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}

	var body struct {
		Prefs map[string]string `json:"prefs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Prefs["theme"] != "dark" {
		t.Errorf("prefs = %+v", body.Prefs)
	}
}

func TestHandlePrefsWithoutStore(t *testing.T) {
	store := agenda.NewStore()
	srv := NewServer("test", store, resolver.New(nil, store, resolver.Defaults{}), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/prefs/viewer1", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Error == "" {
		t.Error("expected a JSON error body")
	}
}

func TestHandleHealthDegraded(t *testing.T) {
	store := agenda.NewStore()
	store.ReplacePass(nil, nil, map[string]error{"manual": context.DeadlineExceeded}, true, time.Now())
	srv := NewServer("test", store, resolver.New(nil, store, resolver.Defaults{}), nil)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body.Status != "degraded" {
		t.Errorf("status = %q", body.Status)
	}
}
