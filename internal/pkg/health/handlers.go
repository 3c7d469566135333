package health

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Aguus467/angulismotv/internal/agenda"
	"github.com/Aguus467/angulismotv/internal/resolver"
)

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong\n"))
}

// handleHealth reports liveness and the state of the last aggregation pass.
// Degraded means every feed failed and the served agenda may be stale.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	if s.store.AllFailed() {
		status = "degraded"
	}
	_, updatedAt := s.store.Groups()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      status,
		"updated_at":  formatTime(updatedAt),
		"feed_errors": s.store.FeedErrors(),
	})
}

// handleAgenda returns the deduplicated, sorted agenda along with the day
// banner and per-feed error details.
func (s *Server) handleAgenda(w http.ResponseWriter, r *http.Request) {
	groups, updatedAt := s.store.Groups()

	writeJSON(w, http.StatusOK, map[string]any{
		"banner": agenda.DayBanner(time.Now()),
		"events": groups,
		"meta": map[string]any{
			"count":       len(groups),
			"updated_at":  formatTime(updatedAt),
			"all_failed":  s.store.AllFailed(),
			"feed_errors": s.store.FeedErrors(),
		},
	})
}

// handleChannels returns the directory entries flagged for display.
func (s *Server) handleChannels(w http.ResponseWriter, _ *http.Request) {
	channels := s.store.Channels()
	writeJSON(w, http.StatusOK, map[string]any{
		"channels": channels,
		"meta":     map[string]any{"count": len(channels)},
	})
}

// handleEvents returns the raw per-feed events before grouping, mostly for
// debugging feed adapters.
func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	events := s.store.Events()
	writeJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"meta":   map[string]any{"count": len(events)},
	})
}

// handleResolve maps resolver outcomes onto HTTP: a redirect becomes a 302
// to the canonical query, decode and routing problems are the client's
// fault, a missing stream is 404.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	target, err := s.resolver.Resolve(r.Context(), r.URL.Query())
	if err != nil {
		var redirect *resolver.RedirectError
		switch {
		case errors.As(err, &redirect):
			http.Redirect(w, r, r.URL.Path+"?"+redirect.Query.Encode(), http.StatusFound)
		case errors.Is(err, resolver.ErrDecode), errors.Is(err, resolver.ErrNoRoute):
			writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, resolver.ErrNotFound):
			writeError(w, http.StatusNotFound, err)
		default:
			slog.Error("resolve failed", "error", err)
			writeError(w, http.StatusBadGateway, err)
		}
		return
	}
	writeJSON(w, http.StatusOK, target)
}

// handlePrefs serves GET and PUT on /prefs/{viewer}. Without a configured
// preference store the endpoint exists but reports itself unavailable.
func (s *Server) handlePrefs(w http.ResponseWriter, r *http.Request) {
	if s.prefs == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("preference store is not configured"))
		return
	}
	viewer := strings.TrimPrefix(r.URL.Path, "/prefs/")
	if viewer == "" || strings.Contains(viewer, "/") {
		writeError(w, http.StatusBadRequest, errors.New("viewer id required"))
		return
	}

	switch r.Method {
	case http.MethodGet:
		prefs, err := s.prefs.Get(r.Context(), viewer)
		if err != nil {
			slog.Error("prefs get failed", "viewer", viewer, "error", err)
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"viewer": viewer, "prefs": prefs})
	case http.MethodPut, http.MethodPost:
		var prefs map[string]string
		if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := s.prefs.Set(r.Context(), viewer, prefs); err != nil {
			slog.Error("prefs set failed", "viewer", viewer, "error", err)
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"viewer": viewer, "prefs": prefs})
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, http.StatusMethodNotAllowed, errors.New("method not allowed"))
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
