// Package health exposes the HTTP surface of the agenda service: liveness
// checks, the aggregated agenda, the channel directory, stream resolution
// and per-viewer preferences.
package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Aguus467/angulismotv/internal/agenda"
	"github.com/Aguus467/angulismotv/internal/resolver"
)

// PrefsStore persists per-viewer preferences across sessions. Nil disables
// the /prefs endpoints.
type PrefsStore interface {
	Get(ctx context.Context, viewer string) (map[string]string, error)
	Set(ctx context.Context, viewer string, prefs map[string]string) error
}

// Server holds everything the handlers need. Dependencies are injected at
// construction, never through package globals.
type Server struct {
	store    *agenda.Store
	resolver *resolver.Resolver
	prefs    PrefsStore
	service  string
}

func NewServer(service string, store *agenda.Store, res *resolver.Resolver, prefs PrefsStore) *Server {
	return &Server{store: store, resolver: res, prefs: prefs, service: service}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/ping", s.handlePing)
	mux.HandleFunc("/health", s.handleHealth)

	mux.HandleFunc("/agenda", s.handleAgenda)
	mux.HandleFunc("/channels", s.handleChannels)
	mux.HandleFunc("/events", s.handleEvents)
	mux.HandleFunc("/resolve", s.handleResolve)
	mux.HandleFunc("/prefs/", s.handlePrefs)

	return mux
}

// Run starts the server in the background and shuts it down when ctx ends.
func (s *Server) Run(ctx context.Context, addr string, readHeaderTimeout time.Duration) {
	if readHeaderTimeout <= 0 {
		slog.Error("read_header_timeout must be specified in config")
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	go func() {
		slog.Info("HTTP server listening", "service", s.service, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "service", s.service, "error", err)
		}
	}()
}

func AddrFor(port int) string {
	if port <= 0 {
		slog.Error("port must be greater than 0")
		os.Exit(1)
	}
	return fmt.Sprintf(":%d", port)
}
