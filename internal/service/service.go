// Package service wires the aggregation loop together: enabled feed
// sources, the channel directory, the in-memory agenda store, optional
// persistence and notification, and the HTTP server.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Aguus467/angulismotv/internal/agenda"
	"github.com/Aguus467/angulismotv/internal/feeds"
	"github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/health"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
	"github.com/Aguus467/angulismotv/internal/pkg/notify"
	"github.com/Aguus467/angulismotv/internal/pkg/storage"
	"github.com/Aguus467/angulismotv/internal/resolver"
)

const defaultInterval = 60 * time.Second

// Service owns the long-running pieces of the agenda aggregator.
type Service struct {
	cfg       *config.Config
	sources   []feeds.Source
	store     *agenda.Store
	directory *feeds.Directory

	postgres *storage.PostgresAgendaStorage
	notifier *notify.TelegramNotifier
	server   *health.Server
}

// New builds the service from config. Postgres, Redis and Telegram are all
// optional: an empty config section just leaves that piece out.
func New(cfg *config.Config) (*Service, error) {
	sources, err := feeds.Enabled(cfg)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no feed sources enabled")
	}

	s := &Service{
		cfg:     cfg,
		sources: sources,
		store:   agenda.NewStore(),
	}

	if cfg.Feeds.ChannelsURL != "" {
		client := feeds.NewClient(cfg.Feeds.Timeout, cfg.Feeds.UserAgent)
		s.directory = feeds.NewDirectory(client, cfg.Feeds.ChannelsURL)
	}

	if cfg.Storage.Postgres.DSN != "" {
		pg, err := storage.NewPostgresAgendaStorage(&cfg.Storage.Postgres)
		if err != nil {
			slog.Warn("Postgres storage disabled", "error", err)
		} else {
			s.postgres = pg
		}
	}

	var prefs health.PrefsStore
	if cfg.Storage.Redis.Addr != "" {
		rp, err := storage.NewRedisPrefsStore(&cfg.Storage.Redis)
		if err != nil {
			slog.Warn("Redis prefs store disabled", "error", err)
		} else {
			prefs = rp
		}
	}

	if cfg.Notifier.TelegramBotToken != "" && cfg.Notifier.TelegramChatID != 0 {
		s.notifier = notify.NewTelegramNotifier(
			cfg.Notifier.TelegramBotToken,
			cfg.Notifier.TelegramChatID,
			cfg.Notifier.MinSendInterval,
		)
	}

	res := resolver.New(s.channelLookup(), s.store, resolver.Defaults{
		DisplayName: cfg.Player.DefaultName,
		LogoURL:     cfg.Player.DefaultLogo,
	})
	s.server = health.NewServer("agenda-service", s.store, res, prefs)

	return s, nil
}

// channelLookup prefers the cached directory snapshot over a remote fetch.
func (s *Service) channelLookup() resolver.ChannelDirectory {
	if s.directory == nil {
		return nil
	}
	return &cachedDirectory{store: s.store, directory: s.directory}
}

// Run serves HTTP and polls the feeds until ctx ends. The first pass runs
// immediately so the service never starts with an empty agenda.
func (s *Service) Run(ctx context.Context) error {
	addr := health.AddrFor(s.cfg.Server.Port)
	s.server.Run(ctx, addr, s.cfg.Server.ReadHeaderTimeout)

	interval := s.cfg.Feeds.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	s.refreshChannels(ctx)
	s.pass(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.close()
			return ctx.Err()
		case <-ticker.C:
			s.refreshChannels(ctx)
			s.pass(ctx)
		}
	}
}

// pass runs one aggregation cycle: fetch, group, publish, persist, notify.
func (s *Service) pass(ctx context.Context) {
	result := feeds.Aggregate(ctx, s.sources)
	groups := agenda.Group(result.Events)

	s.store.ReplacePass(groups, result.Events, result.Errors, result.AllFailed(), result.FetchedAt)
	slog.Info("Aggregation pass completed",
		"sources", result.Attempted,
		"failed", len(result.Errors),
		"events", len(result.Events),
		"groups", len(groups),
	)

	if s.postgres != nil {
		if err := s.postgres.StorePass(ctx, groups, result.FetchedAt); err != nil {
			slog.Error("Failed to persist agenda pass", "error", err)
		}
		if err := s.postgres.CleanStartedEvents(ctx); err != nil {
			slog.Error("Failed to clean started events", "error", err)
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyNewEvents(groups)
	}
}

func (s *Service) refreshChannels(ctx context.Context) {
	if s.directory == nil {
		return
	}
	channels, err := s.directory.Fetch(ctx)
	if err != nil {
		slog.Warn("Channel directory fetch failed", "error", err)
		return
	}
	s.store.SetChannels(feeds.Visible(channels))
}

func (s *Service) close() {
	if s.postgres != nil {
		_ = s.postgres.Close()
	}
}

// cachedDirectory answers channel lookups from the last directory snapshot
// and falls back to a live fetch when the snapshot is empty.
type cachedDirectory struct {
	store     *agenda.Store
	directory *feeds.Directory
}

func (d *cachedDirectory) Lookup(ctx context.Context, name string) (models.Channel, bool, error) {
	for _, ch := range d.store.Channels() {
		if strings.EqualFold(ch.Name, name) {
			return ch, true, nil
		}
	}
	return d.directory.Lookup(ctx, name)
}
