// Package manual adapts the hand-curated events feed: records with Spanish
// field names ({evento, fecha, canales, ...}) and the most varied channel
// shapes of all sources.
package manual

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Aguus467/angulismotv/internal/feeds"
	"github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

const sourceName = "manual"

func init() {
	feeds.Register(sourceName, func(cfg *config.Config) feeds.Source {
		return New(cfg)
	})
}

type Source struct {
	client *feeds.Client
	url    string
}

func New(cfg *config.Config) *Source {
	f := &cfg.Feeds
	timeout := f.Manual.Timeout
	if timeout <= 0 {
		timeout = f.Timeout
	}
	return &Source{
		client: feeds.NewClient(timeout, f.UserAgent),
		url:    f.Manual.URL,
	}
}

func (s *Source) Name() string { return sourceName }

func (s *Source) Fetch(ctx context.Context) ([]models.Event, error) {
	raw, err := s.client.GetRaw(ctx, s.url)
	if err != nil {
		return nil, err
	}
	var records []record
	if err := feeds.UnwrapEvents(raw, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", sourceName, err)
	}
	return adapt(records), nil
}

// adapt converts the raw records to canonical events, skipping malformed
// entries instead of failing the whole feed.
func adapt(records []record) []models.Event {
	out := make([]models.Event, 0, len(records))
	for _, r := range records {
		teams := feeds.TeamsFromTitle(r.Evento)
		if len(teams) == 0 {
			slog.Warn("Skipping record without title", "source", sourceName, "id", string(r.ID))
			continue
		}

		id := feeds.StableID(sourceName, r.ID)
		out = append(out, models.Event{
			ID:          id,
			StartTime:   r.Fecha,
			Teams:       teams,
			Title:       r.Evento,
			Description: r.Descripcion,
			Competition: r.Competencia,
			Status:      models.Status{Name: r.Estado},
			Slug:        id,
			Source:      sourceName,
			Options:     adaptCanales(r),
		})
	}
	return out
}

func adaptCanales(r record) []models.Option {
	canales := r.Canales
	if len(canales) == 0 && r.Canal != nil {
		canales = []canalRef{*r.Canal}
	}

	var opts []models.Option
	for _, c := range canales {
		switch c.Kind {
		case canalBare:
			opts = append(opts, models.Option{Name: c.Name})
		case canalInline:
			opts = append(opts, models.Option{Name: c.Name, Locator: c.Iframe, Logo: c.Logo})
		case canalLinked:
			opts = append(opts, models.Option{Name: c.Name, Locator: c.Link, Encoded: true, Logo: c.Logo})
		case canalGroup:
			for _, sub := range c.Options {
				opts = append(opts, models.Option{
					Name:    c.Name + " - " + sub.Name,
					Locator: sub.Iframe,
					Logo:    c.Logo,
				})
			}
		default:
			slog.Debug("Skipping unrecognized canal entry", "source", sourceName, "event", r.Evento)
		}
	}
	return opts
}
