// Package githubfeed adapts the site's own JSON feed published through a
// GitHub raw URL. The record shape matches la14hd; ids are stable across
// fetches, which keeps match-scoped deep links working.
package githubfeed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Aguus467/angulismotv/internal/feeds"
	"github.com/Aguus467/angulismotv/internal/feeds/la14hd"
	"github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

const sourceName = "github"

func init() {
	feeds.Register(sourceName, func(cfg *config.Config) feeds.Source {
		return New(cfg)
	})
}

type record struct {
	ID       feeds.FlexID `json:"id"`
	Title    string       `json:"title"`
	Date     string       `json:"date"`
	Time     string       `json:"time"`
	Category string       `json:"category"`
	Link     string       `json:"link"`
	Status   string       `json:"status"`
}

type Source struct {
	client *feeds.Client
	url    string
}

func New(cfg *config.Config) *Source {
	f := &cfg.Feeds
	timeout := f.Github.Timeout
	if timeout <= 0 {
		timeout = f.Timeout
	}
	return &Source{
		client: feeds.NewClient(timeout, f.UserAgent),
		url:    f.Github.URL,
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

	out := make([]models.Event, 0, len(records))
	for _, r := range records {
		teams := feeds.TeamsFromTitle(r.Title)
		if len(teams) == 0 {
			slog.Warn("Skipping record without title", "source", sourceName)
			continue
		}

		var opts []models.Option
		if r.Link != "" {
			name := r.Category
			if name == "" {
				name = "Canal"
			}
			opts = append(opts, models.Option{Name: name, Locator: r.Link, Encoded: true})
		}

		id := feeds.StableID(sourceName, r.ID)
		out = append(out, models.Event{
			ID:          id,
			StartTime:   la14hd.ComposeStartTime(r.Date, r.Time),
			Teams:       teams,
			Title:       r.Title,
			Description: r.Status,
			Competition: r.Category,
			Status:      models.Status{Name: r.Status},
			Slug:        id,
			Source:      sourceName,
			Options:     opts,
		})
	}
	return out, nil
}
