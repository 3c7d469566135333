// Package la14hd adapts the LA14HD third-party feed: same record family as
// streamtp but with an optional explicit date and no timezone correction.
package la14hd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Aguus467/angulismotv/internal/feeds"
	"github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

const sourceName = "la14hd"

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
	timeout := f.LA14HD.Timeout
	if timeout <= 0 {
		timeout = f.Timeout
	}
	return &Source{
		client: feeds.NewClient(timeout, f.UserAgent),
		url:    f.LA14HD.URL,
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

func adapt(records []record) []models.Event {
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
			StartTime:   ComposeStartTime(r.Date, r.Time),
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
	return out
}

// ComposeStartTime combines the feed's date and time fields: a well-formed
// date (three dash-separated parts) is used verbatim, anything else falls
// back to today's date; with no time at all the start time stays empty.
func ComposeStartTime(date, clock string) string {
	if clock == "" {
		return ""
	}
	if len(strings.Split(date, "-")) == 3 {
		return date + " " + clock
	}
	return models.ComposeToday(clock)
}
