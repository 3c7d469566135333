// Package streamtp adapts the StreamTP third-party feed. Records carry only a
// clock time and report it in UTC-5; start times are completed with today's
// date and shifted to the site's UTC-3 target offset.
package streamtp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Aguus467/angulismotv/internal/feeds"
	"github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

const sourceName = "streamtp"

func init() {
	feeds.Register(sourceName, func(cfg *config.Config) feeds.Source {
		return New(cfg)
	})
}

type record struct {
	ID       feeds.FlexID `json:"id"`
	Title    string       `json:"title"`
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
	timeout := f.StreamTP.Timeout
	if timeout <= 0 {
		timeout = f.Timeout
	}
	return &Source{
		client: feeds.NewClient(timeout, f.UserAgent),
		url:    f.StreamTP.URL,
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

		startTime := ""
		if r.Time != "" {
			startTime = models.ShiftUTC5ToUTC3(models.ComposeToday(r.Time))
		}

		var opts []models.Option
		if r.Link != "" {
			opts = append(opts, models.Option{
				Name:    optionName(r.Category),
				Locator: r.Link,
				Encoded: true,
			})
		}

		id := feeds.StableID(sourceName, r.ID)
		out = append(out, models.Event{
			ID:          id,
			StartTime:   startTime,
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

func optionName(category string) string {
	if category == "" {
		return "Canal"
	}
	return category
}
