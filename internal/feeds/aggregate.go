package feeds

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// PassResult is the outcome of one aggregation pass over all sources.
type PassResult struct {
	Events    []models.Event
	Errors    map[string]error
	Attempted int
	FetchedAt time.Time
}

// AllFailed reports whether every source of the pass failed. Only then is the
// failure surfaced to callers; a partial pass is served as-is.
func (r PassResult) AllFailed() bool {
	return r.Attempted > 0 && len(r.Errors) == r.Attempted
}

// Aggregate fetches all sources concurrently and collects their adapted
// events. Each source is fault-isolated: a failing fetch contributes zero
// events and an entry in Errors, and never cancels the other fetches.
func Aggregate(ctx context.Context, sources []Source) PassResult {
	result := PassResult{
		Errors:    make(map[string]error),
		Attempted: len(sources),
		FetchedAt: time.Now(),
	}
	if len(sources) == 0 {
		return result
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			events, err := src.Fetch(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				slog.Warn("Feed fetch failed", "source", src.Name(), "error", err)
				result.Errors[src.Name()] = err
				return
			}
			slog.Debug("Feed fetched", "source", src.Name(), "events", len(events))
			result.Events = append(result.Events, events...)
		}(src)
	}
	wg.Wait()
	return result
}

// FindEventByID runs a fresh aggregation pass and scans it for the event with
// the given id. This is the resolver's match-scoped lookup when no warm
// agenda snapshot is available.
func FindEventByID(ctx context.Context, sources []Source, id string) (models.Event, bool, error) {
	pass := Aggregate(ctx, sources)
	if pass.AllFailed() {
		for _, err := range pass.Errors {
			return models.Event{}, false, err
		}
	}
	for _, ev := range pass.Events {
		if ev.ID == id {
			return ev, true, nil
		}
	}
	return models.Event{}, false, nil
}
