package agenda

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aguus467/angulismotv/internal/feeds/manual"
	"github.com/Aguus467/angulismotv/internal/feeds/streamtp"
	"github.com/Aguus467/angulismotv/internal/pkg/b64"
	"github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// Two feeds list the same match: the hand-curated one with a named channel,
// the third-party one with an encoded link reported in UTC-5. Fetching both
// through their real adapters and grouping must yield a single entry carrying
// the longer title and both viewing options.
func TestMergeSameMatchFromTwoLiveFeeds(t *testing.T) {
	encodedLink := b64.Encode("https://example.com")

	mux := http.NewServeMux()
	mux.HandleFunc("/manual", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 3, "evento": "NHL: Rangers vs Bruins", "fecha": "2024-03-01 18:00", "canales": ["ESPN"]}
		]`))
	})
	mux.HandleFunc("/streamtp", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id": 7, "title": "Rangers vs Bruins", "time": "16:00", "link": "` + encodedLink + `"}
		]`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Feeds.Manual.URL = srv.URL + "/manual"
	cfg.Feeds.StreamTP.URL = srv.URL + "/streamtp"

	ctx := context.Background()
	manualEvents, err := manual.New(cfg).Fetch(ctx)
	if err != nil {
		t.Fatalf("manual fetch failed: %v", err)
	}
	streamEvents, err := streamtp.New(cfg).Fetch(ctx)
	if err != nil {
		t.Fatalf("streamtp fetch failed: %v", err)
	}

	groups := Group(append(manualEvents, streamEvents...))
	if len(groups) != 1 {
		t.Fatalf("expected one merged group, got %d: %+v", len(groups), groups)
	}

	g := groups[0]
	if g.Title != "NHL: Rangers vs Bruins" {
		t.Errorf("longer title must win, got %q", g.Title)
	}
	// The explicit 2024 date parses earlier than the UTC-3-shifted
	// today-based time of the other feed.
	if g.StartTime != "2024-03-01 18:00" {
		t.Errorf("earliest time must win, got %q", g.StartTime)
	}
	if len(g.Options) != 2 {
		t.Fatalf("both viewing options must survive: %+v", g.Options)
	}

	var named, encoded *models.Option
	for i := range g.Options {
		if g.Options[i].Encoded {
			encoded = &g.Options[i]
		} else {
			named = &g.Options[i]
		}
	}
	if named == nil || named.Name != "ESPN" {
		t.Errorf("named channel option missing: %+v", g.Options)
	}
	if encoded == nil {
		t.Fatalf("encoded link option missing: %+v", g.Options)
	}
	url, err := encoded.URL()
	if err != nil || url != "https://example.com" {
		t.Errorf("encoded option must decode at play time, got %q (%v)", url, err)
	}
	if len(g.Sources) != 2 {
		t.Errorf("both feed records must be kept as sources: %d", len(g.Sources))
	}
}
