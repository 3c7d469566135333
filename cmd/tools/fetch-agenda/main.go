// Command fetch-agenda runs a single aggregation pass and prints the
// deduplicated agenda, for checking feed adapters without a server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Aguus467/angulismotv/internal/agenda"
	"github.com/Aguus467/angulismotv/internal/feeds"
	pkgconfig "github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/logging"
	"github.com/Aguus467/angulismotv/internal/pkg/models"

	_ "github.com/Aguus467/angulismotv/internal/feeds/all"
)

func main() {
	configPath := flag.String("config", "configs/local.yaml", "Path to config file")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall fetch timeout")
	asJSON := flag.Bool("json", false, "Print full JSON instead of a summary")
	flag.Parse()

	cfg, err := pkgconfig.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupLogger(&cfg.Logging, "fetch-agenda")

	sources, err := feeds.Enabled(cfg)
	if err != nil {
		slog.Error("Failed to build sources", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	result := feeds.Aggregate(ctx, sources)
	groups := agenda.Group(result.Events)

	for name, ferr := range result.Errors {
		fmt.Fprintf(os.Stderr, "feed %s failed: %v\n", name, ferr)
	}
	if result.AllFailed() {
		fmt.Fprintln(os.Stderr, "every feed failed")
		os.Exit(1)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(groups); err != nil {
			slog.Error("Failed to encode agenda", "error", err)
			os.Exit(1)
		}
		return
	}

	fmt.Println(agenda.DayBanner(time.Now()))
	for _, g := range groups {
		fmt.Printf("%s  %-50s  %d option(s)  [%s]\n",
			models.ClockTime(g.StartTime), g.Title, len(g.Options), sourceNames(g))
	}
	fmt.Printf("\n%d event(s) from %d raw record(s)\n", len(groups), len(result.Events))
}

func sourceNames(g models.GroupedEvent) string {
	out := ""
	for i, src := range g.Sources {
		if i > 0 {
			out += ","
		}
		out += src.Source
	}
	return out
}
