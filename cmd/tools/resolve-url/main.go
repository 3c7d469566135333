// Command resolve-url resolves a player-page query string against a live
// agenda and prints the stream target, e.g.:
//
//	resolve-url -config configs/local.yaml "m=streamtp-42&c=ESPN&o=1"
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	json "github.com/goccy/go-json"

	"github.com/Aguus467/angulismotv/internal/feeds"
	pkgconfig "github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/logging"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
	"github.com/Aguus467/angulismotv/internal/resolver"

	_ "github.com/Aguus467/angulismotv/internal/feeds/all"
)

func main() {
	configPath := flag.String("config", "configs/local.yaml", "Path to config file")
	timeout := flag.Duration("timeout", 60*time.Second, "Overall resolve timeout")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: resolve-url [flags] <query-string>")
		os.Exit(2)
	}

	cfg, err := pkgconfig.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupLogger(&cfg.Logging, "resolve-url")

	query, err := url.ParseQuery(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "bad query string: %v\n", err)
		os.Exit(2)
	}

	sources, err := feeds.Enabled(cfg)
	if err != nil {
		slog.Error("Failed to build sources", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	var directory resolver.ChannelDirectory
	if cfg.Feeds.ChannelsURL != "" {
		client := feeds.NewClient(cfg.Feeds.Timeout, cfg.Feeds.UserAgent)
		directory = feeds.NewDirectory(client, cfg.Feeds.ChannelsURL)
	}

	res := resolver.New(directory, liveFinder{sources: sources}, resolver.Defaults{
		DisplayName: cfg.Player.DefaultName,
		LogoURL:     cfg.Player.DefaultLogo,
	})

	target, err := res.Resolve(ctx, query)
	if err != nil {
		var redirect *resolver.RedirectError
		if errors.As(err, &redirect) {
			fmt.Printf("redirect: ?%s\n", redirect.Query.Encode())
			return
		}
		fmt.Fprintf(os.Stderr, "resolve failed: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(target); err != nil {
		slog.Error("Failed to encode target", "error", err)
		os.Exit(1)
	}
}

// liveFinder resolves match ids with a fresh aggregation pass instead of a
// long-lived store.
type liveFinder struct {
	sources []feeds.Source
}

func (f liveFinder) FindByID(ctx context.Context, id string) (models.Event, bool, error) {
	return feeds.FindEventByID(ctx, f.sources, id)
}
