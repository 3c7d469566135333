// Package scrape pulls the agenda of a Cloudflare-fronted schedule page that
// exposes no JSON feed: the page is rendered headless, the agenda iframe is
// located, and the rendered agenda markup is parsed into events.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/Aguus467/angulismotv/internal/feeds"
	"github.com/Aguus467/angulismotv/internal/pkg/config"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

const sourceName = "scrape"

const defaultRenderTimeout = 60 * time.Second

// chromeMu serializes all Chrome usage so only one instance runs at a time.
var chromeMu sync.Mutex

func init() {
	feeds.Register(sourceName, func(cfg *config.Config) feeds.Source {
		return New(cfg)
	})
}

type Source struct {
	pageURL   string
	userAgent string
	timeout   time.Duration
}

func New(cfg *config.Config) *Source {
	f := &cfg.Feeds
	timeout := f.Scrape.Timeout
	if timeout <= 0 {
		timeout = defaultRenderTimeout
	}
	return &Source{
		pageURL:   f.Scrape.PageURL,
		userAgent: f.UserAgent,
		timeout:   timeout,
	}
}

func (s *Source) Name() string { return sourceName }

func (s *Source) Fetch(ctx context.Context) ([]models.Event, error) {
	if s.pageURL == "" {
		return nil, fmt.Errorf("%s: feeds.scrape.page_url is not configured", sourceName)
	}

	pageHTML, err := s.renderHTML(ctx, s.pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: render schedule page: %w", sourceName, err)
	}

	iframeURL, err := agendaIframeURL(pageHTML, s.pageURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourceName, err)
	}

	agendaHTML, err := s.renderHTML(ctx, iframeURL)
	if err != nil {
		return nil, fmt.Errorf("%s: render agenda iframe: %w", sourceName, err)
	}

	return parseAgenda(agendaHTML, iframeURL)
}

// renderHTML loads the URL in a headless browser and returns the rendered
// document, surviving the page's anti-bot interstitial.
func (s *Source) renderHTML(ctx context.Context, pageURL string) (string, error) {
	chromeMu.Lock()
	defer chromeMu.Unlock()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
	)
	if s.userAgent != "" {
		opts = append(opts, chromedp.UserAgent(s.userAgent))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	runCtx, cancel := context.WithTimeout(browserCtx, s.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady("body"),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	return html, nil
}

// agendaIframeURL finds the agenda iframe of the schedule page and resolves
// its src against the page URL.
func agendaIframeURL(html, pageURL string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse schedule page: %w", err)
	}

	var src string
	doc.Find("iframe").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if v, ok := sel.Attr("src"); ok && strings.Contains(v, "agenda") {
			src = v
			return false
		}
		return true
	})
	if src == "" {
		return "", fmt.Errorf("no agenda iframe found")
	}
	return resolveURL(pageURL, src), nil
}

// parseAgenda extracts events from the rendered agenda markup: one
// div.match-container per match (time + two team names), followed by a
// sibling div.links-container holding the stream links.
func parseAgenda(html, baseURL string) ([]models.Event, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("%s: parse agenda: %w", sourceName, err)
	}

	var events []models.Event
	doc.Find("div.match-container").Each(func(_ int, match *goquery.Selection) {
		clock := strings.TrimSpace(match.Find("span.time").First().Text())

		var teams []models.Team
		match.Find("span.team-name").Each(func(_ int, t *goquery.Selection) {
			if name := strings.TrimSpace(t.Text()); name != "" {
				teams = append(teams, models.Team{Name: name})
			}
		})

		var opts []models.Option
		match.NextFiltered("div.links-container").Find("a[href]").Each(func(i int, a *goquery.Selection) {
			href, _ := a.Attr("href")
			if href == "" {
				return
			}
			name := strings.TrimSpace(a.Text())
			if name == "" {
				name = fmt.Sprintf("Opción %d", i+1)
			}
			opts = append(opts, models.Option{Name: name, Locator: resolveURL(baseURL, href)})
		})

		if len(teams) < 2 || clock == "" || len(opts) == 0 {
			slog.Debug("Skipping incomplete agenda block", "source", sourceName, "teams", len(teams))
			return
		}

		title := teams[0].Name + " vs " + teams[1].Name
		id := feeds.SynthesizeID(sourceName)
		events = append(events, models.Event{
			ID:        id,
			StartTime: models.ComposeToday(clock),
			Teams:     teams,
			Title:     title,
			Slug:      id,
			Source:    sourceName,
			Options:   opts,
		})
	})
	return events, nil
}

func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
