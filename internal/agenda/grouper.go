// Package agenda merges the adapted events of all feeds into the
// deduplicated, sorted agenda served to the UI.
package agenda

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/Aguus467/angulismotv/internal/feeds"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// Group merges events that describe the same real-world match. Uniqueness is
// the time-independent team signature: feeds regularly disagree on kick-off
// time for the same match, so two listings with the same teams are one group
// and the earliest reported time wins.
func Group(events []models.Event) []models.GroupedEvent {
	grouped := make(map[string]*models.GroupedEvent)
	var order []string

	for _, ev := range events {
		sig := models.TeamSignature(ev.Teams)
		if sig == "" {
			slog.Debug("Dropping event without usable team names", "source", ev.Source, "title", ev.Title)
			continue
		}

		g, ok := grouped[sig]
		if !ok {
			grouped[sig] = newGroup(sig, ev)
			order = append(order, sig)
			continue
		}
		mergeInto(g, ev)
	}

	out := make([]models.GroupedEvent, 0, len(order))
	for _, sig := range order {
		out = append(out, *grouped[sig])
	}
	sortForDisplay(out)
	return out
}

func newGroup(sig string, ev models.Event) *models.GroupedEvent {
	teams := make([]models.Team, 0, len(ev.Teams))
	for _, t := range ev.Teams {
		if n := models.NormalizeTeamName(t.Name); n != "" {
			teams = append(teams, models.Team{Name: strings.ToUpper(n)})
		}
	}

	slug := ev.Slug
	if slug == "" {
		slug = "group-" + sig
	}

	g := &models.GroupedEvent{
		ID:          feeds.SynthesizeID("group"),
		StartTime:   ev.StartTime,
		Teams:       teams,
		Title:       ev.Title,
		Description: ev.Description,
		Competition: ev.Competition,
		Status:      ev.Status,
		Slug:        slug,
		Sources:     []models.Event{ev},
	}
	g.Options = appendOptions(nil, ev.Options)
	return g
}

func mergeInto(g *models.GroupedEvent, ev models.Event) {
	g.Sources = append(g.Sources, ev)

	// First non-empty wins, never overwritten.
	if g.Description == "" && ev.Description != "" {
		g.Description = ev.Description
	}
	if g.Competition == "" && ev.Competition != "" {
		g.Competition = ev.Competition
	}
	if g.Status.Name == "" && ev.Status.Name != "" {
		g.Status = ev.Status
	}

	// Longer titles tend to carry more context (competition, language).
	if len(ev.Title) > len(g.Title) {
		g.Title = ev.Title
	}

	// Earliest reported time wins, by parsed value; unparseable times carry
	// the far-future sentinel and lose to any real time.
	newTime := models.ParseStartTime(ev.StartTime).SortValue()
	curTime := models.ParseStartTime(g.StartTime).SortValue()
	if newTime.Before(curTime) {
		g.StartTime = ev.StartTime
	}

	g.Options = appendOptions(g.Options, ev.Options)
}

// appendOptions concatenates option lists with exact-duplicate removal.
// Options sharing a name but pointing at different locators are distinct and
// both kept.
func appendOptions(dst, src []models.Option) []models.Option {
	seen := make(map[string]bool, len(dst))
	for _, o := range dst {
		seen[o.Key()] = true
	}
	for _, o := range src {
		if seen[o.Key()] {
			continue
		}
		seen[o.Key()] = true
		dst = append(dst, o)
	}
	return dst
}

// sortForDisplay orders groups by clock time. The "HH:MM" form is fixed-width
// and zero-padded, so lexical comparison is chronological; groups whose time
// never parsed sort after every valid time.
func sortForDisplay(groups []models.GroupedEvent) {
	sort.SliceStable(groups, func(i, j int) bool {
		iOK := models.ParseStartTime(groups[i].StartTime).OK
		jOK := models.ParseStartTime(groups[j].StartTime).OK
		if iOK != jOK {
			return iOK
		}
		return models.ClockTime(groups[i].StartTime) < models.ClockTime(groups[j].StartTime)
	})
}
