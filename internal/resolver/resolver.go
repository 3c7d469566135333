// Package resolver turns the addressing query of a player-page URL into a
// concrete stream target. Four addressing modes exist, tried in a fixed
// priority order: a self-contained virtual channel payload, a direct encoded
// stream link, a match id from the agenda, and a named channel from the
// directory.
package resolver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/Aguus467/angulismotv/internal/pkg/b64"
	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// ChannelDirectory looks up named channels from the channel catalog.
type ChannelDirectory interface {
	Lookup(ctx context.Context, name string) (models.Channel, bool, error)
}

// EventFinder locates an agenda event by its id.
type EventFinder interface {
	FindByID(ctx context.Context, id string) (models.Event, bool, error)
}

// Defaults fill the player header when the addressed source carries no
// branding of its own, as with direct encoded links.
type Defaults struct {
	DisplayName string
	LogoURL     string
}

type Resolver struct {
	directory ChannelDirectory
	events    EventFinder
	defaults  Defaults
}

func New(directory ChannelDirectory, events EventFinder, defaults Defaults) *Resolver {
	return &Resolver{directory: directory, events: events, defaults: defaults}
}

// Resolve picks the addressing mode from the query and produces a player
// target. A *RedirectError return means the caller must navigate to the
// canonical URL instead of rendering.
func (r *Resolver) Resolve(ctx context.Context, q url.Values) (*PlayerTarget, error) {
	p := ParamsFromQuery(q)
	switch {
	case p.VirtualChannel != "":
		return r.resolveVirtual(p)
	case p.Event != "":
		return r.resolveDirect(p)
	case p.Match != "":
		return r.resolveMatch(ctx, p)
	case p.Channel != "":
		return r.resolveChannel(ctx, p)
	}
	return nil, ErrNoRoute
}

// resolveVirtual decodes a full channel object carried inside the URL
// itself. Nothing is looked up; the payload is the channel.
func (r *Resolver) resolveVirtual(p Params) (*PlayerTarget, error) {
	raw, err := b64.Decode(p.VirtualChannel)
	if err != nil {
		return nil, fmt.Errorf("%w: virtual channel: %v", ErrDecode, err)
	}
	var ch models.Channel
	if err := json.Unmarshal([]byte(raw), &ch); err != nil {
		return nil, fmt.Errorf("%w: virtual channel: %v", ErrDecode, err)
	}
	idx, _ := p.optIndex()
	return r.channelTarget(ch, idx)
}

// resolveDirect mounts a single encoded stream link with no surrounding
// event. The header shows the configured defaults and stays hidden.
func (r *Resolver) resolveDirect(p Params) (*PlayerTarget, error) {
	src, err := b64.Decode(p.Event)
	if err != nil {
		return nil, fmt.Errorf("%w: event link: %v", ErrDecode, err)
	}
	if src == "" {
		return nil, fmt.Errorf("%w: event link is empty", ErrNotFound)
	}
	return &PlayerTarget{
		SourceURL:   src,
		Kind:        kindOf(src),
		DisplayName: r.defaults.DisplayName,
		LogoURL:     r.defaults.LogoURL,
		ShowHeader:  false,
		AvailableOptions: []models.Option{
			{Name: r.defaults.DisplayName, Locator: src},
		},
	}, nil
}

// resolveMatch finds the agenda event and selects one of its options. When
// the query names no usable channel the caller is redirected to the
// canonical URL for the first option, so reloads and bookmarks keep working.
func (r *Resolver) resolveMatch(ctx context.Context, p Params) (*PlayerTarget, error) {
	if r.events == nil {
		return nil, fmt.Errorf("%w: match lookup unavailable", ErrNotFound)
	}
	ev, ok, err := r.events.FindByID(ctx, p.Match)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", p.Match, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: match %s", ErrNotFound, p.Match)
	}
	if len(ev.Options) == 0 {
		return nil, fmt.Errorf("%w: match %s has no viewing options", ErrNotFound, p.Match)
	}

	idx := optionByName(ev.Options, p.Channel)
	if idx < 0 {
		canonical := p
		canonical.Channel = ev.Options[0].Name
		return nil, &RedirectError{Query: canonical.Query()}
	}
	if n, explicit := p.optIndex(); explicit {
		idx = clampIndex(n, len(ev.Options))
	}

	opt := ev.Options[idx]
	src, err := opt.URL()
	if err != nil {
		return nil, fmt.Errorf("%w: option %q: %v", ErrDecode, opt.Name, err)
	}
	if src == "" {
		return nil, fmt.Errorf("%w: option %q has no stream link", ErrNotFound, opt.Name)
	}

	logo := opt.Logo
	if logo == "" {
		logo = r.defaults.LogoURL
	}
	return &PlayerTarget{
		SourceURL:        src,
		Kind:             kindOf(src),
		OptionIndex:      idx,
		DisplayName:      opt.Name,
		LogoURL:          logo,
		ShowHeader:       true,
		AvailableOptions: ev.Options,
	}, nil
}

// resolveChannel looks the name up in the channel directory.
func (r *Resolver) resolveChannel(ctx context.Context, p Params) (*PlayerTarget, error) {
	if r.directory == nil {
		return nil, fmt.Errorf("%w: channel directory unavailable", ErrNotFound)
	}
	ch, ok, err := r.directory.Lookup(ctx, p.Channel)
	if err != nil {
		return nil, fmt.Errorf("channel %s: %w", p.Channel, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: channel %s", ErrNotFound, p.Channel)
	}
	idx, _ := p.optIndex()
	return r.channelTarget(ch, idx)
}

func (r *Resolver) channelTarget(ch models.Channel, idx int) (*PlayerTarget, error) {
	if len(ch.Options) == 0 {
		return nil, fmt.Errorf("%w: channel %q has no options", ErrNotFound, ch.Name)
	}
	idx = clampIndex(idx, len(ch.Options))
	opt := ch.Options[idx]
	src, err := opt.URL()
	if err != nil {
		return nil, fmt.Errorf("%w: option %q: %v", ErrDecode, opt.Name, err)
	}
	if src == "" {
		return nil, fmt.Errorf("%w: option %q has no stream link", ErrNotFound, opt.Name)
	}

	logo := ch.Logo
	if logo == "" {
		logo = r.defaults.LogoURL
	}
	return &PlayerTarget{
		SourceURL:        src,
		Kind:             kindOf(src),
		OptionIndex:      idx,
		DisplayName:      ch.Name,
		LogoURL:          logo,
		ShowHeader:       true,
		AvailableOptions: ch.Options,
	}, nil
}

func optionByName(opts []models.Option, name string) int {
	if name == "" {
		return -1
	}
	for i, o := range opts {
		if strings.EqualFold(o.Name, name) {
			return i
		}
	}
	return -1
}
