package resolver

import (
	"fmt"
	"strings"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// SourceKind tells the player how to mount the stream.
type SourceKind string

const (
	// KindEmbed is a third-party page loaded in an iframe.
	KindEmbed SourceKind = "embed"
	// KindHLS is a raw .m3u8 playlist for a native video element.
	KindHLS SourceKind = "hls"
)

// PlayerTarget is everything the player page needs to render: the stream to
// mount, the header chrome, and the list of alternatives for the option
// selector.
type PlayerTarget struct {
	SourceURL   string
	Kind        SourceKind
	OptionIndex int

	DisplayName string
	LogoURL     string
	ShowHeader  bool

	AvailableOptions []models.Option
}

// SelectOption switches the target to another option from the selector. Out
// of range indices clamp to the nearest valid one.
func (t *PlayerTarget) SelectOption(index int) error {
	if len(t.AvailableOptions) == 0 {
		return fmt.Errorf("%w: no options to select", ErrNotFound)
	}
	index = clampIndex(index, len(t.AvailableOptions))
	opt := t.AvailableOptions[index]
	src, err := opt.URL()
	if err != nil {
		return fmt.Errorf("%w: option %q: %v", ErrDecode, opt.Name, err)
	}
	if src == "" {
		return fmt.Errorf("%w: option %q has no stream link", ErrNotFound, opt.Name)
	}
	t.SourceURL = src
	t.Kind = kindOf(src)
	t.OptionIndex = index
	return nil
}

func kindOf(src string) SourceKind {
	trimmed := src
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if strings.HasSuffix(strings.ToLower(trimmed), ".m3u8") {
		return KindHLS
	}
	return KindEmbed
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
