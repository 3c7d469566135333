package models

import (
	"github.com/Aguus467/angulismotv/internal/pkg/b64"
)

// Event is the canonical representation of one feed record after adaptation.
// StartTime keeps the raw feed string ("YYYY-MM-DD HH:MM", "DD-MM-YYYY HH:MM"
// or bare "HH:MM"); parsing happens through ParseStartTime where ordering is
// needed.
type Event struct {
	ID          string   `json:"id"`
	StartTime   string   `json:"start_time"`
	Teams       []Team   `json:"teams"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Competition string   `json:"competition"`
	Status      Status   `json:"status"`
	Slug        string   `json:"slug"`
	Source      string   `json:"source"`
	Options     []Option `json:"options"`
}

type Team struct {
	Name string `json:"name"`
}

type Status struct {
	Name string `json:"name"`
}

// Option is one selectable stream source for an event.
//
// Locator carries either a directly loadable URL (iframe embed) or, when
// Encoded is set, a base64 payload that is only decoded at play time.
type Option struct {
	Name    string `json:"name"`
	Locator string `json:"locator"`
	Encoded bool   `json:"encoded,omitempty"`
	Logo    string `json:"logo,omitempty"`
}

// URL returns the playable URL for the option, decoding base64 locators.
func (o Option) URL() (string, error) {
	if !o.Encoded {
		return o.Locator, nil
	}
	return b64.Decode(o.Locator)
}

// Key is the exact-duplicate key used when merging option lists: two options
// are the same only when both name and locator match.
func (o Option) Key() string {
	kind := "u"
	if o.Encoded {
		kind = "b"
	}
	return o.Name + "|" + kind + "|" + o.Locator
}

// GroupedEvent is one deduplicated agenda entry: a single real-world match
// assembled from every feed that listed it.
type GroupedEvent struct {
	ID          string   `json:"id"`
	StartTime   string   `json:"start_time"`
	Teams       []Team   `json:"teams"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Competition string   `json:"competition"`
	Status      Status   `json:"status"`
	Slug        string   `json:"slug"`
	Options     []Option `json:"options"`
	Sources     []Event  `json:"sources"`
}
