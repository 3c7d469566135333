package manual

import (
	"bytes"

	json "github.com/goccy/go-json"

	"github.com/Aguus467/angulismotv/internal/feeds"
)

// record is one entry of the manual events feed.
type record struct {
	ID          feeds.FlexID `json:"id"`
	Evento      string       `json:"evento"`
	Fecha       string       `json:"fecha"`
	Canales     []canalRef   `json:"canales"`
	Canal       *canalRef    `json:"canal"` // legacy single-channel form
	Descripcion string       `json:"descripcion"`
	Competencia string       `json:"competencia"`
	Estado      string       `json:"estado"`
}

// canalKind discriminates the polymorphic canales entries. The feed mixes
// bare strings, inline iframe objects, base64-link objects and nested option
// groups; deciding the shape once here keeps the adapter free of shape
// sniffing.
type canalKind int

const (
	canalInvalid canalKind = iota
	canalBare              // "ESPN"
	canalInline            // {name, iframe, logo}
	canalLinked            // {name, link}, link is base64
	canalGroup             // {name, logo, options: [{name, iframe}]}
)

type canalRef struct {
	Kind    canalKind
	Name    string
	Iframe  string
	Link    string
	Logo    string
	Options []canalSubOption
}

type canalSubOption struct {
	Name   string `json:"name"`
	Iframe string `json:"iframe"`
}

// UnmarshalJSON never fails: a canal entry of an unrecognized JSON type
// (number, bool, array) decodes as canalInvalid and is dropped by the
// adapter, keeping the rest of the record and feed intact.
func (c *canalRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		c.Kind = canalInvalid
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			c.Kind = canalInvalid
			return nil
		}
		c.Kind = canalBare
		c.Name = s
		return nil
	}

	if data[0] != '{' {
		c.Kind = canalInvalid
		return nil
	}

	var w struct {
		Name    string           `json:"name"`
		Iframe  string           `json:"iframe"`
		Link    string           `json:"link"`
		Logo    string           `json:"logo"`
		Options []canalSubOption `json:"options"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		c.Kind = canalInvalid
		return nil
	}

	c.Name = w.Name
	c.Iframe = w.Iframe
	c.Link = w.Link
	c.Logo = w.Logo
	c.Options = w.Options

	switch {
	case len(w.Options) > 0:
		c.Kind = canalGroup
	case w.Link != "":
		c.Kind = canalLinked
	case w.Name != "":
		c.Kind = canalInline
	default:
		c.Kind = canalInvalid
	}
	return nil
}
