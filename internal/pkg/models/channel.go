package models

import (
	json "github.com/goccy/go-json"
)

// Channel is one entry of the channel directory, or a virtual channel carried
// whole inside a player URL. Wire options come as {name, iframe} or
// {name, link} objects; both decode into Option with the base64 distinction
// preserved.
type Channel struct {
	Name    string   `json:"name"`
	Logo    string   `json:"logo,omitempty"`
	Show    bool     `json:"show,omitempty"`
	Options []Option `json:"options"`
}

type channelWire struct {
	Name    string `json:"name"`
	Logo    string `json:"logo"`
	Show    bool   `json:"show"`
	Options []struct {
		Name   string `json:"name"`
		Iframe string `json:"iframe"`
		Link   string `json:"link"`
	} `json:"options"`
}

func (c *Channel) UnmarshalJSON(data []byte) error {
	var w channelWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Name = w.Name
	c.Logo = w.Logo
	c.Show = w.Show
	c.Options = c.Options[:0]
	for _, o := range w.Options {
		switch {
		case o.Iframe != "":
			c.Options = append(c.Options, Option{Name: o.Name, Locator: o.Iframe})
		case o.Link != "":
			c.Options = append(c.Options, Option{Name: o.Name, Locator: o.Link, Encoded: true})
		default:
			c.Options = append(c.Options, Option{Name: o.Name})
		}
	}
	return nil
}
