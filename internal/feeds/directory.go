package feeds

import (
	"context"
	"strings"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

// Directory fetches the flat global channel directory
// ({"channels": [{name, logo, show, options}]}).
type Directory struct {
	client *Client
	url    string
}

func NewDirectory(client *Client, url string) *Directory {
	return &Directory{client: client, url: url}
}

func (d *Directory) Fetch(ctx context.Context) ([]models.Channel, error) {
	var body struct {
		Channels []models.Channel `json:"channels"`
	}
	if err := d.client.GetJSON(ctx, d.url, &body); err != nil {
		return nil, err
	}
	return body.Channels, nil
}

// Lookup finds a channel by case-insensitive name.
func (d *Directory) Lookup(ctx context.Context, name string) (models.Channel, bool, error) {
	channels, err := d.Fetch(ctx)
	if err != nil {
		return models.Channel{}, false, err
	}
	for _, ch := range channels {
		if strings.EqualFold(ch.Name, name) {
			return ch, true, nil
		}
	}
	return models.Channel{}, false, nil
}

// Visible filters the directory down to the channels flagged for display.
func Visible(channels []models.Channel) []models.Channel {
	out := make([]models.Channel, 0, len(channels))
	for _, ch := range channels {
		if ch.Show {
			out = append(out, ch)
		}
	}
	return out
}
