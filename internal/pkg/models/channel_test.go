package models

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestChannelUnmarshalWireShapes(t *testing.T) {
	data := []byte(`{
		"name": "ESPN",
		"logo": "https://cdn.example.com/espn.png",
		"show": true,
		"options": [
			{"name": "Opción 1", "iframe": "https://embed.example.com/espn"},
			{"name": "Opción 2", "link": "aHR0cHM6Ly9jZG4uZXhhbXBsZS5jb20vZXNwbi5tM3U4"},
			{"name": "Opción 3"}
		]
	}`)

	var ch Channel
	if err := json.Unmarshal(data, &ch); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if ch.Name != "ESPN" || !ch.Show {
		t.Errorf("header fields wrong: %+v", ch)
	}
	if len(ch.Options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(ch.Options))
	}

	if ch.Options[0].Encoded || ch.Options[0].Locator != "https://embed.example.com/espn" {
		t.Errorf("iframe option should be a direct locator: %+v", ch.Options[0])
	}
	if !ch.Options[1].Encoded {
		t.Errorf("link option should stay encoded until play time: %+v", ch.Options[1])
	}
	if ch.Options[2].Locator != "" || ch.Options[2].Encoded {
		t.Errorf("bare option should carry only a name: %+v", ch.Options[2])
	}

	url, err := ch.Options[1].URL()
	if err != nil {
		t.Fatalf("decoding link option failed: %v", err)
	}
	if url != "https://cdn.example.com/espn.m3u8" {
		t.Errorf("decoded link = %q", url)
	}
}

func TestOptionKeyDistinguishesLocators(t *testing.T) {
	a := Option{Name: "ESPN", Locator: "https://one.example.com"}
	b := Option{Name: "ESPN", Locator: "https://two.example.com"}
	c := Option{Name: "ESPN", Locator: "https://one.example.com"}

	if a.Key() == b.Key() {
		t.Error("same name with different locators must stay distinct")
	}
	if a.Key() != c.Key() {
		t.Error("identical options must collide")
	}
	if (Option{Name: "X", Locator: "p"}).Key() == (Option{Name: "X", Locator: "p", Encoded: true}).Key() {
		t.Error("encoded and plain locators must stay distinct")
	}
}
