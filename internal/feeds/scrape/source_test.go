package scrape

import (
	"strings"
	"testing"
)

const agendaHTML = `
<html><body>
<div class="match-container">
  <span class="time">18:30</span>
  <span class="team-name">Rangers</span>
  <span class="team-name">Bruins</span>
</div>
<div class="links-container">
  <a href="/ver/rangers-1">ESPN</a>
  <a href="https://embed.example.com/rangers-2"></a>
</div>
<div class="match-container">
  <span class="time"></span>
  <span class="team-name">Incomplete</span>
</div>
</body></html>`

func TestParseAgenda(t *testing.T) {
	events, err := parseAgenda(agendaHTML, "https://agenda.example.com/hoy")
	if err != nil {
		t.Fatalf("parseAgenda failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 complete event, got %d", len(events))
	}

	ev := events[0]
	if ev.Title != "Rangers vs Bruins" {
		t.Errorf("title = %q", ev.Title)
	}
	if !strings.HasSuffix(ev.StartTime, " 18:30") {
		t.Errorf("start time = %q", ev.StartTime)
	}
	if len(ev.Options) != 2 {
		t.Fatalf("options = %+v", ev.Options)
	}
	if ev.Options[0].Name != "ESPN" || ev.Options[0].Locator != "https://agenda.example.com/ver/rangers-1" {
		t.Errorf("relative href must resolve against the page: %+v", ev.Options[0])
	}
	if ev.Options[1].Name != "Opción 2" {
		t.Errorf("nameless link must get a positional name: %+v", ev.Options[1])
	}
}

func TestAgendaIframeURL(t *testing.T) {
	html := `<html><body>
	  <iframe src="https://ads.example.com/banner"></iframe>
	  <iframe src="/embed/agenda-hoy"></iframe>
	</body></html>`

	got, err := agendaIframeURL(html, "https://site.example.com/programacion")
	if err != nil {
		t.Fatalf("agendaIframeURL failed: %v", err)
	}
	if got != "https://site.example.com/embed/agenda-hoy" {
		t.Errorf("iframe url = %q", got)
	}
}

func TestAgendaIframeURLMissing(t *testing.T) {
	if _, err := agendaIframeURL("<html><body></body></html>", "https://x.example.com"); err == nil {
		t.Error("expected error when no agenda iframe exists")
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base     string
		ref      string
		expected string
	}{
		{"https://a.example.com/x/y", "/z", "https://a.example.com/z"},
		{"https://a.example.com/x/", "z", "https://a.example.com/x/z"},
		{"https://a.example.com", "https://b.example.com/q", "https://b.example.com/q"},
	}
	for _, tt := range tests {
		if got := resolveURL(tt.base, tt.ref); got != tt.expected {
			t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.expected)
		}
	}
}
