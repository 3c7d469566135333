package streamtp

import (
	"strings"
	"testing"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

func TestAdapt(t *testing.T) {
	records := []record{
		{
			ID:       "15",
			Title:    "Rangers vs Bruins",
			Time:     "18:30",
			Category: "NHL",
			Link:     "aHR0cHM6Ly9jZG4uZXhhbXBsZS5jb20vZm94",
			Status:   "Pronto",
		},
		{
			Title: "", // skipped
			Time:  "20:00",
		},
		{
			ID:    "16",
			Title: "Racing vs Independiente",
			// no time, no link
		},
	}

	events := adapt(records)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	ev := events[0]
	if ev.ID != "streamtp-15" {
		t.Errorf("id = %q", ev.ID)
	}
	if len(ev.Options) != 1 || ev.Options[0].Name != "NHL" || !ev.Options[0].Encoded {
		t.Errorf("options = %+v", ev.Options)
	}
	// Feed reports UTC-5; the stored time carries the +2h correction.
	if models.ClockTime(ev.StartTime) != "20:30" {
		t.Errorf("shifted clock = %q (start %q)", models.ClockTime(ev.StartTime), ev.StartTime)
	}
	if !strings.Contains(ev.StartTime, "-") {
		t.Errorf("start time should carry a full date, got %q", ev.StartTime)
	}

	if events[1].StartTime != "" {
		t.Errorf("timeless record should keep an empty start time, got %q", events[1].StartTime)
	}
	if len(events[1].Options) != 0 {
		t.Errorf("linkless record should have no options: %+v", events[1].Options)
	}
}

func TestAdaptNilInput(t *testing.T) {
	if events := adapt(nil); len(events) != 0 {
		t.Errorf("expected empty slice, got %+v", events)
	}
}

func TestOptionName(t *testing.T) {
	if got := optionName(""); got != "Canal" {
		t.Errorf("empty category = %q, want Canal", got)
	}
	if got := optionName("NBA"); got != "NBA" {
		t.Errorf("category = %q", got)
	}
}
