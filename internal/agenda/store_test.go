package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Aguus467/angulismotv/internal/pkg/models"
)

func TestStoreReplacePassAndRead(t *testing.T) {
	store := NewStore()
	events := []models.Event{
		{ID: "a-1", Title: "X vs Y", Teams: []models.Team{{Name: "X"}, {Name: "Y"}}},
	}
	at := time.Now()
	store.ReplacePass(Group(events), events, map[string]error{"la14hd": errors.New("timeout")}, false, at)

	groups, updatedAt := store.Groups()
	if len(groups) != 1 {
		t.Errorf("groups = %+v", groups)
	}
	if !updatedAt.Equal(at) {
		t.Errorf("updatedAt = %v, want %v", updatedAt, at)
	}
	if store.AllFailed() {
		t.Error("pass was partial, not a total failure")
	}
	if store.FeedErrors()["la14hd"] == "" {
		t.Errorf("feed errors = %v", store.FeedErrors())
	}
}

func TestStoreFindByID(t *testing.T) {
	store := NewStore()
	events := []models.Event{
		{ID: "a-1", Title: "X vs Y", Teams: []models.Team{{Name: "X"}, {Name: "Y"}}},
		{ID: "b-2", Title: "P vs Q", Teams: []models.Team{{Name: "P"}, {Name: "Q"}}},
	}
	store.ReplacePass(Group(events), events, nil, false, time.Now())

	ev, ok, err := store.FindByID(context.Background(), "b-2")
	if err != nil || !ok {
		t.Fatalf("FindByID: ok=%v err=%v", ok, err)
	}
	if ev.Title != "P vs Q" {
		t.Errorf("event = %+v", ev)
	}

	if _, ok, _ := store.FindByID(context.Background(), "nope"); ok {
		t.Error("unknown id resolved")
	}
}

func TestStoreSnapshotIsolation(t *testing.T) {
	store := NewStore()
	events := []models.Event{
		{ID: "a-1", Title: "X vs Y", Teams: []models.Team{{Name: "X"}, {Name: "Y"}}},
	}
	store.ReplacePass(Group(events), events, nil, false, time.Now())

	groups, _ := store.Groups()
	groups[0].Title = "mutated"

	fresh, _ := store.Groups()
	if fresh[0].Title == "mutated" {
		t.Error("reads must return copies, not shared slices")
	}
}
