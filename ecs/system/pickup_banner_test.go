package system

import (
	"testing"

	"github.com/milk9111/topdown/ecs"
)

type recordingBanner struct {
	shows []string
}

func (b *recordingBanner) Show(name, description string) {
	b.shows = append(b.shows, name+"|"+description)
}

func TestPickupBannerFollowsPlayerPickups(t *testing.T) {
	w := newTestWorld()
	m, _ := newTestModel()
	player := newTestPlayer(w)
	npc := newCharacter(w, true)
	banner := &recordingBanner{}
	lookup := stubItems{"gem": {Type: "gem", Name: "Gem", Description: "It sparkles."}}
	sys := NewPickupBannerSystem(banner, lookup)

	m.ShowItemPickup(w, npc, "gem")
	sys.Update(w)
	if len(banner.shows) != 0 {
		t.Fatalf("expected non-player pickups ignored, got %v", banner.shows)
	}

	// Showing a second item dismisses the first.
	m.ShowItemPickup(w, player, "gem")
	m.ShowItemPickup(w, player, "sword")
	sys.Update(w)
	nextFrame(w)
	m.SetDirection(w, player, 1, 0)
	sys.Update(w)

	want := []string{"Gem|It sparkles.", "|", "sword|", "|"}
	if len(banner.shows) != len(want) {
		t.Fatalf("expected shows %v, got %v", want, banner.shows)
	}
	for i := range want {
		if banner.shows[i] != want[i] {
			t.Fatalf("show %d: expected %q, got %q", i, want[i], banner.shows[i])
		}
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected pickup events consumed, %d left", w.Events().Len())
	}
}

func TestPickupBannerLeavesOtherEvents(t *testing.T) {
	w := newTestWorld()
	player := newTestPlayer(w)
	w.Events().Push(ecs.Event{Type: ecs.EventAttackFinished, Entity: player})
	w.Events().Push(ecs.Event{Type: ecs.EventPickupShown, Entity: player})

	banner := &recordingBanner{}
	NewPickupBannerSystem(banner, stubItems{}).Update(w)

	if len(banner.shows) != 0 {
		t.Fatalf("expected event without an item ignored, got %v", banner.shows)
	}
	if got := w.Events().DrainType(ecs.EventAttackFinished); len(got) != 1 {
		t.Fatalf("expected attack event left queued, got %v", got)
	}
}
