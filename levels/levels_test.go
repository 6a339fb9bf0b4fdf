package levels

import "testing"

func TestLoadDefault(t *testing.T) {
	for _, name := range []string{"", "arena", "arena.json", "levels/arena.json"} {
		lvl, err := Load(name)
		if err != nil {
			t.Fatalf("Load(%q): %v", name, err)
		}
		if len(lvl.Entities) == 0 {
			t.Fatalf("Load(%q): expected entities", name)
		}
	}
	if _, err := Load("missing"); err == nil {
		t.Fatalf("expected error for missing level")
	}
}
