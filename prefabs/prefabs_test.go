package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"#ff8000", color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, false},
		{"10203040", color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, false},
		{"#fff", color.NRGBA{}, true},
		{"#gg0000", color.NRGBA{}, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			got, err := ParseColor(c.in)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", c.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != c.want {
				t.Fatalf("ParseColor(%q) = %v, want %v", c.in, got, c.want)
			}
		})
	}
}

func TestDecodeComponentSpec(t *testing.T) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte("width: 12\nheight: 8\ncolor: \"#102030\"\n"), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	spec, err := DecodeComponentSpec[SpriteComponentSpec](raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec.Width != 12 || spec.Height != 8 || spec.Color == nil {
		t.Fatalf("unexpected spec %+v", spec)
	}

	empty, err := DecodeComponentSpec[SpriteComponentSpec](nil)
	if err != nil || empty.Width != 0 {
		t.Fatalf("nil raw should decode to zero value, got %+v err=%v", empty, err)
	}
}

func TestCleanPaths(t *testing.T) {
	if got := cleanPrefabPath("prefabs/player.yaml"); got != "player.yaml" {
		t.Fatalf("cleanPrefabPath = %q", got)
	}
	for _, in := range []string{"bumper.tengo", "scripts/bumper.tengo", "prefabs/scripts/bumper.tengo"} {
		if got := cleanScriptPath(in); got != "scripts/bumper.tengo" {
			t.Fatalf("cleanScriptPath(%q) = %q", in, got)
		}
	}
	if got := Rel("/home/me/game/prefabs/scripts/chest.tengo"); got != "scripts/chest.tengo" {
		t.Fatalf("Rel = %q", got)
	}
}

func TestShippedPrefabsDecode(t *testing.T) {
	entries, err := PrefabsFS.ReadDir(".")
	if err != nil {
		t.Fatalf("read embedded prefabs: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() == "items.yaml" {
			continue
		}
		t.Run(entry.Name(), func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(entry.Name())
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(spec.Components) == 0 {
				t.Fatalf("prefab %s has no components", entry.Name())
			}
		})
	}
}

func TestWatcherReportsWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "items.yaml"), []byte("items: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "items.yaml" {
			t.Fatalf("expected items.yaml event, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for watcher event")
	}
}
