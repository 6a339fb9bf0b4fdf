package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Level != "arena" || cfg.TPS != 60 || cfg.FixedHz != 50 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.WatchPrefabs() {
		t.Fatalf("expected hot reload off by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TOPDOWN_LEVEL", "caves")
	t.Setenv("TOPDOWN_DEBUG", "true")
	t.Setenv("TOPDOWN_TPS", "120")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Level != "caves" || !cfg.Debug || cfg.TPS != 120 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if !cfg.WatchPrefabs() {
		t.Fatalf("expected debug to enable hot reload")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{name: "not an int", key: "TOPDOWN_TPS", value: "fast", want: "parse env:"},
		{name: "zero tps", key: "TOPDOWN_TPS", value: "0", want: "tps must be positive"},
		{name: "negative fixed hz", key: "TOPDOWN_FIXED_HZ", value: "-5", want: "fixed hz must be positive"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}
