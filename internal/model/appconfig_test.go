package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.Theme != "system" {
		t.Errorf("expected theme=system, got %s", cfg.Theme)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.BedsPerFloor != 20 || cfg.BedsPerRoom != 4 {
		t.Errorf("expected 20 beds in rooms of 4, got %d/%d", cfg.BedsPerFloor, cfg.BedsPerRoom)
	}
	if cfg.RecentExports == nil {
		t.Error("RecentExports should not be nil")
	}
}

func TestGenOptionsFromConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.BedsPerFloor = 12
	cfg.BedsPerRoom = 0

	opts := cfg.GenOptions()
	if opts.BedsPerFloor != 12 {
		t.Errorf("expected 12 beds per floor, got %d", opts.BedsPerFloor)
	}
	if opts.BedsPerRoom != 4 {
		t.Errorf("zero beds per room should fall back to 4, got %d", opts.BedsPerRoom)
	}
}

func TestAddRecentExport(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentExport("/tmp/a.pdf")
	cfg.AddRecentExport("/tmp/b.pdf")
	cfg.AddRecentExport("/tmp/a.pdf")

	if len(cfg.RecentExports) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(cfg.RecentExports))
	}
	if cfg.RecentExports[0] != "/tmp/a.pdf" {
		t.Errorf("most recent should be first, got %s", cfg.RecentExports[0])
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentExport(string(rune('a'+i)) + ".xlsx")
	}
	if len(cfg.RecentExports) != 10 {
		t.Errorf("expected at most 10 entries, got %d", len(cfg.RecentExports))
	}
}
