package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":8000" {
		t.Errorf("default addr = %q, want :8000", cfg.Server.Addr)
	}
	if cfg.Billing.TrialDays != 14 {
		t.Errorf("default trial days = %d, want 14", cfg.Billing.TrialDays)
	}
	if cfg.Billing.PricePerDriver != 29 {
		t.Errorf("default price per driver = %d, want 29", cfg.Billing.PricePerDriver)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.Path != "freightquick.db" {
		t.Errorf("db path = %q, want default", cfg.Database.Path)
	}
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Server.Addr = ":9090"
	cfg.Database.Path = filepath.Join(dir, "fleet.db")
	cfg.Database.Seed = false
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", loaded.Server.Addr)
	}
	if loaded.Database.Seed {
		t.Error("seed should be false after round trip")
	}
}

func TestEnvOverrides(t *testing.T) {
	os.Setenv("FREIGHTQUICK_ADDR", ":7777")
	os.Setenv("FREIGHTQUICK_DB", "/tmp/override.db")
	defer os.Unsetenv("FREIGHTQUICK_ADDR")
	defer os.Unsetenv("FREIGHTQUICK_DB")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7777" {
		t.Errorf("addr = %q, want env override :7777", cfg.Server.Addr)
	}
	if cfg.Database.Path != "/tmp/override.db" {
		t.Errorf("db path = %q, want env override", cfg.Database.Path)
	}
}

func TestTimeoutFallbacks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.ShutdownTimeout = "bogus"
	if got := cfg.GetShutdownTimeout().Seconds(); got != 5 {
		t.Errorf("shutdown timeout fallback = %vs, want 5s", got)
	}
}
