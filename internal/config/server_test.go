package config

import "testing"

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("HTTPAddr = %q, want :8080", cfg.HTTPAddr)
	}
	if cfg.DBPath != "coach.db" {
		t.Fatalf("DBPath = %q, want coach.db", cfg.DBPath)
	}
	if cfg.BodyCaptureBytes != 4096 {
		t.Fatalf("BodyCaptureBytes = %d, want 4096", cfg.BodyCaptureBytes)
	}
}

func TestLoadServerOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("DB_PATH", "/tmp/coach-test.db")

	cfg, err := LoadServer()
	if err != nil {
		t.Fatalf("LoadServer() error = %v", err)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.DBPath != "/tmp/coach-test.db" {
		t.Fatalf("DBPath = %q", cfg.DBPath)
	}
}

func TestLoadTrainerDefaults(t *testing.T) {
	cfg, err := LoadTrainer()
	if err != nil {
		t.Fatalf("LoadTrainer() error = %v", err)
	}
	if cfg.DefaultTrials != 360 {
		t.Fatalf("DefaultTrials = %d, want 360", cfg.DefaultTrials)
	}
}

func TestLoadTrainerOverride(t *testing.T) {
	t.Setenv("EV_TRIALS", "600")

	cfg, err := LoadTrainer()
	if err != nil {
		t.Fatalf("LoadTrainer() error = %v", err)
	}
	if cfg.DefaultTrials != 600 {
		t.Fatalf("DefaultTrials = %d, want 600", cfg.DefaultTrials)
	}
}
