package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *c != *Defaults() {
		t.Errorf("expected defaults %+v, got %+v", *Defaults(), *c)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.yaml")
	content := "data_path: /data/deaths.csv\nyear_default: 2010\ntop_n: 3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DEATHREPORT_LISTEN_ADDR", ":9999")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DataPath != "/data/deaths.csv" || c.YearDefault != 2010 || c.TopN != 3 {
		t.Errorf("file values not applied: %+v", c)
	}
	if c.ListenAddr != ":9999" {
		t.Errorf("env override not applied: %q", c.ListenAddr)
	}
	if c.YearMin != 1990 || c.YearMax != 2019 {
		t.Errorf("defaults lost: %+v", c)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("year_default: 1980\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error for year_default outside range")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	want := Defaults()
	want.OutDir = "charts"

	written, err := Save(want, path)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if written != path {
		t.Errorf("expected %s, got %s", path, written)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *want {
		t.Errorf("expected %+v, got %+v", *want, *got)
	}
}
