package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pngpress/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogDir := filepath.Join(tempHome, ".local", "share", "pngpress", "logs")
	if cfg.Paths.LogDir != wantLogDir {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogDir)
	}
	if cfg.Convert.Workers != 14 {
		t.Fatalf("unexpected default workers: %d", cfg.Convert.Workers)
	}
	if cfg.Convert.MaxSizeMB != 15 {
		t.Fatalf("unexpected default max size: %d", cfg.Convert.MaxSizeMB)
	}
	if cfg.Convert.MaxDimension != 4000 {
		t.Fatalf("unexpected default max dimension: %d", cfg.Convert.MaxDimension)
	}
	if cfg.Convert.StartQuality != 90 || cfg.Convert.FloorQuality != 30 || cfg.Convert.QualityStep != 5 {
		t.Fatalf("unexpected quality defaults: %d/%d/%d",
			cfg.Convert.StartQuality, cfg.Convert.FloorQuality, cfg.Convert.QualityStep)
	}
	if !cfg.History.Enabled {
		t.Fatal("expected history enabled by default")
	}
	if cfg.History.Path != filepath.Join(tempHome, ".local", "share", "pngpress", "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.History.Path)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadReadsTOMLAndNormalizes(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(tempHome, "pngpress.toml")
	content := `
[paths]
input_dir = "~/shots"
output_dir = "~/shots-out"

[convert]
workers = 4
max_size_mb = 2

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if cfg.Paths.InputDir != filepath.Join(tempHome, "shots") {
		t.Fatalf("input dir not expanded: %q", cfg.Paths.InputDir)
	}
	if cfg.Convert.Workers != 4 {
		t.Fatalf("workers not read: %d", cfg.Convert.Workers)
	}
	if cfg.MaxSizeBytes() != 2<<20 {
		t.Fatalf("unexpected byte budget: %d", cfg.MaxSizeBytes())
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not normalized: %q/%q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"zero workers", func(c *config.Config) { c.Convert.Workers = 0 }, "convert.workers"},
		{"zero budget", func(c *config.Config) { c.Convert.MaxSizeMB = 0 }, "convert.max_size_mb"},
		{"zero dimension", func(c *config.Config) { c.Convert.MaxDimension = 0 }, "convert.max_dimension"},
		{"quality above 100", func(c *config.Config) { c.Convert.StartQuality = 101 }, "convert.start_quality"},
		{"floor above start", func(c *config.Config) { c.Convert.FloorQuality = 95 }, "convert.floor_quality"},
		{"zero step", func(c *config.Config) { c.Convert.QualityStep = 0 }, "convert.quality_step"},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
		{"bad level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Logging.Format = "console"
			cfg.Logging.Level = "info"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	if err := config.CreateSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Convert.Workers != config.Default().Convert.Workers {
		t.Fatalf("sample config changed defaults: %d", cfg.Convert.Workers)
	}
}
