package main

import (
	"os"
	"path/filepath"
	"testing"

	"apmeta/internal/isad"
)

func TestDefineVerifyInspect(t *testing.T) {
	env := setupCLITestEnv(t)

	out, stderr, err := runCLI(t, []string{"define", env.source, "--concurrency", "2"}, env.configPath)
	if err != nil {
		t.Fatalf("define: %v\nstderr: %s", err, stderr)
	}
	requireContains(t, out, "Records:")
	requireContains(t, out, "Described 2 digital objects.")

	matches, _ := filepath.Glob(filepath.Join(env.source, "apmeta-*.csv"))
	if len(matches) != 1 {
		t.Fatalf("expected one apmeta file, got %v", matches)
	}
	records, err := isad.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read apmeta file: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}

	out, _, err = runCLI(t, []string{"verify", env.source}, env.configPath)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	requireContains(t, out, "2/2 passed checksum validation.")

	out, _, err = runCLI(t, []string{"inspect", matches[0]}, env.configPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	requireContains(t, out, "Record file: "+matches[0])
	requireContains(t, out, "2 items, 3.0 KiB on disk")

	out, _, err = runCLI(t, []string{"open", env.source}, env.configPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	requireContains(t, out, "Opened "+matches[0])
}

func TestVerifyReportsTampering(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, stderr, err := runCLI(t, []string{"define", env.source}, env.configPath); err != nil {
		t.Fatalf("define: %v\nstderr: %s", err, stderr)
	}
	if err := os.WriteFile(filepath.Join(env.source, "IMG_2021.05.20.jpg"), []byte("changed"), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, []string{"verify", env.source}, env.configPath)
	if err == nil {
		t.Fatal("expected verify to fail after tampering")
	}
	requireContains(t, out, "mismatch")
	requireContains(t, out, "1/2 passed checksum validation.")
}

func TestDefineRejectsInvalidThreshold(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"define", env.source, "--threshold", "1.5"}, env.configPath)
	if err == nil {
		t.Fatal("expected invalid threshold to fail")
	}
	requireContains(t, err.Error(), "fuzzy_artist_match_min_threshold")
}

func TestStatusReportsToolsAndPaths(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== Tools ==")
	requireContains(t, out, "[OK] Ready ("+env.cfg.Tools.Siegfried+")")
	requireContains(t, out, "Artist authority CSV:")
	requireContains(t, out, "No folders described yet")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}
}

func TestLogsShowsLatestRun(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, stderr, err := runCLI(t, []string{"define", env.source}, env.configPath); err != nil {
		t.Fatalf("define: %v\nstderr: %s", err, stderr)
	}
	out, _, err := runCLI(t, []string{"logs", "--lines", "200"}, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	requireContains(t, out, "define completed")
}
