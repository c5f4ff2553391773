package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"apmeta/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.ArtistsEnv, "")
	t.Setenv(config.CyclesEnv, "")

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

	wantLogs := filepath.Join(tempHome, ".local", "share", "apmeta", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	wantArtists := filepath.Join(tempHome, ".config", "apmeta", "resources", "artists.csv")
	if cfg.Resources.ArtistsCSV != wantArtists {
		t.Fatalf("unexpected artists csv: got %q want %q", cfg.Resources.ArtistsCSV, wantArtists)
	}
	if cfg.Define.FuzzyArtistMatchMinThreshold != 0.8 {
		t.Fatalf("unexpected default threshold: %v", cfg.Define.FuzzyArtistMatchMinThreshold)
	}
	if cfg.Define.ChecksumAlgorithm != config.ChecksumSHA256 {
		t.Fatalf("unexpected checksum algorithm: %q", cfg.Define.ChecksumAlgorithm)
	}
	if cfg.SiegfriedBinary() != "sf" || cfg.MediaInfoBinary() != "mediainfo" {
		t.Fatalf("unexpected tool binaries: %q %q", cfg.SiegfriedBinary(), cfg.MediaInfoBinary())
	}
	if got := strings.Join(cfg.Define.ProgramAbbreviations, ","); got != "IAIR,WW,HS" {
		t.Fatalf("unexpected program abbreviations: %q", got)
	}
	if cfg.DebugDumpPath() != filepath.Join(wantLogs, "last-output-debug.json") {
		t.Fatalf("unexpected debug dump path: %q", cfg.DebugDumpPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "apmeta.toml")

	type payload struct {
		Define struct {
			Threshold            float64  `toml:"fuzzy_artist_match_min_threshold"`
			Concurrency          int      `toml:"concurrency"`
			ChecksumAlgorithm    string   `toml:"checksum_algorithm"`
			ProgramAbbreviations []string `toml:"program_abbreviations"`
		} `toml:"define"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Define.Threshold = 0.65
	custom.Define.Concurrency = 2
	custom.Define.ChecksumAlgorithm = " XXHash "
	custom.Define.ProgramAbbreviations = []string{"iair", " WW ", "IAIR", ""}
	custom.Logging.Format = "JSON"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Define.FuzzyArtistMatchMinThreshold != 0.65 {
		t.Fatalf("expected threshold override, got %v", cfg.Define.FuzzyArtistMatchMinThreshold)
	}
	if cfg.Define.Concurrency != 2 {
		t.Fatalf("expected concurrency 2, got %d", cfg.Define.Concurrency)
	}
	if cfg.Define.ChecksumAlgorithm != config.ChecksumXXHash {
		t.Fatalf("expected normalized xxhash, got %q", cfg.Define.ChecksumAlgorithm)
	}
	if got := strings.Join(cfg.Define.ProgramAbbreviations, ","); got != "IAIR,WW" {
		t.Fatalf("expected deduplicated abbreviations, got %q", got)
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json log format, got %q", cfg.Logging.Format)
	}
	if cfg.Define.ExifReadSizeBytes != config.Default().Define.ExifReadSizeBytes {
		t.Fatalf("expected default exif read size, got %d", cfg.Define.ExifReadSizeBytes)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "apmeta.toml")
	if err := os.WriteFile(configPath, []byte("[define]\nthreshhold = 0.5\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestEnvVarOverridesResourcePaths(t *testing.T) {
	tempDir := t.TempDir()
	artists := filepath.Join(tempDir, "env-artists.csv")
	cycles := filepath.Join(tempDir, "env-cycles.xml")
	t.Setenv(config.ArtistsEnv, artists)
	t.Setenv(config.CyclesEnv, cycles)

	configPath := filepath.Join(tempDir, "apmeta.toml")
	contents := "[resources]\nartists_csv = \"/file/artists.csv\"\ncycle_subjects_xml = \"/file/cycles.xml\"\n"
	if err := os.WriteFile(configPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Resources.ArtistsCSV != artists {
		t.Errorf("expected artists from env, got %q", cfg.Resources.ArtistsCSV)
	}
	if cfg.Resources.CycleSubjectsXML != cycles {
		t.Errorf("expected cycles from env, got %q", cfg.Resources.CycleSubjectsXML)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if !strings.Contains(cfg.Paths.LogDir, "apmeta") {
		t.Fatalf("expected log dir to contain apmeta, got %q", cfg.Paths.LogDir)
	}
	if cfg.Define.FuzzyArtistMatchMinThreshold != config.Default().Define.FuzzyArtistMatchMinThreshold {
		t.Fatalf("sample threshold drifted from default: %v", cfg.Define.FuzzyArtistMatchMinThreshold)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"threshold above one", func(c *config.Config) { c.Define.FuzzyArtistMatchMinThreshold = 1.5 }},
		{"negative threshold", func(c *config.Config) { c.Define.FuzzyArtistMatchMinThreshold = -0.1 }},
		{"zero concurrency", func(c *config.Config) { c.Define.Concurrency = 0 }},
		{"zero exif read size", func(c *config.Config) { c.Define.ExifReadSizeBytes = 0 }},
		{"unknown checksum", func(c *config.Config) { c.Define.ChecksumAlgorithm = "md5" }},
		{"missing artists", func(c *config.Config) { c.Resources.ArtistsCSV = "" }},
		{"missing cycles", func(c *config.Config) { c.Resources.CycleSubjectsXML = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}
