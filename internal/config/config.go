package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and state-file locations.
type Paths struct {
	LogDir      string `toml:"log_dir"`
	CatalogPath string `toml:"catalog_path"`
}

// Resources points at the reference datasets loaded once per batch.
type Resources struct {
	ArtistsCSV       string `toml:"artists_csv"`
	CycleSubjectsXML string `toml:"cycle_subjects_xml"`
}

// Tools names the external executables used for identification.
type Tools struct {
	Siegfried string `toml:"siegfried"`
	MediaInfo string `toml:"mediainfo"`
}

// Define contains settings for the define pipeline.
type Define struct {
	Recurse                      bool     `toml:"recurse"`
	IncludeExtInTitle            bool     `toml:"include_ext_in_title"`
	FuzzyArtistMatchMinThreshold float64  `toml:"fuzzy_artist_match_min_threshold"`
	ExifReadSizeBytes            int      `toml:"exif_read_size_bytes"`
	Concurrency                  int      `toml:"concurrency"`
	SkipFailedFiles              bool     `toml:"skip_failed_files"`
	ChecksumAlgorithm            string   `toml:"checksum_algorithm"`
	LocationOfOriginals          string   `toml:"location_of_originals"`
	PathNoiseSegments            []string `toml:"path_noise_segments"`
	ProgramAbbreviations         []string `toml:"program_abbreviations"`
	DebugDump                    bool     `toml:"debug_dump"`
}

// Inspect configures the external viewer used by `apmeta inspect --open`.
type Inspect struct {
	Viewer     string   `toml:"viewer"`
	ViewerArgs []string `toml:"viewer_args"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for apmeta.
//
// Configuration sections by subsystem:
//   - Paths: log directory and catalog database
//   - Resources: artist authority CSV and exhibition-cycle SKOS XML
//   - Tools: siegfried and mediainfo executables
//   - Define: enrichment pipeline knobs
//   - Inspect: spreadsheet viewer
//   - Logging: log format, level, and retention
type Config struct {
	Paths     Paths     `toml:"paths"`
	Resources Resources `toml:"resources"`
	Tools     Tools     `toml:"tools"`
	Define    Define    `toml:"define"`
	Inspect   Inspect   `toml:"inspect"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: %s", strings.TrimSpace(strict.String()))
			}
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("apmeta.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log directory and the catalog's parent directory.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if strings.TrimSpace(c.Paths.CatalogPath) != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.CatalogPath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SiegfriedBinary returns the Siegfried executable name.
func (c *Config) SiegfriedBinary() string {
	if c == nil || strings.TrimSpace(c.Tools.Siegfried) == "" {
		return defaultSiegfriedBinary
	}
	return c.Tools.Siegfried
}

// MediaInfoBinary returns the MediaInfo executable name.
func (c *Config) MediaInfoBinary() string {
	if c == nil || strings.TrimSpace(c.Tools.MediaInfo) == "" {
		return defaultMediaInfoBinary
	}
	return c.Tools.MediaInfo
}

// DebugDumpPath returns where the enriched file records are dumped for troubleshooting.
func (c *Config) DebugDumpPath() string {
	return filepath.Join(c.Paths.LogDir, debugDumpFilename)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
