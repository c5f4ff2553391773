package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeResources(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeDefine()
	c.normalizeInspect()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CatalogPath) == "" {
		c.Paths.CatalogPath = defaultCatalogPath
	}
	if c.Paths.CatalogPath, err = expandPath(strings.TrimSpace(c.Paths.CatalogPath)); err != nil {
		return fmt.Errorf("paths.catalog_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeResources() error {
	if value, ok := os.LookupEnv(ArtistsEnv); ok && strings.TrimSpace(value) != "" {
		c.Resources.ArtistsCSV = value
	}
	if value, ok := os.LookupEnv(CyclesEnv); ok && strings.TrimSpace(value) != "" {
		c.Resources.CycleSubjectsXML = value
	}
	var err error
	if c.Resources.ArtistsCSV, err = expandPath(strings.TrimSpace(c.Resources.ArtistsCSV)); err != nil {
		return fmt.Errorf("resources.artists_csv: %w", err)
	}
	if c.Resources.CycleSubjectsXML, err = expandPath(strings.TrimSpace(c.Resources.CycleSubjectsXML)); err != nil {
		return fmt.Errorf("resources.cycle_subjects_xml: %w", err)
	}
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.Siegfried = strings.TrimSpace(c.Tools.Siegfried)
	if c.Tools.Siegfried == "" {
		c.Tools.Siegfried = defaultSiegfriedBinary
	}
	c.Tools.MediaInfo = strings.TrimSpace(c.Tools.MediaInfo)
	if c.Tools.MediaInfo == "" {
		c.Tools.MediaInfo = defaultMediaInfoBinary
	}
}

func (c *Config) normalizeDefine() {
	c.Define.ChecksumAlgorithm = strings.ToLower(strings.TrimSpace(c.Define.ChecksumAlgorithm))
	if c.Define.ChecksumAlgorithm == "" {
		c.Define.ChecksumAlgorithm = defaultChecksumAlgorithm
	}
	if c.Define.ExifReadSizeBytes == 0 {
		c.Define.ExifReadSizeBytes = defaultExifReadSizeBytes
	}
	if c.Define.Concurrency == 0 {
		c.Define.Concurrency = defaultConcurrency
	}
	c.Define.LocationOfOriginals = strings.TrimSpace(c.Define.LocationOfOriginals)
	c.Define.PathNoiseSegments = dedupeTrimmed(c.Define.PathNoiseSegments, false)
	c.Define.ProgramAbbreviations = dedupeTrimmed(c.Define.ProgramAbbreviations, true)
	if len(c.Define.ProgramAbbreviations) == 0 {
		c.Define.ProgramAbbreviations = append([]string(nil), defaultProgramAbbreviations...)
	}
}

func (c *Config) normalizeInspect() {
	c.Inspect.Viewer = strings.TrimSpace(c.Inspect.Viewer)
	if c.Inspect.Viewer == "" {
		c.Inspect.Viewer = defaultViewer
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

func dedupeTrimmed(values []string, upper bool) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		normalized := strings.TrimSpace(value)
		if upper {
			normalized = strings.ToUpper(normalized)
		}
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}
