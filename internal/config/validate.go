package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateDefine(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return errors.New("paths.log_dir must be set")
	}
	if strings.TrimSpace(c.Resources.ArtistsCSV) == "" {
		return errors.New("resources.artists_csv must be set (or set " + ArtistsEnv + ")")
	}
	if strings.TrimSpace(c.Resources.CycleSubjectsXML) == "" {
		return errors.New("resources.cycle_subjects_xml must be set (or set " + CyclesEnv + ")")
	}
	return nil
}

func (c *Config) validateDefine() error {
	if c.Define.FuzzyArtistMatchMinThreshold < 0 || c.Define.FuzzyArtistMatchMinThreshold > 1 {
		return errors.New("define.fuzzy_artist_match_min_threshold must be between 0 and 1")
	}
	if err := ensurePositiveMap(map[string]int{
		"define.exif_read_size_bytes": c.Define.ExifReadSizeBytes,
		"define.concurrency":          c.Define.Concurrency,
	}); err != nil {
		return err
	}
	switch c.Define.ChecksumAlgorithm {
	case ChecksumSHA256, ChecksumXXHash:
	default:
		return fmt.Errorf("define.checksum_algorithm %q is not supported (use %s or %s)", c.Define.ChecksumAlgorithm, ChecksumSHA256, ChecksumXXHash)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
