package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"apmeta/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Reference datasets are written with the default fixtures so the config
// passes preflight out of the box.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CatalogPath = filepath.Join(base, "state", "catalog.db")
	cfgVal.Resources.ArtistsCSV = filepath.Join(base, "resources", "artists.csv")
	cfgVal.Resources.CycleSubjectsXML = filepath.Join(base, "resources", "cycles.xml")

	WriteText(t, cfgVal.Resources.ArtistsCSV, ArtistsCSV)
	WriteText(t, cfgVal.Resources.CycleSubjectsXML, CyclesXML)

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithArtists replaces the artist authority fixture.
func WithArtists(csv string) ConfigOption {
	return func(b *configBuilder) {
		WriteText(b.t, b.cfg.Resources.ArtistsCSV, csv)
	}
}

// WithCycles replaces the cycle subjects fixture.
func WithCycles(xml string) ConfigOption {
	return func(b *configBuilder) {
		WriteText(b.t, b.cfg.Resources.CycleSubjectsXML, xml)
	}
}

// WithTools points the siegfried and mediainfo settings at explicit paths.
func WithTools(siegfried, mediainfo string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Tools.Siegfried = siegfried
		b.cfg.Tools.MediaInfo = mediainfo
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}

// StubBinaries writes no-op executables for names into a fresh directory and
// returns it.
func StubBinaries(t testing.TB, names ...string) string {
	t.Helper()
	binDir := t.TempDir()
	for _, name := range names {
		WriteScript(t, filepath.Join(binDir, name), "exit 0\n")
	}
	return binDir
}

// WriteScript writes an executable shell script with the given body.
func WriteScript(t testing.TB, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("write script %s: %v", path, err)
	}
}
