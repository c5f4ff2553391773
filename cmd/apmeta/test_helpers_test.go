package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"apmeta/internal/config"
	"apmeta/internal/testsupport"
)

const sfReport = `{"siegfried":"1.11.0","files":[{"filename":"x","errors":"","matches":[{"ns":"pronom","id":"fmt/43","format":"JPEG File Interchange Format","mime":"image/jpeg"}]}]}`

const mediainfoJSON = `{"media":{"track":[{"@type":"General","Format":"JPEG","File_Modified_Date":"2021-06-01 12:00:00 UTC"},{"@type":"Image","Format":"JPEG"}]}}`

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	source     string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	cfg := testsupport.NewConfig(t)
	base := testsupport.BaseDir(cfg)
	t.Setenv("HOME", filepath.Join(base, "home"))

	binDir := filepath.Join(base, "bin")
	sf := filepath.Join(binDir, "sf")
	mi := filepath.Join(binDir, "mediainfo")
	testsupport.WriteScript(t, sf, "cat <<'JSON'\n"+sfReport+"\nJSON\n")
	testsupport.WriteScript(t, mi, "if [ \"$1\" = \"--Output=JSON\" ]; then\ncat <<'JSON'\n"+mediainfoJSON+"\nJSON\nelse\nprintf 'General\\nComplete name    : %s\\n' \"$1\"\nfi\n")
	cfg.Tools.Siegfried = sf
	cfg.Tools.MediaInfo = mi
	cfg.Inspect.Viewer = filepath.Join(binDir, "viewer")
	testsupport.WriteScript(t, cfg.Inspect.Viewer, "exit 0\n")

	source := filepath.Join(base, "IAIR_22.1", "ArtistName")
	testsupport.WriteFile(t, filepath.Join(source, "IMG_2021.05.12.jpg"), 2048)
	testsupport.WriteFile(t, filepath.Join(source, "IMG_2021.05.20.jpg"), 1024)

	configPath := filepath.Join(base, "apmeta.toml")
	writeTestConfig(t, configPath, cfg)
	return &cliTestEnv{cfg: cfg, configPath: configPath, source: source}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
