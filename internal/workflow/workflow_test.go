package workflow_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"apmeta/internal/archival"
	"apmeta/internal/catalog"
	"apmeta/internal/config"
	"apmeta/internal/isad"
	"apmeta/internal/logging"
	"apmeta/internal/services"
	"apmeta/internal/testsupport"
	"apmeta/internal/workflow"
)

type fakeToolchain struct {
	mu        sync.Mutex
	failing   map[string]error
	tags      map[string]map[string]string
	modified  time.Time
	tagCalls  int
	identified []string
}

func newFakeToolchain() *fakeToolchain {
	return &fakeToolchain{
		failing:  map[string]error{},
		tags:     map[string]map[string]string{},
		modified: time.Date(2021, 6, 1, 12, 0, 0, 0, time.Local),
	}
}

func (f *fakeToolchain) Identify(_ context.Context, path string) (archival.FormatMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.identified = append(f.identified, path)
	if err, ok := f.failing[filepath.Base(path)]; ok {
		return archival.FormatMatch{}, err
	}
	return archival.FormatMatch{ID: "fmt/43", MIME: "image/jpeg", Format: "JPEG File Interchange Format"}, nil
}

func (f *fakeToolchain) Technical(_ context.Context, path string) (archival.Technical, error) {
	return archival.Technical{
		Report:   "General\nOriginal name: " + filepath.Base(path),
		Modified: f.modified,
		IsImage:  true,
	}, nil
}

func (f *fakeToolchain) Tags(_ context.Context, path string) (map[string]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tagCalls++
	return f.tags[filepath.Base(path)], nil
}

func residencyFolder(t *testing.T, cfg *config.Config, names ...string) string {
	t.Helper()
	dir := filepath.Join(testsupport.BaseDir(cfg), "IAIR_22.1", "ArtistName")
	for i, name := range names {
		testsupport.WriteFile(t, filepath.Join(dir, name), int64(1024*(i+1)))
	}
	return dir
}

func runDefine(t *testing.T, cfg *config.Config, tools workflow.Toolchain, source string) *workflow.DefineResult {
	t.Helper()
	definer := workflow.NewDefiner(cfg, logging.NewNop(), workflow.WithToolchain(tools))
	result, err := definer.Define(context.Background(), workflow.DefineOptions{Source: source})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	return result
}

func TestDefineWritesConsolidatedRecords(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	tools := newFakeToolchain()
	tools.tags["IMG_2021.05.12.jpg"] = map[string]string{"ImageDescription": "Credit: J. Doe"}
	dir := residencyFolder(t, cfg, "IMG_2021.05.20.jpg", "IMG_2021.05.12.jpg", ".DS_Store")

	result := runDefine(t, cfg, tools, dir)

	if len(result.BatchID) != catalog.BatchIDLength {
		t.Fatalf("batch id %q has unexpected length", result.BatchID)
	}
	if result.Reused {
		t.Fatal("first run should mint a new batch id")
	}
	want := filepath.Join(dir, "apmeta-"+result.BatchID+".csv")
	if result.OutputPath != want {
		t.Fatalf("output path = %q, want %q", result.OutputPath, want)
	}
	if result.Files != 2 {
		t.Fatalf("files = %d, want 2 (junk skipped)", result.Files)
	}
	if tools.tagCalls != 2 {
		t.Fatalf("tag reads = %d, want 2", tools.tagCalls)
	}

	records, err := isad.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want 3", len(records))
	}
	parent := records[0]
	if parent.Get(isad.LevelOfDescription) != isad.LevelFile {
		t.Fatalf("first record level = %q, want container", parent.Get(isad.LevelOfDescription))
	}
	if parent.Get(isad.Identifier) != result.BatchID {
		t.Fatalf("parent identifier = %q, want batch id", parent.Get(isad.Identifier))
	}
	if parent.Get(isad.NameAccessPoints) != "ArtistName" {
		t.Fatalf("parent names = %q", parent.Get(isad.NameAccessPoints))
	}
	if parent.Get(isad.EventStartDates) != "2021-05-12" || parent.Get(isad.EventEndDates) != "2021-06-01" {
		t.Fatalf("parent date range = %q..%q", parent.Get(isad.EventStartDates), parent.Get(isad.EventEndDates))
	}
	if !strings.Contains(parent.Get(isad.SubjectAccessPoints), "International Artist-in-Residence 22.1") {
		t.Fatalf("parent subjects = %q, want cycle subject", parent.Get(isad.SubjectAccessPoints))
	}
	first := records[1]
	if first.Get(isad.DigitalObjectPath) != filepath.Join(dir, "IMG_2021.05.12.jpg") {
		t.Fatalf("first child = %q, want natural order", first.Get(isad.DigitalObjectPath))
	}
	if first.Get(isad.ReproductionConditions) != "Credit: J. Doe" {
		t.Fatalf("credit = %q", first.Get(isad.ReproductionConditions))
	}
	if first.Get(isad.ParentID) != parent.Get(isad.LegacyID) {
		t.Fatalf("child parentId = %q, want %q", first.Get(isad.ParentID), parent.Get(isad.LegacyID))
	}

	store, err := catalog.Open(cfg)
	if err != nil {
		t.Fatalf("open catalog: %v", err)
	}
	defer store.Close()
	obj, found, err := store.LookupChecksum(context.Background(), first.Get(isad.DigitalObjectPath))
	if err != nil || !found {
		t.Fatalf("catalog lookup: found=%v err=%v", found, err)
	}
	if obj.Checksum != first.Get(isad.DigitalObjectChecksum) {
		t.Fatalf("catalog checksum %q != record checksum %q", obj.Checksum, first.Get(isad.DigitalObjectChecksum))
	}
	if obj.SizeBytes != 2048 {
		t.Fatalf("catalog size = %d, want 2048", obj.SizeBytes)
	}
}

func TestDefineReusesBatchIDAndIgnoresOwnOutput(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := residencyFolder(t, cfg, "a.jpg", "b.jpg")

	first := runDefine(t, cfg, newFakeToolchain(), dir)
	second := runDefine(t, cfg, newFakeToolchain(), dir)

	if !second.Reused || second.BatchID != first.BatchID {
		t.Fatalf("second run batch = %q reused=%v, want %q reused", second.BatchID, second.Reused, first.BatchID)
	}
	if second.Files != 2 {
		t.Fatalf("second run listed %d files, want the apmeta file excluded", second.Files)
	}
	if second.OutputPath != first.OutputPath {
		t.Fatalf("output moved from %q to %q", first.OutputPath, second.OutputPath)
	}
}

func TestDefineFailurePolicy(t *testing.T) {
	identifyErr := services.Wrap(services.ErrExternalTool, "siegfried", "identify", "no match", nil)

	t.Run("abort", func(t *testing.T) {
		cfg := testsupport.NewConfig(t)
		dir := residencyFolder(t, cfg, "good.jpg", "broken.jpg")
		tools := newFakeToolchain()
		tools.failing["broken.jpg"] = identifyErr

		_, err := workflow.NewDefiner(cfg, logging.NewNop(), workflow.WithToolchain(tools)).
			Define(context.Background(), workflow.DefineOptions{Source: dir})
		if !errors.Is(err, services.ErrExternalTool) {
			t.Fatalf("expected external tool error, got %v", err)
		}
		matches, _ := filepath.Glob(filepath.Join(dir, "apmeta-*.csv"))
		if len(matches) != 0 {
			t.Fatalf("aborted run wrote %v", matches)
		}
	})

	t.Run("skip", func(t *testing.T) {
		cfg := testsupport.NewConfig(t)
		cfg.Define.SkipFailedFiles = true
		dir := residencyFolder(t, cfg, "good.jpg", "broken.jpg")
		tools := newFakeToolchain()
		tools.failing["broken.jpg"] = identifyErr

		result := runDefine(t, cfg, tools, dir)
		if len(result.Skipped) != 1 || filepath.Base(result.Skipped[0].Path) != "broken.jpg" {
			t.Fatalf("skipped = %+v", result.Skipped)
		}
		if len(result.Records) != 1 {
			t.Fatalf("records = %d, want lone item without container", len(result.Records))
		}
		if result.Records[0].Get(isad.LevelOfDescription) != isad.LevelItem {
			t.Fatalf("lone record level = %q", result.Records[0].Get(isad.LevelOfDescription))
		}
	})
}

func TestDefineRejectsBadSources(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	definer := workflow.NewDefiner(cfg, logging.NewNop(), workflow.WithToolchain(newFakeToolchain()))

	empty := filepath.Join(testsupport.BaseDir(cfg), "empty")
	if err := os.MkdirAll(empty, 0o755); err != nil {
		t.Fatal(err)
	}
	testsupport.WriteText(t, filepath.Join(empty, "Thumbs.db"), "x")
	if _, err := definer.Define(context.Background(), workflow.DefineOptions{Source: empty}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("empty folder: expected validation error, got %v", err)
	}

	file := filepath.Join(testsupport.BaseDir(cfg), "file.jpg")
	testsupport.WriteFile(t, file, 10)
	if _, err := definer.Define(context.Background(), workflow.DefineOptions{Source: file}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("file source: expected validation error, got %v", err)
	}

	missing := filepath.Join(testsupport.BaseDir(cfg), "nope")
	if _, err := definer.Define(context.Background(), workflow.DefineOptions{Source: missing}); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("missing source: expected not found, got %v", err)
	}
}

func TestDefineRejectsBrokenReferenceData(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithCycles(`<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#"></rdf:RDF>`))
	dir := residencyFolder(t, cfg, "a.jpg")
	_, err := workflow.NewDefiner(cfg, logging.NewNop(), workflow.WithToolchain(newFakeToolchain())).
		Define(context.Background(), workflow.DefineOptions{Source: dir})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestDefineRequiresTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithTools("/nonexistent/sf", "/nonexistent/mediainfo"))
	dir := residencyFolder(t, cfg, "a.jpg")
	_, err := workflow.NewDefiner(cfg, logging.NewNop()).
		Define(context.Background(), workflow.DefineOptions{Source: dir})
	if !errors.Is(err, services.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestDefineDebugDump(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Define.DebugDump = true
	cfg.Define.Concurrency = 1
	dir := residencyFolder(t, cfg, "a.jpg", "b.jpg")
	output := filepath.Join(testsupport.BaseDir(cfg), "out", "batch.csv")

	definer := workflow.NewDefiner(cfg, logging.NewNop(), workflow.WithToolchain(newFakeToolchain()))
	result, err := definer.Define(context.Background(), workflow.DefineOptions{Source: dir, Output: output})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	if result.OutputPath != output {
		t.Fatalf("output = %q, want override %q", result.OutputPath, output)
	}
	if result.DebugPath != cfg.DebugDumpPath() {
		t.Fatalf("debug path = %q", result.DebugPath)
	}
	data, err := os.ReadFile(result.DebugPath)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	if !strings.Contains(string(data), `"checksum"`) || !strings.Contains(string(data), "a.jpg") {
		t.Fatalf("dump missing file records: %s", data)
	}
}

func TestVerifyReportsEachStatus(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := residencyFolder(t, cfg, "a.jpg", "b.jpg", "c.jpg")
	result := runDefine(t, cfg, newFakeToolchain(), dir)

	verifier := workflow.NewVerifier(cfg, logging.NewNop())
	report, err := verifier.Verify(context.Background(), dir)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.RecordFile != result.OutputPath {
		t.Fatalf("record file = %q, want %q", report.RecordFile, result.OutputPath)
	}
	if got := report.Summary(); got != "3/3 passed checksum validation." {
		t.Fatalf("summary = %q", got)
	}

	testsupport.WriteText(t, filepath.Join(dir, "b.jpg"), "tampered")
	if err := os.Remove(filepath.Join(dir, "c.jpg")); err != nil {
		t.Fatal(err)
	}
	report, err = verifier.Verify(context.Background(), result.OutputPath)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	statuses := map[string]workflow.CheckStatus{}
	for _, c := range report.Checks {
		statuses[filepath.Base(c.Path)] = c.Status
	}
	want := map[string]workflow.CheckStatus{
		"a.jpg": workflow.StatusPassed,
		"b.jpg": workflow.StatusMismatch,
		"c.jpg": workflow.StatusMissing,
	}
	for name, status := range want {
		if statuses[name] != status {
			t.Fatalf("%s status = %q, want %q", name, statuses[name], status)
		}
	}
	if got := report.Summary(); got != "1/3 passed checksum validation." {
		t.Fatalf("summary = %q", got)
	}
}

func TestVerifyFallsBackToCatalog(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := residencyFolder(t, cfg, "a.jpg", "b.jpg")
	result := runDefine(t, cfg, newFakeToolchain(), dir)

	records, err := isad.ReadFile(result.OutputPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range records {
		r.Set(isad.DigitalObjectChecksum, "")
	}
	stripped := filepath.Join(testsupport.BaseDir(cfg), "stripped.csv")
	if err := isad.WriteFile(stripped, records); err != nil {
		t.Fatal(err)
	}

	report, err := workflow.NewVerifier(cfg, logging.NewNop()).Verify(context.Background(), stripped)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.Passed() != 2 {
		t.Fatalf("passed = %d, want 2 via catalog", report.Passed())
	}
	for _, c := range report.Checks {
		if !c.FromCatalog {
			t.Fatalf("%s expected digest from catalog", c.Path)
		}
	}

	if err := os.Remove(cfg.Paths.CatalogPath); err != nil {
		t.Fatal(err)
	}
	report, err = workflow.NewVerifier(cfg, logging.NewNop()).Verify(context.Background(), stripped)
	if err != nil {
		t.Fatalf("Verify without catalog: %v", err)
	}
	for _, c := range report.Checks {
		if c.Status != workflow.StatusNoChecksum {
			t.Fatalf("%s status = %q, want no checksum", c.Path, c.Status)
		}
	}
}

func TestVerifyWithoutDigitalObjects(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	path := filepath.Join(testsupport.BaseDir(cfg), "apmeta-empty.csv")
	r := isad.NewRecord()
	r.Set(isad.Title, "Folder only")
	if err := isad.WriteFile(path, []isad.Record{r}); err != nil {
		t.Fatal(err)
	}
	_, err := workflow.NewVerifier(cfg, logging.NewNop()).Verify(context.Background(), path)
	if !errors.Is(err, services.ErrValidation) || !strings.Contains(err.Error(), "No archival descriptions with digital objects found") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLocateRecordFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := workflow.LocateRecordFile(dir); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("empty dir: expected not found, got %v", err)
	}

	older := filepath.Join(dir, "apmeta-old.csv")
	newer := filepath.Join(dir, "apmeta-new.csv")
	testsupport.WriteText(t, older, "title\n")
	testsupport.WriteText(t, newer, "title\n")
	testsupport.WriteText(t, filepath.Join(dir, "notes.csv"), "title\n")
	now := time.Now()
	testsupport.Touch(t, older, now.Add(-time.Hour))
	testsupport.Touch(t, newer, now)

	got, err := workflow.LocateRecordFile(dir)
	if err != nil {
		t.Fatalf("LocateRecordFile: %v", err)
	}
	if got != newer {
		t.Fatalf("got %q, want newest %q", got, newer)
	}

	if got, err := workflow.LocateRecordFile(older); err != nil || got != older {
		t.Fatalf("explicit file: got %q, %v", got, err)
	}
	txt := filepath.Join(dir, "readme.txt")
	testsupport.WriteText(t, txt, "x")
	if _, err := workflow.LocateRecordFile(txt); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("non-csv: expected validation error, got %v", err)
	}
}

func TestInspectHierarchy(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	dir := residencyFolder(t, cfg, "a.jpg", "b.jpg")
	runDefine(t, cfg, newFakeToolchain(), dir)
	if err := os.Remove(filepath.Join(dir, "b.jpg")); err != nil {
		t.Fatal(err)
	}

	h, err := workflow.Inspect(dir)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if len(h.Rows) != 3 || h.Children() != 2 {
		t.Fatalf("rows = %d children = %d", len(h.Rows), h.Children())
	}
	if !h.Rows[0].IsContainer() || h.Rows[0].Path != "" {
		t.Fatalf("first row should be the container: %+v", h.Rows[0])
	}
	if h.Rows[1].SizeBytes != 1024 || h.Rows[2].SizeBytes != -1 {
		t.Fatalf("sizes = %d, %d", h.Rows[1].SizeBytes, h.Rows[2].SizeBytes)
	}
	if h.TotalBytes() != 1024 {
		t.Fatalf("total = %d", h.TotalBytes())
	}
}

func TestOpenViewer(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	marker := filepath.Join(testsupport.BaseDir(cfg), "opened")
	viewer := filepath.Join(testsupport.BaseDir(cfg), "bin", "viewer")
	testsupport.WriteScript(t, viewer, fmt.Sprintf("echo \"$@\" > %q\n", marker))
	cfg.Inspect.Viewer = viewer
	cfg.Inspect.ViewerArgs = []string{"--calc"}

	if err := workflow.OpenViewer(cfg, "/tmp/apmeta-x.csv"); err != nil {
		t.Fatalf("OpenViewer: %v", err)
	}
	deadline := time.Now().Add(5 * time.Second)
	for {
		data, err := os.ReadFile(marker)
		if err == nil && strings.TrimSpace(string(data)) == "--calc /tmp/apmeta-x.csv" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("viewer did not run with expected args (last read %q, %v)", data, err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cfg.Inspect.Viewer = "apmeta-no-such-viewer"
	if err := workflow.OpenViewer(cfg, "/tmp/x.csv"); !errors.Is(err, services.ErrDependency) {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
