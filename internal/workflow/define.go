package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"

	"apmeta/internal/archival"
	"apmeta/internal/catalog"
	"apmeta/internal/config"
	"apmeta/internal/fileutil"
	"apmeta/internal/isad"
	"apmeta/internal/logging"
	"apmeta/internal/preflight"
	"apmeta/internal/reference"
	"apmeta/internal/services"
)

// OutputPrefix and OutputExt name apmeta files: apmeta-<batchID>.csv.
const (
	OutputPrefix = "apmeta-"
	OutputExt    = ".csv"
)

// DefineOptions are the per-invocation inputs of Define.
type DefineOptions struct {
	Source string
	// Output overrides the apmeta file location.
	Output string
	// Progress receives a progress bar when non-nil.
	Progress io.Writer
}

// FileFailure records a file excluded from the batch.
type FileFailure struct {
	Path string
	Err  error
}

// DefineResult summarizes a completed define run.
type DefineResult struct {
	Source     string
	BatchID    string
	Reused     bool
	OutputPath string
	DebugPath  string
	Records    []isad.Record
	Files      int
	Skipped    []FileFailure
	Duration   time.Duration
}

// Definer runs the define pipeline.
type Definer struct {
	cfg          *config.Config
	logger       *slog.Logger
	tools        Toolchain
	requireTools bool
	now          func() time.Time
}

// DefinerOption customizes a Definer.
type DefinerOption func(*Definer)

// WithToolchain replaces the external tools. Binary availability is not
// checked for substituted toolchains.
func WithToolchain(tools Toolchain) DefinerOption {
	return func(d *Definer) {
		d.tools = tools
		d.requireTools = false
	}
}

// NewDefiner builds a Definer for cfg.
func NewDefiner(cfg *config.Config, logger *slog.Logger, opts ...DefinerOption) *Definer {
	d := &Definer{
		cfg:          cfg,
		logger:       logging.NewComponentLogger(logger, "define"),
		tools:        NewExternalToolchain(cfg),
		requireTools: true,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Define describes the folder at opts.Source and writes its apmeta file.
func (d *Definer) Define(ctx context.Context, opts DefineOptions) (*DefineResult, error) {
	started := d.now()
	source, err := resolveSourceDir(opts.Source)
	if err != nil {
		return nil, err
	}
	logger := d.logger.With(logging.String("source", source))
	logger.Info("define started", logging.String(logging.FieldEventType, "define_start"))

	if d.requireTools {
		if err := preflight.RequireTools(d.cfg); err != nil {
			logging.ErrorWithContext(logger, "required tools missing", "preflight_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "install siegfried and mediainfo or set [tools] in the config"),
			)
			return nil, err
		}
	}

	files, err := fileutil.ListFiles(source, d.cfg.Define.Recurse, isOutputName)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "define", "list files", "Unable to scan directory", err)
	}
	if len(files) == 0 {
		return nil, services.Wrap(services.ErrValidation, "define", "list files", "No eligible files found in "+source, nil)
	}
	logger.Info("files listed", logging.Int("count", len(files)))

	refs, err := reference.Load(d.cfg.Resources.ArtistsCSV, d.cfg.Resources.CycleSubjectsXML)
	if err != nil {
		return nil, err
	}
	logger.Debug("reference data loaded",
		logging.Int("artists", refs.Authority.Len()),
		logging.Int("cycles", len(refs.Cycles)),
	)

	lock, err := catalog.AcquireFolderLock(filepath.Dir(d.cfg.Paths.CatalogPath), source)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "define", "lock folder", "Folder is busy", err)
	}
	defer func() { _ = lock.Release() }()

	store, err := catalog.Open(d.cfg)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "define", "open catalog", "Catalog unavailable", err)
	}
	defer store.Close()

	batchID, reused, err := store.BatchIDFor(ctx, source)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "define", "batch id", "Unable to assign batch identifier", err)
	}
	ctx = services.WithBatchID(ctx, batchID)
	logger = logger.With(logging.String(logging.FieldBatchID, batchID))
	if reused {
		logger.Info("reusing batch identifier")
	}

	enriched, skipped, err := d.enrichAll(ctx, logger, source, files, refs, opts.Progress)
	if err != nil {
		return nil, err
	}
	if len(enriched) == 0 {
		return nil, services.Wrap(services.ErrValidation, "define", "enrich", "Every file failed identification", nil)
	}

	items, sorted := archival.Format(enriched, archival.FormatOptions{
		IncludeExtInTitle:   d.cfg.Define.IncludeExtInTitle,
		LocationOfOriginals: d.cfg.Define.LocationOfOriginals,
	})
	records, err := archival.Consolidate(items, source, batchID)
	if err != nil {
		return nil, err
	}

	output := strings.TrimSpace(opts.Output)
	if output == "" {
		output = filepath.Join(source, OutputPrefix+batchID+OutputExt)
	}
	if err := isad.WriteFile(output, records); err != nil {
		return nil, services.Wrap(services.ErrValidation, "define", "write csv", "Unable to write apmeta file", err)
	}

	objects := make([]catalog.DigitalObject, 0, len(sorted))
	for _, f := range sorted {
		obj := catalog.DigitalObject{Path: f.Path, Checksum: f.Checksum, Algorithm: d.cfg.Define.ChecksumAlgorithm}
		if info, statErr := os.Stat(f.Path); statErr == nil {
			obj.SizeBytes = info.Size()
		}
		objects = append(objects, obj)
	}
	if err := store.RecordBatch(ctx, catalog.Batch{
		ID:                batchID,
		SourceDir:         source,
		OutputPath:        output,
		RecordCount:       len(records),
		ChecksumAlgorithm: d.cfg.Define.ChecksumAlgorithm,
	}, objects); err != nil {
		logging.WarnWithContext(logger, "catalog update failed", "catalog_write_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "verify cannot fall back on recorded checksums for this batch"),
		)
	}

	result := &DefineResult{
		Source:     source,
		BatchID:    batchID,
		Reused:     reused,
		OutputPath: output,
		Records:    records,
		Files:      len(files),
		Skipped:    skipped,
	}
	if d.cfg.Define.DebugDump {
		path := d.cfg.DebugDumpPath()
		if err := writeDebugDump(path, sorted); err != nil {
			logging.WarnWithContext(logger, "debug dump failed", "debug_dump_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "no enrichment snapshot for this run"),
			)
		} else {
			result.DebugPath = path
		}
	}
	result.Duration = d.now().Sub(started)

	logger.Info("define completed",
		logging.String(logging.FieldEventType, "define_complete"),
		logging.String("output", output),
		logging.Int("records", len(records)),
		logging.Int("skipped", len(skipped)),
		logging.Duration("duration", result.Duration),
	)
	return result, nil
}

type enrichOutcome struct {
	file archival.MatchedFile
	err  error
}

// enrichAll fans files out to the worker pool and joins the results in input
// order. A file whose identification fails aborts the batch unless
// skip_failed_files is set, in which case it is reported and excluded.
func (d *Definer) enrichAll(ctx context.Context, logger *slog.Logger, source string, files []string, refs *reference.Data, progress io.Writer) ([]archival.MatchedFile, []FileFailure, error) {
	workers := d.cfg.Define.Concurrency
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription("Describing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	opts := archival.EnrichOptions{
		SourceDir: source,
		Threshold: d.cfg.Define.FuzzyArtistMatchMinThreshold,
		Cycles: archival.CycleRules{
			Abbreviations: d.cfg.Define.ProgramAbbreviations,
			Noise:         d.cfg.Define.PathNoiseSegments,
		},
	}

	outcomes := make([]enrichOutcome, len(files))
	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					outcomes[idx] = enrichOutcome{err: err}
					continue
				}
				fileCtx := services.WithFile(ctx, filepath.Base(files[idx]))
				f, err := d.enrichOne(fileCtx, logger, files[idx], refs, opts)
				outcomes[idx] = enrichOutcome{file: f, err: err}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	var (
		enriched []archival.MatchedFile
		skipped  []FileFailure
	)
	for i, outcome := range outcomes {
		if outcome.err == nil {
			enriched = append(enriched, outcome.file)
			continue
		}
		if !services.FileFatal(outcome.err) || !d.cfg.Define.SkipFailedFiles {
			return nil, nil, fmt.Errorf("%s: %w", filepath.Base(files[i]), outcome.err)
		}
		logging.WarnWithContext(logger, "file excluded from batch", "file_skipped",
			logging.String(logging.FieldFile, filepath.Base(files[i])),
			logging.Error(outcome.err),
			logging.String(logging.FieldImpact, "file has no record in the apmeta file"),
			logging.String(logging.FieldErrorHint, "check the file with sf and mediainfo, then re-run define"),
		)
		skipped = append(skipped, FileFailure{Path: files[i], Err: outcome.err})
	}
	return enriched, skipped, nil
}

func (d *Definer) enrichOne(ctx context.Context, logger *slog.Logger, path string, refs *reference.Data, opts archival.EnrichOptions) (archival.MatchedFile, error) {
	logger = logging.WithContext(ctx, logger)

	format, err := d.tools.Identify(services.WithStage(ctx, "identify"), path)
	if err != nil {
		return archival.MatchedFile{}, services.Wrap(services.ErrExternalTool, "define", "identify", "Format identification failed", err)
	}
	tech, err := d.tools.Technical(services.WithStage(ctx, "technical"), path)
	if err != nil {
		return archival.MatchedFile{}, services.Wrap(services.ErrExternalTool, "define", "technical metadata", "MediaInfo failed", err)
	}
	if tech.Modified.IsZero() {
		if info, statErr := os.Stat(path); statErr == nil {
			tech.Modified = info.ModTime()
		}
	}
	tech.Modified = tech.Modified.Local()

	checksum, err := fileutil.Checksum(path, d.cfg.Define.ChecksumAlgorithm)
	if err != nil {
		return archival.MatchedFile{}, services.Wrap(services.ErrValidation, "define", "checksum", "Unable to checksum file", err)
	}

	f, err := archival.NewIdentifiedFile(path, format, tech, checksum)
	if err != nil {
		return archival.MatchedFile{}, err
	}

	if tech.IsImage {
		tags, tagErr := d.tools.Tags(services.WithStage(ctx, "tags"), path)
		if tagErr != nil {
			logging.WarnWithContext(logger, "embedded tags unreadable", "exif_failed",
				logging.Error(tagErr),
				logging.String(logging.FieldImpact, "no credits or captions from embedded metadata"),
			)
		} else {
			f = f.WithTags(tags)
		}
	}

	matched, err := archival.Enrich(f, refs, opts)
	if err != nil {
		return archival.MatchedFile{}, err
	}
	logger.Debug("file enriched",
		logging.String("mime", format.MIME),
		logging.Int("names", len(matched.Names)),
		logging.Int("subjects", len(matched.Subjects)),
	)
	return matched, nil
}

func resolveSourceDir(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		source = "."
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "define", "resolve source", "Invalid source path", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "define", "resolve source", "Source folder not found", err)
	}
	if !info.IsDir() {
		return "", services.Wrap(services.ErrValidation, "define", "resolve source", "You need to give me a directory/folder", nil)
	}
	return abs, nil
}

func isOutputName(name string) bool {
	return strings.HasPrefix(name, OutputPrefix) && strings.EqualFold(filepath.Ext(name), OutputExt)
}

func writeDebugDump(path string, files []archival.MatchedFile) error {
	records := make([]archival.FileRecord, len(files))
	for i, f := range files {
		records[i] = f.Record()
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, data, 0o644)
}
