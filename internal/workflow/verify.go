package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"apmeta/internal/catalog"
	"apmeta/internal/config"
	"apmeta/internal/fileutil"
	"apmeta/internal/isad"
	"apmeta/internal/logging"
	"apmeta/internal/services"
)

// CheckStatus is the outcome of verifying one digital object.
type CheckStatus string

const (
	StatusPassed     CheckStatus = "passed"
	StatusMismatch   CheckStatus = "mismatch"
	StatusMissing    CheckStatus = "missing"
	StatusNoChecksum CheckStatus = "no checksum"
	StatusError      CheckStatus = "error"
)

// ObjectCheck reports the verification of one record's digital object.
type ObjectCheck struct {
	Title    string
	Path     string
	Expected string
	// FromCatalog is set when the expected digest came from the catalog
	// because the record carried none.
	FromCatalog bool
	Status      CheckStatus
	Err         error
}

// VerifyResult summarizes a verify run.
type VerifyResult struct {
	RecordFile string
	Checks     []ObjectCheck
}

// Passed counts checks whose digest matched.
func (r *VerifyResult) Passed() int {
	n := 0
	for _, c := range r.Checks {
		if c.Status == StatusPassed {
			n++
		}
	}
	return n
}

// Total is the number of records that reference a digital object.
func (r *VerifyResult) Total() int { return len(r.Checks) }

// Summary renders the one-line outcome printed by the CLI.
func (r *VerifyResult) Summary() string {
	return fmt.Sprintf("%d/%d passed checksum validation.", r.Passed(), r.Total())
}

// Verifier recomputes checksums for the digital objects an apmeta file references.
type Verifier struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewVerifier builds a Verifier for cfg.
func NewVerifier(cfg *config.Config, logger *slog.Logger) *Verifier {
	return &Verifier{cfg: cfg, logger: logging.NewComponentLogger(logger, "verify")}
}

// Verify checks every digital object referenced from the apmeta file at
// source. source may be the file itself or the folder holding it.
func (v *Verifier) Verify(ctx context.Context, source string) (*VerifyResult, error) {
	recordFile, err := LocateRecordFile(source)
	if err != nil {
		return nil, err
	}
	logger := v.logger.With(logging.String("record_file", recordFile))

	records, err := isad.ReadFile(recordFile)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "verify", "read csv", "Unable to read apmeta file", err)
	}
	var objects []isad.Record
	for _, r := range records {
		if strings.TrimSpace(r.Get(isad.DigitalObjectPath)) != "" {
			objects = append(objects, r)
		}
	}
	if len(objects) == 0 {
		return nil, services.Wrap(services.ErrValidation, "verify", "filter records", "No archival descriptions with digital objects found", nil)
	}

	// The catalog is only a fallback for records without a digest.
	var store *catalog.Store
	if strings.TrimSpace(v.cfg.Paths.CatalogPath) != "" {
		if _, statErr := os.Stat(v.cfg.Paths.CatalogPath); statErr == nil {
			store, err = catalog.Open(v.cfg)
			if err != nil {
				logging.WarnWithContext(logger, "catalog unavailable", "catalog_open_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "records without checksums cannot be verified"),
				)
				store = nil
			} else {
				defer store.Close()
			}
		}
	}

	result := &VerifyResult{RecordFile: recordFile}
	for _, r := range objects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		check := v.check(ctx, store, r)
		result.Checks = append(result.Checks, check)
		attrs := []logging.Attr{
			logging.String(logging.FieldFile, filepath.Base(check.Path)),
			logging.String("status", string(check.Status)),
		}
		if check.Status == StatusPassed {
			logger.Debug("checksum verified", logging.Args(attrs...)...)
			continue
		}
		if check.Err != nil {
			attrs = append(attrs, logging.Error(check.Err))
		}
		logging.WarnWithContext(logger, "checksum verification failed", "verify_failed",
			append(attrs, logging.String(logging.FieldImpact, "digital object does not match its description"))...)
	}

	logger.Info("verify completed",
		logging.String(logging.FieldEventType, "verify_complete"),
		logging.Int("passed", result.Passed()),
		logging.Int("total", result.Total()),
	)
	return result, nil
}

func (v *Verifier) check(ctx context.Context, store *catalog.Store, r isad.Record) ObjectCheck {
	check := ObjectCheck{
		Title:    r.Get(isad.Title),
		Path:     r.Get(isad.DigitalObjectPath),
		Expected: strings.TrimSpace(r.Get(isad.DigitalObjectChecksum)),
	}
	if _, err := os.Stat(check.Path); err != nil {
		check.Status = StatusMissing
		if !errors.Is(err, os.ErrNotExist) {
			check.Status = StatusError
			check.Err = err
		}
		return check
	}
	if check.Expected == "" && store != nil {
		obj, found, err := store.LookupChecksum(ctx, check.Path)
		if err != nil {
			check.Status = StatusError
			check.Err = err
			return check
		}
		if found {
			check.Expected = obj.Checksum
			check.FromCatalog = true
		}
	}
	if check.Expected == "" {
		check.Status = StatusNoChecksum
		return check
	}
	ok, err := fileutil.VerifyChecksum(check.Path, check.Expected)
	switch {
	case err != nil:
		check.Status = StatusError
		check.Err = err
	case ok:
		check.Status = StatusPassed
	default:
		check.Status = StatusMismatch
	}
	return check
}

// LocateRecordFile resolves source to an apmeta file. A directory resolves to
// its most recently modified apmeta-*.csv.
func LocateRecordFile(source string) (string, error) {
	if strings.TrimSpace(source) == "" {
		source = "."
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "locate", "resolve path", "Invalid path", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", services.Wrap(services.ErrNotFound, "locate", "stat", "Path not found", err)
	}
	if !info.IsDir() {
		if !strings.EqualFold(filepath.Ext(abs), OutputExt) {
			return "", services.Wrap(services.ErrValidation, "locate", "check extension", "Expected a .csv apmeta file", nil)
		}
		return abs, nil
	}

	matches, err := filepath.Glob(filepath.Join(abs, OutputPrefix+"*"+OutputExt))
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "locate", "glob", "Unable to scan folder", err)
	}
	type candidate struct {
		path  string
		mtime int64
	}
	candidates := make([]candidate, 0, len(matches))
	for _, m := range matches {
		fi, statErr := os.Stat(m)
		if statErr != nil || fi.IsDir() {
			continue
		}
		candidates = append(candidates, candidate{path: m, mtime: fi.ModTime().UnixNano()})
	}
	if len(candidates) == 0 {
		return "", services.Wrap(services.ErrNotFound, "locate", "glob", "No apmeta file found in "+abs, nil)
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].mtime != candidates[j].mtime {
			return candidates[i].mtime > candidates[j].mtime
		}
		return candidates[i].path < candidates[j].path
	})
	return candidates[0].path, nil
}
