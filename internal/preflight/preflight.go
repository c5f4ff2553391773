package preflight

import (
	"apmeta/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	return []Result{
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckParentWritable("Catalog database", cfg.Paths.CatalogPath),
		CheckFileReadable("Artist authority CSV", cfg.Resources.ArtistsCSV),
		CheckFileReadable("Cycle subjects XML", cfg.Resources.CycleSubjectsXML),
	}
}

// Failed returns only the failing results.
func Failed(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}
