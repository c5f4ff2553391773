// Package logs reads the per-run log files apmeta writes into the log
// directory.
//
// It locates the newest run log, returns its last lines with bounded memory,
// follows it while a define run is still writing, and filters JSON lines by
// batch identifier so `apmeta logs --batch` can isolate one folder.
package logs
