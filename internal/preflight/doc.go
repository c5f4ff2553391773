// Package preflight provides readiness checks for the external tools and
// filesystem paths apmeta depends on.
//
// These checks run in two contexts:
//   - The define command calls RequireTools before any file is processed, so
//     a missing siegfried or mediainfo aborts the batch up front.
//   - The CLI "apmeta status" command renders RunAll and CheckSystemDeps.
package preflight
