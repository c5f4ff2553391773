// Package main hosts the apmeta CLI entrypoint and command graph.
//
// The Cobra-based command tree turns a folder of digital files into an
// ISAD(G) archival description (define), checks digital objects against the
// recorded checksums (verify), shows or opens an existing description
// (inspect), and reports tool and directory readiness (status). It centralizes
// configuration resolution and structured logging setup so subcommands can
// focus on presentation.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
