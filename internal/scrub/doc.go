// Package scrub removes superseded and disposable files from Creo working
// directories.
//
// Two passes run over each directory, always in this order:
//
// # Version collapsing
//
// Creo saves every revision of a model as "<name>.<ext>.<n>", e.g.
// "bracket.prt.1", "bracket.prt.2", ... The Collapser parses each filename
// with ParseVersionedName, groups the results by extension, and for every
// extension with at least two files keeps only the highest version of each
// base name. The survivor is renamed to version 1, so the newest revision of a
// model is always "<name>.<ext>.1" afterwards. Versions compare numerically:
// 10 is newer than 9.
//
// An extension cohort with a single file is not touched at all, even if that
// file is not version 1.
//
// # Auxiliary sweep
//
// The Sweeper deletes trail files, logs and geometry caches matched by
// DefaultAuxiliaryPatterns. Patterns are evaluated independently and their
// matches concatenated, so a file matched twice is deleted twice and the
// second attempt is logged as a failure.
//
// # Failure model
//
// No single remove or rename failure stops a pass. Each one is logged as a
// warning, recorded as an OpError in the pass Report, and processing moves on.
// Callers learn about outcomes from the logger and from the Report counts.
//
// # Dry run
//
// With Options.DryRun set, every mutation is replaced by an info line
// describing it and the directory is left exactly as it was.
//
// All filesystem access goes through an afero.Fs with paths joined from the
// directory argument; nothing depends on the process working directory.
package scrub
