// Package display formats the end-of-run output of creoclean.
//
// PrintSummary writes one line per cleaned directory:
//
//	Summary:
//	  /work/asm: 3 removed, 2 renamed, 1 unchanged, 0 failed
//	  /work/busy: skipped, locked by another process
//
// and, when any file operation failed, a Warning block listing each failure
// with a suggestion. Color is applied through fatih/color only when the caller
// asks for it, so output captured in tests or redirected to a file stays plain.
package display
