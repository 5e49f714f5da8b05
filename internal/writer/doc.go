// Package writer emits the engine's flat-file outputs.
//
// Writers:
//   - Settlement results (CSV, best-to-worst)
//   - Missing-data exclusions (CSV)
//   - Tie-break evidence (CSV, one row per intraday sample)
//   - Canonical participant list (CSV, normalizer output)
//
// Every file is written once, after computation completes, via a temp file
// renamed into place, so a crash mid-run leaves no partially-committed output.
package writer
