// Package roster loads the asset catalog and participant list from flat CSV
// inputs, resolves the distinct set of assets actually chosen by participants,
// and normalizes raw entrant exports into the canonical participant format.
//
// Inputs are trusted to be deduplicated and capped upstream; the only checks
// here are the ones needed to keep keying consistent (lowercased symbols,
// canonical date keys).
package roster
