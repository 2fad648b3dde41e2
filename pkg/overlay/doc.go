// Package overlay reconciles externally supplied tabular measurements with
// the pathway graph's reaction edges.
//
// Measurement tables arrive as loosely formatted CSV/TSV exports whose
// identifier column rarely matches the graph's internal naming convention
// exactly ("R00200", "rn:R00200", "RN:R00200", quoted, underscored...).
// Both sides are therefore expanded into candidate key sets by a single
// shared function, [ExpandCandidates], and a match is any intersection of
// the two sets.
//
// The pipeline is ParseTable -> CandidateKeys -> Apply: parse the uploaded
// text into a key/value table, derive each edge's candidate keys, take the
// first hit per edge, and map matched values onto edge color and width by
// linear interpolation over the matched range.
package overlay
