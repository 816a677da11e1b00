// Package features owns the canonical 561-key feature schema and the
// statistics that fill it.
//
// Keys follow <prefix>-<statistic>-<axis> for tri-axial groups and
// <prefix>-<statistic> for magnitude groups. Column order is fixed by
// Keys(), never by map iteration. The schema is versioned by
// SchemaVersion; any change to the key list must bump it.
//
// Degenerate inputs (zero range, zero denominator, zero-length vectors)
// never produce NaN or Inf. The affected feature is written as 0 and
// reported in Diagnostics.
package features
