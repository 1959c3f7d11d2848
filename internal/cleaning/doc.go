// Package cleaning reshapes a wide life-expectancy table into long records.
//
// The pipeline runs in a fixed order:
//   - Melt: every year column becomes one row per source row
//   - Split: the composite key "unit,sex,age,geo\time" becomes four fields
//   - Coerce: year to integer, value to float; failures become missing
//   - Drop: rows with a missing value are removed
//   - Filter: only rows for the requested region are kept
//
// Rows whose key does not split into exactly four fields fail the whole
// run with a MalformedKeyError instead of producing partial records.
//
// Rows with an invalid year but a valid value are kept with a nil Year
// unless strict year handling is enabled.
package cleaning
