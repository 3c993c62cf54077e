// Package tables detects tables in a page's positioned text using geometric
// heuristics: no grid lines are consulted, only coordinate alignment.
//
// Detection runs in four stages. ClusterRows groups items into horizontal
// rows by vertical proximity. ClusterColumns groups each row's items into
// column clusters by horizontal proximity. Detector scans the row sequence
// with a single current-table accumulator, extending it while rows keep
// aligning to the accumulator's fixed columns and committing regions that
// pass the multi-criterion validity gate (minimum rows/columns, minimum
// bounding box, row-height consistency, column-count consistency). Finally
// buildGrid converts a committed region into a header/data-row grid by
// assigning each item to its nearest fixed column.
//
// Rejected candidates are not table results, but the reasons are reported
// to the attached diagnostics recorder so callers can tell "nothing
// detected" apart from "candidates rejected".
package tables
