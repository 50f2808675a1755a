// Package io reads and writes polygon vertex lists.
//
// # Text Format
//
// The canonical input is one vertex per line in boundary order:
//
//	7,1
//	11,1
//	11,7
//
// The edge from the last line back to the first is implied. Whitespace around
// coordinates and blank lines are ignored. Any other deviation is a
// MALFORMED_INPUT error carrying the 1-based line number.
//
// # JSON Format
//
// The HTTP API also accepts a JSON document:
//
//	{"vertices": [[7,1], [11,1], [11,7]]}
//
// # Validation
//
// [ReadText], [ReadJSON] and [LoadFile] only check syntax and the minimum
// vertex count. Geometric validation (axis-aligned edges, non-zero area) is
// done by [geom.Polygon.Validate] so that every entry point reports the same
// error codes.
//
// [geom.Polygon.Validate]: github.com/matzehuels/inscribe/pkg/geom.Polygon.Validate
package io
