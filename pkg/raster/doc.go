// Package raster turns a rectilinear polygon into per-column interval sets
// and answers rectangle containment queries against them.
//
// # Pipeline
//
// Building the interior takes three steps:
//
//  1. [Rasterize] records, for every integer column, the y of each horizontal
//     edge crossing or touching it, and defers vertical edges as [Span]s.
//  2. [Disambiguate] drops span endpoints that are not real run boundaries:
//     a lower endpoint that continues a run already open below it, and an
//     upper endpoint that is interior in both neighbor columns.
//  3. [Columns.Validate] checks the even-count, strictly-increasing form.
//     Polygons whose horizontal edges are one unit apart can leave a column
//     with a dangling last breakpoint; [Columns.Contains] rejects runs that
//     start there, so the columns stay usable and Validate is diagnostic.
//
// [Build] runs the first two under [DefaultLimits]; [BuildWithin] takes
// explicit [Limits]. The resulting [Columns] value is never modified
// afterwards and can be shared by concurrent readers.
//
// # Example
//
// The polygon below has a hill-top at (7,3): column 7 sees horizontal edges
// at y=1, y=3 and y=5, but y=3 is interior on both columns 6 and 8, so the
// finalized column 7 is the single run [1,5].
//
//	. . . . . # # # # #
//	. . . . . # o o o #
//	# # # # # # o o o #
//	# o o o o o o o o #
//	# # # # # # # # o #
//	. . . . . . . # o #
//	. . . . . . . # # #
//
// # Containment
//
// [Columns.Contains] tests the columns of a rectangle one at a time with a
// binary search per column, so a check costs O(w log b) for a rectangle w
// columns wide and b breakpoints per column. [Policy] chooses whether the
// rectangle's rightmost column is inspected.
package raster
