// Package pkg provides the core libraries for inscribe.
//
// # Overview
//
// Inscribe finds the largest axis-aligned rectangle that has two vertices of
// a rectilinear polygon as opposite corners and lies entirely inside the
// polygon. Areas count lattice points inclusively, so the rectangle with
// corners (2,3) and (9,5) has area 8*3 = 24.
//
// # Architecture
//
// The data flow through inscribe:
//
//	vertex file ("x,y" per line)
//	         ↓
//	    [io] package (parse and load)
//	         ↓
//	    [geom] package (polygon validation)
//	         ↓
//	    [raster] package (column interval sets + disambiguation)
//	         ↓
//	    [candidate] package (vertex pairs ranked by area)
//	         ↓
//	    [search] package (first contained candidate wins)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/inscribe/pkg/io"
//	    "github.com/matzehuels/inscribe/pkg/raster"
//	    "github.com/matzehuels/inscribe/pkg/search"
//	)
//
//	p, _ := io.LoadFile("input.txt")
//	res, err := search.Restricted(ctx, p, raster.HalfOpen, search.Options{Workers: 8})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Area())
//
// # Main Packages
//
// ## Solver
//
// [geom] - Lattice vertices, edges, polygons and inclusive rectangles.
//
// [raster] - One sorted breakpoint list per integer column; [raster.Build]
// rasterizes the vertical edges and resolves hill-top and valley-bottom
// ambiguities. [raster.Columns.Contains] answers whether a rectangle lies
// inside.
//
// [candidate] - Lazy enumeration of all vertex pairs and the deterministic
// area ranking.
//
// [search] - Sequential and batched-parallel walks over ranked candidates,
// plus the unrestricted maximum.
//
// ## Orchestration
//
// [pipeline] - Load → rasterize → search with caching, logging and
// observability hooks. Used by the CLI and the HTTP server.
//
// [cache] - Result caches: file, Redis, MongoDB and a null cache.
//
// [config] - TOML configuration file.
//
// [observability] - Hook registry for search and cache events.
//
// [errors] - Coded errors shared by every package.
//
// ## Drawing
//
// [render] - Point-in-polygon helpers and format names, with text, dot
// (Graphviz) and png subpackages.
//
// # Testing
//
//	go test ./...                        # All tests
//	go test ./pkg/search/...             # Specific package
//	INSCRIBE_TEST_REDIS_URL=redis://localhost:6379/15 go test ./pkg/cache/
package pkg
