package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/inscribe/pkg/errors"
	"github.com/matzehuels/inscribe/pkg/geom"
)

// maxLineBytes bounds a single input line. Real inputs are a few bytes per line.
const maxLineBytes = 1 << 16

// ReadText decodes a vertex list in "x,y" line format from r.
func ReadText(r io.Reader) (geom.Polygon, error) {
	var p geom.Polygon

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := parseVertex(line)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "line %d: %q is not x,y", n, line)
		}
		p = append(p, v)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "read vertices")
	}

	if len(p) < geom.MinVertices {
		return nil, errors.New(errors.ErrCodeMalformedInput, "need at least %d vertices, got %d", geom.MinVertices, len(p))
	}
	return p, nil
}

func parseVertex(line string) (geom.Vertex, error) {
	xs, ys, ok := strings.Cut(line, ",")
	if !ok {
		return geom.Vertex{}, fmt.Errorf("missing comma")
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return geom.Vertex{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return geom.Vertex{}, err
	}
	return geom.Vertex{X: x, Y: y}, nil
}

// LoadFile reads a vertex list in text format from path.
func LoadFile(path string) (geom.Polygon, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadText(f)
}

type document struct {
	Vertices [][]int `json:"vertices"`
}

// ReadJSON decodes a {"vertices": [[x,y], ...]} document from r.
func ReadJSON(r io.Reader) (geom.Polygon, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedInput, err, "decode vertices")
	}

	p := make(geom.Polygon, 0, len(doc.Vertices))
	for i, xy := range doc.Vertices {
		if len(xy) != 2 {
			return nil, errors.New(errors.ErrCodeMalformedInput, "vertex %d has %d coordinates, want 2", i, len(xy))
		}
		p = append(p, geom.Vertex{X: xy[0], Y: xy[1]})
	}

	if len(p) < geom.MinVertices {
		return nil, errors.New(errors.ErrCodeMalformedInput, "need at least %d vertices, got %d", geom.MinVertices, len(p))
	}
	return p, nil
}
