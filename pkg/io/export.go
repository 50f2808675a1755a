package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/matzehuels/inscribe/pkg/geom"
)

// WriteText encodes p in "x,y" line format. The output re-imports with
// [ReadText] to the same polygon, so it doubles as the canonical form used
// for cache keys.
func WriteText(p geom.Polygon, w io.Writer) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for _, v := range p {
		buf = strconv.AppendInt(buf[:0], int64(v.X), 10)
		buf = append(buf, ',')
		buf = strconv.AppendInt(buf, int64(v.Y), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	return bw.Flush()
}

// WriteJSON encodes p as a {"vertices": [[x,y], ...]} document.
func WriteJSON(p geom.Polygon, w io.Writer) error {
	doc := document{Vertices: make([][]int, len(p))}
	for i, v := range p {
		doc.Vertices[i] = []int{v.X, v.Y}
	}
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
