// seehuhn.de/go/dither - an image dithering library
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package palette provides fixed output palettes and nearest-colour search.
//
// A Palette is an ordered list of opaque RGB colours. A Quantizer maps
// arbitrary colours to the nearest palette entry under squared Euclidean
// distance in RGB space. Small palettes use a linear scan; larger ones are
// backed by a k-d tree built once per Quantizer.
package palette

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrEmpty is returned when a Quantizer is requested for an empty palette.
var ErrEmpty = errors.New("palette: no colours")

// Palette is an ordered, non-empty list of opaque colours. The order is
// significant: nearest-colour ties resolve to the earlier entry.
type Palette []color.RGBA

// New builds a palette from the given colours. Alpha is forced to 255.
func New(colors ...color.RGBA) Palette {
	p := make(Palette, len(colors))
	for i, c := range colors {
		p[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	return p
}

// Parse builds a palette from CSS-style hex strings such as "#1a2b3c"
// or "#fff".
func Parse(hex ...string) (Palette, error) {
	p := make(Palette, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("palette: entry %d: %w", i, err)
		}
		r, g, b := c.RGB255()
		p[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p, nil
}

// BlackWhite is the two-colour palette used by monochrome output devices.
func BlackWhite() Palette {
	return Palette{
		{R: 0, G: 0, B: 0, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
}

// Gray returns a palette of n evenly spaced gray levels, black to white.
// n must be at least 2.
func Gray(n int) Palette {
	if n < 2 {
		n = 2
	}
	p := make(Palette, n)
	for i := range p {
		v := uint8(i * 255 / (n - 1))
		p[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return p
}

// linearSearchMax is the largest palette size for which a linear scan is
// used. For palettes this small the k-d tree's traversal overhead exceeds
// the saved comparisons.
const linearSearchMax = 4

// Quantizer maps colours to their nearest palette entry. It is immutable
// after construction and safe for concurrent use.
type Quantizer struct {
	colors []color.RGBA
	tree   *kdNode // nil for palettes of at most linearSearchMax colours
}

// NewQuantizer validates the palette and builds the search structure.
// The palette is copied; later changes to p do not affect the Quantizer.
func NewQuantizer(p Palette) (*Quantizer, error) {
	if len(p) == 0 {
		return nil, ErrEmpty
	}
	colors := make([]color.RGBA, len(p))
	for i, c := range p {
		colors[i] = color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
	}
	q := &Quantizer{colors: colors}
	if len(colors) > linearSearchMax {
		idx := make([]int, len(colors))
		for i := range idx {
			idx[i] = i
		}
		q.tree = buildKD(colors, idx, 0)
	}
	return q, nil
}

// Len returns the number of palette entries.
func (q *Quantizer) Len() int {
	return len(q.colors)
}

// Color returns the palette entry with the given index.
func (q *Quantizer) Color(i int) color.RGBA {
	return q.colors[i]
}

// Nearest returns the palette colour closest to (r, g, b) under squared
// Euclidean distance. The inputs may lie outside [0, 255]; they are used
// as-is, so accumulated dithering error does not have to be clamped first.
func (q *Quantizer) Nearest(r, g, b float64) color.RGBA {
	return q.colors[q.NearestIndex(r, g, b)]
}

// NearestIndex is like Nearest but returns the palette index.
func (q *Quantizer) NearestIndex(r, g, b float64) int {
	if q.tree == nil {
		return q.nearestLinear(r, g, b)
	}
	best := kdBest{idx: -1, dist: inf}
	q.tree.search(q.colors, r, g, b, &best)
	return best.idx
}

func (q *Quantizer) nearestLinear(r, g, b float64) int {
	bestIdx := 0
	bestDist := inf
	for i, c := range q.colors {
		dr := r - float64(c.R)
		dg := g - float64(c.G)
		db := b - float64(c.B)
		d := dr*dr + dg*dg + db*db
		if d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	return bestIdx
}
