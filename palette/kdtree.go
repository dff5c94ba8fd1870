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

package palette

import (
	"cmp"
	"image/color"
	"math"
	"slices"
)

var inf = math.Inf(1)

// kdNode is one node of a balanced 3-dimensional k-d tree over palette
// indices. The splitting axis cycles R, G, B with tree depth.
type kdNode struct {
	idx       int // palette index stored at this node
	axis      int // 0=R, 1=G, 2=B
	low, high *kdNode
}

func channel(c color.RGBA, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// buildKD builds a balanced tree over idx by recursive median splits.
// Entries with equal channel values sort by palette index, which keeps the
// tree deterministic for palettes with duplicate colours.
func buildKD(colors []color.RGBA, idx []int, depth int) *kdNode {
	if len(idx) == 0 {
		return nil
	}
	axis := depth % 3
	slices.SortFunc(idx, func(a, b int) int {
		if c := cmp.Compare(channel(colors[a], axis), channel(colors[b], axis)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	mid := len(idx) / 2
	return &kdNode{
		idx:  idx[mid],
		axis: axis,
		low:  buildKD(colors, idx[:mid], depth+1),
		high: buildKD(colors, idx[mid+1:], depth+1),
	}
}

// kdBest tracks the current best candidate during a search. Ties on
// distance resolve to the smaller palette index, so tree search returns
// exactly the same entry as a linear scan.
type kdBest struct {
	idx  int
	dist float64
}

func (b *kdBest) consider(colors []color.RGBA, i int, r, g, bl float64) {
	c := colors[i]
	dr := r - float64(c.R)
	dg := g - float64(c.G)
	db := bl - float64(c.B)
	d := dr*dr + dg*dg + db*db
	if d < b.dist || (d == b.dist && i < b.idx) {
		b.dist = d
		b.idx = i
	}
}

// search descends towards the half containing the target and backtracks
// into the far half only if the splitting plane is closer than the current
// best distance (branch-and-bound pruning).
func (n *kdNode) search(colors []color.RGBA, r, g, b float64, best *kdBest) {
	if n == nil {
		return
	}
	best.consider(colors, n.idx, r, g, b)

	var target float64
	switch n.axis {
	case 0:
		target = r
	case 1:
		target = g
	default:
		target = b
	}
	split := float64(channel(colors[n.idx], n.axis))

	near, far := n.low, n.high
	if target >= split {
		near, far = n.high, n.low
	}
	near.search(colors, r, g, b, best)

	// The far half can only contain an equal-or-better match if the
	// splitting plane itself is within the best distance. The comparison
	// must not prune on equality, or index-based tie-breaking would
	// depend on tree layout.
	planeDist := target - split
	if planeDist*planeDist <= best.dist {
		far.search(colors, r, g, b, best)
	}
}
