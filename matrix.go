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

package dither

import (
	"errors"
	"fmt"
)

// Matrix is a square threshold matrix for ordered dithering. Generated
// matrices (Bayer, blue noise) contain each rank 0..N²−1 exactly once;
// custom matrices may hold arbitrary non-negative ranks and normalise by
// their maximum rank plus one instead.
type Matrix struct {
	n     int
	rank  []int // row-major, len n*n
	denom int   // normalisation denominator
}

// Size returns the side length N of the matrix.
func (m *Matrix) Size() int {
	return m.n
}

// Rank returns the rank stored at (x, y).
func (m *Matrix) Rank(x, y int) int {
	return m.rank[y*m.n+x]
}

// IsPermutation reports whether the matrix contains each of the ranks
// 0..N²−1 exactly once. All generated matrices satisfy this; it
// guarantees uniform threshold coverage.
func (m *Matrix) IsPermutation() bool {
	seen := make([]bool, m.n*m.n)
	for _, r := range m.rank {
		if r < 0 || r >= len(seen) || seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

// Bayer returns the Bayer dispersed-dot matrix of the given order; the
// matrix has side length 2^order. Order 0 is the 1×1 matrix [[0]]; each
// recursion step replaces a value v by the quadrants 4v, 4v+2, 4v+3,
// 4v+1 (top-left, top-right, bottom-left, bottom-right). This quadrant
// placement is what produces the classic Bayer look; a different
// placement would be a distinct algorithm, not an equivalent one.
func Bayer(order int) *Matrix {
	n := 1
	rank := []int{0}
	for range order {
		n2 := 2 * n
		next := make([]int, n2*n2)
		for y := range n {
			for x := range n {
				v := 4 * rank[y*n+x]
				next[y*n2+x] = v            // top-left
				next[y*n2+x+n] = v + 2      // top-right
				next[(y+n)*n2+x] = v + 3    // bottom-left
				next[(y+n)*n2+x+n] = v + 1  // bottom-right
			}
		}
		n = n2
		rank = next
	}
	return &Matrix{n: n, rank: rank, denom: n * n}
}

// NewMatrix builds a custom threshold matrix from a dense rank grid.
// The grid must be square and non-empty; ranks must be non-negative.
// Thresholds are normalised by max(rank)+1, so a grid of all-equal
// values is valid and yields a uniform threshold.
func NewMatrix(ranks [][]int) (*Matrix, error) {
	n := len(ranks)
	if n == 0 {
		return nil, errors.New("dither: empty threshold matrix")
	}
	m := &Matrix{n: n, rank: make([]int, 0, n*n)}
	maxRank := 0
	for y, row := range ranks {
		if len(row) != n {
			return nil, fmt.Errorf("dither: threshold matrix is not square: row %d has %d entries, want %d",
				y, len(row), n)
		}
		for x, r := range row {
			if r < 0 {
				return nil, fmt.Errorf("dither: negative rank %d at (%d,%d)", r, x, y)
			}
			if r > maxRank {
				maxRank = r
			}
			m.rank = append(m.rank, r)
		}
	}
	m.denom = maxRank + 1
	return m, nil
}

// thresholds precomputes the signed per-cell threshold values, scaled to
// 8-bit range and by the user spread factor. The result is a flat array
// indexed by (y%N)*N + (x%N), so the per-pixel cost of ordered dithering
// is a single lookup.
func (m *Matrix) thresholds(spread float64) []float64 {
	t := make([]float64, len(m.rank))
	d := float64(m.denom)
	for i, r := range m.rank {
		t[i] = ((float64(r)+0.5)/d - 0.5) * 255 * spread
	}
	return t
}
