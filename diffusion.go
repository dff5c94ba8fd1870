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
	"fmt"
	"image"

	"seehuhn.de/go/dither/palette"
)

// Tap is one error-diffusion target, relative to the pixel being
// resolved. Taps must be causal: they may only reach pixels that are not
// yet finalised under the active scan direction (same row ahead, or a
// later row).
type Tap struct {
	DX, DY int
	Weight float64
}

// Kernel is an error-diffusion kernel: a causal set of taps plus a
// common divisor. If the divisor equals the sum of the weights, all
// quantisation error is conserved; kernels like Atkinson intentionally
// use a larger divisor and let part of the error decay.
type Kernel struct {
	Name    string
	Taps    []Tap
	Divisor float64
}

// The classic error-diffusion kernels.
var (
	kernelFloydSteinberg = Kernel{
		Name: "FloydSteinberg",
		Taps: []Tap{
			{1, 0, 7},
			{-1, 1, 3}, {0, 1, 5}, {1, 1, 1},
		},
		Divisor: 16,
	}
	kernelFalseFloydSteinberg = Kernel{
		Name: "FalseFloydSteinberg",
		Taps: []Tap{
			{1, 0, 3},
			{0, 1, 3}, {1, 1, 2},
		},
		Divisor: 8,
	}
	kernelJarvisJudiceNinke = Kernel{
		Name: "JarvisJudiceNinke",
		Taps: []Tap{
			{1, 0, 7}, {2, 0, 5},
			{-2, 1, 3}, {-1, 1, 5}, {0, 1, 7}, {1, 1, 5}, {2, 1, 3},
			{-2, 2, 1}, {-1, 2, 3}, {0, 2, 5}, {1, 2, 3}, {2, 2, 1},
		},
		Divisor: 48,
	}
	kernelStucki = Kernel{
		Name: "Stucki",
		Taps: []Tap{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
			{-2, 2, 1}, {-1, 2, 2}, {0, 2, 4}, {1, 2, 2}, {2, 2, 1},
		},
		Divisor: 42,
	}
	// Atkinson deliberately diffuses only 6/8 of the error; the rest is
	// discarded, which lightens shadows and darkens highlights.
	kernelAtkinson = Kernel{
		Name: "Atkinson",
		Taps: []Tap{
			{1, 0, 1}, {2, 0, 1},
			{-1, 1, 1}, {0, 1, 1}, {1, 1, 1},
			{0, 2, 1},
		},
		Divisor: 8,
	}
	kernelBurkes = Kernel{
		Name: "Burkes",
		Taps: []Tap{
			{1, 0, 8}, {2, 0, 4},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 8}, {1, 1, 4}, {2, 1, 2},
		},
		Divisor: 32,
	}
	kernelSierra = Kernel{
		Name: "Sierra",
		Taps: []Tap{
			{1, 0, 5}, {2, 0, 3},
			{-2, 1, 2}, {-1, 1, 4}, {0, 1, 5}, {1, 1, 4}, {2, 1, 2},
			{-1, 2, 2}, {0, 2, 3}, {1, 2, 2},
		},
		Divisor: 32,
	}
	kernelTwoRowSierra = Kernel{
		Name: "TwoRowSierra",
		Taps: []Tap{
			{1, 0, 4}, {2, 0, 3},
			{-2, 1, 1}, {-1, 1, 2}, {0, 1, 3}, {1, 1, 2}, {2, 1, 1},
		},
		Divisor: 16,
	}
	kernelSierraLite = Kernel{
		Name: "SierraLite",
		Taps: []Tap{
			{1, 0, 2},
			{-1, 1, 1}, {0, 1, 1},
		},
		Divisor: 4,
	}
)

var diffusionKernels = map[Algorithm]*Kernel{
	FloydSteinberg:      &kernelFloydSteinberg,
	FalseFloydSteinberg: &kernelFalseFloydSteinberg,
	JarvisJudiceNinke:   &kernelJarvisJudiceNinke,
	Stucki:              &kernelStucki,
	Atkinson:            &kernelAtkinson,
	Burkes:              &kernelBurkes,
	Sierra:              &kernelSierra,
	TwoRowSierra:        &kernelTwoRowSierra,
	SierraLite:          &kernelSierraLite,
}

// validate checks that all taps are causal for a left-to-right scan.
// The serpentine runner mirrors DX on right-to-left rows, which
// preserves causality.
func (k *Kernel) validate() error {
	for _, t := range k.Taps {
		if t.DY < 0 || (t.DY == 0 && t.DX <= 0) {
			return fmt.Errorf("dither: kernel %q: tap (%d,%d) is not causal", k.Name, t.DX, t.DY)
		}
	}
	return nil
}

// kernelFromMatrix builds a kernel from a dense weight grid with an
// explicit origin cell. Only causal (forward) offsets are kept; the
// origin cell itself and all backward cells are dropped.
func kernelFromMatrix(weights [][]float64, originX, originY int, divisor float64) (*Kernel, error) {
	if len(weights) == 0 || len(weights[0]) == 0 {
		return nil, fmt.Errorf("dither: empty diffusion matrix")
	}
	cols := len(weights[0])
	if originY < 0 || originY >= len(weights) || originX < 0 || originX >= cols {
		return nil, fmt.Errorf("dither: matrix origin (%d,%d) outside %d×%d grid",
			originX, originY, cols, len(weights))
	}
	k := &Kernel{Name: "custom", Divisor: divisor}
	for y, row := range weights {
		if len(row) != cols {
			return nil, fmt.Errorf("dither: ragged diffusion matrix: row %d has %d entries, want %d",
				y, len(row), cols)
		}
		for x, w := range row {
			if w == 0 {
				continue
			}
			dx, dy := x-originX, y-originY
			if dy < 0 || (dy == 0 && dx <= 0) {
				continue // backward cell, unreachable under raster scan
			}
			k.Taps = append(k.Taps, Tap{DX: dx, DY: dy, Weight: w})
		}
	}
	return k, nil
}

// diffuse runs the error-diffusion state machine over img in place.
// Each pixel depends on all causal predecessors, so the scan is strictly
// sequential within one image. Error accumulates in float64 planes, kept
// apart from the 8-bit output so repeated rounding cannot eat the small
// residuals the algorithm depends on.
func diffuse(img *image.RGBA, q *palette.Quantizer, k *Kernel, serpentine bool) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}

	// divisor 0 would mean dividing by zero below; treat the kernel as
	// empty and fall back to plain quantisation
	taps := k.Taps
	if k.Divisor == 0 {
		taps = nil
	}

	errR := make([]float64, w*h)
	errG := make([]float64, w*h)
	errB := make([]float64, w*h)

	for y := range h {
		rightToLeft := serpentine && y%2 == 1
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]

		for i := range w {
			x := i
			if rightToLeft {
				x = w - 1 - i
			}
			idx := y*w + x

			accR := float64(row[4*x]) + errR[idx]
			accG := float64(row[4*x+1]) + errG[idx]
			accB := float64(row[4*x+2]) + errB[idx]

			c := q.Nearest(accR, accG, accB)
			row[4*x] = c.R
			row[4*x+1] = c.G
			row[4*x+2] = c.B
			row[4*x+3] = 255

			eR := accR - float64(c.R)
			eG := accG - float64(c.G)
			eB := accB - float64(c.B)

			for _, t := range taps {
				dx := t.DX
				if rightToLeft {
					dx = -dx
				}
				nx, ny := x+dx, y+t.DY
				if nx < 0 || nx >= w || ny >= h {
					continue // error past the image edge is dropped
				}
				f := t.Weight / k.Divisor
				nidx := ny*w + nx
				errR[nidx] += eR * f
				errG[nidx] += eG * f
				errB[nidx] += eB * f
			}
		}
	}
}
