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
	"image"
	"math"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/dither/palette"
)

// A biasFunc computes a pattern value in [0, 1] from pixel coordinates.
// The coordinates passed in are already rotated into pattern space and
// divided by the cell size, so implementations only see cell-local
// geometry. Each function is a closed form and can be verified at fixed
// coordinates.
type biasFunc func(u, v float64) float64

// fract returns the fractional part of v, in [0, 1) also for negative v.
func fract(v float64) float64 {
	return v - math.Floor(v)
}

// cellCoords returns the position within the current cell, centred on
// the cell midpoint, each coordinate in [−0.5, 0.5).
func cellCoords(u, v float64) (cu, cv float64) {
	return fract(u) - 0.5, fract(v) - 0.5
}

// Halftone shape functions. Each maps the distance from the cell centre
// (under a shape-specific metric) to a bias, so that cell centres go
// dark first and cell corners last (or vice versa after inversion by
// the threshold sign).

func biasHalftoneDot(u, v float64) float64 {
	cu, cv := cellCoords(u, v)
	// Euclidean distance; /0.7071 normalises the corner distance to 1
	return math.Min(1, math.Hypot(cu, cv)/math.Sqrt2*2)
}

func biasHalftoneLine(u, v float64) float64 {
	_, cv := cellCoords(u, v)
	return math.Abs(cv) * 2
}

func biasHalftoneDiamond(u, v float64) float64 {
	cu, cv := cellCoords(u, v)
	return math.Min(1, math.Abs(cu)+math.Abs(cv))
}

func biasHalftoneCross(u, v float64) float64 {
	cu, cv := cellCoords(u, v)
	return math.Min(math.Abs(cu), math.Abs(cv)) * 2
}

func biasHalftoneStar(u, v float64) float64 {
	cu, cv := cellCoords(u, v)
	// blend of diamond and cross metrics gives a four-pointed star
	d := math.Abs(cu) + math.Abs(cv)
	c := math.Min(math.Abs(cu), math.Abs(cv)) * 2
	return math.Min(1, 0.5*d+c)
}

func biasHalftoneSquare(u, v float64) float64 {
	cu, cv := cellCoords(u, v)
	return math.Max(math.Abs(cu), math.Abs(cv)) * 2
}

func biasHalftoneEllipse(u, v float64) float64 {
	cu, cv := cellCoords(u, v)
	return math.Min(1, math.Hypot(cu, cv/0.6)/math.Sqrt2*2)
}

// Geometric pattern functions.

func biasCheckerboard(u, v float64) float64 {
	if (int(math.Floor(u))+int(math.Floor(v)))%2 == 0 {
		return 0.25
	}
	return 0.75
}

func biasHex(u, v float64) float64 {
	// distance to the nearest point of a hexagonal lattice: rows are
	// rowH apart, odd rows shifted by half a column
	const rowH = 0.8660254037844386 // √3/2
	row := math.Floor(v / rowH)
	best := math.Inf(1)
	for dr := -1.0; dr <= 1.0; dr++ {
		r := row + dr
		shift := 0.0
		if mod2(r) != 0 {
			shift = 0.5
		}
		cx := math.Round(u-shift) + shift
		cy := r * rowH
		d := math.Hypot(u-cx, v-cy)
		if d < best {
			best = d
		}
	}
	return math.Min(1, best*2)
}

func mod2(v float64) int {
	m := int(math.Floor(v)) % 2
	if m < 0 {
		m += 2
	}
	return m
}

func biasBrick(u, v float64) float64 {
	row := math.Floor(v)
	uu := u
	if mod2(row) != 0 {
		uu += 0.5 // running bond: odd courses shift half a brick
	}
	// distance to the mortar lines
	du := math.Abs(fract(uu) - 0.5)
	dv := math.Abs(fract(v) - 0.5)
	edge := math.Max(du, dv)
	return math.Min(1, (1-edge)*1.2-0.2)
}

func biasSpiral(u, v float64) float64 {
	r := math.Hypot(u, v)
	theta := math.Atan2(v, u)
	return fract(r - theta/(2*math.Pi))
}

func biasWave(u, v float64) float64 {
	return 0.5 + 0.5*math.Sin(2*math.Pi*(v+0.75*math.Sin(u)))
}

func biasDiagonalLines(u, v float64) float64 {
	return math.Abs(fract(u+v)-0.5) * 2
}

// patternSpecs maps the pattern algorithms to their bias function and
// base cell size in pixels (before the LineScale multiplier).
var patternSpecs = map[Algorithm]struct {
	bias biasFunc
	cell float64
}{
	HalftoneDot:     {biasHalftoneDot, 6},
	HalftoneLine:    {biasHalftoneLine, 4},
	HalftoneDiamond: {biasHalftoneDiamond, 6},
	HalftoneCross:   {biasHalftoneCross, 6},
	HalftoneStar:    {biasHalftoneStar, 8},
	HalftoneSquare:  {biasHalftoneSquare, 6},
	HalftoneEllipse: {biasHalftoneEllipse, 6},
	Checkerboard:    {biasCheckerboard, 2},
	HexPattern:      {biasHex, 8},
	BrickPattern:    {biasBrick, 8},
	SpiralPattern:   {biasSpiral, 12},
	WavePattern:     {biasWave, 6},
	DiagonalLines:   {biasDiagonalLines, 4},
}

// patternDither applies a closed-form pattern: per pixel, rotate the
// coordinates into pattern space, evaluate the bias, convert it to a
// signed threshold, add to the source colour, quantise. No full-image
// state is required.
func patternDither(img *image.RGBA, q *palette.Quantizer, alg Algorithm, p *Params) {
	spec := patternSpecs[alg]
	cell := spec.cell * float64(max(1, p.LineScale))

	// rotation into pattern space, about the image centre
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	cx := float64(w) / 2
	cy := float64(h) / 2
	rot := matrix.RotateDeg(-p.Angle)

	spread := p.spread()
	thresholdAt := func(x, y int) float64 {
		dx := float64(x) - cx
		dy := float64(y) - cy
		u := (rot[0]*dx + rot[2]*dy) / cell
		v := (rot[1]*dx + rot[3]*dy) / cell
		return (spec.bias(u, v) - 0.5) * 255 * spread
	}
	thresholdDither(img, q, thresholdAt)
}
