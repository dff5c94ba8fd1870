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
	"math/rand/v2"

	"seehuhn.de/go/dither/palette"
)

// whiteNoiseDither thresholds every pixel against an independent uniform
// draw. Rows get independent generators derived from the seed, so the
// result is reproducible and rows can run in parallel.
func whiteNoiseDither(img *image.RGBA, q *palette.Quantizer, seed uint64, spread float64) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			rng := rand.New(rand.NewPCG(seed, uint64(y)))
			row := img.Pix[y*img.Stride : y*img.Stride+4*w]
			for x := range w {
				t := (rng.Float64() - 0.5) * 255 * spread
				c := q.Nearest(
					float64(row[4*x])+t,
					float64(row[4*x+1])+t,
					float64(row[4*x+2])+t,
				)
				row[4*x] = c.R
				row[4*x+1] = c.G
				row[4*x+2] = c.B
				row[4*x+3] = 255
			}
		}
	})
}

// ignBias is the interleaved gradient noise of Jimenez: a closed-form
// hash of the pixel coordinates with a flat histogram and good
// high-frequency distribution, cheap enough to evaluate per pixel.
func ignBias(x, y int) float64 {
	return fract(52.9829189 * fract(0.06711056*float64(x)+0.00583715*float64(y)))
}

// interleavedGradientDither thresholds against interleaved gradient noise.
func interleavedGradientDither(img *image.RGBA, q *palette.Quantizer, spread float64) {
	thresholdDither(img, q, func(x, y int) float64 {
		return (ignBias(x, y) - 0.5) * 255 * spread
	})
}

// perlin is classic 2D gradient noise with a seeded permutation table.
type perlin struct {
	perm [512]uint8
}

func newPerlin(seed uint64) *perlin {
	p := &perlin{}
	var base [256]uint8
	for i := range base {
		base[i] = uint8(i)
	}
	rng := rand.New(rand.NewPCG(seed, 0x7065726c))
	rng.Shuffle(256, func(i, j int) {
		base[i], base[j] = base[j], base[i]
	})
	for i := range p.perm {
		p.perm[i] = base[i%256]
	}
	return p
}

func perlinFade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func perlinGrad(hash uint8, x, y float64) float64 {
	// 8 gradient directions
	switch hash & 7 {
	case 0:
		return x + y
	case 1:
		return x - y
	case 2:
		return -x + y
	case 3:
		return -x - y
	case 4:
		return x
	case 5:
		return -x
	case 6:
		return y
	default:
		return -y
	}
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// at returns the noise value at (x, y), in approximately [−1, 1].
func (p *perlin) at(x, y float64) float64 {
	xi := int(math.Floor(x)) & 255
	yi := int(math.Floor(y)) & 255
	xf := x - math.Floor(x)
	yf := y - math.Floor(y)

	u := perlinFade(xf)
	v := perlinFade(yf)

	aa := p.perm[int(p.perm[xi])+yi]
	ab := p.perm[int(p.perm[xi])+yi+1]
	ba := p.perm[int(p.perm[xi+1])+yi]
	bb := p.perm[int(p.perm[xi+1])+yi+1]

	return lerp(
		lerp(perlinGrad(aa, xf, yf), perlinGrad(ba, xf-1, yf), u),
		lerp(perlinGrad(ab, xf, yf-1), perlinGrad(bb, xf-1, yf-1), u),
		v,
	)
}

// perlinDither thresholds against coherent Perlin noise. The cell size
// sets the noise frequency.
func perlinDither(img *image.RGBA, q *palette.Quantizer, p *Params) {
	noise := newPerlin(p.Seed)
	cell := 8.0 * float64(max(1, p.LineScale))
	spread := p.spread()
	thresholdDither(img, q, func(x, y int) float64 {
		n := noise.at(float64(x)/cell, float64(y)/cell) // ≈ [−1, 1]
		return n * 0.5 * 255 * spread
	})
}
