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

// Gray-Scott model constants. U is the inhibitor-like species (initial
// concentration 1), V the activator-like species (initial 0).
const (
	grayScottDu = 0.16
	grayScottDv = 0.08
	grayScottF  = 0.035
	grayScottK  = 0.065

	// grayScottMaxSide caps the simulation resolution; the V field is
	// upsampled bilinearly for compositing.
	grayScottMaxSide = 256

	// grayScottIterBudget divided by the square root of the cell count
	// gives the iteration count, so smaller grids iterate more and the
	// total run time stays roughly level.
	grayScottIterBudget = 512000
)

// grayScottField holds both species, double-buffered. Updates read the
// previous iteration's complete field, so the buffers swap by index
// flip after every step.
type grayScottField struct {
	w, h int
	u, v [2][]float64
	cur  int // buffer currently holding the state
}

func newGrayScottField(w, h int, seed uint64) *grayScottField {
	f := &grayScottField{w: w, h: h}
	for i := range 2 {
		f.u[i] = make([]float64, w*h)
		f.v[i] = make([]float64, w*h)
	}
	for i := range f.u[0] {
		f.u[0][i] = 1
	}

	// perturb with a few circular patches of U=0.5, V=1
	rng := rand.New(rand.NewPCG(seed, 0x67726179))
	patches := 4 + rng.IntN(5)
	for range patches {
		cx := rng.IntN(w)
		cy := rng.IntN(h)
		r := 2 + rng.IntN(4)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx*dx+dy*dy > r*r {
					continue
				}
				x := clampInt(cx+dx, 0, w-1)
				y := clampInt(cy+dy, 0, h-1)
				f.u[0][y*w+x] = 0.5
				f.v[0][y*w+x] = 1
			}
		}
	}
	return f
}

// step advances the simulation by one iteration. The per-cell update is
// independent within an iteration, so it is split across row bands; the
// buffer swap after the parallel section is the barrier between
// iterations.
func (f *grayScottField) step() {
	w, h := f.w, f.h
	u0, v0 := f.u[f.cur], f.v[f.cur]
	u1, v1 := f.u[1-f.cur], f.v[1-f.cur]

	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			// clamped (edge-repeated) neighbours: the simulation domain
			// is bounded, unlike the toroidal blue-noise texture
			yN := max(y-1, 0) * w
			yS := min(y+1, h-1) * w
			yC := y * w
			for x := range w {
				xW := max(x-1, 0)
				xE := min(x+1, w-1)

				u := u0[yC+x]
				v := v0[yC+x]

				lapU := u0[yC+xW] + u0[yC+xE] + u0[yN+x] + u0[yS+x] - 4*u
				lapV := v0[yC+xW] + v0[yC+xE] + v0[yN+x] + v0[yS+x] - 4*v

				uv2 := u * v * v
				nu := u + grayScottDu*lapU - uv2 + grayScottF*(1-u)
				nv := v + grayScottDv*lapV + uv2 - (grayScottF+grayScottK)*v

				if nu < 0 {
					nu = 0
				} else if nu > 1 {
					nu = 1
				}
				if nv < 0 {
					nv = 0
				} else if nv > 1 {
					nv = 1
				}
				u1[yC+x] = nu
				v1[yC+x] = nv
			}
		}
	})

	f.cur = 1 - f.cur
}

// grayScottV runs the simulation to completion and returns the final V
// field together with its dimensions.
func grayScottV(w, h int, seed uint64) ([]float64, int, int) {
	// run at reduced resolution
	sw, sh := w, h
	if m := max(sw, sh); m > grayScottMaxSide {
		scale := float64(grayScottMaxSide) / float64(m)
		sw = max(1, int(float64(sw)*scale))
		sh = max(1, int(float64(sh)*scale))
	}

	iters := grayScottIterBudget / max(1, int(math.Sqrt(float64(sw*sh))))
	iters = clampInt(iters, 200, 8000)

	f := newGrayScottField(sw, sh, seed)
	for range iters {
		f.step()
	}
	return f.v[f.cur], sw, sh
}

// grayScottDither composites the simulated V field against the source:
// V is sampled bilinearly at full resolution, converted to a signed
// threshold, and the biased colour is quantised.
func grayScottDither(img *image.RGBA, q *palette.Quantizer, p *Params) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	v, sw, sh := grayScottV(w, h, p.Seed)

	sx := float64(sw) / float64(w)
	sy := float64(sh) / float64(h)
	spread := p.spread()
	thresholdDither(img, q, func(x, y int) float64 {
		b := sampleBilinear(v, sw, sh, float64(x)*sx, float64(y)*sy)
		return (b - 0.5) * 255 * spread
	})
}
