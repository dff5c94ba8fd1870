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

// The algorithms in this file are not per-pixel: each one computes an
// auxiliary structure over the whole image first (a luminance plane, a
// seed-point index, a walker grid) and only then produces pixels. The
// auxiliary pass runs once per image, never per pixel.

package dither

import (
	"image"
	"math"
	"math/rand/v2"
	"slices"

	"seehuhn.de/go/dither/palette"
)

// fillDisc paints a filled disc, clipped to the image.
func fillDisc(img *image.RGBA, cx, cy, radius float64, r, g, b uint8) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	x0 := clampInt(int(cx-radius), 0, w-1)
	x1 := clampInt(int(cx+radius)+1, 0, w)
	y0 := clampInt(int(cy-radius), 0, h-1)
	y1 := clampInt(int(cy+radius)+1, 0, h)
	r2 := radius * radius
	for y := y0; y < y1; y++ {
		row := img.Pix[y*img.Stride:]
		for x := x0; x < x1; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			if dx*dx+dy*dy > r2 {
				continue
			}
			row[4*x] = r
			row[4*x+1] = g
			row[4*x+2] = b
			row[4*x+3] = 255
		}
	}
}

func fillImage(img *image.RGBA, r, g, b uint8) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		for x := range w {
			row[4*x] = r
			row[4*x+1] = g
			row[4*x+2] = b
			row[4*x+3] = 255
		}
	}
}

// stippleDither replaces cells by dots whose size follows the cell's
// darkness. The luminance plane is the auxiliary structure, computed
// once up front.
func stippleDither(img *image.RGBA, q *palette.Quantizer, p *Params) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	lum := luminancePlane(img)
	src := cloneRGBA(img)
	rng := rand.New(rand.NewPCG(p.Seed, 0x73746970))

	bg := q.Nearest(255, 255, 255)
	fillImage(img, bg.R, bg.G, bg.B)

	cell := max(3, 3*p.LineScale)
	for y0 := 0; y0 < h; y0 += cell {
		for x0 := 0; x0 < w; x0 += cell {
			x1 := min(x0+cell, w)
			y1 := min(y0+cell, h)

			sum := 0.0
			var sr, sg, sb int
			n := 0
			for y := y0; y < y1; y++ {
				row := src.Pix[y*src.Stride:]
				for x := x0; x < x1; x++ {
					sum += lum[y*w+x]
					sr += int(row[4*x])
					sg += int(row[4*x+1])
					sb += int(row[4*x+2])
					n++
				}
			}
			dark := 1 - sum/float64(n)
			radius := dark * float64(cell) / 2 * p.spread()
			if radius < 0.5 {
				continue
			}
			// jitter the dot inside its cell
			cx := float64(x0) + float64(cell)/2 + (rng.Float64()-0.5)*float64(cell)/2
			cy := float64(y0) + float64(cell)/2 + (rng.Float64()-0.5)*float64(cell)/2
			c := q.Nearest(float64(sr/n)*0.5, float64(sg/n)*0.5, float64(sb/n)*0.5)
			fillDisc(img, cx, cy, radius, c.R, c.G, c.B)
		}
	}
}

// pointillismDither paints random overlapping dots whose colours come
// from the quantised source. Dot density follows local darkness.
func pointillismDither(img *image.RGBA, q *palette.Quantizer, p *Params) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	src := cloneRGBA(img)
	lum := luminancePlane(img)
	rng := rand.New(rand.NewPCG(p.Seed, 0x706f696e))

	// average colour as the canvas ground
	var sr, sg, sb int
	for y := range h {
		row := src.Pix[y*src.Stride:]
		for x := range w {
			sr += int(row[4*x])
			sg += int(row[4*x+1])
			sb += int(row[4*x+2])
		}
	}
	n := w * h
	bg := q.Nearest(float64(sr/n), float64(sg/n), float64(sb/n))
	fillImage(img, bg.R, bg.G, bg.B)

	base := float64(max(1, p.LineScale)) * 2
	dots := n / int(base)
	for range dots {
		x := rng.IntN(w)
		y := rng.IntN(h)
		// darker regions get more and larger dots
		dark := 1 - lum[y*w+x]
		if rng.Float64() > 0.25+0.75*dark {
			continue
		}
		i := src.PixOffset(x, y)
		c := q.Nearest(float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2]))
		radius := base * (0.5 + dark*rng.Float64())
		fillDisc(img, float64(x), float64(y), radius, c.R, c.G, c.B)
	}
}

type seedPoint struct{ x, y float64 }

// seedIndex buckets seed points on a coarse grid so that nearest-seed
// queries only examine a neighbourhood of buckets.
type seedIndex struct {
	seeds   []seedPoint
	cell    float64
	bw, bh  int
	buckets [][]int
}

func newSeedIndex(seeds []seedPoint, cell float64, w, h int) *seedIndex {
	bw := max(1, int(float64(w)/cell)+1)
	bh := max(1, int(float64(h)/cell)+1)
	idx := &seedIndex{
		seeds:   seeds,
		cell:    cell,
		bw:      bw,
		bh:      bh,
		buckets: make([][]int, bw*bh),
	}
	for i, s := range seeds {
		bx := clampInt(int(s.x/cell), 0, bw-1)
		by := clampInt(int(s.y/cell), 0, bh-1)
		idx.buckets[by*bw+bx] = append(idx.buckets[by*bw+bx], i)
	}
	return idx
}

// nearest returns the index of the seed closest to the pixel (x, y).
// After the first square that contains a seed, one more ring is
// scanned: a seed just outside the square can still be closer than one
// sitting at the square's corner.
func (idx *seedIndex) nearest(x, y int) int {
	bx := clampInt(int(float64(x)/idx.cell), 0, idx.bw-1)
	by := clampInt(int(float64(y)/idx.cell), 0, idx.bh-1)
	best := -1
	bestD := math.Inf(1)
	found := -1
	for ring := 1; ; ring++ {
		for dy := -ring; dy <= ring; dy++ {
			yy := by + dy
			if yy < 0 || yy >= idx.bh {
				continue
			}
			for dx := -ring; dx <= ring; dx++ {
				xx := bx + dx
				if xx < 0 || xx >= idx.bw {
					continue
				}
				for _, i := range idx.buckets[yy*idx.bw+xx] {
					ddx := float64(x) - idx.seeds[i].x
					ddy := float64(y) - idx.seeds[i].y
					d := ddx*ddx + ddy*ddy
					if d < bestD {
						bestD = d
						best = i
					}
				}
			}
		}
		if best >= 0 && found < 0 {
			found = ring
		}
		if (found >= 0 && ring > found) || ring > idx.bw+idx.bh {
			break
		}
	}
	return best
}

// voronoiDither partitions the image into Voronoi cells around random
// seed points and paints each cell with its quantised mean colour. Seed
// points are indexed on a coarse grid so the nearest-seed query only
// examines neighbouring buckets.
func voronoiDither(img *image.RGBA, q *palette.Quantizer, p *Params) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	rng := rand.New(rand.NewPCG(p.Seed, 0x766f726f))

	cell := float64(max(4, 6*p.LineScale))
	count := max(1, int(float64(w*h)/(cell*cell)))

	seeds := make([]seedPoint, count)
	for i := range seeds {
		seeds[i] = seedPoint{rng.Float64() * float64(w), rng.Float64() * float64(h)}
	}
	idx := newSeedIndex(seeds, cell, w, h)

	// first pass: assign pixels and accumulate cell sums
	assign := make([]int32, w*h)
	sums := make([][4]int64, count) // r, g, b, count
	for y := range h {
		row := img.Pix[y*img.Stride:]
		for x := range w {
			s := idx.nearest(x, y)
			assign[y*w+x] = int32(s)
			sums[s][0] += int64(row[4*x])
			sums[s][1] += int64(row[4*x+1])
			sums[s][2] += int64(row[4*x+2])
			sums[s][3]++
		}
	}

	// quantise each cell's mean once
	colors := make([][3]uint8, count)
	for i, s := range sums {
		if s[3] == 0 {
			continue
		}
		c := q.Nearest(float64(s[0]/s[3]), float64(s[1]/s[3]), float64(s[2]/s[3]))
		colors[i] = [3]uint8{c.R, c.G, c.B}
	}

	// second pass: paint
	for y := range h {
		row := img.Pix[y*img.Stride:]
		for x := range w {
			c := colors[assign[y*w+x]]
			row[4*x] = c[0]
			row[4*x+1] = c[1]
			row[4*x+2] = c[2]
			row[4*x+3] = 255
		}
	}
}

// pixelSortDither sorts horizontal runs of mid-luminance pixels by
// brightness and then quantises the whole image. The luminance plane is
// computed once; the span bounds derive from the threshold setting.
func pixelSortDither(img *image.RGBA, q *palette.Quantizer, p *Params) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	lum := luminancePlane(img)

	// the spread widens or narrows the sorted band around mid-gray
	half := 0.25 * p.spread()
	lo, hi := 0.5-half, 0.5+half

	type pix struct {
		lum     float64
		r, g, b uint8
	}
	var span []pix

	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		flush := func(start, end int) {
			if end-start < 2 {
				return
			}
			span = span[:0]
			for x := start; x < end; x++ {
				span = append(span, pix{lum[y*w+x], row[4*x], row[4*x+1], row[4*x+2]})
			}
			slices.SortStableFunc(span, func(a, b pix) int {
				switch {
				case a.lum < b.lum:
					return -1
				case a.lum > b.lum:
					return 1
				default:
					return 0
				}
			})
			for i, px := range span {
				x := start + i
				row[4*x] = px.r
				row[4*x+1] = px.g
				row[4*x+2] = px.b
			}
		}

		start := -1
		for x := range w {
			inBand := lum[y*w+x] >= lo && lum[y*w+x] <= hi
			if inBand && start < 0 {
				start = x
			} else if !inBand && start >= 0 {
				flush(start, x)
				start = -1
			}
		}
		if start >= 0 {
			flush(start, w)
		}
	}

	// quantise the rearranged image
	thresholdDither(img, q, func(x, y int) float64 { return 0 })
}

// dlaDither grows a diffusion-limited aggregate from a few fixed seeds
// and renders aggregated pixels dark against a light ground. Walker
// count follows the image's overall darkness; walks are step-bounded so
// the run time stays proportional to the image size.
func dlaDither(img *image.RGBA, q *palette.Quantizer, p *Params) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}
	lum := luminancePlane(img)
	src := cloneRGBA(img)
	rng := rand.New(rand.NewPCG(p.Seed, 0x646c6121))

	stuck := make([]bool, w*h)
	// seed the aggregate at the centre and the rule-of-thirds points
	for _, s := range [][2]int{
		{w / 2, h / 2}, {w / 3, h / 3}, {2 * w / 3, h / 3},
		{w / 3, 2 * h / 3}, {2 * w / 3, 2 * h / 3},
	} {
		stuck[clampInt(s[1], 0, h-1)*w+clampInt(s[0], 0, w-1)] = true
	}

	dark := 0.0
	for _, l := range lum {
		dark += 1 - l
	}
	walkers := clampInt(int(dark*0.5), 16, 20000)
	maxSteps := 4 * (w + h)

	hasStuckNeighbour := func(x, y int) bool {
		for dy := -1; dy <= 1; dy++ {
			yy := y + dy
			if yy < 0 || yy >= h {
				continue
			}
			for dx := -1; dx <= 1; dx++ {
				xx := x + dx
				if (dx != 0 || dy != 0) && xx >= 0 && xx < w && stuck[yy*w+xx] {
					return true
				}
			}
		}
		return false
	}

	for range walkers {
		x := rng.IntN(w)
		y := rng.IntN(h)
		for range maxSteps {
			if hasStuckNeighbour(x, y) {
				// sticking is easier in dark regions, so the aggregate
				// traces the image structure
				if rng.Float64() < 0.2+0.8*(1-lum[y*w+x]) {
					stuck[y*w+x] = true
					break
				}
			}
			switch rng.IntN(4) {
			case 0:
				x = clampInt(x+1, 0, w-1)
			case 1:
				x = clampInt(x-1, 0, w-1)
			case 2:
				y = clampInt(y+1, 0, h-1)
			default:
				y = clampInt(y-1, 0, h-1)
			}
		}
	}

	for y := range h {
		row := img.Pix[y*img.Stride:]
		srow := src.Pix[y*src.Stride:]
		for x := range w {
			var c [3]float64
			c[0] = float64(srow[4*x])
			c[1] = float64(srow[4*x+1])
			c[2] = float64(srow[4*x+2])
			var out [3]uint8
			if stuck[y*w+x] {
				cc := q.Nearest(c[0]*0.25, c[1]*0.25, c[2]*0.25)
				out = [3]uint8{cc.R, cc.G, cc.B}
			} else {
				cc := q.Nearest(c[0]*0.75+64, c[1]*0.75+64, c[2]*0.75+64)
				out = [3]uint8{cc.R, cc.G, cc.B}
			}
			row[4*x] = out[0]
			row[4*x+1] = out[1]
			row[4*x+2] = out[2]
			row[4*x+3] = 255
		}
	}
}
