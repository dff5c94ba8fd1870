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

import "image"

// boxBlurPasses approximates a Gaussian: three iterated box blurs
// converge on a Gaussian by the central limit theorem.
const boxBlurPasses = 3

// boxBlur blurs img in place with a sliding-window box filter of the
// given radius, applied boxBlurPasses times separably (horizontal then
// vertical). Each pass is O(width×height) regardless of radius. Edge
// pixels use clamped (edge-repeated) neighbours.
func boxBlur(img *image.RGBA, radius int) {
	if radius <= 0 {
		return
	}
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}

	// one float plane per channel
	planes := [3][]float64{}
	for c := range planes {
		planes[c] = make([]float64, w*h)
	}
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		for x := range w {
			for c := range 3 {
				planes[c][y*w+x] = float64(row[4*x+c])
			}
		}
	}

	tmp := make([]float64, w*h)
	for range boxBlurPasses {
		for c := range planes {
			blurHorizontal(planes[c], tmp, w, h, radius)
			blurVertical(tmp, planes[c], w, h, radius)
		}
	}

	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		for x := range w {
			for c := range 3 {
				row[4*x+c] = clamp255(planes[c][y*w+x])
			}
		}
	}
}

func blurHorizontal(src, dst []float64, w, h, radius int) {
	norm := 1 / float64(2*radius+1)
	for y := range h {
		row := src[y*w : y*w+w]
		out := dst[y*w : y*w+w]

		// initial window around x = 0, clamped to the edge
		sum := 0.0
		for i := -radius; i <= radius; i++ {
			sum += row[clampInt(i, 0, w-1)]
		}
		for x := range w {
			out[x] = sum * norm
			// slide: drop (x−radius), add (x+radius+1)
			sum -= row[clampInt(x-radius, 0, w-1)]
			sum += row[clampInt(x+radius+1, 0, w-1)]
		}
	}
}

func blurVertical(src, dst []float64, w, h, radius int) {
	norm := 1 / float64(2*radius+1)
	for x := range w {
		sum := 0.0
		for i := -radius; i <= radius; i++ {
			sum += src[clampInt(i, 0, h-1)*w+x]
		}
		for y := range h {
			dst[y*w+x] = sum * norm
			sum -= src[clampInt(y-radius, 0, h-1)*w+x]
			sum += src[clampInt(y+radius+1, 0, h-1)*w+x]
		}
	}
}

// unsharpMask sharpens img in place: p + (p − blurred(p))·amount.
// Used for the "depth" parameter of the pipeline.
func unsharpMask(img *image.RGBA, radius int, amount float64) {
	if radius <= 0 || amount <= 0 {
		return
	}
	blurred := cloneRGBA(img)
	boxBlur(blurred, radius)

	w := img.Rect.Dx()
	h := img.Rect.Dy()
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*w]
			brow := blurred.Pix[y*blurred.Stride : y*blurred.Stride+4*w]
			for x := range w {
				for c := range 3 {
					p := float64(row[4*x+c])
					b := float64(brow[4*x+c])
					row[4*x+c] = clamp255(p + (p-b)*amount)
				}
			}
		}
	})
}
