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

	"seehuhn.de/go/dither/palette"
)

// orderedDither applies the tiled threshold matrix to img in place.
// Every pixel is independent, so the work is split across row bands.
func orderedDither(img *image.RGBA, q *palette.Quantizer, m *Matrix, spread float64) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	if w == 0 || h == 0 {
		return
	}

	thresh := m.thresholds(spread)
	n := m.Size()

	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			trow := thresh[(y%n)*n : (y%n)*n+n]
			row := img.Pix[y*img.Stride : y*img.Stride+4*w]
			for x := range w {
				t := trow[x%n]
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

// thresholdDither applies a per-pixel threshold plane (one signed value
// per pixel, already scaled to 8-bit range) and quantizes. Used by the
// noise algorithms and the procedural patterns, which compute a bias per
// coordinate instead of tiling a matrix.
func thresholdDither(img *image.RGBA, q *palette.Quantizer, threshold func(x, y int) float64) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*w]
			for x := range w {
				t := threshold(x, y)
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
