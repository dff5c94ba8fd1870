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
)

// toneLUT maps contrast and midtone settings to a single 256-entry
// lookup table applied identically to R, G and B. Folding both
// adjustments into one table read per channel matters because the table
// runs before every dithering pass.
//
// Contrast scales values around the midpoint; midtones is a gamma
// correction with 50 as identity.
type toneLUT [256]uint8

func buildToneLUT(contrast, midtones int, invert bool) *toneLUT {
	// contrast 0..100 → slope 0..2 around 0.5
	slope := float64(contrast) / 50
	// midtones 0..100 → gamma 4..1/4 (log scale, 50 → 1)
	gamma := math.Pow(2, float64(50-midtones)/25)

	var lut toneLUT
	for i := range lut {
		v := float64(i) / 255
		v = (v-0.5)*slope + 0.5
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		v = math.Pow(v, gamma)
		if invert {
			v = 1 - v
		}
		lut[i] = clamp255(v * 255)
	}
	return &lut
}

// isIdentity reports whether applying the table would change nothing.
func (lut *toneLUT) isIdentity() bool {
	for i, v := range lut {
		if int(v) != i {
			return false
		}
	}
	return true
}

func (lut *toneLUT) apply(img *image.RGBA) {
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*w]
			for x := range w {
				row[4*x] = lut[row[4*x]]
				row[4*x+1] = lut[row[4*x+1]]
				row[4*x+2] = lut[row[4*x+2]]
			}
		}
	})
}

// adjustHighlights scales pixels whose luminance exceeds 0.5. The
// luminance dependency makes this a branch per pixel, so it cannot be
// folded into the shared tone table; it runs as a second, conditional
// pass. Pixels with luminance exactly 0.5 are left alone.
func adjustHighlights(img *image.RGBA, highlights int) {
	if highlights == 50 {
		return
	}
	strength := float64(highlights-50) / 50 // −1 .. 1
	w := img.Rect.Dx()
	h := img.Rect.Dy()
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := img.Pix[y*img.Stride : y*img.Stride+4*w]
			for x := range w {
				lum := luminance(row[4*x], row[4*x+1], row[4*x+2])
				if lum <= 0.5 {
					continue
				}
				// fade the effect in from zero at mid-gray
				f := 1 + strength*(lum-0.5)*2
				row[4*x] = clamp255(float64(row[4*x]) * f)
				row[4*x+1] = clamp255(float64(row[4*x+1]) * f)
				row[4*x+2] = clamp255(float64(row[4*x+2]) * f)
			}
		}
	})
}

// blendImages interpolates dst = base*(1−f) + dst*f per channel, in
// place on dst. The caller skips the call entirely for f == 1.
func blendImages(dst, base *image.RGBA, f float64) {
	w := dst.Rect.Dx()
	h := dst.Rect.Dy()
	g := 1 - f
	parallelRows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			drow := dst.Pix[y*dst.Stride : y*dst.Stride+4*w]
			brow := base.Pix[y*base.Stride : y*base.Stride+4*w]
			for x := range w {
				for c := range 3 {
					drow[4*x+c] = clamp255(float64(brow[4*x+c])*g + float64(drow[4*x+c])*f)
				}
				drow[4*x+3] = 255
			}
		}
	})
}
