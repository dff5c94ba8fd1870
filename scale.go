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

	"golang.org/x/image/draw"
)

// downscaleBlocks averages non-overlapping scale×scale blocks into one
// pixel each. Together with quantisation and the nearest-neighbour
// upscale this is what produces the blocky "pixel art" look; the dither
// step alone would not.
func downscaleBlocks(src *image.RGBA, scale int) *image.RGBA {
	w := src.Rect.Dx()
	h := src.Rect.Dy()
	dw := max(1, w/scale)
	dh := max(1, h/scale)
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))

	for by := range dh {
		y0 := by * scale
		y1 := min(y0+scale, h)
		for bx := range dw {
			x0 := bx * scale
			x1 := min(x0+scale, w)

			var sumR, sumG, sumB int
			n := 0
			for y := y0; y < y1; y++ {
				row := src.Pix[y*src.Stride:]
				for x := x0; x < x1; x++ {
					sumR += int(row[4*x])
					sumG += int(row[4*x+1])
					sumB += int(row[4*x+2])
					n++
				}
			}
			i := dst.PixOffset(bx, by)
			dst.Pix[i] = uint8(sumR / n)
			dst.Pix[i+1] = uint8(sumG / n)
			dst.Pix[i+2] = uint8(sumB / n)
			dst.Pix[i+3] = 255
		}
	}
	return dst
}

// upscaleNearest scales src back to w×h without introducing new colours,
// preserving the quantised palette.
func upscaleNearest(src *image.RGBA, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// sampleBilinear samples a w×h float plane at the continuous position
// (fx, fy), clamping coordinates to the grid.
func sampleBilinear(plane []float64, w, h int, fx, fy float64) float64 {
	if fx < 0 {
		fx = 0
	}
	if fy < 0 {
		fy = 0
	}
	x0 := int(fx)
	y0 := int(fy)
	if x0 > w-1 {
		x0 = w - 1
	}
	if y0 > h-1 {
		y0 = h - 1
	}
	x1 := min(x0+1, w-1)
	y1 := min(y0+1, h-1)
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	top := plane[y0*w+x0]*(1-tx) + plane[y0*w+x1]*tx
	bot := plane[y1*w+x0]*(1-tx) + plane[y1*w+x1]*tx
	return top*(1-ty) + bot*ty
}
