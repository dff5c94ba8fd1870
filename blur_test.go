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
	"image/color"
	"testing"
)

// TestBoxBlurFlat checks that a uniform image is a fixed point of the
// blur. With edge-clamped windows the filter weights always sum to one,
// so any deviation indicates a normalisation bug.
func TestBoxBlurFlat(t *testing.T) {
	img := flatImage(20, 10, color.RGBA{70, 140, 210, 255})
	boxBlur(img, 3)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 70 || img.Pix[i+1] != 140 || img.Pix[i+2] != 210 {
			t.Fatalf("pixel %d changed: %v", i/4, img.Pix[i:i+3])
		}
	}
}

func TestBoxBlurImpulse(t *testing.T) {
	img := flatImage(21, 21, color.RGBA{0, 0, 0, 255})
	img.Pix[(10*21+10)*4] = 255 // red impulse at the centre

	boxBlur(img, 2)

	centre := img.Pix[(10*21+10)*4]
	if centre == 0 || centre == 255 {
		t.Fatalf("impulse not spread: centre = %d", centre)
	}
	// symmetry of the response
	pairs := [][2]int{{9, 10}, {11, 10}, {10, 9}, {10, 11}}
	first := img.Pix[(pairs[0][1]*21+pairs[0][0])*4]
	for _, p := range pairs[1:] {
		v := img.Pix[(p[1]*21+p[0])*4]
		if v != first {
			t.Errorf("asymmetric response at %v: %d vs %d", p, v, first)
		}
	}
	// in 8-bit the direct neighbours round to the centre value, so only
	// monotone decay can be required here
	if first > centre {
		t.Errorf("neighbour %d brighter than centre %d", first, centre)
	}
	// at distance 3 the response is clearly below the centre
	if v := img.Pix[(10*21+7)*4]; v >= centre {
		t.Errorf("distance-3 response %d not below centre %d", v, centre)
	}
	// three passes of radius 2 reach at most 6 pixels out
	if v := img.Pix[(10*21+3)*4]; v != 0 {
		t.Errorf("response %d outside the filter support", v)
	}
}

func TestUnsharpMask(t *testing.T) {
	// a vertical step edge must get steeper, not flatter
	img := flatImage(16, 8, color.RGBA{64, 64, 64, 255})
	for y := range 8 {
		for x := 8; x < 16; x++ {
			i := (y*16 + x) * 4
			img.Pix[i] = 192
			img.Pix[i+1] = 192
			img.Pix[i+2] = 192
		}
	}
	unsharpMask(img, 1, 1)

	dark := img.Pix[(4*16+7)*4]
	bright := img.Pix[(4*16+8)*4]
	if dark >= 64 {
		t.Errorf("dark side of edge is %d, want below 64", dark)
	}
	if bright <= 192 {
		t.Errorf("bright side of edge is %d, want above 192", bright)
	}

	// zero amount is a no-op
	img2 := flatImage(8, 8, color.RGBA{100, 100, 100, 255})
	unsharpMask(img2, 1, 0)
	if img2.Pix[0] != 100 {
		t.Errorf("zero amount changed pixel to %d", img2.Pix[0])
	}
}
