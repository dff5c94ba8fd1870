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
	"math"
	"testing"
)

func TestDownscaleBlocks(t *testing.T) {
	// 4×2 image, scale 2: two blocks of four pixels each
	img := flatImage(4, 2, color.RGBA{0, 0, 0, 255})
	// left block: red values 0, 100, 50, 150 → mean 75
	img.Pix[0*4] = 0
	img.Pix[1*4] = 100
	img.Pix[4*4] = 50
	img.Pix[5*4] = 150
	// right block: all 200
	for _, i := range []int{2, 3, 6, 7} {
		img.Pix[i*4] = 200
	}

	small := downscaleBlocks(img, 2)
	if small.Rect.Dx() != 2 || small.Rect.Dy() != 1 {
		t.Fatalf("wrong size: %v", small.Rect)
	}
	if v := small.Pix[0]; v != 75 {
		t.Errorf("left block mean %d, want 75", v)
	}
	if v := small.Pix[4]; v != 200 {
		t.Errorf("right block mean %d, want 200", v)
	}
}

func TestDownscalePartialBlocks(t *testing.T) {
	// 5×5 at scale 2 gives 2×2 output; the trailing row and column do
	// not form blocks of their own
	img := flatImage(5, 5, color.RGBA{123, 0, 0, 255})
	small := downscaleBlocks(img, 2)
	if small.Rect.Dx() != 2 || small.Rect.Dy() != 2 {
		t.Fatalf("wrong size: %v", small.Rect)
	}
	for i := 0; i < len(small.Pix); i += 4 {
		if small.Pix[i] != 123 {
			t.Errorf("pixel %d: got %d, want 123", i/4, small.Pix[i])
		}
	}
}

func TestDownscaleTiny(t *testing.T) {
	// an image smaller than one block still yields one output pixel
	img := flatImage(3, 3, color.RGBA{50, 60, 70, 255})
	small := downscaleBlocks(img, 8)
	if small.Rect.Dx() != 1 || small.Rect.Dy() != 1 {
		t.Fatalf("wrong size: %v", small.Rect)
	}
	if small.Pix[0] != 50 || small.Pix[1] != 60 || small.Pix[2] != 70 {
		t.Errorf("wrong colour: %v", small.Pix[:3])
	}
}

func TestUpscaleNearestKeepsColours(t *testing.T) {
	img := flatImage(2, 2, color.RGBA{0, 0, 0, 255})
	img.Pix[4] = 255 // (1,0) red

	big := upscaleNearest(img, 8, 8)
	if big.Rect.Dx() != 8 || big.Rect.Dy() != 8 {
		t.Fatalf("wrong size: %v", big.Rect)
	}
	// nearest-neighbour must not invent intermediate values
	for i := 0; i < len(big.Pix); i += 4 {
		if v := big.Pix[i]; v != 0 && v != 255 {
			t.Fatalf("pixel %d has interpolated value %d", i/4, v)
		}
	}
}

func TestSampleBilinear(t *testing.T) {
	plane := []float64{
		0, 1,
		2, 3,
	}
	cases := []struct {
		fx, fy float64
		want   float64
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{0.5, 0, 0.5},
		{0, 0.5, 1},
		{0.5, 0.5, 1.5},
		{-1, -1, 0},   // clamped low
		{5, 5, 3},     // clamped high
	}
	for _, c := range cases {
		got := sampleBilinear(plane, 2, 2, c.fx, c.fy)
		if math.Abs(got-c.want) > 1e-12 {
			t.Errorf("sample(%g, %g) = %g, want %g", c.fx, c.fy, got, c.want)
		}
	}
}
