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
	"image/color"
	"math"
	"testing"

	"seehuhn.de/go/dither/palette"
)

// flatImage returns a w×h image filled with a single colour.
func flatImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
	return img
}

// meanGray returns the average of the red channel, which for
// black-and-white output equals the average intensity.
func meanGray(img *image.RGBA) float64 {
	sum := 0.0
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		sum += float64(img.Pix[i])
		n++
	}
	return sum / float64(n)
}

func bwQuantizer(t *testing.T) *palette.Quantizer {
	t.Helper()
	q, err := palette.NewQuantizer(palette.BlackWhite())
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestKernelsCausal(t *testing.T) {
	for alg, k := range diffusionKernels {
		if err := k.validate(); err != nil {
			t.Errorf("%s: %v", alg, err)
		}
		sum := 0.0
		for _, tap := range k.Taps {
			sum += tap.Weight
		}
		// Atkinson intentionally diffuses only 6/8 of the error;
		// every other kernel must conserve it exactly.
		if alg == Atkinson {
			continue
		}
		if math.Abs(sum-k.Divisor) > 1e-9 {
			t.Errorf("%s: tap weights sum to %g, divisor is %g", alg, sum, k.Divisor)
		}
	}
}

// TestDiffusionPreservesMean dithers flat mid-gray to black and white.
// Because every diffusion kernel pushes the full quantization error to
// later pixels, the mean intensity of a large area must survive within
// a fraction of one quantization step.
func TestDiffusionPreservesMean(t *testing.T) {
	for alg, k := range diffusionKernels {
		if alg == Atkinson {
			continue // Atkinson trades accuracy for contrast
		}
		t.Run(alg.String(), func(t *testing.T) {
			for _, serpentine := range []bool{false, true} {
				img := flatImage(64, 64, color.RGBA{128, 128, 128, 255})
				diffuse(img, bwQuantizer(t), k, serpentine)
				got := meanGray(img)
				if math.Abs(got-128) > 4 {
					t.Errorf("serpentine=%t: mean %g, want about 128",
						serpentine, got)
				}
			}
		})
	}
}

// TestFloydSteinbergMidGray pins the classic result: flat mid-gray on a
// black/white palette comes out as an exact checkerboard, keeping the
// block's mean within half a quantisation step of the input. All error
// weights are dyadic fractions, so the scan is bit-exact.
func TestFloydSteinbergMidGray(t *testing.T) {
	img := flatImage(4, 4, color.RGBA{128, 128, 128, 255})
	diffuse(img, bwQuantizer(t), diffusionKernels[FloydSteinberg], false)

	for y := range 4 {
		for x := range 4 {
			want := uint8(0)
			if (x+y)%2 == 0 {
				want = 255
			}
			if got := img.Pix[(y*4+x)*4]; got != want {
				t.Errorf("pixel (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}
	if mean := meanGray(img); mean != 127.5 {
		t.Errorf("mean %g, want 127.5", mean)
	}
}

func TestDiffusionDeterministic(t *testing.T) {
	src := flatImage(32, 32, color.RGBA{90, 140, 200, 255})
	q := bwQuantizer(t)

	a := cloneRGBA(src)
	diffuse(a, q, diffusionKernels[FloydSteinberg], true)
	b := cloneRGBA(src)
	diffuse(b, q, diffusionKernels[FloydSteinberg], true)

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("output differs at byte %d", i)
		}
	}
}

func TestZeroDivisorQuantizes(t *testing.T) {
	k := &Kernel{Name: "none", Divisor: 0}
	img := flatImage(16, 16, color.RGBA{200, 200, 200, 255})
	diffuse(img, bwQuantizer(t), k, false)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("pixel %d: got %d, want 255", i/4, img.Pix[i])
		}
	}
}

func TestDiffuseTiny(t *testing.T) {
	// single pixel: all diffused error falls off the image
	img := flatImage(1, 1, color.RGBA{128, 128, 128, 255})
	diffuse(img, bwQuantizer(t), diffusionKernels[FloydSteinberg], false)
	if v := img.Pix[0]; v != 0 && v != 255 {
		t.Errorf("got %d, want a palette value", v)
	}
}

func TestKernelFromMatrix(t *testing.T) {
	// Floyd-Steinberg written as a dense grid.
	weights := [][]float64{
		{0, 0, 7},
		{3, 5, 1},
	}
	k, err := kernelFromMatrix(weights, 1, 0, 16)
	if err != nil {
		t.Fatal(err)
	}
	if len(k.Taps) != 4 {
		t.Fatalf("got %d taps, want 4", len(k.Taps))
	}
	if err := k.validate(); err != nil {
		t.Error(err)
	}

	// entries at or before the origin are silently dropped
	bad := [][]float64{
		{1, 0, 7},
		{3, 5, 1},
	}
	k2, err := kernelFromMatrix(bad, 1, 0, 17)
	if err != nil {
		t.Fatal(err)
	}
	if len(k2.Taps) != 4 {
		t.Errorf("backward cell not dropped: got %d taps, want 4", len(k2.Taps))
	}

	// ragged grids are rejected
	ragged := [][]float64{
		{0, 0, 7},
		{3, 5},
	}
	if _, err := kernelFromMatrix(ragged, 1, 0, 16); err == nil {
		t.Error("ragged grid not rejected")
	}

	// origin outside the grid is rejected
	if _, err := kernelFromMatrix(weights, 3, 0, 16); err == nil {
		t.Error("origin outside grid not rejected")
	}
}
