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

func TestGrayScottClamped(t *testing.T) {
	f := newGrayScottField(24, 24, 1)
	for range 100 {
		f.step()
	}
	for i := range f.u[f.cur] {
		u := f.u[f.cur][i]
		v := f.v[f.cur][i]
		if u < 0 || u > 1 || v < 0 || v > 1 {
			t.Fatalf("cell %d out of range: u=%g v=%g", i, u, v)
		}
	}
}

// TestGrayScottSeeded checks reproducibility: the parallel stepping may
// not introduce any order dependence between runs.
func TestGrayScottSeeded(t *testing.T) {
	a, _, _ := grayScottV(32, 32, 5)
	b, _, _ := grayScottV(32, 32, 5)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("equal seeds differ at cell %d: %g vs %g", i, a[i], b[i])
		}
	}

	c, _, _ := grayScottV(32, 32, 6)
	same := true
	for i := range a {
		if a[i] != c[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds give identical fields")
	}
}

func TestGrayScottReducedResolution(t *testing.T) {
	_, sw, sh := grayScottV(1024, 512, 0)
	if sw != 256 || sh != 128 {
		t.Errorf("simulation grid is %d×%d, want 256×128", sw, sh)
	}
}

func TestGrayScottDitherTiny(t *testing.T) {
	for _, size := range [][2]int{{1, 1}, {3, 1}, {1, 3}} {
		img := flatImage(size[0], size[1], color.RGBA{128, 128, 128, 255})
		grayScottDither(img, bwQuantizer(t), DefaultParams(GrayScott))
		for i := 0; i < len(img.Pix); i += 4 {
			if v := img.Pix[i]; v != 0 && v != 255 {
				t.Fatalf("%v: pixel %d = %d, not on palette", size, i/4, v)
			}
		}
	}
}
