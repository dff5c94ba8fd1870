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
	"errors"
	"strings"
	"testing"
)

func TestAlgorithmNames(t *testing.T) {
	for _, a := range Algorithms() {
		name := a.String()
		if name == "" || strings.Contains(name, "Algorithm(") {
			t.Fatalf("algorithm %d has no name", int(a))
		}
		back, err := ByName(name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if back != a {
			t.Errorf("%s maps back to %d, want %d", name, int(back), int(a))
		}
	}

	if _, err := ByName("NoSuchThing"); !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("got %v, want ErrUnknownAlgorithm", err)
	}
}

func TestAlgorithmValid(t *testing.T) {
	if Algorithm(-1).Valid() {
		t.Error("-1 reported valid")
	}
	if algorithmCount.Valid() {
		t.Error("sentinel reported valid")
	}
	for _, a := range Algorithms() {
		if !a.Valid() {
			t.Errorf("%s reported invalid", a)
		}
	}
}

func TestAlgorithmCategories(t *testing.T) {
	want := map[Algorithm]Category{
		FloydSteinberg: CategoryDiffusion,
		SierraLite:     CategoryDiffusion,
		Bayer2x2:       CategoryOrdered,
		BlueNoise:      CategoryOrdered,
		WhiteNoise:     CategoryNoise,
		PerlinNoise:    CategoryNoise,
		HalftoneDot:    CategoryPattern,
		DiagonalLines:  CategoryPattern,
		Stippling:      CategoryMosaic,
		DLA:            CategoryMosaic,
		GrayScott:      CategoryReaction,
	}
	for a, c := range want {
		if got := a.Category(); got != c {
			t.Errorf("%s: category %d, want %d", a, got, c)
		}
	}

	// every diffusion algorithm must have a kernel, and vice versa
	for _, a := range Algorithms() {
		_, ok := diffusionKernels[a]
		if ok != (a.Category() == CategoryDiffusion) {
			t.Errorf("%s: kernel presence does not match category", a)
		}
	}

	// every pattern algorithm must have a pattern spec, and vice versa
	for _, a := range Algorithms() {
		_, ok := patternSpecs[a]
		if ok != (a.Category() == CategoryPattern) {
			t.Errorf("%s: pattern spec does not match category", a)
		}
	}
}

func TestParamScales(t *testing.T) {
	p := DefaultParams(Bayer4x4)
	if p.spread() != 1 {
		t.Errorf("default spread %g, want 1", p.spread())
	}
	if p.blendFactor() != 1 {
		t.Errorf("default blend factor %g, want 1", p.blendFactor())
	}
	p.Threshold = 100
	if p.spread() != 2 {
		t.Errorf("spread %g, want 2", p.spread())
	}
	p.Blend = 25
	if p.blendFactor() != 0.25 {
		t.Errorf("blend factor %g, want 0.25", p.blendFactor())
	}
}
