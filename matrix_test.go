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
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBayer4x4(t *testing.T) {
	// the classic 4x4 matrix, as printed in most references
	want := [][]int{
		{0, 8, 2, 10},
		{12, 4, 14, 6},
		{3, 11, 1, 9},
		{15, 7, 13, 5},
	}

	m := Bayer(2)
	if m.Size() != 4 {
		t.Fatalf("wrong size: got %d, want 4", m.Size())
	}
	got := make([][]int, 4)
	for y := range 4 {
		got[y] = make([]int, 4)
		for x := range 4 {
			got[y][x] = m.Rank(x, y)
		}
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong ranks (-want +got):\n%s", d)
	}
}

func TestMatrixPermutation(t *testing.T) {
	matrices := map[string]*Matrix{
		"bayer1":      Bayer(0),
		"bayer2":      Bayer(1),
		"bayer4":      Bayer(2),
		"bayer8":      Bayer(3),
		"bayer16":     Bayer(4),
		"bluenoise16": BlueNoiseMatrix(16),
		"bluenoise64": BlueNoiseMatrix(64),
	}
	for name, m := range matrices {
		t.Run(name, func(t *testing.T) {
			if !m.IsPermutation() {
				t.Errorf("ranks of %s are not a permutation of 0..%d",
					name, m.Size()*m.Size()-1)
			}
		})
	}
}

func TestNewMatrix(t *testing.T) {
	type testCase struct {
		ranks [][]int
		ok    bool
		denom int
	}
	cases := []testCase{
		{ranks: nil, ok: false},
		{ranks: [][]int{{0, 1}, {2}}, ok: false},
		{ranks: [][]int{{0, -1}, {2, 3}}, ok: false},
		{ranks: [][]int{{0, 1}, {2, 3}}, ok: true, denom: 4},
		// repeated and non-contiguous ranks are allowed
		{ranks: [][]int{{5, 5}, {5, 5}}, ok: true, denom: 6},
		{ranks: [][]int{{0, 100}, {7, 3}}, ok: true, denom: 101},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			m, err := NewMatrix(tc.ranks)
			if tc.ok != (err == nil) {
				t.Fatalf("got err=%v, want ok=%t", err, tc.ok)
			}
			if err != nil {
				return
			}
			if m.denom != tc.denom {
				t.Errorf("wrong denominator: got %d, want %d", m.denom, tc.denom)
			}
		})
	}
}

// TestThresholdBalance checks that the threshold offsets of a generated
// matrix are symmetric around zero, so that ordered dithering preserves
// the mean intensity of large flat areas.
func TestThresholdBalance(t *testing.T) {
	for order := range 5 {
		m := Bayer(order)
		sum := 0.0
		for _, v := range m.thresholds(1) {
			sum += v
		}
		mean := sum / float64(len(m.rank))
		if math.Abs(mean) > 1e-9 {
			t.Errorf("order %d: mean threshold %g, want 0", order, mean)
		}
	}
}
