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
	"math"
	"math/rand/v2"
	"sync"
)

// Void-and-cluster blue-noise generation, after Ulichney. Set pixels
// deposit Gaussian energy (σ = blueNoiseSigma) on their neighbourhood;
// the neighbourhood wraps toroidally so the matrix tiles seamlessly.
// Phase one removes the tightest cluster repeatedly, assigning ranks
// downwards; phase two fills the largest void repeatedly, assigning
// ranks upwards. Together the two phases rank every cell exactly once.
//
// Note that the reaction-diffusion simulator in this package uses
// clamped rather than toroidal neighbours: the noise texture is
// periodic, the simulation domain is bounded. The asymmetry is
// intentional.

const (
	blueNoiseSigma  = 1.5
	blueNoiseRadius = 6 // energy support, 4σ

	// blueNoiseSeedFraction is the fraction of cells seeded before the
	// cluster-removal phase.
	blueNoiseSeedFraction = 0.1
)

type blueNoiseField struct {
	n      int
	set    []bool
	energy []float64
	kernel [2*blueNoiseRadius + 1][2*blueNoiseRadius + 1]float64
}

func newBlueNoiseField(n int) *blueNoiseField {
	f := &blueNoiseField{
		n:      n,
		set:    make([]bool, n*n),
		energy: make([]float64, n*n),
	}
	for dy := -blueNoiseRadius; dy <= blueNoiseRadius; dy++ {
		for dx := -blueNoiseRadius; dx <= blueNoiseRadius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			f.kernel[dy+blueNoiseRadius][dx+blueNoiseRadius] =
				math.Exp(-d2 / (2 * blueNoiseSigma * blueNoiseSigma))
		}
	}
	return f
}

// splat adds (or, with sign −1, removes) one pixel's Gaussian energy
// contribution. Neighbour lookup wraps toroidally.
func (f *blueNoiseField) splat(x, y int, sign float64) {
	n := f.n
	for dy := -blueNoiseRadius; dy <= blueNoiseRadius; dy++ {
		yy := ((y+dy)%n + n) % n
		for dx := -blueNoiseRadius; dx <= blueNoiseRadius; dx++ {
			xx := ((x+dx)%n + n) % n
			f.energy[yy*n+xx] += sign * f.kernel[dy+blueNoiseRadius][dx+blueNoiseRadius]
		}
	}
}

// tightestCluster returns the set pixel with the highest energy.
// Ties resolve to the lowest index, keeping generation deterministic.
func (f *blueNoiseField) tightestCluster() int {
	best := -1
	bestE := math.Inf(-1)
	for i, s := range f.set {
		if s && f.energy[i] > bestE {
			bestE = f.energy[i]
			best = i
		}
	}
	return best
}

// largestVoid returns the unset pixel with the lowest energy.
func (f *blueNoiseField) largestVoid() int {
	best := -1
	bestE := math.Inf(1)
	for i, s := range f.set {
		if !s && f.energy[i] < bestE {
			bestE = f.energy[i]
			best = i
		}
	}
	return best
}

// generateBlueNoise builds an n×n blue-noise rank matrix. The generator
// is seeded with a fixed constant, so equal sizes always produce equal
// matrices and results are reproducible across runs.
func generateBlueNoise(n int) *Matrix {
	f := newBlueNoiseField(n)
	rng := rand.New(rand.NewPCG(0x626c7565, uint64(n)))

	// seed ~10% of the grid at random
	seeds := max(1, int(float64(n*n)*blueNoiseSeedFraction))
	seeded := make([]bool, n*n)
	count := 0
	for count < seeds {
		i := rng.IntN(n * n)
		if f.set[i] {
			continue
		}
		f.set[i] = true
		seeded[i] = true
		f.splat(i%n, i/n, +1)
		count++
	}

	rank := make([]int, n*n)

	// phase 1: remove the tightest cluster, ranking downwards. This
	// only serves to order the seeded pixels; the pattern itself is
	// restored afterwards.
	for r := count - 1; r >= 0; r-- {
		i := f.tightestCluster()
		f.set[i] = false
		f.splat(i%n, i/n, -1)
		rank[i] = r
	}

	// restore the seeded pattern for the void-filling phase
	for i, s := range seeded {
		if s {
			f.set[i] = true
			f.splat(i%n, i/n, +1)
		}
	}

	// phase 2: fill the largest void, ranking upwards
	for r := count; r < n*n; r++ {
		i := f.largestVoid()
		f.set[i] = true
		f.splat(i%n, i/n, +1)
		rank[i] = r
	}

	return &Matrix{n: n, rank: rank, denom: n * n}
}

// blueNoiseCache memoises generated matrices per size. Generation is
// O(N⁴) in the side length and the result is immutable, so sharing is
// safe and worthwhile.
var blueNoiseCache = struct {
	sync.Mutex
	m map[int]*Matrix
}{m: make(map[int]*Matrix)}

// BlueNoiseMatrix returns the blue-noise threshold matrix with side
// length n.  Matrices are deterministic per size and cached.
func BlueNoiseMatrix(n int) *Matrix {
	if n < 1 {
		n = 1
	}
	blueNoiseCache.Lock()
	defer blueNoiseCache.Unlock()
	if m, ok := blueNoiseCache.m[n]; ok {
		return m
	}
	m := generateBlueNoise(n)
	blueNoiseCache.m[n] = m
	return m
}
