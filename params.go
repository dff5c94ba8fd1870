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

	"seehuhn.de/go/dither/palette"
)

// Algorithm selects the dithering algorithm applied by Process.
type Algorithm int

const (
	// Error diffusion family.
	FloydSteinberg Algorithm = iota
	FalseFloydSteinberg
	JarvisJudiceNinke
	Stucki
	Atkinson
	Burkes
	Sierra
	TwoRowSierra
	SierraLite

	// Ordered dithering with generated threshold matrices.
	Bayer2x2
	Bayer4x4
	Bayer8x8
	Bayer16x16
	BlueNoise

	// Per-pixel noise thresholds.
	WhiteNoise
	InterleavedGradientNoise
	PerlinNoise

	// Halftone shapes and geometric patterns.
	HalftoneDot
	HalftoneLine
	HalftoneDiamond
	HalftoneCross
	HalftoneStar
	HalftoneSquare
	HalftoneEllipse
	Checkerboard
	HexPattern
	BrickPattern
	SpiralPattern
	WavePattern
	DiagonalLines

	// Algorithms requiring whole-image statistics.
	Stippling
	Pointillism
	VoronoiMosaic
	PixelSort
	DLA

	// Reaction-diffusion simulation.
	GrayScott

	algorithmCount // sentinel for validation
)

var algorithmNames = [algorithmCount]string{
	"FloydSteinberg", "FalseFloydSteinberg", "JarvisJudiceNinke", "Stucki",
	"Atkinson", "Burkes", "Sierra", "TwoRowSierra", "SierraLite",
	"Bayer2x2", "Bayer4x4", "Bayer8x8", "Bayer16x16", "BlueNoise",
	"WhiteNoise", "InterleavedGradientNoise", "PerlinNoise",
	"HalftoneDot", "HalftoneLine", "HalftoneDiamond", "HalftoneCross",
	"HalftoneStar", "HalftoneSquare", "HalftoneEllipse",
	"Checkerboard", "HexPattern", "BrickPattern", "SpiralPattern",
	"WavePattern", "DiagonalLines",
	"Stippling", "Pointillism", "VoronoiMosaic", "PixelSort", "DLA",
	"GrayScott",
}

// String returns the name of the algorithm.
func (a Algorithm) String() string {
	if a >= 0 && a < algorithmCount {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", int(a))
}

// Valid reports whether a is a known algorithm.
func (a Algorithm) Valid() bool {
	return a >= 0 && a < algorithmCount
}

// Algorithms returns all known algorithms in declaration order.
func Algorithms() []Algorithm {
	all := make([]Algorithm, algorithmCount)
	for i := range all {
		all[i] = Algorithm(i)
	}
	return all
}

// ByName returns the algorithm with the given name.
func ByName(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}

// Category groups algorithms by their processing structure: error
// diffusion is strictly sequential, ordered/noise/pattern algorithms are
// independent per pixel, mosaic algorithms need whole-image statistics,
// and reaction-diffusion iterates a simulation.
type Category int

const (
	CategoryDiffusion Category = iota
	CategoryOrdered
	CategoryNoise
	CategoryPattern
	CategoryMosaic
	CategoryReaction
)

// Category returns the processing category of the algorithm.
func (a Algorithm) Category() Category {
	switch {
	case a >= FloydSteinberg && a <= SierraLite:
		return CategoryDiffusion
	case a >= Bayer2x2 && a <= BlueNoise:
		return CategoryOrdered
	case a >= WhiteNoise && a <= PerlinNoise:
		return CategoryNoise
	case a >= HalftoneDot && a <= DiagonalLines:
		return CategoryPattern
	case a >= Stippling && a <= DLA:
		return CategoryMosaic
	default:
		return CategoryReaction
	}
}

// Params configures one Process run. A Params value is read-only for the
// duration of the run; the same value may be reused for further runs.
type Params struct {
	Algorithm Algorithm
	Palette   palette.Palette

	// Scale is the pixelation block size. Values above 1 average blocks
	// of Scale×Scale pixels before dithering and upscale the result back
	// to the original size.
	Scale int

	// LineScale sets the cell size (in pixels) of halftone and pattern
	// algorithms. 1 keeps the algorithm's base cell size.
	LineScale int

	// Smoothing (0–100) blurs the input before dithering.
	Smoothing int

	// Blend (0–100) mixes the dithered result over the adjusted source.
	// 100 keeps the full dithered output; 0 suppresses it entirely.
	Blend int

	// Contrast, Midtones and Highlights are tone adjustments in the
	// range 0–100, with 50 as identity.
	Contrast   int
	Midtones   int
	Highlights int

	// Threshold (0–100) scales the dither spread; 50 is the nominal
	// spread of 1.0, 0 disables thresholding altogether.
	Threshold int

	// Blur (0–10) is the pre-dither box blur radius in pixels.
	Blur int

	// Depth (0–10) applies an unsharp mask before dithering.
	Depth int

	// Invert flips the input tones before dithering.
	Invert bool

	// Serpentine alternates the scan direction per row for the error
	// diffusion algorithms.
	Serpentine bool

	// Seed makes the randomised algorithms (white noise, mosaic family,
	// reaction-diffusion) reproducible.
	Seed uint64

	// Angle rotates pattern algorithms, in degrees.
	Angle float64
}

// DefaultParams returns a Params with all adjustments at their identity
// values and a black/white palette.
func DefaultParams(a Algorithm) *Params {
	return &Params{
		Algorithm:  a,
		Palette:    palette.BlackWhite(),
		Scale:      1,
		LineScale:  1,
		Blend:      100,
		Contrast:   50,
		Midtones:   50,
		Highlights: 50,
		Threshold:  50,
	}
}

// spread converts the 0–100 threshold setting to a multiplier, with 50
// mapping to 1.0 and 0 disabling the threshold entirely.
func (p *Params) spread() float64 {
	return math.Max(0, float64(p.Threshold)/50)
}

// blendFactor converts the 0–100 blend setting to the dither weight.
// Out-of-range settings clamp rather than extrapolate.
func (p *Params) blendFactor() float64 {
	f := float64(p.Blend) / 100
	return math.Min(1, math.Max(0, f))
}
