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

	"seehuhn.de/go/dither/palette"
)

// applyAdjustments runs the pre-dither stages on img in place:
// tone curve, highlights, blur, smoothing, unsharp mask. Stages at
// their identity setting are skipped without touching the pixels.
func applyAdjustments(img *image.RGBA, p *Params) {
	lut := buildToneLUT(p.Contrast, p.Midtones, p.Invert)
	if !lut.isIdentity() {
		lut.apply(img)
	}
	adjustHighlights(img, p.Highlights)

	if r := clampInt(p.Blur, 0, 10); r > 0 {
		boxBlur(img, r)
	}
	// smoothing maps 0–100 onto a 0–5 pixel blur radius
	if r := clampInt(p.Smoothing/20, 0, 5); r > 0 {
		boxBlur(img, r)
	}
	if d := clampInt(p.Depth, 0, 10); d > 0 {
		unsharpMask(img, 1, float64(d)*0.3)
	}
}

// runAlgorithm dispatches to the selected algorithm. The caller has
// already validated the algorithm and built the quantizer, so this
// cannot fail.
func runAlgorithm(img *image.RGBA, q *palette.Quantizer, p *Params) {
	switch p.Algorithm.Category() {
	case CategoryDiffusion:
		diffuse(img, q, diffusionKernels[p.Algorithm], p.Serpentine)

	case CategoryOrdered:
		var m *Matrix
		switch p.Algorithm {
		case Bayer2x2:
			m = Bayer(1)
		case Bayer4x4:
			m = Bayer(2)
		case Bayer8x8:
			m = Bayer(3)
		case Bayer16x16:
			m = Bayer(4)
		case BlueNoise:
			m = BlueNoiseMatrix(64)
		}
		orderedDither(img, q, m, p.spread())

	case CategoryNoise:
		switch p.Algorithm {
		case WhiteNoise:
			whiteNoiseDither(img, q, p.Seed, p.spread())
		case InterleavedGradientNoise:
			interleavedGradientDither(img, q, p.spread())
		case PerlinNoise:
			perlinDither(img, q, p)
		}

	case CategoryPattern:
		patternDither(img, q, p.Algorithm, p)

	case CategoryMosaic:
		switch p.Algorithm {
		case Stippling:
			stippleDither(img, q, p)
		case Pointillism:
			pointillismDither(img, q, p)
		case VoronoiMosaic:
			voronoiDither(img, q, p)
		case PixelSort:
			pixelSortDither(img, q, p)
		case DLA:
			dlaDither(img, q, p)
		}

	case CategoryReaction:
		grayScottDither(img, q, p)
	}
}

// runPipeline executes the fixed stage order on a working copy:
// adjustments, downscale, algorithm, upscale, blend. The algorithm is
// passed as a closure so that custom kernels and threshold maps reuse
// the same stage sequencing as the built-in algorithms.
func runPipeline(src *image.RGBA, p *Params, algo func(*image.RGBA)) *image.RGBA {
	work := cloneRGBA(src)
	w := work.Rect.Dx()
	h := work.Rect.Dy()

	applyAdjustments(work, p)

	// keep the pre-dither image only if the blend stage will need it
	f := p.blendFactor()
	var adjusted *image.RGBA
	if f < 1 {
		adjusted = cloneRGBA(work)
	}
	if f == 0 {
		// dithering fully suppressed
		return adjusted
	}

	scale := max(1, p.Scale)
	if scale > 1 && w > 0 && h > 0 {
		work = downscaleBlocks(work, scale)
	}

	algo(work)

	if scale > 1 && w > 0 && h > 0 {
		work = upscaleNearest(work, w, h)
	}

	if f < 1 {
		blendImages(work, adjusted, f)
	}
	return work
}
