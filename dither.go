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

// Package dither reduces images to small colour palettes.
//
// The package implements error diffusion, ordered dithering with Bayer
// and blue-noise threshold matrices, noise- and pattern-based
// thresholding, mosaic effects, and a Gray-Scott reaction-diffusion
// simulation. All algorithms share a common pre-processing pipeline
// (tone adjustment, blur, sharpening, downscaling) controlled by a
// [Params] value.
//
// The main entry point is [Process]:
//
//	pal := palette.BlackWhite()
//	p := dither.DefaultParams(dither.FloydSteinberg)
//	p.Palette = pal
//	out, err := dither.Process(src, p)
//
// Input images are never modified; every function returns a new image.
package dither

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"sync"

	"seehuhn.de/go/dither/palette"
)

// ErrUnknownAlgorithm is returned when a [Params] value names an
// algorithm this package does not implement.
var ErrUnknownAlgorithm = errors.New("dither: unknown algorithm")

// ErrEmptyPalette is returned when a palette with no colours is used.
// It equals [palette.ErrEmpty].
var ErrEmptyPalette = palette.ErrEmpty

// Process runs the full pipeline on src and returns the dithered
// result as a new image. The input image is not modified.
//
// If the parameters are invalid, Process returns an unmodified copy of
// src together with an error describing the problem.
func Process(src image.Image, p *Params) (*image.RGBA, error) {
	img := toRGBA(src)
	if p == nil {
		return img, errors.New("dither: missing parameters")
	}
	if !p.Algorithm.Valid() {
		return img, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(p.Algorithm))
	}
	q, err := palette.NewQuantizer(p.Palette)
	if err != nil {
		return img, err
	}
	out := runPipeline(img, p, func(work *image.RGBA) {
		runAlgorithm(work, q, p)
	})
	return out, nil
}

// ProcessCustomMatrix dithers src using a caller-supplied error
// diffusion kernel instead of one of the built-in algorithms. The
// weights matrix is read row by row, with (originX, originY) marking
// the position of the current pixel; entries at or before the origin
// in scan order are ignored. A divisor of zero disables diffusion,
// leaving pure per-pixel quantization.
//
// The Algorithm field of p is ignored; all other parameters apply as
// in [Process].
func ProcessCustomMatrix(src image.Image, pal palette.Palette, weights [][]float64, originX, originY int, divisor float64, p *Params) (*image.RGBA, error) {
	img := toRGBA(src)
	if p == nil {
		p = DefaultParams(FloydSteinberg)
	}
	q, err := palette.NewQuantizer(pal)
	if err != nil {
		return img, err
	}
	k, err := kernelFromMatrix(weights, originX, originY, divisor)
	if err != nil {
		return img, err
	}
	out := runPipeline(img, p, func(work *image.RGBA) {
		diffuse(work, q, k, p.Serpentine)
	})
	return out, nil
}

// ProcessCustomThreshold dithers src using a caller-supplied ordered
// threshold map. The map must be square with non-negative entries; its
// ranks are normalized by max+1, so arbitrary value ranges are
// accepted.
//
// The Algorithm field of p is ignored; all other parameters apply as
// in [Process].
func ProcessCustomThreshold(src image.Image, pal palette.Palette, thresholdMap [][]int, p *Params) (*image.RGBA, error) {
	img := toRGBA(src)
	if p == nil {
		p = DefaultParams(Bayer4x4)
	}
	q, err := palette.NewQuantizer(pal)
	if err != nil {
		return img, err
	}
	m, err := NewMatrix(thresholdMap)
	if err != nil {
		return img, err
	}
	out := runPipeline(img, p, func(work *image.RGBA) {
		orderedDither(work, q, m, p.spread())
	})
	return out, nil
}

// ProcessFrames applies [Process] to a sequence of frames, for example
// the frames of an animation. Frames are processed concurrently, each
// with identical parameters, so the output is independent of the order
// of completion.
//
// If ctx is cancelled, ProcessFrames stops starting new frames and
// returns the context error. Frames already in flight are finished.
func ProcessFrames(ctx context.Context, frames []image.Image, p *Params) ([]*image.RGBA, error) {
	if p == nil {
		return nil, errors.New("dither: missing parameters")
	}
	if !p.Algorithm.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(p.Algorithm))
	}
	if _, err := palette.NewQuantizer(p.Palette); err != nil {
		return nil, err
	}

	out := make([]*image.RGBA, len(frames))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
loop:
	for i, frame := range frames {
		select {
		case <-ctx.Done():
			break loop
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int, frame image.Image) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i], _ = Process(frame, p)
		}(i, frame)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
