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

// Command dither applies the dithering algorithms of
// seehuhn.de/go/dither to image files.
package main

import (
	"fmt"
	"image"
	"log"
	"math"
	"os"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/nfnt/resize"
	"github.com/urfave/cli/v2"

	"seehuhn.de/go/dither"
	"seehuhn.de/go/dither/palette"
)

func main() {
	app := &cli.App{
		Name:      "dither",
		Usage:     "dither an image down to a small colour palette",
		ArgsUsage: "input-file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "algorithm",
				Aliases: []string{"a"},
				Value:   "FloydSteinberg",
				Usage:   "dithering algorithm (see the list command)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "out.png",
				Usage:   "output file name",
			},
			&cli.StringSliceFlag{
				Name:    "colour",
				Aliases: []string{"c"},
				Usage:   "palette colour as #rrggbb hex (repeatable)",
			},
			&cli.IntFlag{
				Name:  "gray",
				Usage: "use a gray-level palette with `N` levels instead",
			},
			&cli.UintFlag{
				Name:  "max-width",
				Usage: "downscale the input to at most `W` pixels wide",
			},
			&cli.IntFlag{Name: "scale", Value: 1, Usage: "pixelation block size"},
			&cli.IntFlag{Name: "line-scale", Value: 1, Usage: "pattern cell size multiplier"},
			&cli.IntFlag{Name: "threshold", Value: 50, Usage: "dither spread, 0-100"},
			&cli.IntFlag{Name: "contrast", Value: 50, Usage: "contrast, 0-100"},
			&cli.IntFlag{Name: "midtones", Value: 50, Usage: "midtone gamma, 0-100"},
			&cli.IntFlag{Name: "highlights", Value: 50, Usage: "highlight strength, 0-100"},
			&cli.IntFlag{Name: "smoothing", Value: 0, Usage: "pre-dither smoothing, 0-100"},
			&cli.IntFlag{Name: "blur", Value: 0, Usage: "pre-dither blur radius, 0-10"},
			&cli.IntFlag{Name: "depth", Value: 0, Usage: "unsharp mask strength, 0-10"},
			&cli.IntFlag{Name: "blend", Value: 100, Usage: "dither/source mix, 0-100"},
			&cli.Float64Flag{Name: "angle", Usage: "pattern rotation in degrees"},
			&cli.Uint64Flag{Name: "seed", Usage: "seed for the randomised algorithms"},
			&cli.BoolFlag{Name: "invert", Usage: "invert the input tones"},
			&cli.BoolFlag{Name: "serpentine", Usage: "alternate the scan direction per row"},
			&cli.BoolFlag{Name: "demo", Usage: "render a built-in test card instead of reading a file"},
		},
		Action: run,
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "list the available algorithms",
				Action: list,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func list(c *cli.Context) error {
	for _, a := range dither.Algorithms() {
		fmt.Println(a)
	}
	return nil
}

func run(c *cli.Context) error {
	alg, err := dither.ByName(c.String("algorithm"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	var src image.Image
	if c.Bool("demo") {
		src = testCard(512, 384)
	} else {
		input := c.Args().Get(0)
		if input == "" {
			return cli.Exit("input file is required (or use --demo)", 1)
		}
		src, err = imaging.Open(input, imaging.AutoOrientation(true))
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	if w := c.Uint("max-width"); w > 0 && uint(src.Bounds().Dx()) > w {
		src = resize.Resize(w, 0, src, resize.Lanczos3)
	}

	pal := palette.BlackWhite()
	if n := c.Int("gray"); n > 0 {
		pal = palette.Gray(n)
	} else if hex := c.StringSlice("colour"); len(hex) > 0 {
		pal, err = palette.Parse(hex...)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
	}

	p := dither.DefaultParams(alg)
	p.Palette = pal
	p.Scale = c.Int("scale")
	p.LineScale = c.Int("line-scale")
	p.Threshold = c.Int("threshold")
	p.Contrast = c.Int("contrast")
	p.Midtones = c.Int("midtones")
	p.Highlights = c.Int("highlights")
	p.Smoothing = c.Int("smoothing")
	p.Blur = c.Int("blur")
	p.Depth = c.Int("depth")
	p.Blend = c.Int("blend")
	p.Angle = c.Float64("angle")
	p.Seed = c.Uint64("seed")
	p.Invert = c.Bool("invert")
	p.Serpentine = c.Bool("serpentine")

	out, err := dither.Process(src, p)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if err := imaging.Save(out, c.String("output")); err != nil {
		return cli.Exit(err.Error(), 1)
	}
	return nil
}

// testCard renders a synthetic image with gradients, discs and line
// detail, enough structure to compare algorithms without an input file.
func testCard(w, h int) image.Image {
	dc := gg.NewContext(w, h)

	// horizontal luminance ramp
	for x := 0; x < w; x++ {
		v := float64(x) / float64(w-1)
		dc.SetRGB(v, v, v)
		dc.DrawLine(float64(x), 0, float64(x), float64(h))
		dc.Stroke()
	}

	// colour discs
	cx := float64(w) / 2
	cy := float64(h) / 2
	r := float64(h) / 4
	for i, c := range [][3]float64{{0.9, 0.2, 0.2}, {0.2, 0.8, 0.3}, {0.25, 0.4, 0.9}} {
		phi := float64(i) * 2 * math.Pi / 3
		dc.SetRGBA(c[0], c[1], c[2], 0.8)
		dc.DrawCircle(cx+math.Cos(phi)*r, cy+math.Sin(phi)*r, r)
		dc.Fill()
	}

	// fine concentric rings in one corner
	dc.SetRGB(0, 0, 0)
	for i := 1; i < 24; i++ {
		dc.DrawCircle(float64(w), 0, float64(i*i))
		dc.Stroke()
	}

	return dc.Image()
}
