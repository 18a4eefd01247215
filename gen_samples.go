//go:build ignore

// gen_samples writes a pair of source images into 600px/black and 600px/white so the
// batch has something to chew on: go run gen_samples.go
package main

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"pixelspriter/internal/config"
	"pixelspriter/internal/raster"
)

func main() {
	fmt.Println("--- Generating Samples ---")

	cfg := config.Default()
	inks := map[string]color.NRGBA{
		"black": {0, 0, 0, 255},
		"white": {255, 255, 255, 255},
	}

	for _, category := range cfg.Categories {
		dir := cfg.SourceDir(category)
		os.MkdirAll(dir, 0755)

		dest := filepath.Join(dir, "turtle.png")
		if err := raster.Save(turtle(cfg.Canvas, inks[category]), dest); err != nil {
			fmt.Printf("Failed to create %s: %v\n", dest, err)
		} else {
			fmt.Printf("Created %s\n", dest)
		}
	}
	fmt.Println("Samples Generated Successfully!")
}

// turtle is a blocky shell: a filled disc with four stubby legs.
func turtle(size int, ink color.NRGBA) *image.NRGBA {
	bg := color.NRGBA{ink.R ^ 0xff, ink.G ^ 0xff, ink.B ^ 0xff, 255}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Rect, image.NewUniform(bg), image.Point{}, draw.Src)

	c := size / 2
	r := size / 3
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-c, y-c
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, ink)
			}
		}
	}

	leg := size / 10
	for _, p := range []image.Point{{c - r, c - r}, {c + r - leg, c - r}, {c - r, c + r - leg}, {c + r - leg, c + r - leg}} {
		draw.Draw(img, image.Rect(p.X, p.Y, p.X+leg, p.Y+leg), image.NewUniform(ink), image.Point{}, draw.Src)
	}
	return img
}
