// Package raster holds the image operations behind a sprite sheet: decode, fit into a box,
// extend onto a fixed canvas, concatenate side by side, encode.
package raster

import (
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/webp"
)

var ErrUnsupportedFormat = imaging.ErrUnsupportedFormat

// Anchor is where a fitted image sits on the extended canvas.
type Anchor int

const (
	NorthWest Anchor = iota
	Center
)

func ParseAnchor(s string) (Anchor, error) {
	switch strings.ToLower(s) {
	case "", "northwest":
		return NorthWest, nil
	case "center":
		return Center, nil
	}
	return NorthWest, errors.Errorf("unknown anchor %q", s)
}

func (a Anchor) String() string {
	if a == Center {
		return "center"
	}
	return "northwest"
}

// Open decodes png, jpeg, gif, bmp, tiff and webp files.
func Open(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return img, nil
}

// Save encodes img in the format implied by the extension of path.
func Save(img image.Image, path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return errors.Wrapf(ErrUnsupportedFormat, "encode %s", path)
	}
	if err := imaging.Save(img, path); err != nil {
		return errors.Wrapf(err, "encode %s", path)
	}
	return nil
}

// FitSize is the size of a w x h image scaled so its longer side equals box.
func FitSize(w, h, box int) (int, int) {
	if w <= 0 || h <= 0 || box <= 0 {
		return 0, 0
	}
	if w >= h {
		return box, max(1, (h*box+w/2)/w)
	}
	return max(1, (w*box+h/2)/h), box
}

// Fit scales src up or down, keeping its aspect ratio, so it fits inside a box x box square.
func Fit(src image.Image, box int) *image.NRGBA {
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), box)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, src, b, draw.Src, nil)
	return dst
}

// Extend composes img over a canvas x canvas square filled with fill.
// Parts of img falling outside the canvas are cut off.
func Extend(img image.Image, canvas int, anchor Anchor, fill color.Color) *image.NRGBA {
	bg := imaging.New(canvas, canvas, fill)

	pos := image.Point{}
	if anchor == Center {
		size := img.Bounds().Size()
		pos = image.Pt((canvas-size.X)/2, (canvas-size.Y)/2)
	}
	return imaging.Overlay(bg, img, pos, 1.0)
}

// Concat lays imgs out left to right, top aligned, over a fill background.
func Concat(imgs []image.Image, fill color.Color) (*image.NRGBA, error) {
	if len(imgs) == 0 {
		return nil, errors.New("nothing to concatenate")
	}

	w, h := 0, 0
	for _, img := range imgs {
		size := img.Bounds().Size()
		w += size.X
		h = max(h, size.Y)
	}

	sheet := imaging.New(w, h, fill)
	x := 0
	for _, img := range imgs {
		sheet = imaging.Paste(sheet, img, image.Pt(x, 0))
		x += img.Bounds().Dx()
	}
	return sheet, nil
}
