package main

import (
	"image"
	"image/color"
	"image/draw"
)

// Palette indices double as bit values: 0 is a set (black) pixel, 1 is unset.
const (
	inkBlack uint8 = 0
	inkWhite uint8 = 1
)

var monoPalette = color.Palette{color.Black, color.White}

// NewBitmap returns an all-white 1-bit raster.
func NewBitmap(width, height int) *image.Paletted {
	b := image.NewPaletted(image.Rect(0, 0, width, height), monoPalette)
	for i := range b.Pix {
		b.Pix[i] = inkWhite
	}
	return b
}

// toBitmap thresholds an anti-aliased image at mid grey.
func toBitmap(img image.Image) *image.Paletted {
	r := img.Bounds()
	b := NewBitmap(r.Dx(), r.Dy())
	gray := image.NewGray(r)
	draw.Draw(gray, r, img, r.Min, draw.Src)
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if gray.GrayAt(r.Min.X+x, r.Min.Y+y).Y < 128 {
				b.SetColorIndex(x, y, inkBlack)
			}
		}
	}
	return b
}

func isSet(b *image.Paletted, x, y int) bool {
	return b.ColorIndexAt(x, y) == inkBlack
}

// Mirror flips b left to right.
func Mirror(b *image.Paletted) *image.Paletted {
	r := b.Bounds()
	out := NewBitmap(r.Dx(), r.Dy())
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			out.SetColorIndex(r.Dx()-1-x, y, b.ColorIndexAt(r.Min.X+x, r.Min.Y+y))
		}
	}
	return out
}

func countSet(b *image.Paletted) int {
	n := 0
	for _, p := range b.Pix {
		if p == inkBlack {
			n++
		}
	}
	return n
}
