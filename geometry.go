package main

import (
	"fmt"
	"image"
	"unicode/utf8"
)

// ContainsPoint reports whether (x, y) lies on or inside o. All box tests are
// inclusive on every edge.
func ContainsPoint(o *Object, x, y int) bool {
	switch s := o.Shape.(type) {
	case *Rectangle:
		return inBox(x, y, s.X, s.Y, s.X+s.Width, s.Y+s.Height)
	case *Text:
		w, h := textBounds(s)
		return inBox(x, y, s.X, s.Y, s.X+w, s.Y+h)
	case *Circle:
		dx := x - s.X
		dy := y - s.Y
		return dx*dx+dy*dy <= s.Radius*s.Radius
	case *Line:
		return nearSegment(s, x, y)
	case *Icon:
		return inBox(x, y, s.X-s.Size, s.Y-s.Size, s.X+s.Size, s.Y+s.Size)
	default:
		panic(fmt.Sprintf("unknown shape %T", o.Shape))
	}
}

// Anchor is the point used for alignment and the selection marker.
func Anchor(o *Object) image.Point {
	switch s := o.Shape.(type) {
	case *Rectangle:
		return image.Pt(s.X, s.Y)
	case *Text:
		return image.Pt(s.X, s.Y)
	case *Circle:
		return image.Pt(s.X, s.Y)
	case *Line:
		return image.Pt(s.X1, s.Y1)
	case *Icon:
		return image.Pt(s.X, s.Y)
	default:
		panic(fmt.Sprintf("unknown shape %T", o.Shape))
	}
}

func translate(o *Object, dx, dy int) {
	switch s := o.Shape.(type) {
	case *Rectangle:
		s.X += dx
		s.Y += dy
	case *Text:
		s.X += dx
		s.Y += dy
	case *Circle:
		s.X += dx
		s.Y += dy
	case *Line:
		s.X1 += dx
		s.Y1 += dy
		s.X2 += dx
		s.Y2 += dy
	case *Icon:
		s.X += dx
		s.Y += dy
	default:
		panic(fmt.Sprintf("unknown shape %T", o.Shape))
	}
}

// textBounds is an estimate for hit-testing only; the rendered glyphs may be
// narrower or wider.
func textBounds(t *Text) (int, int) {
	return utf8.RuneCountInString(t.Content) * textGlyphWidth, textHeight
}

func inBox(x, y, x0, y0, x1, y1 int) bool {
	return x0 <= x && x <= x1 && y0 <= y && y <= y1
}

func nearSegment(l *Line, x, y int) bool {
	px := float64(l.X2 - l.X1)
	py := float64(l.Y2 - l.Y1)
	norm := px*px + py*py
	if norm == 0 {
		return false
	}

	u := (float64(x-l.X1)*px + float64(y-l.Y1)*py) / norm
	if u < 0 {
		u = 0
	} else if u > 1 {
		u = 1
	}

	dx := float64(l.X1) + u*px - float64(x)
	dy := float64(l.Y1) + u*py - float64(y)
	reach := float64(l.Width + 3)
	return dx*dx+dy*dy <= reach*reach
}

// snap quantises a movement delta to the nearest multiple of grid. Halves
// round away from zero.
func snap(d, grid int) int {
	if grid <= 1 {
		return d
	}
	if d < 0 {
		return -snap(-d, grid)
	}
	return (d + grid/2) / grid * grid
}
