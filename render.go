package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

type primKind int

const (
	primRect primKind = iota
	primEllipse
	primArc
	primLine
	primPolygon
	primText
)

// primitive is one drawing call. Rect, ellipse and arc use Pts[0] and Pts[1]
// as inclusive pixel corners of their bounding box. Width is the stroke width
// of an outline and is ignored when Fill is set.
type primitive struct {
	Kind     primKind
	Pts      []image.Point
	Fill     bool
	Width    int
	From, To float64
	Text     string
	Size     FontSize
}

func fillRect(x0, y0, x1, y1 int) primitive {
	return primitive{Kind: primRect, Pts: []image.Point{pt(x0, y0), pt(x1, y1)}, Fill: true}
}

func strokeRect(x0, y0, x1, y1, w int) primitive {
	return primitive{Kind: primRect, Pts: []image.Point{pt(x0, y0), pt(x1, y1)}, Width: w}
}

func fillEllipse(x0, y0, x1, y1 int) primitive {
	return primitive{Kind: primEllipse, Pts: []image.Point{pt(x0, y0), pt(x1, y1)}, Fill: true}
}

func strokeEllipse(x0, y0, x1, y1, w int) primitive {
	return primitive{Kind: primEllipse, Pts: []image.Point{pt(x0, y0), pt(x1, y1)}, Width: w}
}

// arc angles are in degrees, clockwise from three o'clock.
func arc(x0, y0, x1, y1 int, from, to float64, w int) primitive {
	return primitive{Kind: primArc, Pts: []image.Point{pt(x0, y0), pt(x1, y1)}, From: from, To: to, Width: w}
}

func line(x0, y0, x1, y1, w int) primitive {
	return primitive{Kind: primLine, Pts: []image.Point{pt(x0, y0), pt(x1, y1)}, Width: w}
}

func fillPolygon(pts ...image.Point) primitive {
	return primitive{Kind: primPolygon, Pts: pts, Fill: true}
}

func strokePolygon(w int, pts ...image.Point) primitive {
	return primitive{Kind: primPolygon, Pts: pts, Width: w}
}

// objectPrimitives decides what an object looks like; the Surface decides
// which pixels that covers.
func objectPrimitives(o *Object) []primitive {
	switch s := o.Shape.(type) {
	case *Rectangle:
		if s.Filled {
			return []primitive{fillRect(s.X, s.Y, s.X+s.Width, s.Y+s.Height)}
		}
		return []primitive{strokeRect(s.X, s.Y, s.X+s.Width, s.Y+s.Height, outlineWidth)}
	case *Circle:
		x0, y0, x1, y1 := s.X-s.Radius, s.Y-s.Radius, s.X+s.Radius, s.Y+s.Radius
		if s.Filled {
			return []primitive{fillEllipse(x0, y0, x1, y1)}
		}
		return []primitive{strokeEllipse(x0, y0, x1, y1, outlineWidth)}
	case *Text:
		return []primitive{{Kind: primText, Pts: []image.Point{pt(s.X, s.Y)}, Text: s.Content, Size: s.Size, Fill: true}}
	case *Line:
		return []primitive{line(s.X1, s.Y1, s.X2, s.Y2, s.Width)}
	case *Icon:
		return iconPrimitives(s.Symbol, s.X, s.Y, s.Size)
	default:
		panic(fmt.Sprintf("unknown shape %T", o.Shape))
	}
}

// Surface is an immediate-mode monochrome drawing target. Every call paints
// black; the background is white.
type Surface interface {
	Rectangle(x0, y0, x1, y1 int, fill bool, width int)
	Ellipse(x0, y0, x1, y1 int, fill bool, width int)
	Arc(x0, y0, x1, y1 int, from, to float64, width int)
	Line(x0, y0, x1, y1, width int)
	Polygon(pts []image.Point, fill bool, width int)
	Text(x, y int, s string, size FontSize)
}

func drawPrimitive(sf Surface, p primitive) {
	switch p.Kind {
	case primRect:
		sf.Rectangle(p.Pts[0].X, p.Pts[0].Y, p.Pts[1].X, p.Pts[1].Y, p.Fill, p.Width)
	case primEllipse:
		sf.Ellipse(p.Pts[0].X, p.Pts[0].Y, p.Pts[1].X, p.Pts[1].Y, p.Fill, p.Width)
	case primArc:
		sf.Arc(p.Pts[0].X, p.Pts[0].Y, p.Pts[1].X, p.Pts[1].Y, p.From, p.To, p.Width)
	case primLine:
		sf.Line(p.Pts[0].X, p.Pts[0].Y, p.Pts[1].X, p.Pts[1].Y, p.Width)
	case primPolygon:
		sf.Polygon(p.Pts, p.Fill, p.Width)
	case primText:
		sf.Text(p.Pts[0].X, p.Pts[0].Y, p.Text, p.Size)
	}
}

// ggSurface draws onto a fogleman/gg context. Pixel boxes are inclusive, so a
// box from x0 to x1 covers the continuous span [x0, x1+1).
type ggSurface struct {
	dc    *gg.Context
	fonts *FontProvider
}

func newGGSurface(width, height int, fonts *FontProvider) *ggSurface {
	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetLineCapButt()
	return &ggSurface{dc: dc, fonts: fonts}
}

func span(a, b int) (lo, size float64) {
	if b < a {
		a, b = b, a
	}
	return float64(a), float64(b - a + 1)
}

func (s *ggSurface) Rectangle(x0, y0, x1, y1 int, fill bool, width int) {
	x, w := span(x0, x1)
	y, h := span(y0, y1)
	lw := float64(width)
	if fill || w <= 2*lw || h <= 2*lw {
		s.dc.DrawRectangle(x, y, w, h)
		s.dc.Fill()
		return
	}
	// Outlines are four solid bars so corners stay square.
	s.dc.DrawRectangle(x, y, w, lw)
	s.dc.DrawRectangle(x, y+h-lw, w, lw)
	s.dc.DrawRectangle(x, y+lw, lw, h-2*lw)
	s.dc.DrawRectangle(x+w-lw, y+lw, lw, h-2*lw)
	s.dc.Fill()
}

func (s *ggSurface) Ellipse(x0, y0, x1, y1 int, fill bool, width int) {
	x, w := span(x0, x1)
	y, h := span(y0, y1)
	cx, cy, rx, ry := x+w/2, y+h/2, w/2, h/2
	lw := float64(width)
	if fill || rx <= lw || ry <= lw {
		s.dc.DrawEllipse(cx, cy, rx, ry)
		s.dc.Fill()
		return
	}
	s.dc.SetLineWidth(lw)
	s.dc.DrawEllipse(cx, cy, rx-lw/2, ry-lw/2)
	s.dc.Stroke()
}

func (s *ggSurface) Arc(x0, y0, x1, y1 int, from, to float64, width int) {
	x, w := span(x0, x1)
	y, h := span(y0, y1)
	lw := float64(width)
	rx, ry := w/2-lw/2, h/2-lw/2
	if rx <= 0 || ry <= 0 {
		return
	}
	s.dc.SetLineWidth(lw)
	s.dc.NewSubPath()
	s.dc.DrawEllipticalArc(x+w/2, y+h/2, rx, ry, gg.Radians(from), gg.Radians(to))
	s.dc.Stroke()
}

func (s *ggSurface) Line(x0, y0, x1, y1, width int) {
	if width < 1 {
		width = 1
	}
	s.dc.SetLineWidth(float64(width))
	s.dc.DrawLine(float64(x0)+0.5, float64(y0)+0.5, float64(x1)+0.5, float64(y1)+0.5)
	s.dc.Stroke()
}

func (s *ggSurface) Polygon(pts []image.Point, fill bool, width int) {
	if len(pts) < 2 {
		return
	}
	s.dc.NewSubPath()
	for i, p := range pts {
		if i == 0 {
			s.dc.MoveTo(float64(p.X)+0.5, float64(p.Y)+0.5)
			continue
		}
		s.dc.LineTo(float64(p.X)+0.5, float64(p.Y)+0.5)
	}
	s.dc.ClosePath()
	if fill {
		s.dc.Fill()
		return
	}
	s.dc.SetLineWidth(float64(width))
	s.dc.Stroke()
}

func (s *ggSurface) Text(x, y int, str string, size FontSize) {
	if str == "" || s.fonts == nil {
		return
	}
	face := s.fonts.Face(size)
	s.dc.SetFontFace(face)
	ascent := face.Metrics().Ascent.Ceil()
	s.dc.DrawString(str, float64(x), float64(y+ascent))
}

// Render paints the scene bottom-first and thresholds the result to one bit
// per pixel.
func Render(sc *Scene, fonts *FontProvider) *image.Paletted {
	sf := newGGSurface(sc.Width(), sc.Height(), fonts)
	for _, o := range sc.PaintOrder() {
		for _, p := range objectPrimitives(o) {
			drawPrimitive(sf, p)
		}
	}
	return toBitmap(sf.dc.Image())
}
