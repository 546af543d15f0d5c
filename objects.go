package main

import "fmt"

// Kind is the tag stored in the "type" field of a serialized object.
type Kind string

const (
	KindRectangle Kind = "Rectangle"
	KindCircle    Kind = "Circle"
	KindText      Kind = "Text"
	KindLine      Kind = "Line"
	KindIcon      Kind = "Icon"
)

var kinds = []Kind{KindRectangle, KindCircle, KindText, KindLine, KindIcon}

type FontSize string

const (
	FontTiny   FontSize = "tiny"
	FontSmall  FontSize = "small"
	FontMedium FontSize = "medium"
	FontLarge  FontSize = "large"
)

var fontSizes = []FontSize{FontTiny, FontSmall, FontMedium, FontLarge}

func (f FontSize) Valid() bool {
	for _, s := range fontSizes {
		if f == s {
			return true
		}
	}
	return false
}

// Points is the nominal glyph size used when the face is loaded.
func (f FontSize) Points() float64 {
	switch f {
	case FontTiny:
		return 8
	case FontSmall:
		return 10
	case FontLarge:
		return 16
	default:
		return 12
	}
}

// Shape is the closed set of drawable variants. Only the types in this file
// implement it.
type Shape interface {
	Kind() Kind
	sealed()
}

type Rectangle struct {
	X, Y          int
	Width, Height int
	Filled        bool
}

type Circle struct {
	X, Y   int
	Radius int
	Filled bool
}

// Text is drawn with its top-left corner at (X, Y).
type Text struct {
	X, Y    int
	Content string
	Size    FontSize
}

type Line struct {
	X1, Y1 int
	X2, Y2 int
	Width  int
}

// Icon is centred on (X, Y); Size is the half-edge of its hit square.
type Icon struct {
	X, Y   int
	Symbol IconSymbol
	Size   int
}

func (*Rectangle) Kind() Kind { return KindRectangle }
func (*Circle) Kind() Kind    { return KindCircle }
func (*Text) Kind() Kind      { return KindText }
func (*Line) Kind() Kind      { return KindLine }
func (*Icon) Kind() Kind      { return KindIcon }

func (*Rectangle) sealed() {}
func (*Circle) sealed()    {}
func (*Text) sealed()      {}
func (*Line) sealed()      {}
func (*Icon) sealed()      {}

// Object is one entry of a scene. Identity is the pointer: two objects with
// equal attributes are still different objects.
type Object struct {
	Z     int
	Shape Shape
}

func NewObject(s Shape) *Object {
	return &Object{Shape: s}
}

func (o *Object) Kind() Kind {
	return o.Shape.Kind()
}

func (o *Object) String() string {
	p := Anchor(o)
	return fmt.Sprintf("%s at (%d, %d) z=%d", o.Kind(), p.X, p.Y, o.Z)
}

// Default objects created by the editor's "add" actions.

func defaultRectangle() *Object {
	return NewObject(&Rectangle{X: 20, Y: 20, Width: 60, Height: 40})
}

func defaultCircle() *Object {
	return NewObject(&Circle{X: 125, Y: 61, Radius: 25})
}

func defaultText(content string, size FontSize) *Object {
	if content == "" {
		content = "Hello World"
	}
	if !size.Valid() {
		size = FontMedium
	}
	return NewObject(&Text{X: 10, Y: 10, Content: content, Size: size})
}

func defaultLine() *Object {
	return NewObject(&Line{X1: 10, Y1: 10, X2: 100, Y2: 100, Width: 2})
}

func defaultIcon(sym IconSymbol) *Object {
	return NewObject(&Icon{X: 125, Y: 61, Symbol: sym, Size: 16})
}
