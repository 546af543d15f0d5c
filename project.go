package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Document is the on-disk project format.
type Document struct {
	Version string            `json:"version"`
	ID      string            `json:"id,omitempty"`
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Objects []json.RawMessage `json:"objects"`
}

type rectangleDoc struct {
	Type   Kind `json:"type"`
	Z      int  `json:"z_index"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Width  int  `json:"width"`
	Height int  `json:"height"`
	Filled bool `json:"filled"`
}

type circleDoc struct {
	Type   Kind `json:"type"`
	Z      int  `json:"z_index"`
	X      int  `json:"x"`
	Y      int  `json:"y"`
	Radius int  `json:"radius"`
	Filled bool `json:"filled"`
}

type textDoc struct {
	Type     Kind     `json:"type"`
	Z        int      `json:"z_index"`
	X        int      `json:"x"`
	Y        int      `json:"y"`
	Text     string   `json:"text"`
	FontSize FontSize `json:"font_size"`
}

type lineDoc struct {
	Type      Kind `json:"type"`
	Z         int  `json:"z_index"`
	X1        int  `json:"x1"`
	Y1        int  `json:"y1"`
	X2        int  `json:"x2"`
	Y2        int  `json:"y2"`
	LineWidth int  `json:"line_width"`
}

type iconDoc struct {
	Type     Kind       `json:"type"`
	Z        int        `json:"z_index"`
	X        int        `json:"x"`
	Y        int        `json:"y"`
	IconType IconSymbol `json:"icon_type"`
	Size     int        `json:"size"`
}

// rawObject accepts any variant. Pointers tell a missing field from a zero
// one; unknown fields are ignored by encoding/json.
type rawObject struct {
	Type      *string `json:"type"`
	Z         *int    `json:"z_index"`
	X         *int    `json:"x"`
	Y         *int    `json:"y"`
	Width     *int    `json:"width"`
	Height    *int    `json:"height"`
	Filled    *bool   `json:"filled"`
	Radius    *int    `json:"radius"`
	Text      *string `json:"text"`
	FontSize  *string `json:"font_size"`
	X1        *int    `json:"x1"`
	Y1        *int    `json:"y1"`
	X2        *int    `json:"x2"`
	Y2        *int    `json:"y2"`
	LineWidth *int    `json:"line_width"`
	IconType  *string `json:"icon_type"`
	Size      *int    `json:"size"`
}

func encodeObject(o *Object) any {
	switch s := o.Shape.(type) {
	case *Rectangle:
		return rectangleDoc{KindRectangle, o.Z, s.X, s.Y, s.Width, s.Height, s.Filled}
	case *Circle:
		return circleDoc{KindCircle, o.Z, s.X, s.Y, s.Radius, s.Filled}
	case *Text:
		return textDoc{KindText, o.Z, s.X, s.Y, s.Content, s.Size}
	case *Line:
		return lineDoc{KindLine, o.Z, s.X1, s.Y1, s.X2, s.Y2, s.Width}
	case *Icon:
		return iconDoc{KindIcon, o.Z, s.X, s.Y, s.Symbol, s.Size}
	default:
		panic(fmt.Sprintf("unknown shape %T", o.Shape))
	}
}

// decodeObject builds one object, dispatching on its type tag.
// copyObject round-trips o through the document codec, so the copy shares
// nothing with o.
func copyObject(o *Object) (*Object, error) {
	data, err := json.Marshal(encodeObject(o))
	if err != nil {
		return nil, err
	}
	return decodeObject(0, data)
}

func decodeObject(i int, data []byte) (*Object, error) {
	var r rawObject
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &FormatError{Index: i, Msg: err.Error()}
	}
	if r.Type == nil {
		return nil, &FormatError{Index: i, Field: "type", Msg: "missing"}
	}

	d := fieldDecoder{index: i}
	var s Shape
	switch Kind(*r.Type) {
	case KindRectangle:
		s = &Rectangle{
			X:      d.reqInt("x", r.X),
			Y:      d.reqInt("y", r.Y),
			Width:  d.reqInt("width", r.Width),
			Height: d.reqInt("height", r.Height),
			Filled: d.reqBool("filled", r.Filled),
		}
	case KindCircle:
		s = &Circle{
			X:      d.reqInt("x", r.X),
			Y:      d.reqInt("y", r.Y),
			Radius: d.reqInt("radius", r.Radius),
			Filled: d.reqBool("filled", r.Filled),
		}
	case KindText:
		t := &Text{
			X:       d.reqInt("x", r.X),
			Y:       d.reqInt("y", r.Y),
			Content: d.reqString("text", r.Text),
			Size:    FontSize(d.reqString("font_size", r.FontSize)),
		}
		if d.err == nil && !t.Size.Valid() {
			d.fail("font_size", fmt.Sprintf("unknown size %q", t.Size))
		}
		s = t
	case KindLine:
		l := &Line{
			X1:    d.reqInt("x1", r.X1),
			Y1:    d.reqInt("y1", r.Y1),
			X2:    d.reqInt("x2", r.X2),
			Y2:    d.reqInt("y2", r.Y2),
			Width: d.reqInt("line_width", r.LineWidth),
		}
		if d.err == nil && l.Width < 1 {
			d.fail("line_width", "must be at least 1")
		}
		s = l
	case KindIcon:
		ic := &Icon{
			X:      d.reqInt("x", r.X),
			Y:      d.reqInt("y", r.Y),
			Symbol: IconSymbol(d.reqString("icon_type", r.IconType)),
			Size:   d.reqInt("size", r.Size),
		}
		if d.err == nil && !ic.Symbol.Valid() {
			d.fail("icon_type", fmt.Sprintf("unknown icon %q", ic.Symbol))
		}
		s = ic
	default:
		return nil, &FormatError{Index: i, Field: "type", Msg: fmt.Sprintf("unknown object type %q", *r.Type)}
	}
	if d.err != nil {
		return nil, d.err
	}

	o := NewObject(s)
	if r.Z != nil {
		o.Z = *r.Z
	}
	return o, nil
}

// fieldDecoder records the first missing field so variant construction can
// stay a single expression.
type fieldDecoder struct {
	index int
	err   *FormatError
}

func (d *fieldDecoder) fail(field, msg string) {
	if d.err == nil {
		d.err = &FormatError{Index: d.index, Field: field, Msg: msg}
	}
}

func (d *fieldDecoder) reqInt(field string, v *int) int {
	if v == nil {
		d.fail(field, "missing")
		return 0
	}
	return *v
}

func (d *fieldDecoder) reqBool(field string, v *bool) bool {
	if v == nil {
		d.fail(field, "missing")
		return false
	}
	return *v
}

func (d *fieldDecoder) reqString(field string, v *string) string {
	if v == nil {
		d.fail(field, "missing")
		return ""
	}
	return *v
}

// EncodeObjects serializes objects in insertion order as a JSON array.
func EncodeObjects(objs []*Object) ([]byte, error) {
	docs := make([]any, len(objs))
	for i, o := range objs {
		docs[i] = encodeObject(o)
	}
	return json.Marshal(docs)
}

func DecodeObjects(data []byte) ([]*Object, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, &FormatError{Index: -1, Field: "objects", Msg: err.Error()}
	}
	return decodeRaw(raws)
}

func decodeRaw(raws []json.RawMessage) ([]*Object, error) {
	objs := make([]*Object, 0, len(raws))
	for i, raw := range raws {
		o, err := decodeObject(i, raw)
		if err != nil {
			return nil, err
		}
		objs = append(objs, o)
	}
	return objs, nil
}

// Project is a loaded document: its identity plus a fresh scene with
// nothing selected.
type Project struct {
	ID    string
	Scene *Scene
}

func NewProjectID() string {
	return uuid.NewString()
}

// MarshalProject writes the persisted form of a scene. Selection is not saved.
func MarshalProject(id string, sc *Scene) ([]byte, error) {
	raws := make([]json.RawMessage, sc.Len())
	for i, o := range sc.Objects() {
		b, err := json.Marshal(encodeObject(o))
		if err != nil {
			return nil, err
		}
		raws[i] = b
	}
	doc := Document{
		Version: projectVersion,
		ID:      id,
		Width:   sc.Width(),
		Height:  sc.Height(),
		Objects: raws,
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalProject parses a document. A missing width or height falls back
// to the given default display size; objects are required.
func UnmarshalProject(data []byte, defaultWidth, defaultHeight int) (*Project, error) {
	var head struct {
		Version *string           `json:"version"`
		ID      string            `json:"id"`
		Width   *int              `json:"width"`
		Height  *int              `json:"height"`
		Objects []json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, &FormatError{Index: -1, Msg: err.Error()}
	}
	if head.Version != nil && !strings.HasPrefix(*head.Version, "1.") {
		return nil, &FormatError{Index: -1, Field: "version", Msg: fmt.Sprintf("unsupported version %q", *head.Version)}
	}
	if head.Objects == nil {
		return nil, &FormatError{Index: -1, Field: "objects", Msg: "missing"}
	}

	width, height := defaultWidth, defaultHeight
	if head.Width != nil {
		width = *head.Width
	}
	if head.Height != nil {
		height = *head.Height
	}
	if width <= 0 || height <= 0 {
		return nil, &FormatError{Index: -1, Field: "width", Msg: fmt.Sprintf("invalid canvas %dx%d", width, height)}
	}

	objs, err := decodeRaw(head.Objects)
	if err != nil {
		return nil, err
	}
	sc := NewScene(width, height)
	for _, o := range objs {
		sc.Add(o)
	}
	return &Project{ID: head.ID, Scene: sc}, nil
}

func SaveProjectFile(path, id string, sc *Scene) error {
	data, err := MarshalProject(id, sc)
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	logger().Info("project saved", "path", path, "objects", sc.Len())
	return nil
}

func LoadProjectFile(path string, defaultWidth, defaultHeight int) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := UnmarshalProject(data, defaultWidth, defaultHeight)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger().Info("project loaded", "path", path, "objects", p.Scene.Len())
	return p, nil
}
