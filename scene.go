package main

import (
	"fmt"
	"sort"
)

type AlignEdge string

const (
	AlignLeft    AlignEdge = "left"
	AlignRight   AlignEdge = "right"
	AlignCenterV AlignEdge = "center_v" // vertical axis: x = width/2
	AlignTop     AlignEdge = "top"
	AlignBottom  AlignEdge = "bottom"
	AlignCenterH AlignEdge = "center_h" // horizontal axis: y = height/2
)

// Scene holds objects in insertion order. Paint and hit order are always
// derived from z-index, never from the slice position alone.
type Scene struct {
	width    int
	height   int
	objects  []*Object
	selected *Object
}

func NewScene(width, height int) *Scene {
	return &Scene{
		width:   width,
		height:  height,
		objects: make([]*Object, 0),
	}
}

func (s *Scene) Width() int  { return s.width }
func (s *Scene) Height() int { return s.height }

// Resize changes the canvas. Objects keep their coordinates.
func (s *Scene) Resize(width, height int) {
	s.width = width
	s.height = height
}

func (s *Scene) Objects() []*Object {
	return s.objects
}

func (s *Scene) Len() int {
	return len(s.objects)
}

func (s *Scene) Selected() *Object {
	return s.selected
}

// Select sets the selection; nil clears it. Objects not in the scene are
// ignored.
func (s *Scene) Select(o *Object) {
	if o != nil && s.indexOf(o) < 0 {
		return
	}
	s.selected = o
}

// NextZ is the z-index a new object needs to paint above everything else.
func (s *Scene) NextZ() int {
	top := 0
	for _, o := range s.objects {
		if o.Z > top {
			top = o.Z
		}
	}
	return top + 1
}

func (s *Scene) Add(o *Object) {
	s.objects = append(s.objects, o)
}

// Remove deletes o by identity and reports whether it was present.
func (s *Scene) Remove(o *Object) bool {
	i := s.indexOf(o)
	if i < 0 {
		return false
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	if s.selected == o {
		s.selected = nil
	}
	return true
}

func (s *Scene) Clear() {
	s.objects = make([]*Object, 0)
	s.selected = nil
}

func (s *Scene) Move(o *Object, dx, dy int) {
	translate(o, dx, dy)
}

// Reorder shifts o's z-index by delta. Indices are never renormalised, so
// they can go negative or collide.
func (s *Scene) Reorder(o *Object, delta int) {
	o.Z += delta
}

// Align moves o so its anchor sits on the requested canvas edge or axis.
func (s *Scene) Align(o *Object, edge AlignEdge) error {
	p := Anchor(o)
	var dx, dy int
	switch edge {
	case AlignLeft:
		dx = -p.X
	case AlignRight:
		dx = s.width - p.X
	case AlignCenterV:
		dx = s.width/2 - p.X
	case AlignTop:
		dy = -p.Y
	case AlignBottom:
		dy = s.height - p.Y
	case AlignCenterH:
		dy = s.height/2 - p.Y
	default:
		return fmt.Errorf("unknown alignment %q", edge)
	}
	s.Move(o, dx, dy)
	return nil
}

// PaintOrder returns the objects sorted by ascending z. Ties keep insertion
// order.
func (s *Scene) PaintOrder() []*Object {
	out := make([]*Object, len(s.objects))
	copy(out, s.objects)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Z < out[j].Z
	})
	return out
}

// HitTest returns the topmost object containing (x, y): highest z first,
// later insertion first on ties. That is PaintOrder walked backwards.
func (s *Scene) HitTest(x, y int) *Object {
	order := s.PaintOrder()
	for i := len(order) - 1; i >= 0; i-- {
		if ContainsPoint(order[i], x, y) {
			return order[i]
		}
	}
	return nil
}

// Stats is the summary shown in the editor's info panel.
func (s *Scene) Stats() string {
	counts := make(map[Kind]int)
	for _, o := range s.objects {
		counts[o.Kind()]++
	}
	out := fmt.Sprintf("Display: %dx%dpx\nObjects: %d\n", s.width, s.height, len(s.objects))
	for _, k := range sortedKinds(counts) {
		out += fmt.Sprintf("  %s: %d\n", k, counts[k])
	}
	sel := "None"
	if s.selected != nil {
		sel = string(s.selected.Kind())
	}
	return out + "Selected: " + sel
}

func sortedKinds(counts map[Kind]int) []Kind {
	keys := make([]Kind, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (s *Scene) indexOf(o *Object) int {
	for i, v := range s.objects {
		if v == o {
			return i
		}
	}
	return -1
}
