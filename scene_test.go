package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectAt(x, y, w, h, z int) *Object {
	o := NewObject(&Rectangle{X: x, Y: y, Width: w, Height: h})
	o.Z = z
	return o
}

func TestHitTestPrefersHigherZ(t *testing.T) {
	sc := NewScene(250, 122)
	top := rectAt(0, 0, 50, 50, 2)
	bottom := rectAt(0, 0, 50, 50, 1)
	sc.Add(top)
	sc.Add(bottom)

	assert.Same(t, top, sc.HitTest(10, 10))
	assert.Nil(t, sc.HitTest(100, 100))
	assert.Equal(t, []*Object{bottom, top}, sc.PaintOrder())
}

func TestHitTestTiesGoToLaterInsertion(t *testing.T) {
	sc := NewScene(250, 122)
	first := rectAt(0, 0, 50, 50, 1)
	second := rectAt(0, 0, 50, 50, 1)
	sc.Add(first)
	sc.Add(second)

	assert.Same(t, second, sc.HitTest(10, 10))
	assert.Equal(t, []*Object{first, second}, sc.PaintOrder())
}

func TestNextZ(t *testing.T) {
	sc := NewScene(250, 122)
	assert.Equal(t, 1, sc.NextZ())

	sc.Add(rectAt(0, 0, 1, 1, -4))
	assert.Equal(t, 1, sc.NextZ())

	sc.Add(rectAt(0, 0, 1, 1, 7))
	assert.Equal(t, 8, sc.NextZ())
}

func TestAlign(t *testing.T) {
	tests := []struct {
		edge  AlignEdge
		wantX int
		wantY int
	}{
		{AlignLeft, 0, 20},
		{AlignRight, 100, 20},
		{AlignCenterV, 50, 20},
		{AlignTop, 10, 0},
		{AlignBottom, 10, 80},
		{AlignCenterH, 10, 40},
	}
	for _, tt := range tests {
		t.Run(string(tt.edge), func(t *testing.T) {
			sc := NewScene(100, 80)
			o := rectAt(10, 20, 30, 10, 1)
			sc.Add(o)
			require.NoError(t, sc.Align(o, tt.edge))
			r := o.Shape.(*Rectangle)
			assert.Equal(t, tt.wantX, r.X)
			assert.Equal(t, tt.wantY, r.Y)
			assert.Equal(t, 30, r.Width)
		})
	}

	sc := NewScene(100, 80)
	o := rectAt(10, 20, 30, 10, 1)
	sc.Add(o)
	assert.Error(t, sc.Align(o, AlignEdge("diagonal")))
	assert.Equal(t, 10, o.Shape.(*Rectangle).X)
}

func TestAlignLineMovesBothEnds(t *testing.T) {
	sc := NewScene(100, 100)
	o := NewObject(&Line{X1: 10, Y1: 10, X2: 40, Y2: 20, Width: 1})
	sc.Add(o)
	require.NoError(t, sc.Align(o, AlignLeft))
	assert.Equal(t, &Line{X1: 0, Y1: 10, X2: 30, Y2: 20, Width: 1}, o.Shape)
}

func TestRemoveByIdentity(t *testing.T) {
	sc := NewScene(250, 122)
	a := rectAt(0, 0, 10, 10, 1)
	twin := rectAt(0, 0, 10, 10, 1)
	sc.Add(a)
	sc.Add(twin)
	sc.Select(twin)

	assert.True(t, sc.Remove(twin))
	assert.Equal(t, []*Object{a}, sc.Objects())
	assert.Same(t, a, sc.Objects()[0])
	assert.Nil(t, sc.Selected())

	assert.False(t, sc.Remove(twin))
	assert.Equal(t, 1, sc.Len())
}

func TestSelectIgnoresForeignObjects(t *testing.T) {
	sc := NewScene(250, 122)
	in := rectAt(0, 0, 10, 10, 1)
	sc.Add(in)
	sc.Select(in)

	sc.Select(rectAt(0, 0, 10, 10, 1))
	assert.Same(t, in, sc.Selected())

	sc.Select(nil)
	assert.Nil(t, sc.Selected())
}

func TestReorderAllowsNegativeAndDuplicateZ(t *testing.T) {
	sc := NewScene(250, 122)
	a := rectAt(0, 0, 10, 10, 1)
	b := rectAt(0, 0, 10, 10, 2)
	sc.Add(a)
	sc.Add(b)

	sc.Reorder(b, -1)
	assert.Equal(t, 1, b.Z)
	assert.Same(t, b, sc.HitTest(5, 5))

	sc.Reorder(a, -3)
	assert.Equal(t, -2, a.Z)
	assert.Equal(t, []*Object{a, b}, sc.PaintOrder())
}

func TestClearDoesNotAliasOldObjects(t *testing.T) {
	sc := NewScene(250, 122)
	sc.Add(rectAt(0, 0, 10, 10, 1))
	before := sc.Objects()
	sc.Clear()
	sc.Add(rectAt(5, 5, 10, 10, 2))

	assert.Equal(t, 0, before[0].Shape.(*Rectangle).X)
	assert.Equal(t, 1, sc.Len())
}

func TestStats(t *testing.T) {
	sc := NewScene(250, 122)
	sc.Add(rectAt(0, 0, 10, 10, 1))
	sc.Add(NewObject(&Circle{X: 1, Y: 1, Radius: 1}))
	sc.Add(rectAt(0, 0, 10, 10, 1))

	want := "Display: 250x122px\nObjects: 3\n  Circle: 1\n  Rectangle: 2\nSelected: None"
	assert.Equal(t, want, sc.Stats())
}
