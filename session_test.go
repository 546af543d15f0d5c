package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rectOf(t *testing.T, o *Object) *Rectangle {
	t.Helper()
	r, ok := o.Shape.(*Rectangle)
	require.True(t, ok, "got %T", o.Shape)
	return r
}

func TestNewSessionStartsWithOneEntry(t *testing.T) {
	s := NewSession(250, 122)
	assert.Equal(t, 1, s.History.Len())
	assert.False(t, s.History.CanUndo())
	assert.NotEmpty(t, s.ProjectID)
	assert.False(t, s.Undo())
}

func TestAddObjectsStackUpwards(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	s.AddCircle()
	s.AddText("", FontSize("bogus"))
	s.AddLine()
	require.NoError(t, s.AddIcon(IconHeart))

	objs := s.Scene.Objects()
	require.Len(t, objs, 5)
	for i, o := range objs {
		assert.Equal(t, i+1, o.Z)
	}
	assert.Same(t, objs[4], s.Scene.Selected())
	assert.Equal(t, &Text{X: 10, Y: 10, Content: "Hello World", Size: FontMedium}, objs[2].Shape)
	assert.Equal(t, 6, s.History.Len())

	assert.Error(t, s.AddIcon(IconSymbol("rocket")))
	assert.Equal(t, 5, s.Scene.Len())
}

func TestDragCommitsOnce(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	entries := s.History.Len()

	require.True(t, s.BeginDrag(25, 25))
	s.DragTo(30, 30)
	s.DragTo(40, 35)
	assert.Equal(t, entries, s.History.Len(), "nothing committed mid-drag")
	assert.True(t, s.EndDrag())

	assert.Equal(t, entries+1, s.History.Len())
	r := rectOf(t, s.Scene.Objects()[0])
	assert.Equal(t, 35, r.X)
	assert.Equal(t, 30, r.Y)

	require.True(t, s.Undo())
	r = rectOf(t, s.Scene.Objects()[0])
	assert.Equal(t, 20, r.X)
}

func TestDragWithoutMovementDoesNotCommit(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	entries := s.History.Len()

	require.True(t, s.BeginDrag(25, 25))
	assert.False(t, s.EndDrag())
	assert.Equal(t, entries, s.History.Len())

	assert.False(t, s.BeginDrag(200, 100), "empty space")
	assert.Nil(t, s.Scene.Selected())
	s.DragTo(210, 110)
	assert.False(t, s.EndDrag())
}

func TestDragSnapsToGrid(t *testing.T) {
	s := NewSession(250, 122)
	s.GridSnap = true
	s.GridSize = 5
	s.AddRectangle()

	require.True(t, s.BeginDrag(25, 25))
	s.DragTo(27, 25)
	assert.Equal(t, 20, rectOf(t, s.Scene.Objects()[0]).X, "2px snaps to zero")
	s.DragTo(28, 25)
	assert.Equal(t, 25, rectOf(t, s.Scene.Objects()[0]).X)
	s.EndDrag()
}

func TestCancelDragRollsBack(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	entries := s.History.Len()

	require.True(t, s.BeginDrag(25, 25))
	s.DragTo(60, 60)
	s.CancelDrag()

	assert.False(t, s.Dragging())
	assert.Equal(t, entries, s.History.Len())
	r := rectOf(t, s.Scene.Objects()[0])
	assert.Equal(t, 20, r.X)
	assert.Equal(t, 20, r.Y)
	assert.Same(t, s.Scene.Objects()[0], s.Scene.Selected())
}

func TestKeyboardMove(t *testing.T) {
	s := NewSession(250, 122)
	assert.False(t, s.BeginMove())

	s.AddCircle()
	require.True(t, s.BeginMove())
	s.DragTo(130, 61)
	require.True(t, s.EndDrag())
	assert.Equal(t, &Circle{X: 130, Y: 61, Radius: 25}, s.Scene.Objects()[0].Shape)
}

func TestUndoRedoWalk(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	s.AddCircle()
	s.AddLine()

	for i := 0; i < 3; i++ {
		require.True(t, s.Undo())
	}
	assert.Equal(t, 0, s.Scene.Len())
	assert.False(t, s.Undo())

	for i := 0; i < 3; i++ {
		require.True(t, s.Redo())
	}
	assert.Equal(t, 3, s.Scene.Len())
	assert.False(t, s.Redo())
	assert.Equal(t, KindLine, s.Scene.Objects()[2].Kind())
	assert.Nil(t, s.Scene.Selected(), "restoring clears the selection")
}

func TestUndoRestoresFreshObjects(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	before := s.Scene.Objects()[0]
	s.Nudge(1, 0)
	s.Undo()

	after := s.Scene.Objects()[0]
	assert.NotSame(t, before, after)
	assert.Equal(t, 20, rectOf(t, after).X)
	assert.Equal(t, 21, rectOf(t, before).X, "history holds no live pointers")
}

func TestSelectionOperationsAreNoopsWithoutSelection(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	s.Scene.Select(nil)
	entries := s.History.Len()

	assert.False(t, s.DeleteSelected())
	assert.False(t, s.Nudge(1, 1))
	assert.False(t, s.Duplicate())
	assert.False(t, s.BringForward())
	assert.False(t, s.SendBackward())
	ok, err := s.Align(AlignLeft)
	assert.False(t, ok)
	assert.NoError(t, err)
	assert.False(t, s.DeleteAt(249, 121))

	assert.Equal(t, entries, s.History.Len())
	assert.Equal(t, "Nothing here to delete", s.Status)
}

func TestDuplicate(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	require.True(t, s.Duplicate())

	objs := s.Scene.Objects()
	require.Len(t, objs, 2)
	assert.Equal(t, &Rectangle{X: 30, Y: 30, Width: 60, Height: 40}, objs[1].Shape)
	assert.Equal(t, 2, objs[1].Z)
	assert.Same(t, objs[1], s.Scene.Selected())
	assert.Equal(t, 20, rectOf(t, objs[0]).X)
	assert.NotSame(t, objs[0].Shape, objs[1].Shape)

	s.AddText("Room 4", FontLarge)
	require.True(t, s.Duplicate())
	objs = s.Scene.Objects()
	assert.Equal(t, &Text{X: 20, Y: 20, Content: "Room 4", Size: FontLarge}, objs[3].Shape)
	assert.Equal(t, 4, objs[3].Z)
}

func TestDeleteAtTopmost(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	s.AddRectangle()
	top := s.Scene.Objects()[1]

	require.True(t, s.DeleteAt(30, 30))
	assert.Equal(t, 1, s.Scene.Len())
	assert.NotContains(t, s.Scene.Objects(), top)
}

func TestReorderAndAlignCommit(t *testing.T) {
	s := NewSession(100, 80)
	s.AddRectangle()
	entries := s.History.Len()

	require.True(t, s.SendBackward())
	assert.Equal(t, 0, s.Scene.Selected().Z)
	ok, err := s.Align(AlignRight)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 100, rectOf(t, s.Scene.Selected()).X)

	_, err = s.Align(AlignEdge("nowhere"))
	assert.Error(t, err)
	assert.Equal(t, entries+2, s.History.Len())
}

func TestClearAll(t *testing.T) {
	s := NewSession(250, 122)
	assert.False(t, s.ClearAll())
	s.AddRectangle()
	s.AddCircle()
	require.True(t, s.ClearAll())
	assert.Equal(t, 0, s.Scene.Len())
	require.True(t, s.Undo())
	assert.Equal(t, 2, s.Scene.Len())
}

func TestSetDisplaySizeRejectsOutOfRange(t *testing.T) {
	s := NewSession(250, 122)
	s.AddRectangle()
	entries := s.History.Len()

	for _, size := range [][2]int{{49, 100}, {1201, 100}, {100, 49}, {100, 801}} {
		err := s.SetDisplaySize(size[0], size[1])
		var re *RangeError
		require.True(t, errors.As(err, &re), "%v", size)
		assert.Equal(t, size[0], re.Width)
	}
	assert.Equal(t, 250, s.Scene.Width())
	assert.Equal(t, 122, s.Scene.Height())

	require.NoError(t, s.SetDisplaySize(1200, 800))
	assert.Equal(t, "Custom (1200x800)", s.Display)
	assert.Equal(t, entries, s.History.Len(), "canvas size is not part of history")
	assert.Equal(t, 1, s.Scene.Len())

	require.NoError(t, s.ApplyPreset(displayPresets[3]))
	assert.Equal(t, 400, s.Scene.Width())
	assert.Equal(t, displayPresets[3].Name, s.Display)
}

func TestSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "badge.epd")

	s := NewSession(296, 128)
	s.AddRectangle()
	require.NoError(t, s.AddIcon(IconWifi))
	assert.Error(t, s.Save(""), "no path yet")
	require.NoError(t, s.Save(path))
	assert.Equal(t, path, s.Path)

	other := NewSession(250, 122)
	other.AddCircle()
	require.NoError(t, other.Open(path))
	assert.Equal(t, s.ProjectID, other.ProjectID)
	assert.Equal(t, 296, other.Scene.Width())
	assert.Equal(t, `Waveshare 2.9"`, other.Display)
	assert.Equal(t, 2, other.Scene.Len())
	assert.Equal(t, 1, other.History.Len())
	assert.False(t, other.Undo(), "opening starts a new history")
}

func TestFailedOpenLeavesSessionUntouched(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.epd")
	require.NoError(t, os.WriteFile(bad, []byte(`{"objects": [{"type": "Rectangle"}]}`), 0644))

	s := NewSession(250, 122)
	s.AddRectangle()
	scene, id, entries := s.Scene, s.ProjectID, s.History.Len()

	err := s.Open(bad)
	var fe *FormatError
	assert.ErrorAs(t, err, &fe)
	assert.Error(t, s.Open(filepath.Join(dir, "missing.epd")))

	assert.Same(t, scene, s.Scene)
	assert.Equal(t, id, s.ProjectID)
	assert.Equal(t, entries, s.History.Len())
	assert.Equal(t, "", s.Path)
}

func TestNewProject(t *testing.T) {
	s := NewSession(400, 300)
	s.AddRectangle()
	s.Path = "old.epd"
	id := s.ProjectID

	s.NewProject()
	assert.Equal(t, 0, s.Scene.Len())
	assert.Equal(t, 400, s.Scene.Width())
	assert.NotEqual(t, id, s.ProjectID)
	assert.Equal(t, "", s.Path)
	assert.Equal(t, 1, s.History.Len())
}

func TestNewSessionFromConfig(t *testing.T) {
	c := defaultConfig()
	c.Width, c.Height = 640, 384
	c.GridSnap = true
	s, err := newSessionFromConfig(c)
	require.NoError(t, err)
	assert.Equal(t, 640, s.Scene.Width())
	assert.Equal(t, "Custom (640x384)", s.Display)
	assert.True(t, s.GridSnap)

	c.Width = 20
	_, err = newSessionFromConfig(c)
	var re *RangeError
	assert.ErrorAs(t, err, &re)
}

func TestSelectionMarker(t *testing.T) {
	s := NewSession(250, 122)
	_, ok := s.SelectionMarker()
	assert.False(t, ok)

	s.AddLine()
	p, ok := s.SelectionMarker()
	require.True(t, ok)
	assert.Equal(t, 10, p.X)
	assert.Equal(t, 10, p.Y)
}
