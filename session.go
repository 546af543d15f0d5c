package main

import (
	"errors"
	"fmt"
	"image"
)

// Session is one open project: the scene, its history and the gesture in
// progress. Every editing operation goes through a Session; there is no
// package-level editor state.
//
// Operations that change what would be saved commit exactly one history
// entry. Operations that cannot apply (nothing selected, nothing to undo)
// change nothing and only set Status.
type Session struct {
	Scene     *Scene
	History   *History
	ProjectID string
	Path      string
	Display   string
	GridSnap  bool
	GridSize  int
	Status    string

	drag *dragState
}

type dragState struct {
	obj          *Object
	lastX, lastY int
	moved        bool
}

func NewSession(width, height int) *Session {
	s := &Session{
		Scene:     NewScene(width, height),
		History:   NewHistory(),
		ProjectID: NewProjectID(),
		GridSize:  defaultGridSize,
		Status:    "Ready - drag objects, right-click to delete",
	}
	s.commit("new")
	return s
}

func newSessionFromConfig(c *Config) (*Session, error) {
	w, h, err := c.DisplaySize()
	if err != nil {
		return nil, err
	}
	s := NewSession(w, h)
	s.Display = c.Display
	if c.Width != 0 {
		s.Display = fmt.Sprintf("Custom (%dx%d)", w, h)
	}
	s.GridSnap = c.GridSnap
	s.GridSize = c.GridSize
	return s, nil
}

func (s *Session) snapshot() Snapshot {
	data, err := EncodeObjects(s.Scene.Objects())
	if err != nil {
		// Objects hold only ints, bools and strings.
		panic(fmt.Sprintf("encode snapshot: %v", err))
	}
	return Snapshot(data)
}

func (s *Session) commit(action string) {
	s.History.Commit(s.snapshot())
	logger().Debug("commit", "action", action, "objects", s.Scene.Len(),
		"cursor", s.History.Cursor(), "entries", s.History.Len())
}

// restore replaces the scene's objects with a snapshot. Canvas size is kept
// and the selection is cleared.
func (s *Session) restore(snap Snapshot) error {
	objs, err := DecodeObjects(snap)
	if err != nil {
		return err
	}
	s.Scene.Clear()
	for _, o := range objs {
		s.Scene.Add(o)
	}
	s.drag = nil
	return nil
}

func (s *Session) noop(msg string) bool {
	s.Status = msg
	logger().Debug("no-op", "reason", msg)
	return false
}

// AddObject places o on top of everything else and selects it.
func (s *Session) AddObject(o *Object) {
	o.Z = s.Scene.NextZ()
	s.Scene.Add(o)
	s.Scene.Select(o)
	s.commit("add")
	s.Status = fmt.Sprintf("Added %s", o.Kind())
}

func (s *Session) AddRectangle() { s.AddObject(defaultRectangle()) }
func (s *Session) AddCircle()    { s.AddObject(defaultCircle()) }
func (s *Session) AddLine()      { s.AddObject(defaultLine()) }

func (s *Session) AddText(content string, size FontSize) {
	s.AddObject(defaultText(content, size))
}

func (s *Session) AddIcon(sym IconSymbol) error {
	if !sym.Valid() {
		return fmt.Errorf("unknown icon %q", sym)
	}
	s.AddObject(defaultIcon(sym))
	s.Status = fmt.Sprintf("Added %s icon - drag to position", sym)
	return nil
}

// SelectAt selects the topmost object under (x, y), or clears the selection.
func (s *Session) SelectAt(x, y int) *Object {
	o := s.Scene.HitTest(x, y)
	s.Scene.Select(o)
	if o != nil {
		s.Status = fmt.Sprintf("Selected %s - arrow keys to nudge, Del to delete", o.Kind())
	}
	return o
}

// BeginDrag starts a drag gesture on the object under (x, y).
func (s *Session) BeginDrag(x, y int) bool {
	o := s.SelectAt(x, y)
	if o == nil {
		s.drag = nil
		return false
	}
	s.drag = &dragState{obj: o, lastX: x, lastY: y}
	return true
}

// BeginMove starts a keyboard drag of the selection from its anchor.
func (s *Session) BeginMove() bool {
	o := s.Scene.Selected()
	if o == nil {
		return s.noop("No object selected")
	}
	p := Anchor(o)
	s.drag = &dragState{obj: o, lastX: p.X, lastY: p.Y}
	return true
}

func (s *Session) Dragging() bool {
	return s.drag != nil
}

// DragTo moves the dragged object by the pointer delta since the last
// applied move, snapped to the grid when enabled. Deltas that snap to zero
// accumulate until they reach half a grid step. Nothing is committed.
func (s *Session) DragTo(x, y int) {
	if s.drag == nil {
		return
	}
	dx := x - s.drag.lastX
	dy := y - s.drag.lastY
	if s.GridSnap {
		dx = snap(dx, s.GridSize)
		dy = snap(dy, s.GridSize)
	}
	if dx == 0 && dy == 0 {
		return
	}
	s.Scene.Move(s.drag.obj, dx, dy)
	s.drag.lastX = x
	s.drag.lastY = y
	s.drag.moved = true
}

// EndDrag finishes the gesture. A drag that moved the object commits one
// history entry no matter how many DragTo calls it took.
func (s *Session) EndDrag() bool {
	d := s.drag
	s.drag = nil
	if d == nil || !d.moved {
		return false
	}
	s.commit("move")
	p := Anchor(d.obj)
	s.Status = fmt.Sprintf("%s at (%d, %d)", d.obj.Kind(), p.X, p.Y)
	return true
}

// CancelDrag abandons the gesture and puts the scene back to the last
// committed state. The dragged object stays selected.
func (s *Session) CancelDrag() {
	d := s.drag
	s.drag = nil
	if d == nil || !d.moved {
		return
	}
	idx := s.Scene.indexOf(d.obj)
	snap, ok := s.History.Current()
	if !ok {
		return
	}
	if err := s.restore(snap); err != nil {
		logger().Error("rollback failed", "err", err)
		return
	}
	if idx >= 0 && idx < s.Scene.Len() {
		s.Scene.Select(s.Scene.Objects()[idx])
	}
	s.Status = "Move cancelled"
}

// DeleteAt removes the topmost object under (x, y).
func (s *Session) DeleteAt(x, y int) bool {
	o := s.Scene.HitTest(x, y)
	if o == nil {
		return s.noop("Nothing here to delete")
	}
	return s.delete(o)
}

func (s *Session) DeleteSelected() bool {
	o := s.Scene.Selected()
	if o == nil {
		return s.noop("No object selected")
	}
	return s.delete(o)
}

func (s *Session) delete(o *Object) bool {
	s.Scene.Remove(o)
	s.commit("delete")
	s.Status = fmt.Sprintf("Deleted %s", o.Kind())
	return true
}

// Nudge moves the selection by a fixed step and commits.
func (s *Session) Nudge(dx, dy int) bool {
	o := s.Scene.Selected()
	if o == nil {
		return s.noop("No object selected")
	}
	s.Scene.Move(o, dx, dy)
	s.commit("nudge")
	p := Anchor(o)
	s.Status = fmt.Sprintf("%s at (%d, %d)", o.Kind(), p.X, p.Y)
	return true
}

// Duplicate copies the selection, offsets it and puts the copy on top.
func (s *Session) Duplicate() bool {
	o := s.Scene.Selected()
	if o == nil {
		return s.noop("No object selected")
	}
	c, err := copyObject(o)
	if err != nil {
		logger().Error("duplicate failed", "err", err)
		return s.noop("Cannot duplicate " + string(o.Kind()))
	}
	s.Scene.Move(c, duplicateOffset, duplicateOffset)
	s.AddObject(c)
	s.Status = fmt.Sprintf("Duplicated %s", c.Kind())
	return true
}

func (s *Session) BringForward() bool { return s.reorder(1, "Brought forward") }
func (s *Session) SendBackward() bool { return s.reorder(-1, "Sent backward") }

func (s *Session) reorder(delta int, msg string) bool {
	o := s.Scene.Selected()
	if o == nil {
		return s.noop("No object selected")
	}
	s.Scene.Reorder(o, delta)
	s.commit("reorder")
	s.Status = fmt.Sprintf("%s %s (z=%d)", msg, o.Kind(), o.Z)
	return true
}

func (s *Session) Align(edge AlignEdge) (bool, error) {
	o := s.Scene.Selected()
	if o == nil {
		return s.noop("No object selected"), nil
	}
	if err := s.Scene.Align(o, edge); err != nil {
		return false, err
	}
	s.commit("align")
	s.Status = fmt.Sprintf("Aligned %s %s", o.Kind(), edge)
	return true, nil
}

func (s *Session) ClearAll() bool {
	if s.Scene.Len() == 0 {
		return s.noop("Nothing to clear")
	}
	s.Scene.Clear()
	s.commit("clear")
	s.Status = "Cleared all objects"
	return true
}

func (s *Session) Undo() bool {
	snap, ok := s.History.Undo()
	if !ok {
		return s.noop("Nothing to undo")
	}
	if err := s.restore(snap); err != nil {
		logger().Error("undo failed", "err", err)
		return false
	}
	s.Status = "Undo"
	return true
}

func (s *Session) Redo() bool {
	snap, ok := s.History.Redo()
	if !ok {
		return s.noop("Nothing to redo")
	}
	if err := s.restore(snap); err != nil {
		logger().Error("redo failed", "err", err)
		return false
	}
	s.Status = "Redo"
	return true
}

// NewProject empties the scene, keeps the canvas size and starts a fresh
// history.
func (s *Session) NewProject() {
	s.Scene.Clear()
	s.drag = nil
	s.ProjectID = NewProjectID()
	s.Path = ""
	s.History.Reset()
	s.commit("new")
	s.Status = "New project"
}

// Open replaces the session with the project at path. On error nothing in
// the session changes.
func (s *Session) Open(path string) error {
	p, err := LoadProjectFile(path, s.Scene.Width(), s.Scene.Height())
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			logger().Warn("rejected project", "path", path, "err", err)
		}
		return err
	}
	s.adopt(p)
	s.Path = path
	s.Status = fmt.Sprintf("Loaded: %s", path)
	return nil
}

func (s *Session) adopt(p *Project) {
	s.Scene = p.Scene
	s.ProjectID = p.ID
	if s.ProjectID == "" {
		s.ProjectID = NewProjectID()
	}
	s.Display = presetName(p.Scene.Width(), p.Scene.Height())
	s.drag = nil
	s.History.Reset()
	s.commit("open")
}

func (s *Session) Save(path string) error {
	if path == "" {
		path = s.Path
	}
	if path == "" {
		return errors.New("no file name")
	}
	if err := SaveProjectFile(path, s.ProjectID, s.Scene); err != nil {
		return err
	}
	s.Path = path
	s.Status = fmt.Sprintf("Saved: %s", path)
	return nil
}

// SetDisplaySize changes the canvas. Out-of-range sizes are rejected before
// anything changes. Objects keep their coordinates.
func (s *Session) SetDisplaySize(width, height int) error {
	if err := validateDisplaySize(width, height); err != nil {
		s.Status = err.Error()
		return err
	}
	s.Scene.Resize(width, height)
	s.Display = presetName(width, height)
	s.Status = fmt.Sprintf("Display size changed to %dx%dpx", width, height)
	logger().Info("display resized", "width", width, "height", height)
	return nil
}

func (s *Session) ApplyPreset(p DisplayPreset) error {
	if err := s.SetDisplaySize(p.Width, p.Height); err != nil {
		return err
	}
	s.Display = p.Name
	return nil
}

func (s *Session) ToggleGridSnap() {
	s.GridSnap = !s.GridSnap
	if s.GridSnap {
		s.Status = fmt.Sprintf("Grid snap on (%dpx)", s.GridSize)
	} else {
		s.Status = "Grid snap off"
	}
}

// SelectionMarker is where the editor draws the selection crosshair.
func (s *Session) SelectionMarker() (image.Point, bool) {
	o := s.Scene.Selected()
	if o == nil {
		return image.Point{}, false
	}
	return Anchor(o), true
}

func presetName(width, height int) string {
	for _, p := range displayPresets {
		if p.Width == width && p.Height == height {
			return p.Name
		}
	}
	return fmt.Sprintf("Custom (%dx%d)", width, height)
}
