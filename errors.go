package main

import "fmt"

// FormatError reports a project document that cannot be loaded. Index is the
// position in the objects list, or -1 for document-level problems.
type FormatError struct {
	Index int
	Field string
	Msg   string
}

func (e *FormatError) Error() string {
	switch {
	case e.Index >= 0 && e.Field != "":
		return fmt.Sprintf("invalid project: object %d: %s: %s", e.Index, e.Field, e.Msg)
	case e.Index >= 0:
		return fmt.Sprintf("invalid project: object %d: %s", e.Index, e.Msg)
	case e.Field != "":
		return fmt.Sprintf("invalid project: %s: %s", e.Field, e.Msg)
	default:
		return "invalid project: " + e.Msg
	}
}

// RangeError rejects a display size outside the supported bounds.
type RangeError struct {
	Width, Height int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("display size %dx%d out of range: width must be %d-%d and height %d-%d",
		e.Width, e.Height, minDisplayWidth, maxDisplayWidth, minDisplayHeight, maxDisplayHeight)
}
