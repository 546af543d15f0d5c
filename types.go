package main

type model struct {
	width  int
	height int

	session  *Session
	exporter *Exporter
	config   *Config

	// Cursor and pan are in canvas pixels. One terminal cell shows one pixel
	// column and two pixel rows.
	cursorX  int
	cursorY  int
	panX     int
	panY     int
	zPanMode bool

	mode       Mode
	help       bool
	helpScroll int

	textInput          string
	textInputCursorPos int
	textInputSize      FontSize

	iconIndex int

	// ModeMove tracks a virtual pointer fed to the session's drag gesture.
	moveX int
	moveY int

	// Left button is held and the press landed on an object.
	mouseDragging bool

	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction

	errorMessage string
}
