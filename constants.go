package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeMove
	ModeTextInput
	ModeIconPicker
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpExportPNG
	FileOpExportCode
	FileOpExportPDF
	FileOpExportTXT
	FileOpResize
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmNewProject
	ConfirmClearAll
	ConfirmOverwriteFile
)

const (
	maxHistory = 50

	// Bytes per packed row expected by the panel driver, whatever the canvas width.
	rowStride = 16

	textGlyphWidth = 8
	textHeight     = 12

	defaultGridSize = 5
	duplicateOffset = 10
	outlineWidth    = 2

	minDisplayWidth  = 50
	maxDisplayWidth  = 1200
	minDisplayHeight = 50
	maxDisplayHeight = 800

	projectVersion = "1.0"
)
