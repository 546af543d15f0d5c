package main

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Reverse(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	errorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")).Background(lipgloss.Color("236"))
	offCanvasStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	cursorStyle    = lipgloss.NewStyle().Reverse(true)
	pickedStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
)

func (m model) View() string {
	if m.session == nil {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	var result strings.Builder
	result.WriteString(titleStyle.Width(m.viewCols()).MaxHeight(1).Render(m.titleLine()))
	result.WriteString("\n")

	var body []string
	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		body = m.fileListView()
	} else {
		body = m.canvasView()
	}
	for len(body) < m.viewRows() {
		body = append(body, "")
	}
	result.WriteString(strings.Join(body[:m.viewRows()], "\n"))
	result.WriteString("\n")

	style := statusStyle
	if m.errorMessage != "" {
		style = errorStyle
	}
	result.WriteString(style.Width(m.viewCols()).MaxHeight(1).Render(m.statusLine()))
	return result.String()
}

func (m model) titleLine() string {
	s := m.session
	name := "untitled"
	if s.Path != "" {
		name = filepath.Base(s.Path)
	}
	grid := "off"
	if s.GridSnap {
		grid = fmt.Sprintf("%dpx", s.GridSize)
	}
	return fmt.Sprintf(" epdesign | %s | %s %dx%d | %d objects | grid %s | undo %d/%d",
		name, s.Display, s.Scene.Width(), s.Scene.Height(), s.Scene.Len(),
		grid, s.History.Cursor()+1, s.History.Len())
}

// canvasView draws the visible part of the raster. Cells past the canvas edge
// are dotted so the panel's extent is visible.
func (m model) canvasView() []string {
	s := m.session
	img := Render(s.Scene, m.exporter.Fonts)
	if p, ok := s.SelectionMarker(); ok {
		drawMarker(img, p)
	}

	cols, rows := m.viewCols(), m.viewRows()
	lines := previewLines(img, m.panX, m.panY, cols, rows)
	onCols := clamp(s.Scene.Width()-m.panX, 0, cols)

	cursorRow, cursorCol := -1, -1
	if m.cursorY >= m.panY && m.cursorX >= m.panX {
		cursorRow, cursorCol = (m.cursorY-m.panY)/2, m.cursorX-m.panX
	}

	out := make([]string, len(lines))
	for row, line := range lines {
		cells := []rune(line)
		n := onCols
		if m.panY+row*2 >= s.Scene.Height() {
			n = 0
		}
		var b strings.Builder
		if row == cursorRow && cursorCol < n {
			b.WriteString(string(cells[:cursorCol]))
			b.WriteString(cursorStyle.Render(string(cells[cursorCol])))
			b.WriteString(string(cells[cursorCol+1 : n]))
		} else {
			b.WriteString(string(cells[:n]))
		}
		if n < cols {
			b.WriteString(offCanvasStyle.Render(strings.Repeat("·", cols-n)))
		}
		out[row] = b.String()
	}
	return out
}

// drawMarker inverts a small cross centred on p.
func drawMarker(img *image.Paletted, p image.Point) {
	flip := func(x, y int) {
		if !image.Pt(x, y).In(img.Bounds()) {
			return
		}
		img.SetColorIndex(x, y, 1-img.ColorIndexAt(x, y))
	}
	for d := -3; d <= 3; d++ {
		flip(p.X+d, p.Y)
		if d != 0 {
			flip(p.X, p.Y+d)
		}
	}
}

func (m model) fileListView() []string {
	cols := m.viewCols()
	lines := []string{"Select a saved project:", strings.Repeat("─", cols)}
	if len(m.fileList) == 0 {
		lines = append(lines, fmt.Sprintf("(No %s files found)", projectExt))
	}

	maxFiles := max(1, m.viewRows()-3)
	startIdx := 0
	if m.selectedFileIndex >= maxFiles {
		startIdx = m.selectedFileIndex - maxFiles + 1
	}
	endIdx := min(startIdx+maxFiles, len(m.fileList))
	for i := startIdx; i < endIdx; i++ {
		name := strings.TrimSuffix(m.fileList[i], projectExt)
		if i == m.selectedFileIndex {
			lines = append(lines, "> "+name+" <")
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return append(lines, strings.Repeat("─", cols))
}

func (m model) statusLine() string {
	s := m.session
	var status string
	switch m.mode {
	case ModeTextInput:
		status = fmt.Sprintf("TEXT [%s] %s | Tab=size, Enter=add, Esc=cancel",
			m.textInputSize, withCursor(m.textInput, m.textInputCursorPos))
	case ModeIconPicker:
		parts := make([]string, len(iconSymbols))
		for i, sym := range iconSymbols {
			parts[i] = string(sym)
			if i == m.iconIndex {
				parts[i] = pickedStyle.Render("[" + string(sym) + "]")
			}
		}
		status = "ICON " + strings.Join(parts, " ") + " | ←/→=choose, Enter=add, Esc=cancel"
	case ModeMove:
		status = fmt.Sprintf("MOVE | %s | hjkl/arrows=move, Enter=finish, Esc=cancel", s.Status)
	case ModeFileInput:
		status = fmt.Sprintf("%s: %s█ | Enter=confirm, Esc=cancel", fileOpLabel(m.fileOp), m.filename)
		if m.fileOp == FileOpOpen {
			status += ", ↑/↓=choose"
		}
	case ModeConfirm:
		status = "CONFIRM | " + m.confirmMessage() + " (y/n)"
	default:
		mode := "NORMAL"
		if m.zPanMode {
			mode = "PAN"
		}
		status = fmt.Sprintf("%s | (%d,%d) | %s", mode, m.cursorX, m.cursorY, s.Status)
		if m.errorMessage == "" {
			status += " | ? for help"
		}
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	}
	return status
}

func withCursor(text string, pos int) string {
	runes := []rune(text)
	pos = clamp(pos, 0, len(runes))
	return string(runes[:pos]) + "█" + string(runes[pos:])
}

func fileOpLabel(op FileOperation) string {
	switch op {
	case FileOpSave:
		return "Save project"
	case FileOpOpen:
		return "Open project"
	case FileOpExportPNG:
		return "Export PNG"
	case FileOpExportCode:
		return "Export code"
	case FileOpExportPDF:
		return "Export PDF proof"
	case FileOpExportTXT:
		return "Export TXT"
	case FileOpResize:
		return "Display size"
	}
	return "File"
}

func (m model) confirmMessage() string {
	switch m.confirmAction {
	case ConfirmQuit:
		return "Quit epdesign?"
	case ConfirmNewProject:
		return "Start a new project? Unsaved changes will be lost."
	case ConfirmClearAll:
		return "Remove all objects?"
	case ConfirmOverwriteFile:
		return fmt.Sprintf("%s already exists. Overwrite?", m.fileOpPath())
	}
	return ""
}

var helpLines = []string{
	"epdesign help",
	"=============",
	"",
	"Navigation:",
	"  h/j/k/l          Move cursor (one pixel)",
	"  H/J/K/L          Move cursor ten pixels",
	"  arrows           Nudge selection, or move cursor when nothing is selected",
	"  z                Toggle pan mode",
	"  mouse wheel      Scroll the canvas",
	"",
	"Objects:",
	"  1                Add rectangle",
	"  2                Add circle",
	"  3                Add text (Tab cycles font size)",
	"  4                Add line",
	"  5                Add icon",
	"  Space/Enter      Select object under cursor",
	"  left drag        Move object",
	"  right click      Delete object under pointer",
	"  m                Move selection with the keyboard (Esc cancels)",
	"  d/Del            Delete selection",
	"  D                Duplicate selection",
	"  ] / [            Bring forward / send backward",
	"  < > ^ _          Align left / right / top / bottom",
	"  | =              Centre on vertical / horizontal axis",
	"  x                Clear all objects",
	"",
	"Clipboard:",
	"  y                Copy selection",
	"  p                Paste object or text",
	"  Y                Copy packed framebuffer bytes",
	"",
	"Display:",
	"  v                Next display preset",
	"  V                Custom display size",
	"  g                Toggle grid snap",
	"",
	"Files:",
	"  s / o            Save / open project",
	"  n                New project",
	"  e                Export device code",
	"  S                Export PNG",
	"  f                Export PDF proof",
	"  T                Export text preview",
	"",
	"General:",
	"  u / U            Undo / redo",
	"  Esc              Clear selection",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) helpView() string {
	lines := append([]string{}, helpLines...)
	lines = append(lines, "", "Project:")
	lines = append(lines, strings.Split(m.session.Scene.Stats(), "\n")...)

	visibleHeight := max(1, m.height-1)
	startLine := clamp(m.helpScroll, 0, max(0, len(lines)-visibleHeight))
	endLine := min(startLine+visibleHeight, len(lines))

	result := strings.Join(lines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(lines))
	return result + "\n" + statusStyle.Render(statusLine)
}
