package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

const projectExt = ".epd"

func main() {
	if len(os.Args) > 1 {
		ctx, stop := signalContext()
		code := runCLI(ctx, os.Args[1:], os.Stdout, os.Stderr)
		stop()
		os.Exit(code)
	}

	config := loadConfig()
	closeLog, err := openLogFile(config.LogFile, config.Debug)
	if err != nil {
		log.Fatal(err)
	}
	defer closeLog()

	m, err := initialModel(config)
	if err != nil {
		log.Fatal(err)
	}
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

func initialModel(config *Config) (model, error) {
	s, err := newSessionFromConfig(config)
	if err != nil {
		return model{}, err
	}
	return model{
		session:           s,
		config:            config,
		exporter:          &Exporter{Fonts: NewFontProvider(config.FontPath, config.BoldFontPath), Config: config},
		mode:              ModeNormal,
		textInputSize:     FontMedium,
		selectedFileIndex: -1,
	}, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorInBounds()
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.help {
			m.handleHelpKey(msg.String())
			return m, nil
		}

		var cmd tea.Cmd
		switch m.mode {
		case ModeMove:
			m.handleMoveKey(msg.String())
		case ModeTextInput:
			m.handleTextInput(msg)
		case ModeIconPicker:
			m.handleIconPicker(msg.String())
		case ModeFileInput:
			m.handleFileInput(msg)
		case ModeConfirm:
			cmd = m.handleConfirm(msg.String())
		default:
			cmd = m.handleNormalKey(msg.String())
		}
		return m, cmd
	}
	return m, nil
}

func (m *model) handleNormalKey(key string) tea.Cmd {
	s := m.session
	m.errorMessage = ""

	switch key {
	case "left", "right", "up", "down", "shift+left", "shift+right", "shift+up", "shift+down":
		if s.Scene.Selected() != nil && !m.zPanMode {
			dx, dy := direction(key)
			speed := m.getMoveSpeed(key)
			s.Nudge(dx*speed, dy*speed)
			return nil
		}
		m.handleNavigation(key, m.getMoveSpeed(key))
		return nil
	case "h", "j", "k", "l", "H", "J", "K", "L":
		m.handleNavigation(key, m.getMoveSpeed(key))
		return nil

	case "?":
		m.help = true
		m.helpScroll = 0
	case "q":
		return m.confirm(ConfirmQuit)
	case "esc":
		m.zPanMode = false
		s.Scene.Select(nil)
		s.Status = "Selection cleared"
	case "z":
		m.zPanMode = !m.zPanMode

	case " ", "enter":
		if s.SelectAt(m.cursorX, m.cursorY) == nil {
			s.Status = "Nothing here"
		}

	case "1":
		s.AddRectangle()
	case "2":
		s.AddCircle()
	case "3":
		m.mode = ModeTextInput
		m.textInput = ""
		m.textInputCursorPos = 0
	case "4":
		s.AddLine()
	case "5":
		m.mode = ModeIconPicker

	case "m":
		if s.BeginMove() {
			p := Anchor(s.Scene.Selected())
			m.moveX, m.moveY = p.X, p.Y
			m.mode = ModeMove
		}
	case "d", "delete", "backspace":
		if s.Scene.Selected() != nil {
			s.DeleteSelected()
		} else {
			s.DeleteAt(m.cursorX, m.cursorY)
		}
	case "D":
		s.Duplicate()
	case "]":
		s.BringForward()
	case "[":
		s.SendBackward()
	case "<", ">", "^", "_", "|", "=":
		if _, err := s.Align(alignKeys[key]); err != nil {
			m.errorMessage = err.Error()
		}

	case "u", "ctrl+z":
		s.Undo()
	case "U", "ctrl+y":
		s.Redo()

	case "y":
		if err := copySelection(s); err != nil {
			m.errorMessage = err.Error()
		}
	case "Y":
		if err := copyBuffer(Pack(Render(s.Scene, m.exporter.Fonts))); err != nil {
			m.errorMessage = err.Error()
		} else {
			s.Status = "Copied framebuffer bytes"
		}
	case "p":
		if err := pasteClipboard(s); err != nil {
			m.errorMessage = err.Error()
		}

	case "g":
		s.ToggleGridSnap()
	case "v":
		if err := s.ApplyPreset(nextPreset(s.Display)); err != nil {
			m.errorMessage = err.Error()
		}
		m.ensureCursorInBounds()
	case "V":
		m.startFileInput(FileOpResize)

	case "s":
		m.startFileInput(FileOpSave)
	case "o":
		m.startFileInput(FileOpOpen)
	case "S":
		m.startFileInput(FileOpExportPNG)
	case "e":
		m.startFileInput(FileOpExportCode)
	case "f":
		m.startFileInput(FileOpExportPDF)
	case "T":
		m.startFileInput(FileOpExportTXT)
	case "n":
		return m.confirm(ConfirmNewProject)
	case "x":
		return m.confirm(ConfirmClearAll)
	}
	return nil
}

var alignKeys = map[string]AlignEdge{
	"<": AlignLeft,
	">": AlignRight,
	"^": AlignTop,
	"_": AlignBottom,
	"|": AlignCenterV,
	"=": AlignCenterH,
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	if m.help || m.mode != ModeNormal {
		return
	}
	s := m.session
	x, y, ok := m.cellToPixel(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.mouseDragging && ok {
			s.DragTo(x, y)
			m.cursorX, m.cursorY = x, y
		}
		return
	case tea.MouseActionRelease:
		if m.mouseDragging {
			s.EndDrag()
			m.mouseDragging = false
		}
		return
	}

	switch msg.Button {
	case tea.MouseButtonLeft:
		if !ok {
			return
		}
		m.errorMessage = ""
		m.cursorX, m.cursorY = x, y
		m.mouseDragging = s.BeginDrag(x, y)
		if !m.mouseDragging {
			s.Status = "Nothing here"
		}
	case tea.MouseButtonRight:
		if ok {
			s.DeleteAt(x, y)
		}
	case tea.MouseButtonWheelUp:
		m.panY -= panStep
		m.clampPan()
	case tea.MouseButtonWheelDown:
		m.panY += panStep
		m.clampPan()
	}
}

func (m *model) handleMoveKey(key string) {
	s := m.session
	switch key {
	case "enter":
		s.EndDrag()
		m.mode = ModeNormal
		return
	case "esc":
		s.CancelDrag()
		m.mode = ModeNormal
		return
	}
	if !isDirectionKey(key) {
		return
	}
	step := m.getMoveSpeed(key)
	if s.GridSnap {
		step *= s.GridSize
	}
	dx, dy := direction(key)
	m.moveX += dx * step
	m.moveY += dy * step
	s.DragTo(m.moveX, m.moveY)
	p := Anchor(s.Scene.Selected())
	s.Status = fmt.Sprintf("Moving %s to (%d, %d)", s.Scene.Selected().Kind(), p.X, p.Y)
}

func (m *model) handleTextInput(msg tea.KeyMsg) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.textInput = ""
		m.textInputCursorPos = 0
	case msg.Type == tea.KeyEnter:
		m.session.AddText(m.textInput, m.textInputSize)
		m.mode = ModeNormal
		m.textInput = ""
		m.textInputCursorPos = 0
	case msg.Type == tea.KeyTab:
		m.textInputSize = nextFontSize(m.textInputSize)
	default:
		m.textInput, m.textInputCursorPos = editLine(m.textInput, m.textInputCursorPos, msg)
	}
}

func nextFontSize(f FontSize) FontSize {
	for i, s := range fontSizes {
		if s == f {
			return fontSizes[(i+1)%len(fontSizes)]
		}
	}
	return FontMedium
}

// editLine applies a single-line editing key to text at cursor position pos
// (in runes).
func editLine(text string, pos int, msg tea.KeyMsg) (string, int) {
	runes := []rune(text)
	pos = clamp(pos, 0, len(runes))
	switch msg.Type {
	case tea.KeyLeft:
		if pos > 0 {
			pos--
		}
	case tea.KeyRight:
		if pos < len(runes) {
			pos++
		}
	case tea.KeyHome, tea.KeyCtrlA:
		pos = 0
	case tea.KeyEnd, tea.KeyCtrlE:
		pos = len(runes)
	case tea.KeyBackspace:
		if pos > 0 {
			runes = append(runes[:pos-1], runes[pos:]...)
			pos--
		}
	case tea.KeyDelete:
		if pos < len(runes) {
			runes = append(runes[:pos], runes[pos+1:]...)
		}
	case tea.KeySpace:
		runes = append(runes[:pos], append([]rune{' '}, runes[pos:]...)...)
		pos++
	case tea.KeyRunes:
		runes = append(runes[:pos], append(append([]rune{}, msg.Runes...), runes[pos:]...)...)
		pos += len(msg.Runes)
	}
	return string(runes), pos
}

func (m *model) handleIconPicker(key string) {
	switch key {
	case "esc":
		m.mode = ModeNormal
	case "left", "h":
		m.iconIndex = (m.iconIndex + len(iconSymbols) - 1) % len(iconSymbols)
	case "right", "l", "tab":
		m.iconIndex = (m.iconIndex + 1) % len(iconSymbols)
	case "enter":
		if err := m.session.AddIcon(iconSymbols[m.iconIndex]); err != nil {
			m.errorMessage = err.Error()
		}
		m.mode = ModeNormal
	}
}

func (m *model) handleHelpKey(key string) {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		if m.helpScroll < len(helpLines)-1 {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	}
}

func (m *model) confirm(action ConfirmAction) tea.Cmd {
	if !m.config.Confirmations {
		return m.runConfirmed(action)
	}
	m.mode = ModeConfirm
	m.confirmAction = action
	return nil
}

func (m *model) handleConfirm(key string) tea.Cmd {
	switch key {
	case "y", "Y":
		action := m.confirmAction
		m.mode = ModeNormal
		if action == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.executeFileOp(true)
			return nil
		}
		return m.runConfirmed(action)
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			return nil
		}
		m.mode = ModeNormal
	}
	return nil
}

func (m *model) runConfirmed(action ConfirmAction) tea.Cmd {
	switch action {
	case ConfirmQuit:
		return tea.Quit
	case ConfirmNewProject:
		m.session.NewProject()
	case ConfirmClearAll:
		m.session.ClearAll()
	}
	return nil
}

func (m *model) startFileInput(op FileOperation) {
	m.mode = ModeFileInput
	m.fileOp = op
	m.errorMessage = ""
	m.filename = "layout"
	if m.session.Path != "" {
		base := filepath.Base(m.session.Path)
		m.filename = strings.TrimSuffix(base, filepath.Ext(base))
	}
	switch op {
	case FileOpOpen:
		m.scanProjectFiles()
	case FileOpResize:
		m.filename = fmt.Sprintf("%dx%d", m.session.Scene.Width(), m.session.Scene.Height())
	}
}

func (m *model) handleFileInput(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEscape:
		m.mode = ModeNormal
		m.errorMessage = ""
		return
	case tea.KeyEnter:
		m.executeFileOp(false)
		return
	case tea.KeyUp, tea.KeyDown:
		if m.fileOp != FileOpOpen || len(m.fileList) == 0 {
			return
		}
		if msg.Type == tea.KeyUp && m.selectedFileIndex > 0 {
			m.selectedFileIndex--
		}
		if msg.Type == tea.KeyDown && m.selectedFileIndex < len(m.fileList)-1 {
			m.selectedFileIndex++
		}
		m.filename = strings.TrimSuffix(m.fileList[m.selectedFileIndex], projectExt)
		return
	}
	pos := len([]rune(m.filename))
	m.filename, _ = editLine(m.filename, pos, msg)
}

// fileOpPath is the file a save or export writes, with the format's
// extension added when the name has none.
func (m *model) fileOpPath() string {
	name := strings.TrimSpace(m.filename)
	if filepath.Ext(name) == "" {
		switch m.fileOp {
		case FileOpSave, FileOpOpen:
			name += projectExt
		default:
			name += formatExt[m.exportFormat()]
		}
	}
	return m.config.GetSavePath(name)
}

func (m *model) exportFormat() ExportFormat {
	switch m.fileOp {
	case FileOpExportPNG:
		return FormatPNG
	case FileOpExportPDF:
		return FormatPDF
	case FileOpExportTXT:
		return FormatTXT
	case FileOpExportCode:
		if m.config.CodeTarget == string(TargetC) {
			return FormatC
		}
		return FormatPython
	}
	return ""
}

func (m *model) executeFileOp(overwrite bool) {
	s := m.session
	if strings.TrimSpace(m.filename) == "" {
		m.errorMessage = "Filename cannot be empty"
		return
	}

	switch m.fileOp {
	case FileOpResize:
		var w, h int
		if _, err := fmt.Sscanf(m.filename, "%dx%d", &w, &h); err != nil {
			m.errorMessage = "Enter size as WIDTHxHEIGHT"
			return
		}
		if err := s.SetDisplaySize(w, h); err != nil {
			m.errorMessage = err.Error()
			return
		}
		m.ensureCursorInBounds()
		m.mode = ModeNormal
		return

	case FileOpOpen:
		if err := s.Open(m.fileOpPath()); err != nil {
			m.errorMessage = err.Error()
			return
		}
		m.cursorX, m.cursorY, m.panX, m.panY = 0, 0, 0, 0
		m.ensureCursorInBounds()
		m.mode = ModeNormal
		return
	}

	path := m.fileOpPath()
	if !overwrite && m.config.Confirmations && path != s.Path {
		if _, err := os.Stat(path); err == nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			return
		}
	}

	var err error
	if m.fileOp == FileOpSave {
		err = s.Save(path)
	} else {
		err = m.exporter.Export(s, m.exportFormat(), path)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.errorMessage = ""
	m.mode = ModeNormal
}

func (m *model) scanProjectFiles() {
	m.fileList = nil
	m.selectedFileIndex = -1

	dir := m.config.SaveDirectory
	if dir == "" {
		var err error
		if dir, err = os.Getwd(); err != nil {
			return
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), projectExt) {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)

	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = strings.TrimSuffix(m.fileList[0], projectExt)
	}
}
