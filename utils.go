package main

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// cleanClipboardText keeps the first line of printable text.
func cleanClipboardText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\t' {
			result.WriteRune(' ')
		} else if r >= 32 {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}

// copySelection puts the selected object on the clipboard in project format.
func copySelection(s *Session) error {
	o := s.Scene.Selected()
	if o == nil {
		s.noop("No object selected")
		return nil
	}
	data, err := json.Marshal(encodeObject(o))
	if err != nil {
		return err
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	s.Status = fmt.Sprintf("Copied %s", o.Kind())
	return nil
}

// pasteClipboard adds the clipboard contents to the scene: an object copied
// with copySelection, or otherwise a text object holding the first line.
func pasteClipboard(s *Session) error {
	text, err := readClipboardText()
	if err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return pasteText(s, text)
}

func pasteText(s *Session, text string) error {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		o, err := decodeObject(0, []byte(trimmed))
		if err != nil {
			return err
		}
		s.Scene.Move(o, duplicateOffset, duplicateOffset)
		s.AddObject(o)
		s.Status = fmt.Sprintf("Pasted %s", o.Kind())
		return nil
	}
	line := cleanClipboardText(text)
	if line == "" {
		s.noop("Clipboard is empty")
		return nil
	}
	s.AddText(line, FontMedium)
	s.Status = "Pasted text"
	return nil
}

// copyBuffer puts the packed framebuffer on the clipboard as a byte list.
func copyBuffer(buf []byte) error {
	return clipboard.WriteAll(strings.Join(hexRows(buf), "\n"))
}
