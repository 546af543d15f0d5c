package main

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

type CodeTarget string

const (
	TargetPython CodeTarget = "python"
	TargetC      CodeTarget = "c"
)

type codeData struct {
	Driver    string
	Width     int
	Height    int
	ProjectID string
	Symbol    string
	Size      int
	Rows      []string
}

var codeTemplates = map[CodeTarget]*template.Template{
	TargetPython: template.Must(template.New("python").Parse(`#!/usr/bin/env python3
"""
Generated by epdesign ({{.Width}}x{{.Height}}, project {{.ProjectID}})
"""
from waveshare_epd import {{.Driver}}

epd = {{.Driver}}.EPD()
epd.init()

buffer = [
{{range .Rows}}    {{.}}
{{end}}]

epd.display(buffer)
epd.sleep()
print("Display updated!")
`)),
	TargetC: template.Must(template.New("c").Parse(`// Generated by epdesign ({{.Width}}x{{.Height}}, project {{.ProjectID}})
// Pass to the {{.Driver}} driver's display() after init(), then sleep().
#pragma once

#define {{.Symbol}}_WIDTH {{.Width}}
#define {{.Symbol}}_HEIGHT {{.Height}}

const unsigned char {{.Symbol}}[{{.Size}}] = {
{{range .Rows}}    {{.}}
{{end}}};
`)),
}

// hexRows lays buf out one framebuffer row per line, comma separated, with
// no comma after the last byte.
func hexRows(buf []byte) []string {
	var rows []string
	for i := 0; i < len(buf); i += rowStride {
		end := i + rowStride
		if end > len(buf) {
			end = len(buf)
		}
		parts := make([]string, 0, end-i)
		for _, b := range buf[i:end] {
			parts = append(parts, fmt.Sprintf("0x%02X", b))
		}
		row := strings.Join(parts, ", ")
		if end < len(buf) {
			row += ","
		}
		rows = append(rows, row)
	}
	return rows
}

// GenerateCode writes a device program that embeds the packed buffer.
func GenerateCode(w io.Writer, target CodeTarget, buf []byte, driver string, width, height int, projectID string) error {
	tmpl, ok := codeTemplates[target]
	if !ok {
		return fmt.Errorf("unknown code target %q", target)
	}
	return tmpl.Execute(w, codeData{
		Driver:    driver,
		Width:     width,
		Height:    height,
		ProjectID: projectID,
		Symbol:    "EPD_IMAGE",
		Size:      len(buf),
		Rows:      hexRows(buf),
	})
}
