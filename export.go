package main

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
)

type ExportFormat string

const (
	FormatPNG    ExportFormat = "png"
	FormatBMP    ExportFormat = "bmp"
	FormatPython ExportFormat = "python"
	FormatC      ExportFormat = "c"
	FormatPDF    ExportFormat = "pdf"
	FormatTXT    ExportFormat = "txt"
)

var exportFormats = []ExportFormat{FormatPNG, FormatBMP, FormatPython, FormatC, FormatPDF, FormatTXT}

// formatForPath guesses the export format from a file extension.
func formatForPath(path string) (ExportFormat, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return FormatPNG, nil
	case ".bmp":
		return FormatBMP, nil
	case ".py":
		return FormatPython, nil
	case ".h", ".c":
		return FormatC, nil
	case ".pdf":
		return FormatPDF, nil
	case ".txt":
		return FormatTXT, nil
	}
	return "", fmt.Errorf("cannot tell export format from %q", path)
}

// Exporter renders sessions and writes them out in any supported format.
type Exporter struct {
	Fonts  *FontProvider
	Config *Config
}

func (e *Exporter) Export(s *Session, format ExportFormat, path string) error {
	img := Render(s.Scene, e.Fonts)

	var err error
	switch format {
	case FormatPNG, FormatBMP:
		err = writeImage(path, img, format)
	case FormatPython, FormatC:
		err = e.writeCode(path, s, img, CodeTarget(format))
	case FormatPDF:
		err = writeProofPDF(path, img, e.Config.PixelPitchMM, s.Display)
	case FormatTXT:
		err = exportVisualTXT(path, img)
	default:
		err = fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return err
	}
	logger().Info("exported", "format", format, "path", path, "black_pixels", countSet(img))
	s.Status = fmt.Sprintf("Exported %s: %s", format, path)
	return nil
}

func (e *Exporter) writeCode(path string, s *Session, img *image.Paletted, target CodeTarget) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	driver := e.Config.Driver(s.Scene.Width(), s.Scene.Height())
	if err := GenerateCode(w, target, Pack(img), driver, s.Scene.Width(), s.Scene.Height(), s.ProjectID); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return f.Close()
}

// writeImage saves the unpacked raster. PNG keeps the 1-bit palette.
func writeImage(path string, img *image.Paletted, format ExportFormat) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if format == FormatBMP {
		err = bmp.Encode(f, img)
	} else {
		err = png.Encode(f, img)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}
	return f.Close()
}

// exportVisualTXT writes the raster as half-block text, two pixel rows per
// line.
func exportVisualTXT(filename string, img *image.Paletted) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	r := img.Bounds()
	for _, line := range previewLines(img, 0, 0, r.Dx(), (r.Dy()+1)/2) {
		fmt.Fprintln(file, strings.TrimRight(line, " "))
	}
	return file.Close()
}

// previewLines renders a window of img starting at pixel (x0, y0) as cols x
// rows terminal cells. Each cell shows one pixel column and two pixel rows.
func previewLines(img *image.Paletted, x0, y0, cols, rows int) []string {
	r := img.Bounds()
	at := func(x, y int) bool {
		if x < 0 || y < 0 || x >= r.Dx() || y >= r.Dy() {
			return false
		}
		return isSet(img, x, y)
	}

	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var b strings.Builder
		y := y0 + row*2
		for col := 0; col < cols; col++ {
			x := x0 + col
			top, bottom := at(x, y), at(x, y+1)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}
