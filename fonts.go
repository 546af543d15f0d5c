package main

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	systemRegularFonts = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/Library/Fonts/Arial.ttf",
		`C:\Windows\Fonts\arial.ttf`,
	}
	systemBoldFonts = []string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		"/usr/share/fonts/TTF/DejaVuSans-Bold.ttf",
		"/Library/Fonts/Arial Bold.ttf",
		`C:\Windows\Fonts\arialbd.ttf`,
	}
)

// FontProvider resolves the four text size classes to faces. Large text uses
// the bold face.
type FontProvider struct {
	faces    map[FontSize]font.Face
	Fallback bool
}

// NewFontProvider loads the first readable regular and bold fonts from the
// given paths, then the system locations. When none parse it falls back to
// the embedded Go fonts, so it never fails.
func NewFontProvider(regularPath, boldPath string) *FontProvider {
	regular, regErr := firstFont(append([]string{regularPath}, systemRegularFonts...))
	bold, boldErr := firstFont(append([]string{boldPath}, systemBoldFonts...))
	if regErr != nil || boldErr != nil {
		logger().Info("system fonts unavailable, using embedded Go fonts", "err", firstErr(regErr, boldErr))
		return EmbeddedFonts()
	}
	return newFaces(regular, bold, false)
}

// EmbeddedFonts skips the system lookup. Exports made with it render the
// same on every machine.
func EmbeddedFonts() *FontProvider {
	return newFaces(mustParse(goregular.TTF), mustParse(gobold.TTF), true)
}

func newFaces(regular, bold *truetype.Font, fallback bool) *FontProvider {
	fp := &FontProvider{faces: make(map[FontSize]font.Face), Fallback: fallback}
	for _, size := range fontSizes {
		f := regular
		if size == FontLarge {
			f = bold
		}
		fp.faces[size] = truetype.NewFace(f, &truetype.Options{
			Size:    size.Points(),
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	return fp
}

func (fp *FontProvider) Face(size FontSize) font.Face {
	if f, ok := fp.faces[size]; ok {
		return f
	}
	return fp.faces[FontMedium]
}

func firstFont(paths []string) (*truetype.Font, error) {
	var lastErr error = fmt.Errorf("no font paths")
	for _, p := range paths {
		if p == "" {
			continue
		}
		data, err := os.ReadFile(p)
		if err != nil {
			lastErr = err
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			lastErr = fmt.Errorf("parse %s: %w", p, err)
			continue
		}
		return f, nil
	}
	return nil, lastErr
}

func mustParse(data []byte) *truetype.Font {
	f, err := truetype.Parse(data)
	if err != nil {
		panic(fmt.Sprintf("embedded font: %v", err))
	}
	return f
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
