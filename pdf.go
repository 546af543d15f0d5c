package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf"
)

// writeProofPDF places the raster on an A4 page at the panel's physical pixel
// pitch, for checking sizes on paper before flashing a device.
func writeProofPDF(path string, img *image.Paletted, pitchMM float64, display string) error {
	if pitchMM <= 0 {
		return fmt.Errorf("pixel pitch must be positive, got %v", pitchMM)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	r := img.Bounds()
	w := float64(r.Dx()) * pitchMM
	h := float64(r.Dy()) * pitchMM

	orientation := "P"
	if w > h {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(15, 15, fmt.Sprintf("%s - %dx%d px - %.3f mm/px - %.1f x %.1f mm",
		display, r.Dx(), r.Dy(), pitchMM, w, h))

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("layout", opts, &buf)
	pdf.ImageOptions("layout", 15, 25, w, h, false, opts, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.1)
	pdf.Rect(15, 25, w, h, "D")

	return pdf.OutputFileAndClose(path)
}
