package main

import "image"

// Pack converts a rendered raster into the panel's framebuffer layout.
//
// The raster is mirrored left to right first because the panel scans rows
// in the opposite direction to the editor. Each row then takes exactly
// rowStride bytes, 8 pixels per byte, most significant bit first. A cleared
// bit is a black pixel, so the buffer starts as all 0xFF.
//
//	pixel x:  0 1 2 3 4 5 6 7 | 8 ...
//	byte:     x/8 + y*16
//	bit:      7 - x%8
//
// Pixels whose byte index falls past the end of the buffer are dropped.
// Canvases wider than rowStride*8 therefore spill their right-hand pixels
// into the start of the following row, and lose them on the last row.
func Pack(b *image.Paletted) []byte {
	m := Mirror(b)
	r := m.Bounds()
	buf := make([]byte, rowStride*r.Dy())
	for i := range buf {
		buf[i] = 0xFF
	}

	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			if !isSet(m, x, y) {
				continue
			}
			idx := x/8 + y*rowStride
			if idx >= len(buf) {
				continue
			}
			buf[idx] &^= 1 << (7 - uint(x%8))
		}
	}
	return buf
}
