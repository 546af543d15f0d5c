package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexRows(t *testing.T) {
	buf := make([]byte, rowStride*2+3)
	for i := range buf {
		buf[i] = byte(i * 9)
	}
	rows := hexRows(buf)
	require.Len(t, rows, 3)

	assert.True(t, strings.HasPrefix(rows[0], "0x00, 0x09, 0x12,"))
	assert.True(t, strings.HasSuffix(rows[0], ","))
	assert.Equal(t, rowStride, strings.Count(rows[0], "0x"))
	assert.Equal(t, "0x20, 0x29, 0x32", rows[2])

	assert.Empty(t, hexRows(nil))
}

func TestGenerateCodePython(t *testing.T) {
	buf := Pack(NewBitmap(250, 122))
	var out bytes.Buffer
	require.NoError(t, GenerateCode(&out, TargetPython, buf, "epd2in13_V4", 250, 122, "p-1"))

	code := out.String()
	assert.Contains(t, code, "from waveshare_epd import epd2in13_V4\n")
	assert.Contains(t, code, "epd = epd2in13_V4.EPD()\nepd.init()\n")
	assert.Contains(t, code, "(250x122, project p-1)")
	assert.Contains(t, code, "epd.display(buffer)\nepd.sleep()\n")
	assert.Equal(t, len(buf), strings.Count(code, "0xFF"))
	assert.NotContains(t, code, "0xFF,\n]")
}

func TestGenerateCodeC(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, GenerateCode(&out, TargetC, []byte{0x00, 0xAB}, "epd4in2", 400, 300, ""))

	code := out.String()
	assert.Contains(t, code, "#define EPD_IMAGE_WIDTH 400\n")
	assert.Contains(t, code, "#define EPD_IMAGE_HEIGHT 300\n")
	assert.Contains(t, code, "const unsigned char EPD_IMAGE[2] = {\n    0x00, 0xAB\n};\n")
}

func TestGenerateCodeUnknownTarget(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, GenerateCode(&out, CodeTarget("rust"), nil, "x", 1, 1, ""))
	assert.Zero(t, out.Len())
}
