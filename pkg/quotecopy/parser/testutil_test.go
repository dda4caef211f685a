package parser

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// createTestPNG generates a small solid PNG image for testing.
func createTestPNG(t *testing.T, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for x := 0; x < 10; x++ {
		for y := 0; y < 10; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// saveWorkbook writes a workbook built by fill into a temp dir.
func saveWorkbook(t *testing.T, name string, fill func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	fill(f)
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(p))
	return p
}

func addPicture(t *testing.T, f *excelize.File, cell string, c color.RGBA) {
	t.Helper()
	require.NoError(t, f.AddPictureFromBytes("Sheet1", cell, &excelize.Picture{
		Extension: ".png",
		File:      createTestPNG(t, c),
		Format:    &excelize.GraphicOptions{},
	}))
}
