package quotecopy

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/numbering"
	"github.com/xuri/excelize/v2"
)

const templateName = "orcamento.xlsx"

func createTestPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// saveTemplate writes a quote template with a logo into a fresh directory.
func saveTemplate(t *testing.T) Selection {
	t.Helper()
	dir := t.TempDir()
	f := excelize.NewFile()
	defer f.Close()

	cells := map[string]string{
		"A5":  "Quote No. 7",
		"B6":  "Cliente Modelo",
		"B36": "Prazo de entrega: 15 dias",
		"B13": "Serviço padrão",
		"F13": "50,00",
		"F35": "50,00",
	}
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue("Sheet1", cell, v))
	}
	require.NoError(t, f.AddPictureFromBytes("Sheet1", "A1", &excelize.Picture{
		Extension: ".png",
		File:      createTestPNG(t),
		Format:    &excelize.GraphicOptions{ScaleX: 1, ScaleY: 1},
	}))
	require.NoError(t, f.SaveAs(filepath.Join(dir, templateName)))
	return Selection{Dir: dir, File: templateName}
}

func testOptions(t *testing.T, sel Selection, persisted int) (Options, *numbering.FileStore) {
	t.Helper()
	store := numbering.NewFileStore(filepath.Join(sel.Dir, "config.json"))
	if persisted > 0 {
		require.NoError(t, store.SetNext(persisted))
	}
	opts := DefaultOptions(store.Path)
	opts.Numberer = numbering.NewNumberer(store, nil)
	return opts, store
}
