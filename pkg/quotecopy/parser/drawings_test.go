package parser

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleDrawing = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<xdr:wsDr xmlns:xdr="http://schemas.openxmlformats.org/drawingml/2006/spreadsheetDrawing" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships">
  <xdr:twoCellAnchor editAs="oneCell">
    <xdr:from><xdr:col>1</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>2</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
    <xdr:to><xdr:col>3</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>6</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:to>
    <xdr:pic>
      <xdr:nvPicPr><xdr:cNvPr id="2" name="Logo"/><xdr:cNvPicPr/></xdr:nvPicPr>
      <xdr:blipFill><a:blip r:embed="rId1"/></xdr:blipFill>
      <xdr:spPr><a:xfrm><a:off x="0" y="0"/><a:ext cx="952500" cy="476250"/></a:xfrm></xdr:spPr>
    </xdr:pic>
    <xdr:clientData/>
  </xdr:twoCellAnchor>
  <xdr:oneCellAnchor>
    <xdr:from><xdr:col>0</xdr:col><xdr:colOff>0</xdr:colOff><xdr:row>40</xdr:row><xdr:rowOff>0</xdr:rowOff></xdr:from>
    <xdr:ext cx="95250" cy="95250"/>
    <xdr:sp><xdr:nvSpPr><xdr:cNvPr id="3" name="Box"/></xdr:nvSpPr></xdr:sp>
    <xdr:clientData/>
  </xdr:oneCellAnchor>
</xdr:wsDr>`

func TestParseDrawingXML(t *testing.T) {
	results := parseDrawingXML([]byte(sampleDrawing))
	require.Len(t, results, 1, "shapes without pictures are ignored")

	pic := results[0]
	assert.Equal(t, "rId1", pic.embedID)
	assert.Equal(t, "Logo", pic.picture.Name)
	assert.Equal(t, "B3", pic.picture.Cell)
	assert.Equal(t, 100, pic.picture.W)
	assert.Equal(t, 50, pic.picture.H)
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		target   string
		baseDir  string
		expected string
	}{
		{"../media/image1.png", "xl/drawings", "xl/media/image1.png"},
		{"/xl/drawings/drawing1.xml", "xl/drawings", "xl/drawings/drawing1.xml"},
		{"drawing1.xml", "xl/drawings", "xl/drawings/drawing1.xml"},
		{"worksheets/sheet1.xml", "xl", "xl/worksheets/sheet1.xml"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, resolveRelativePath(tt.target, tt.baseDir), tt.target)
	}
}

func TestRelsPathFor(t *testing.T) {
	assert.Equal(t, "xl/drawings/_rels/drawing1.xml.rels", relsPathFor("xl/drawings/drawing1.xml"))
	assert.Equal(t, "xl/worksheets/_rels/sheet1.xml.rels", relsPathFor("xl/worksheets/sheet1.xml"))
}

func TestListPicturesFromWorkbook(t *testing.T) {
	path := saveWorkbook(t, "logo.xlsx", func(f *excelize.File) {
		addPicture(t, f, "B2", color.RGBA{R: 255, A: 255})
		addPicture(t, f, "E40", color.RGBA{B: 255, A: 255})
	})

	all, err := ListPictures(path)
	require.NoError(t, err)
	require.Len(t, all["Sheet1"], 2)

	cells := map[string]string{}
	for _, p := range all["Sheet1"] {
		cells[p.Cell] = p.Media
	}
	assert.Contains(t, cells, "B2")
	assert.Contains(t, cells, "E40")
	for _, media := range cells {
		assert.Regexp(t, `^xl/media/image\d+\.png$`, media)
	}

	n, err := CountPictures(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestListPicturesNoDrawing(t *testing.T) {
	path := saveWorkbook(t, "plain.xlsx", func(f *excelize.File) {
		require.NoError(t, f.SetCellValue("Sheet1", "A1", "x"))
	})
	n, err := CountPictures(path)
	require.NoError(t, err)
	assert.Zero(t, n)
}
