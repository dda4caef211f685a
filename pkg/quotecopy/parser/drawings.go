package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/xuri/excelize/v2"
)

// pictureParseResult holds intermediate parsing results.
type pictureParseResult struct {
	picture models.Picture
	embedID string
}

// ListPictures returns the pictures anchored in each sheet of an xlsx file.
// Sheets without a drawing are omitted.
func ListPictures(xlsxPath string) (map[string][]models.Picture, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return listPictures(&r.Reader)
}

func listPictures(r *zip.Reader) (map[string][]models.Picture, error) {
	sheetDrawingMap, err := getSheetDrawingMap(r)
	if err != nil {
		return nil, err
	}

	result := make(map[string][]models.Picture)
	for sheetName, drawingPath := range sheetDrawingMap {
		pics, err := parseDrawingFile(r, drawingPath)
		if err != nil {
			continue
		}
		if len(pics) > 0 {
			result[sheetName] = pics
		}
	}

	return result, nil
}

// CountPictures returns the total number of anchored pictures in the file.
func CountPictures(xlsxPath string) (int, error) {
	all, err := ListPictures(xlsxPath)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, pics := range all {
		n += len(pics)
	}
	return n, nil
}

// getSheetDrawingMap returns a mapping of sheet names to their drawing XML paths.
func getSheetDrawingMap(r *zip.Reader) (map[string]string, error) {
	result := make(map[string]string)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return result, err
	}

	sheetsInfo := parseWorkbookSheets(workbookXML)
	if len(sheetsInfo) == 0 {
		return result, nil
	}

	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return result, err
	}

	sheetFiles := parseWorkbookRels(wbRelsXML, sheetsInfo)

	for sheetName, sheetPath := range sheetFiles {
		sheetRelsXML, err := readZipFile(r, relsPathFor(sheetPath))
		if err != nil || sheetRelsXML == nil {
			continue
		}

		if drawingPath := findDrawingRelationship(sheetRelsXML); drawingPath != "" {
			result[sheetName] = resolveRelativePath(drawingPath, "xl/drawings")
		}
	}

	return result, nil
}

// parseDrawingFile parses a drawing part and resolves each picture's media entry.
func parseDrawingFile(r *zip.Reader, drawingPath string) ([]models.Picture, error) {
	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil {
		return nil, err
	}

	targets := map[string]string{}
	if relsXML, err := readZipFile(r, relsPathFor(drawingPath)); err == nil && relsXML != nil {
		targets = parseRelationshipTargets(relsXML)
	}

	results := parseDrawingXML(drawingXML)
	pics := make([]models.Picture, len(results))
	for i, pr := range results {
		pics[i] = pr.picture
		if target, ok := targets[pr.embedID]; ok {
			pics[i].Media = resolveRelativePath(target, path.Dir(drawingPath))
		}
	}
	return pics, nil
}

// parseDrawingXML returns the pictures found in anchors of a drawing part.
func parseDrawingXML(data []byte) []pictureParseResult {
	var results []pictureParseResult

	decoder := xml.NewDecoder(strings.NewReader(string(data)))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok {
			switch se.Name.Local {
			case "twoCellAnchor", "oneCellAnchor", "absoluteAnchor":
				results = append(results, parseAnchor(decoder)...)
			}
		}
	}

	return results
}

// parseAnchor parses one anchor element. The anchor's from-cell applies to
// every picture inside it, including pictures nested in groups.
func parseAnchor(decoder *xml.Decoder) []pictureParseResult {
	var results []pictureParseResult
	var fromCol, fromRow int
	var extW, extH int
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				fromCol, fromRow = parseMarker(decoder)
				depth--
			case "ext":
				if w, h, ok := parseExtAttrs(t); ok && extW == 0 && extH == 0 {
					extW, extH = w, h
				}
			case "pic":
				results = append(results, parsePicElement(decoder))
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	cell, _ := excelize.CoordinatesToCellName(fromCol+1, fromRow+1)
	for i := range results {
		results[i].picture.Cell = cell
		if results[i].picture.W == 0 && results[i].picture.H == 0 {
			results[i].picture.W, results[i].picture.H = extW, extH
		}
	}
	return results
}

// parsePicElement parses an xdr:pic element.
func parsePicElement(decoder *xml.Decoder) pictureParseResult {
	var pr pictureParseResult
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cNvPr":
				for _, attr := range t.Attr {
					if attr.Name.Local == "name" {
						pr.picture.Name = attr.Value
					}
				}
			case "blip":
				for _, attr := range t.Attr {
					if attr.Name.Local == "embed" {
						pr.embedID = attr.Value
					}
				}
			case "ext":
				if w, h, ok := parseExtAttrs(t); ok {
					pr.picture.W, pr.picture.H = w, h
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return pr
}

// parseMarker parses an xdr:from marker into zero-based column and row.
func parseMarker(decoder *xml.Decoder) (col, row int) {
	depth := 1
	var current string

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			current = t.Name.Local
		case xml.CharData:
			v, err := strconv.Atoi(strings.TrimSpace(string(t)))
			if err != nil {
				continue
			}
			switch current {
			case "col":
				col = v
			case "row":
				row = v
			}
		case xml.EndElement:
			depth--
			current = ""
		}
	}

	return
}

// emuPerPixel converts drawing extents to pixels at 96 DPI.
const emuPerPixel = 914400 / 96

func emuToPixels(emu int64) int {
	return int(emu / emuPerPixel)
}

// parseExtAttrs reads cx/cy from an ext element and converts them to pixels.
func parseExtAttrs(se xml.StartElement) (w, h int, ok bool) {
	var hasX, hasY bool
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "cx":
			if cx, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
				w, hasX = emuToPixels(cx), true
			}
		case "cy":
			if cy, err := strconv.ParseInt(attr.Value, 10, 64); err == nil {
				h, hasY = emuToPixels(cy), true
			}
		}
	}
	return w, h, hasX && hasY
}

// Helper functions

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// relsPathFor returns the relationships part of a package part,
// e.g. xl/drawings/drawing1.xml -> xl/drawings/_rels/drawing1.xml.rels.
func relsPathFor(part string) string {
	return path.Join(path.Dir(part), "_rels", path.Base(part)+".rels")
}

func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> file path
	for rID, target := range parseRelationshipTargets(data) {
		if sheetName, ok := sheetsInfo[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
			result[sheetName] = resolveRelativePath(target, "xl")
		}
	}
	return result
}

// parseRelationshipTargets maps relationship ids to their targets.
func parseRelationshipTargets(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if rID != "" {
				result[rID] = target
			}
		}
	}

	return result
}

func findDrawingRelationship(data []byte) string {
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var relType, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Type":
					relType = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if strings.HasSuffix(relType, "/drawing") {
				return target
			}
		}
	}

	return ""
}
