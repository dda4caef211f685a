// Package parser reads quote templates: cell values through excelize and
// drawings and media straight from the OOXML package.
package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ResolveSheet returns name when it exists in f, or the active sheet when
// name is empty.
func ResolveSheet(f *excelize.File, name string) (string, error) {
	if name == "" {
		active := f.GetSheetName(f.GetActiveSheetIndex())
		if active == "" {
			return "", fmt.Errorf("workbook has no active sheet")
		}
		return active, nil
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return "", err
	}
	if idx < 0 {
		return "", fmt.Errorf("sheet %q not found", name)
	}
	return name, nil
}

// CellText returns the trimmed display value of a cell. A read error is
// logged with the cell address and the cell is treated as empty.
func CellText(f *excelize.File, sheet, cell string, log *zap.Logger) string {
	v, err := f.GetCellValue(sheet, cell)
	if err != nil {
		logger.OrNop(log).Warn("cannot read cell, treating as empty",
			zap.String("sheet", sheet),
			zap.String("cell", cell),
			zap.Error(err))
		return ""
	}
	return strings.TrimSpace(v)
}

// ExtractQuote reads the quote fields of a finished copy.
// Line items whose six cells are all empty are omitted.
func ExtractQuote(f *excelize.File, sheet string, layout models.Layout, log *zap.Logger) models.QuoteData {
	q := models.QuoteData{
		Label: CellText(f, sheet, layout.LabelCell, log),
		Total: CellText(f, sheet, layout.TotalCell, log),
	}
	for i, cell := range layout.FixedCells {
		q.Client[i] = CellText(f, sheet, cell, log)
	}
	for i, cell := range layout.AdditionalCells {
		q.Terms[i] = CellText(f, sheet, cell, log)
	}

	for i := 0; i < layout.ItemCount; i++ {
		row := models.QuoteRow{R: layout.ItemFirstRow + i}
		hasData := false
		for col := range row.Cells {
			row.Cells[col] = CellText(f, sheet, layout.ItemCell(i, col), log)
			if row.Cells[col] != "" {
				hasData = true
			}
		}
		if hasData {
			q.Rows = append(q.Rows, row)
		}
	}
	return q
}
