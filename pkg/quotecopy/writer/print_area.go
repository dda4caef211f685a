package writer

import (
	"fmt"

	"github.com/ukaji3/quotecopy/pkg/quotecopy/parser"
	"github.com/xuri/excelize/v2"
)

// EnsurePrintArea defines area as the print area of sheet unless the
// workbook already has one for it. It reports whether a name was added.
func EnsurePrintArea(f *excelize.File, sheet, area string) (bool, error) {
	if area == "" {
		return false, nil
	}
	if len(parser.ExtractPrintAreas(f)[sheet]) > 0 {
		return false, nil
	}

	pa, err := parser.ParseRange(area)
	if err != nil {
		return false, fmt.Errorf("print area: %w", err)
	}
	err = f.SetDefinedName(&excelize.DefinedName{
		Name:     parser.PrintAreaName,
		RefersTo: fmt.Sprintf("'%s'!%s", sheet, pa.Ref()),
		Scope:    sheet,
	})
	if err != nil {
		return false, fmt.Errorf("define print area: %w", err)
	}
	return true, nil
}
