package parser

import (
	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ReadTemplate builds the initial form from a template sheet and returns the
// raw text of the quote-number label.
//
// Fixed fields and line items load as placeholders showing the template text,
// so they are only carried into a copy once edited. Additional fields load as
// real values when the template has them.
func ReadTemplate(f *excelize.File, sheet string, layout models.Layout, log *zap.Logger) (string, *models.Form) {
	log = logger.OrNop(log)
	form := models.NewForm(layout)

	label := CellText(f, sheet, layout.LabelCell, log)

	for i := range form.Fixed {
		e := &form.Fixed[i]
		if v := CellText(f, sheet, e.Cell, log); v != "" {
			e.SetHint(v)
			log.Debug("fixed field loaded as placeholder", zap.String("field", models.FixedTitles[i]), zap.String("cell", e.Cell), zap.String("hint", v))
		}
	}

	for i := range form.Additional {
		e := &form.Additional[i]
		if v := CellText(f, sheet, e.Cell, log); v != "" {
			e.SetReal(v)
			log.Debug("additional field loaded as value", zap.String("field", models.AdditionalTitles[i]), zap.String("cell", e.Cell), zap.String("value", v))
		}
	}

	for i := range form.Items {
		for col, e := range form.Items[i].Entries() {
			if v := CellText(f, sheet, e.Cell, log); v != "" {
				e.SetHint(v)
				log.Debug("item cell loaded as placeholder", zap.Int("item", i+1), zap.String("column", models.ItemTitles[col]), zap.String("cell", e.Cell))
			}
		}
	}

	return label, form
}
