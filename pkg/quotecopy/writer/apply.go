// Package writer applies a form to a copy of the quote template.
package writer

import (
	"fmt"

	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"go.uber.org/zap"
)

// CellWriter is the part of *excelize.File used by Apply.
type CellWriter interface {
	SetCellValue(sheet, cell string, value interface{}) error
}

// CellError reports the cell whose write aborted Apply.
type CellError struct {
	Cell string
	Err  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("write cell %s: %v", e.Cell, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}

// Apply writes the label, every field value and the total into sheet, in
// that order. Placeholders write an empty cell. The total cell is written
// last and always overwrites whatever the item loop put there. The first
// failing write aborts and earlier writes are left in place.
func Apply(w CellWriter, sheet string, form *models.Form, label, total string, layout models.Layout, log *zap.Logger) error {
	log = logger.OrNop(log)

	set := func(cell, value string) error {
		if err := w.SetCellValue(sheet, cell, value); err != nil {
			return &CellError{Cell: cell, Err: err}
		}
		return nil
	}

	if err := set(layout.LabelCell, label); err != nil {
		return err
	}
	log.Debug("label applied", zap.String("cell", layout.LabelCell), zap.String("value", label))

	for i, e := range form.Fixed {
		if err := set(e.Cell, e.Value()); err != nil {
			return err
		}
		log.Debug("fixed field applied", zap.String("field", models.FixedTitles[i]), zap.String("cell", e.Cell), zap.Bool("blank", e.Value() == ""))
	}

	for i, e := range form.Additional {
		if err := set(e.Cell, e.Value()); err != nil {
			return err
		}
		log.Debug("additional field applied", zap.String("field", models.AdditionalTitles[i]), zap.String("cell", e.Cell), zap.Bool("blank", e.Value() == ""))
	}

	for i := range form.Items {
		for _, e := range form.Items[i].Entries() {
			if err := set(e.Cell, e.Value()); err != nil {
				return err
			}
		}
	}
	log.Debug("items applied", zap.Int("count", len(form.Items)))

	if err := set(layout.TotalCell, total); err != nil {
		return err
	}
	log.Info("values applied", zap.String("label", label), zap.String("total", total))
	return nil
}
