package quotecopy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/parser"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/total"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Selection is the chosen folder and template file name.
type Selection struct {
	Dir  string
	File string
}

// SelectionFromPath splits a template path into a Selection.
func SelectionFromPath(p string) Selection {
	if p == "" {
		return Selection{}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		abs = p
	}
	return Selection{Dir: filepath.Dir(abs), File: filepath.Base(abs)}
}

// Path returns the template path.
func (s Selection) Path() string {
	return filepath.Join(s.Dir, s.File)
}

// Validate checks that both parts are set and that the template exists.
// It never touches the filesystem beyond a stat.
func (s Selection) Validate() error {
	if s.Dir == "" {
		return fmt.Errorf("%w: no folder selected", ErrMissingSelection)
	}
	if s.File == "" {
		return fmt.Errorf("%w: no template file selected", ErrMissingSelection)
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, s.Path())
		}
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrInvalidTemplate, s.Path())
	}
	return nil
}

// LoadResult is the state prepared from a template.
type LoadResult struct {
	// Form holds the entries read from the template; Form.Number is the
	// reconciled quote number.
	Form *models.Form
	// Label is the raw text of the template's label cell.
	Label string
	// Sheet is the worksheet the fields were read from.
	Sheet string
	// Pictures is the number of pictures anchored in that sheet.
	Pictures int
	// Total is the preview of the grand total.
	Total string
}

// Load reads a template into a form and reconciles the quote number with the
// persisted store. Unreadable cells are logged and treated as empty.
func Load(sel Selection, opts Options) (*LoadResult, error) {
	log := opts.logger()
	if err := sel.Validate(); err != nil {
		return nil, err
	}

	path := sel.Path()
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	defer f.Close()

	sheet, err := parser.ResolveSheet(f, opts.Layout.Sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}

	label, form := parser.ReadTemplate(f, sheet, opts.Layout, log)

	number, err := opts.Numberer.Reconcile(label)
	if err != nil {
		log.Warn("quote number not persisted", zap.Int("number", number), zap.Error(err))
	}
	form.Number = number

	pictures := 0
	if all, err := parser.ListPictures(path); err != nil {
		log.Warn("cannot list pictures", zap.String("file", sel.File), zap.Error(err))
	} else {
		pictures = len(all[sheet])
	}

	res := &LoadResult{
		Form:     form,
		Label:    label,
		Sheet:    sheet,
		Pictures: pictures,
		Total:    Preview(form, log),
	}
	log.Info("template loaded",
		zap.String("file", sel.File),
		zap.String("sheet", sheet),
		zap.Int("number", number),
		zap.Int("pictures", pictures))
	return res, nil
}

// Preview computes the grand total of form without side effects.
func Preview(form *models.Form, log *zap.Logger) string {
	return total.Compute(form.Items, logger.OrNop(log))
}
