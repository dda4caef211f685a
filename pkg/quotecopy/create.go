package quotecopy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/parser"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/writer"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// CreateResult describes a finished copy.
type CreateResult struct {
	RunID      string
	Number     int
	Label      string
	Total      string
	OutputPath string
	// PDFPath is empty when no PDF was produced.
	PDFPath        string
	Pictures       writer.PictureResult
	Media          parser.MediaResult
	PrintAreaAdded bool
	// NextNumber is the number persisted for the following quote.
	NextNumber int
}

// cellWriterFor returns the writer Apply uses for the copy.
var cellWriterFor = func(f *excelize.File) writer.CellWriter { return f }

// Create writes a numbered copy of the selected template holding the values
// of form, preserves its pictures, exports a PDF when possible and advances
// the quote number. On failure the copy and any partial PDF are removed and
// numbering is left as it was.
func Create(ctx context.Context, sel Selection, form *models.Form, opts Options) (*CreateResult, error) {
	runID := uuid.NewString()
	log := opts.logger().With(zap.String("run_id", runID))

	if err := sel.Validate(); err != nil {
		return nil, NewCreateError(StageValidate, err)
	}
	src := sel.Path()

	number := form.Number
	if number < 1 {
		n, err := reconcileFromTemplate(src, opts)
		if err != nil {
			return nil, NewCreateError(StageNumber, err)
		}
		number = n
	}

	label, err := opts.Namer.Label(number)
	if err != nil {
		return nil, NewCreateError(StageName, err)
	}
	name, err := opts.Namer.OutputName(sel.File, number)
	if err != nil {
		return nil, NewCreateError(StageName, err)
	}
	dst := filepath.Join(sel.Dir, name)
	if dst == src {
		return nil, NewCreateError(StageName, fmt.Errorf("output %s would replace the template", name))
	}
	if _, err := os.Stat(dst); err == nil && !opts.Overwrite {
		return nil, NewCreateError(StageName, fmt.Errorf("%w: %s", ErrOutputExists, name))
	}

	res := &CreateResult{
		RunID:      runID,
		Number:     number,
		Label:      label,
		Total:      Preview(form, log),
		OutputPath: dst,
	}
	log.Info("creating copy", zap.String("template", sel.File), zap.String("output", name), zap.Int("number", number))

	if err := copyFile(src, dst); err != nil {
		os.Remove(dst)
		return nil, NewCreateError(StageCopy, err)
	}

	if stage, err := fillCopy(src, dst, form, res, opts, log); err != nil {
		discard(res, log)
		log.Error("copy failed", zap.String("stage", stage), zap.Error(err))
		return nil, NewCreateError(stage, err)
	}

	if res.Pictures.Detected > 0 && opts.MediaFallback {
		media, err := parser.ReinjectMedia(src, dst, opts.ScratchDir, opts.MediaExtensions, log)
		if err != nil {
			log.Warn("media fallback failed", zap.Error(err))
		}
		res.Media = media
	}

	if opts.Exporter != nil {
		pdf, err := opts.Exporter.Export(ctx, dst)
		if err != nil {
			log.Warn("pdf export failed, export manually", zap.String("engine", opts.Exporter.Name()), zap.Error(err))
		} else {
			res.PDFPath = pdf
			log.Info("pdf exported", zap.String("engine", opts.Exporter.Name()), zap.String("pdf", filepath.Base(pdf)))
		}
	}

	next, err := opts.Numberer.Advance(number)
	if err != nil {
		log.Error("next quote number not persisted", zap.Int("next", next), zap.Error(err))
	}
	res.NextNumber = next

	log.Info("copy created",
		zap.String("output", name),
		zap.String("total", res.Total),
		zap.Bool("pdf", res.PDFPath != ""),
		zap.Int("next", next))
	return res, nil
}

// fillCopy opens the copy and the template, copies pictures, applies the
// form and saves. It returns the stage that failed.
func fillCopy(src, dst string, form *models.Form, res *CreateResult, opts Options, log *zap.Logger) (string, error) {
	out, err := excelize.OpenFile(dst)
	if err != nil {
		return StageOpen, err
	}
	defer out.Close()

	source, err := excelize.OpenFile(src)
	if err != nil {
		return StageOpen, err
	}
	defer source.Close()

	sheet, err := parser.ResolveSheet(out, opts.Layout.Sheet)
	if err != nil {
		return StageOpen, err
	}
	srcSheet, err := parser.ResolveSheet(source, opts.Layout.Sheet)
	if err != nil {
		return StageOpen, err
	}

	res.Pictures = writer.CopyPictures(source, out, srcSheet, sheet, log)

	if err := writer.Apply(cellWriterFor(out), sheet, form, res.Label, res.Total, opts.Layout, log); err != nil {
		return StageApply, err
	}

	added, err := writer.EnsurePrintArea(out, sheet, opts.Layout.PrintArea)
	if err != nil {
		return StagePrint, err
	}
	res.PrintAreaAdded = added

	if err := out.Save(); err != nil {
		return StageSave, err
	}
	log.Debug("copy saved", zap.String("output", filepath.Base(dst)))
	return "", nil
}

func reconcileFromTemplate(path string, opts Options) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	defer f.Close()

	sheet, err := parser.ResolveSheet(f, opts.Layout.Sheet)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
	}
	return opts.Numberer.Reconcile(parser.CellText(f, sheet, opts.Layout.LabelCell, opts.logger()))
}

// discard removes the artifacts of a failed run.
func discard(res *CreateResult, log *zap.Logger) {
	for _, p := range []string{res.OutputPath, res.PDFPath} {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn("cannot remove failed artifact", zap.String("path", p), zap.Error(err))
			continue
		}
		log.Info("failed artifact removed", zap.String("path", filepath.Base(p)))
	}
}

// copyFile copies src to dst, keeping the permission bits and the
// modification time.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
