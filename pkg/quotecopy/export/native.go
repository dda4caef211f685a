package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	marotoconfig "github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Native renders the quote without an office suite. It reads the saved
// copy back through the layout, so the PDF shows exactly what was written.
type Native struct {
	Layout models.Layout
	log    *zap.Logger
}

// NewNative returns a renderer for layout.
func NewNative(layout models.Layout, log *zap.Logger) *Native {
	return &Native{Layout: layout, log: logger.OrNop(log)}
}

func (n *Native) Name() string { return "native" }

// Export renders xlsxPath to a PDF next to it.
func (n *Native) Export(ctx context.Context, xlsxPath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", filepath.Base(xlsxPath), err)
	}
	defer f.Close()

	sheet, err := parser.ResolveSheet(f, n.Layout.Sheet)
	if err != nil {
		return "", err
	}
	q := parser.ExtractQuote(f, sheet, n.Layout, n.log)
	q.BookName = filepath.Base(xlsxPath)

	data, err := Render(q)
	if err != nil {
		return "", err
	}

	pdf := PDFPath(xlsxPath)
	if err := os.WriteFile(pdf, data, 0644); err != nil {
		os.Remove(pdf)
		return "", err
	}
	n.log.Debug("native pdf written", zap.String("pdf", pdf), zap.Int("rows", len(q.Rows)))
	return pdf, nil
}

// Render lays out a quote as a single PDF document.
func Render(q models.QuoteData) ([]byte, error) {
	cfg := marotoconfig.NewBuilder().
		WithLeftMargin(10).
		WithTopMargin(15).
		WithRightMargin(10).
		Build()

	m := maroto.New(cfg)
	addHeader(m, q)
	addClient(m, q)
	addItems(m, q)
	addTotal(m, q)
	addTerms(m, q)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func addHeader(m core.Maroto, q models.QuoteData) {
	m.AddRow(15,
		col.New(8).Add(
			text.New(q.Label, props.Text{
				Size:  16,
				Style: fontstyle.Bold,
				Align: align.Left,
			}),
		),
		col.New(4).Add(
			text.New(q.BookName, props.Text{
				Size:  8,
				Align: align.Right,
			}),
		),
	)
	m.AddRow(5, line.NewCol(12))
}

func addClient(m core.Maroto, q models.QuoteData) {
	for i, v := range q.Client {
		if v == "" {
			continue
		}
		m.AddRow(6,
			col.New(3).Add(text.New(models.FixedTitles[i]+":", props.Text{Size: 9, Style: fontstyle.Bold})),
			col.New(9).Add(text.New(v, props.Text{Size: 9})),
		)
	}
	m.AddRow(5, line.NewCol(12))
}

// itemColumnSizes are the grid widths of the six item columns.
var itemColumnSizes = [models.ItemColumnCount]int{1, 5, 1, 1, 2, 2}

func addItems(m core.Maroto, q models.QuoteData) {
	header := make([]core.Col, 0, models.ItemColumnCount)
	for i, title := range models.ItemTitles {
		header = append(header, col.New(itemColumnSizes[i]).Add(
			text.New(title, props.Text{Size: 9, Style: fontstyle.Bold, Align: columnAlign(i)}),
		))
	}
	m.AddRow(8, header...)
	m.AddRow(2, line.NewCol(12))

	for _, row := range q.Rows {
		cols := make([]core.Col, 0, models.ItemColumnCount)
		for i, v := range row.Cells {
			cols = append(cols, col.New(itemColumnSizes[i]).Add(
				text.New(v, props.Text{Size: 9, Align: columnAlign(i)}),
			))
		}
		m.AddRow(7, cols...)
	}
	m.AddRow(2, line.NewCol(12))
}

func columnAlign(i int) align.Type {
	if i >= 4 {
		return align.Right
	}
	return align.Left
}

func addTotal(m core.Maroto, q models.QuoteData) {
	m.AddRow(10,
		col.New(8),
		col.New(2).Add(text.New("Total", props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
		col.New(2).Add(text.New(q.Total, props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right})),
	)
}

func addTerms(m core.Maroto, q models.QuoteData) {
	for _, v := range q.Terms {
		if v == "" {
			continue
		}
		m.AddRow(6, col.New(12).Add(text.New(v, props.Text{Size: 9})))
	}
}
