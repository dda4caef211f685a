package models

import "fmt"

// ItemColumnCount is the number of cells per line item.
const ItemColumnCount = 6

// Layout describes where every field of a quote lives in the template sheet.
type Layout struct {
	// Sheet is the worksheet name. Empty means the active sheet.
	Sheet string `toml:"sheet"`
	// LabelCell holds the quote-number label (e.g. "N° do Orçamento 5").
	LabelCell string `toml:"label_cell"`
	// FixedCells are the client name, address, tax id and phone cells.
	FixedCells [4]string `toml:"fixed_cells"`
	// AdditionalCells are the delivery term, payment form and conditions cells.
	AdditionalCells [3]string `toml:"additional_cells"`
	// ItemFirstRow is the row of the first line item (1-based).
	ItemFirstRow int `toml:"item_first_row"`
	// ItemCount is the number of line-item rows.
	ItemCount int `toml:"item_count"`
	// ItemColumns are the columns of item, description, quantity, unit,
	// unit price and line total.
	ItemColumns [ItemColumnCount]string `toml:"item_columns"`
	// TotalCell receives the computed grand total.
	TotalCell string `toml:"total_cell"`
	// PrintArea is the range defined as print area when the copy has none.
	PrintArea string `toml:"print_area"`
}

// DefaultLayout returns the layout of the standard quote template.
func DefaultLayout() Layout {
	return Layout{
		LabelCell:       "A5",
		FixedCells:      [4]string{"B6", "B7", "B8", "B9"},
		AdditionalCells: [3]string{"B36", "B37", "B39"},
		ItemFirstRow:    13,
		ItemCount:       22,
		ItemColumns:     [ItemColumnCount]string{"A", "B", "C", "D", "E", "F"},
		TotalCell:       "F35",
		PrintArea:       "A1:F39",
	}
}

// ItemCell returns the address of column col (0-5) of item index i (0-based).
func (l Layout) ItemCell(i, col int) string {
	return fmt.Sprintf("%s%d", l.ItemColumns[col], l.ItemFirstRow+i)
}

// ItemLastRow returns the row of the last line item.
func (l Layout) ItemLastRow() int {
	return l.ItemFirstRow + l.ItemCount - 1
}
