package models

import "github.com/xuri/excelize/v2"

// PrintArea represents cell coordinate bounds for a print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Contains reports whether the 1-based row/column lies inside the area.
func (a PrintArea) Contains(col, row int) bool {
	return row >= a.R1 && row <= a.R2 && col >= a.C1 && col <= a.C2
}

// Ref returns the absolute range reference, e.g. "$A$1:$F$39".
func (a PrintArea) Ref() string {
	start, _ := excelize.CoordinatesToCellName(a.C1, a.R1, true)
	end, _ := excelize.CoordinatesToCellName(a.C2, a.R2, true)
	return start + ":" + end
}
