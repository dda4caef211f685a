package models

// QuoteData is the content of a finished copy, read back for export.
type QuoteData struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Label is the quote-number label text.
	Label string `json:"label"`
	// Client holds name, address, tax id and phone.
	Client [4]string `json:"client"`
	// Terms holds delivery term, payment form and conditions.
	Terms [3]string `json:"terms"`
	// Rows holds the non-empty line items in sheet order.
	Rows []QuoteRow `json:"rows,omitempty"`
	// Total is the grand total text.
	Total string `json:"total"`
}

// QuoteRow is one line item read back from a copy.
type QuoteRow struct {
	// R is the sheet row (1-based).
	R int `json:"r"`
	// Cells holds item, description, quantity, unit, unit price and total.
	Cells [ItemColumnCount]string `json:"cells"`
}
