package models

import "fmt"

// Fixed field indexes.
const (
	FixedName = iota
	FixedAddress
	FixedTaxID
	FixedPhone
)

// Additional field indexes.
const (
	AdditionalDelivery = iota
	AdditionalPayment
	AdditionalConditions
)

// FixedTitles names the fixed fields in display order.
var FixedTitles = [4]string{"Cliente", "Endereço", "CNPJ", "Telefone"}

// AdditionalTitles names the additional fields in display order.
var AdditionalTitles = [3]string{"Prazo de Entrega", "Forma de Pagamento", "Condições"}

// ItemTitles names the line-item columns in display order.
var ItemTitles = [ItemColumnCount]string{"Item", "Descrição", "Quantidade", "UND", "Valor Uni", "Total"}

var defaultFixedHints = [4]string{
	"Nome do Cliente",
	"Endereço do Cliente",
	"00.000.000/0000-00",
	"(00) 0000-0000",
}

var defaultAdditionalHints = [3]string{
	"Prazo de entrega: ",
	"Forma de pagamento: ",
	"Na entrega: ",
}

// ZeroAmount is the hint of empty price cells; it never contributes to a total.
const ZeroAmount = "0,00"

// LineItem is one row of the quote table.
type LineItem struct {
	Item        Entry
	Description Entry
	Quantity    Entry
	Unit        Entry
	UnitPrice   Entry
	Total       Entry
}

// Entries returns pointers to the item cells in column order.
func (li *LineItem) Entries() [ItemColumnCount]*Entry {
	return [ItemColumnCount]*Entry{&li.Item, &li.Description, &li.Quantity, &li.Unit, &li.UnitPrice, &li.Total}
}

// Form is the editable state of one quote.
type Form struct {
	// Number is the quote number chosen for the copy; 0 means not chosen yet.
	Number     int
	Fixed      [4]Entry
	Additional [3]Entry
	Items      []LineItem
}

// DefaultFixedHint returns the hint shown when a fixed field has no template value.
func DefaultFixedHint(i int) string { return defaultFixedHints[i] }

// DefaultAdditionalHint returns the hint shown when an additional field is empty.
func DefaultAdditionalHint(i int) string { return defaultAdditionalHints[i] }

// DefaultItemHint returns the hint of column col for item index i (0-based).
func DefaultItemHint(i, col int) string {
	switch col {
	case 0:
		return fmt.Sprintf("Item %d", i+1)
	case 1:
		return "Digite a descrição do item"
	case 2:
		return "0"
	case 3:
		return "UND"
	default:
		return ZeroAmount
	}
}

// NewForm builds a form for the layout with every entry in placeholder state.
func NewForm(layout Layout) *Form {
	f := &Form{Items: make([]LineItem, layout.ItemCount)}
	for i, cell := range layout.FixedCells {
		f.Fixed[i] = Placeholder(cell, defaultFixedHints[i])
	}
	for i, cell := range layout.AdditionalCells {
		f.Additional[i] = Placeholder(cell, defaultAdditionalHints[i])
	}
	for i := range f.Items {
		for col, e := range f.Items[i].Entries() {
			*e = Placeholder(layout.ItemCell(i, col), DefaultItemHint(i, col))
		}
	}
	return f
}
