package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/xuri/excelize/v2"
)

func TestReadTemplate(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	cells := map[string]string{
		"A5":  "N° do Orçamento 7",
		"B6":  "ACME Ltda",
		"B8":  "12.345.678/0001-90",
		"B36": "Prazo de entrega: 15 dias",
		"A13": "1",
		"B13": "Parafuso",
		"F13": "100,00",
	}
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}

	label, form := ReadTemplate(f, sheet, models.DefaultLayout(), nil)
	assert.Equal(t, "N° do Orçamento 7", label)

	name := form.Fixed[models.FixedName]
	assert.False(t, name.IsSet(), "fixed fields load as placeholders")
	assert.Equal(t, "ACME Ltda", name.Hint())
	assert.Equal(t, "", name.Value())
	assert.Equal(t, "Endereço do Cliente", form.Fixed[models.FixedAddress].Hint())

	delivery := form.Additional[models.AdditionalDelivery]
	assert.True(t, delivery.IsSet(), "additional fields load as values when present")
	assert.Equal(t, "Prazo de entrega: 15 dias", delivery.Value())
	payment := form.Additional[models.AdditionalPayment]
	assert.False(t, payment.IsSet())
	assert.Equal(t, "Forma de pagamento: ", payment.Hint())

	first := form.Items[0]
	assert.False(t, first.Description.IsSet())
	assert.Equal(t, "Parafuso", first.Description.Hint())
	assert.Equal(t, "100,00", first.Total.Hint())
	assert.Equal(t, "Item 2", form.Items[1].Item.Hint())
}

func TestResolveSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Quote")
	require.NoError(t, err)

	name, err := ResolveSheet(f, "")
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", name)

	name, err = ResolveSheet(f, "Quote")
	require.NoError(t, err)
	assert.Equal(t, "Quote", name)

	_, err = ResolveSheet(f, "Missing")
	assert.Error(t, err)
}

func TestExtractQuote(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	layout := models.DefaultLayout()

	require.NoError(t, f.SetCellValue("Sheet1", "A5", "N° do Orçamento 8"))
	require.NoError(t, f.SetCellValue("Sheet1", "B6", "ACME"))
	require.NoError(t, f.SetCellValue("Sheet1", "B37", "Pix"))
	require.NoError(t, f.SetCellValue("Sheet1", "B15", "Porca"))
	require.NoError(t, f.SetCellValue("Sheet1", "F15", "2,00"))
	require.NoError(t, f.SetCellValue("Sheet1", "F35", "2,00"))

	q := ExtractQuote(f, "Sheet1", layout, nil)
	assert.Equal(t, "N° do Orçamento 8", q.Label)
	assert.Equal(t, "ACME", q.Client[0])
	assert.Equal(t, "Pix", q.Terms[1])
	require.Len(t, q.Rows, 1)
	assert.Equal(t, 15, q.Rows[0].R)
	assert.Equal(t, "Porca", q.Rows[0].Cells[1])
	assert.Equal(t, "2,00", q.Total)
}

func TestPrintAreas(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     PrintAreaName,
		RefersTo: "Sheet1!$A$1:$F$39",
		Scope:    "Sheet1",
	}))

	areas := ExtractPrintAreas(f)
	require.Len(t, areas["Sheet1"], 1)
	assert.Equal(t, models.PrintArea{R1: 1, C1: 1, R2: 39, C2: 6}, areas["Sheet1"][0])

	_, err := ParseRange("A1")
	assert.Error(t, err)
	a, err := ParseRange("F39:A1")
	require.NoError(t, err)
	assert.Equal(t, models.PrintArea{R1: 1, C1: 1, R2: 39, C2: 6}, a)
}
