package formfile

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
)

func TestDocumentPreservesEntryStates(t *testing.T) {
	layout := models.DefaultLayout()
	form := models.NewForm(layout)
	form.Number = 8
	form.Fixed[models.FixedName].Edit("ACME Ltda")
	form.Fixed[models.FixedPhone].SetHint("(11) 5555-0000")
	form.Additional[models.AdditionalDelivery].Clear()
	form.Items[2].Total.Edit("1.234,56")

	path := filepath.Join(t.TempDir(), "form.yaml")
	doc := NewDocument(form)
	doc.Label = "N° do Orçamento 7"
	require.NoError(t, Write(path, doc))

	read, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "N° do Orçamento 7", read.Label)

	got, err := read.Form(layout)
	require.NoError(t, err)
	assert.Equal(t, form, got)

	assert.True(t, got.Additional[models.AdditionalDelivery].IsSet(), "explicit clear survives")
	assert.Equal(t, "", got.Additional[models.AdditionalDelivery].Value())
	assert.False(t, got.Fixed[models.FixedPhone].IsSet())
}

func TestDocumentValueKeyMarksRealEntries(t *testing.T) {
	form := models.NewForm(models.DefaultLayout())
	form.Fixed[models.FixedName].Edit("ACME Ltda")
	form.Additional[models.AdditionalPayment].Clear()

	data, err := NewDocument(form).Marshal()
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "value: ACME Ltda")
	assert.Contains(t, text, `value: ""`)
	assert.Equal(t, 2, strings.Count(text, "value:"))
}

func TestDocumentHandEdited(t *testing.T) {
	data := `
number: 0
fixed:
  - cell: B6
    hint: Nome do Cliente
    value: Padaria Central
  - hint: Endereço do Cliente
  - hint: 00.000.000/0000-00
  - hint: (00) 0000-0000
additional:
  - hint: "Prazo de entrega: "
  - hint: "Forma de pagamento: "
  - hint: "Na entrega: "
items:
` + strings.Repeat("  - {}\n", 22)

	doc, err := Unmarshal([]byte(data))
	require.NoError(t, err)
	form, err := doc.Form(models.DefaultLayout())
	require.NoError(t, err)

	assert.Equal(t, "Padaria Central", form.Fixed[models.FixedName].Value())
	assert.Equal(t, "B7", form.Fixed[models.FixedAddress].Cell)
	assert.Equal(t, "", form.Fixed[models.FixedAddress].Value())
	assert.Equal(t, models.DefaultHint, form.Items[0].Item.Hint(), "missing hints fall back to the default")
	assert.Equal(t, "", form.Items[0].Total.Value())
}

func TestDocumentLayoutMismatch(t *testing.T) {
	layout := models.DefaultLayout()
	doc := NewDocument(models.NewForm(layout))

	short := layout
	short.ItemCount = 10
	_, err := doc.Form(short)
	assert.ErrorIs(t, err, ErrLayoutMismatch)

	moved := layout
	moved.FixedCells[0] = "C6"
	_, err = doc.Form(moved)
	assert.ErrorIs(t, err, ErrLayoutMismatch)
}

func TestUnmarshalInvalid(t *testing.T) {
	_, err := Unmarshal([]byte("fixed: [\n"))
	assert.Error(t, err)

	_, err = Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
