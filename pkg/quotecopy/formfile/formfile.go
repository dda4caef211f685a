// Package formfile stores a quote form as a YAML document so it can be
// edited between the load and create steps.
package formfile

import (
	"errors"
	"fmt"
	"os"

	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"gopkg.in/yaml.v3"
)

// ErrLayoutMismatch is returned when a document does not fit the layout.
var ErrLayoutMismatch = errors.New("form document does not match layout")

// Document is the YAML shape of a form.
type Document struct {
	Template   string     `yaml:"template,omitempty"`
	Label      string     `yaml:"label,omitempty"`
	Number     int        `yaml:"number"`
	Fixed      []EntryDoc `yaml:"fixed"`
	Additional []EntryDoc `yaml:"additional"`
	Items      []ItemDoc  `yaml:"items"`
}

// EntryDoc is one entry. A present value, even "", means the entry is real.
type EntryDoc struct {
	Cell  string  `yaml:"cell"`
	Hint  string  `yaml:"hint,omitempty"`
	Value *string `yaml:"value,omitempty"`
}

// ItemDoc is one line item.
type ItemDoc struct {
	Item        EntryDoc `yaml:"item"`
	Description EntryDoc `yaml:"description"`
	Quantity    EntryDoc `yaml:"quantity"`
	Unit        EntryDoc `yaml:"unit"`
	UnitPrice   EntryDoc `yaml:"unit_price"`
	Total       EntryDoc `yaml:"total"`
}

func (d *ItemDoc) entries() [models.ItemColumnCount]*EntryDoc {
	return [models.ItemColumnCount]*EntryDoc{&d.Item, &d.Description, &d.Quantity, &d.Unit, &d.UnitPrice, &d.Total}
}

func toDoc(e models.Entry) EntryDoc {
	d := EntryDoc{Cell: e.Cell, Hint: e.Hint()}
	if e.IsSet() {
		v := e.Value()
		d.Value = &v
	}
	return d
}

func fromDoc(d EntryDoc, e *models.Entry) error {
	if d.Cell != "" && d.Cell != e.Cell {
		return fmt.Errorf("%w: entry for %s found where %s was expected", ErrLayoutMismatch, d.Cell, e.Cell)
	}
	e.SetHint(d.Hint)
	if d.Value != nil {
		e.SetReal(*d.Value)
	}
	return nil
}

// NewDocument converts form into its document shape.
func NewDocument(form *models.Form) *Document {
	doc := &Document{Number: form.Number}
	for _, e := range form.Fixed {
		doc.Fixed = append(doc.Fixed, toDoc(e))
	}
	for _, e := range form.Additional {
		doc.Additional = append(doc.Additional, toDoc(e))
	}
	for i := range form.Items {
		var item ItemDoc
		dst := item.entries()
		for col, e := range form.Items[i].Entries() {
			*dst[col] = toDoc(*e)
		}
		doc.Items = append(doc.Items, item)
	}
	return doc
}

// Form rebuilds a form for layout from the document.
func (d *Document) Form(layout models.Layout) (*models.Form, error) {
	form := models.NewForm(layout)
	form.Number = d.Number

	if len(d.Fixed) != len(form.Fixed) || len(d.Additional) != len(form.Additional) {
		return nil, fmt.Errorf("%w: expected %d fixed and %d additional entries", ErrLayoutMismatch, len(form.Fixed), len(form.Additional))
	}
	if len(d.Items) != len(form.Items) {
		return nil, fmt.Errorf("%w: expected %d items, got %d", ErrLayoutMismatch, len(form.Items), len(d.Items))
	}

	for i := range form.Fixed {
		if err := fromDoc(d.Fixed[i], &form.Fixed[i]); err != nil {
			return nil, err
		}
	}
	for i := range form.Additional {
		if err := fromDoc(d.Additional[i], &form.Additional[i]); err != nil {
			return nil, err
		}
	}
	for i := range form.Items {
		src := d.Items[i].entries()
		for col, e := range form.Items[i].Entries() {
			if err := fromDoc(*src[col], e); err != nil {
				return nil, err
			}
		}
	}
	return form, nil
}

// Marshal encodes the document as YAML.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d)
}

// Unmarshal decodes a YAML document.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode form document: %w", err)
	}
	return &doc, nil
}

// Write saves doc to path.
func Write(path string, doc *Document) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Read loads the document at path.
func Read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}
