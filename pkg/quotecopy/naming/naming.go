// Package naming renders the quote-number label and the output file name
// from configurable expressions.
package naming

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Default expressions.
const (
	DefaultLabelExpr  = `"N° do Orçamento " + string(number)`
	DefaultOutputExpr = `base + "_copia_" + string(number) + ".xlsx"`
)

// Namer holds the compiled label and output-name programs.
type Namer struct {
	label  *vm.Program
	output *vm.Program
	now    func() time.Time
}

func sampleEnv() map[string]any {
	return map[string]any{"number": 0, "base": "", "date": ""}
}

// New compiles the two expressions. Empty expressions select the defaults.
func New(labelExpr, outputExpr string) (*Namer, error) {
	if labelExpr == "" {
		labelExpr = DefaultLabelExpr
	}
	if outputExpr == "" {
		outputExpr = DefaultOutputExpr
	}

	label, err := expr.Compile(labelExpr, expr.Env(sampleEnv()), expr.AsKind(reflect.String))
	if err != nil {
		return nil, fmt.Errorf("compile label expression %q: %w", labelExpr, err)
	}
	output, err := expr.Compile(outputExpr, expr.Env(sampleEnv()), expr.AsKind(reflect.String))
	if err != nil {
		return nil, fmt.Errorf("compile output expression %q: %w", outputExpr, err)
	}
	return &Namer{label: label, output: output, now: time.Now}, nil
}

// MustDefault returns a Namer with the default expressions.
func MustDefault() *Namer {
	n, err := New("", "")
	if err != nil {
		panic(err)
	}
	return n
}

func (n *Namer) run(program *vm.Program, number int, templateFile string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(templateFile), filepath.Ext(templateFile))
	env := map[string]any{
		"number": number,
		"base":   base,
		"date":   n.now().Format("2006-01-02"),
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return "", err
	}
	s, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("expression returned %T, expected string", out)
	}
	return s, nil
}

// Label returns the text written into the quote-number cell.
func (n *Namer) Label(number int) (string, error) {
	s, err := n.run(n.label, number, "")
	if err != nil {
		return "", fmt.Errorf("render label for %d: %w", number, err)
	}
	return s, nil
}

// OutputName returns the file name of the copy of templateFile, without
// any directory component.
func (n *Namer) OutputName(templateFile string, number int) (string, error) {
	s, err := n.run(n.output, number, templateFile)
	if err != nil {
		return "", fmt.Errorf("render output name for %d: %w", number, err)
	}
	name := filepath.Base(filepath.Clean(s))
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", fmt.Errorf("output expression produced an empty file name")
	}
	return name, nil
}
