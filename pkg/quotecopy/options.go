// Package quotecopy creates numbered copies of a quote template.
package quotecopy

import (
	"fmt"

	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/config"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/export"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/naming"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/numbering"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/parser"
	"go.uber.org/zap"
)

// Options configures Load and Create.
type Options struct {
	// Layout locates the quote fields in the template.
	Layout models.Layout
	// Numberer owns the persisted next number.
	Numberer *numbering.Numberer
	// Namer renders the label and the output file name.
	Namer *naming.Namer
	// Exporter produces the PDF. Nil means manual export.
	Exporter export.Exporter
	// MediaFallback enables re-injecting media entries from the source archive.
	MediaFallback bool
	// ScratchDir is where media is extracted; empty means the system temp dir.
	ScratchDir string
	// MediaExtensions are the media entry extensions handled by the fallback.
	MediaExtensions []string
	// Overwrite allows replacing an existing copy with the same name.
	Overwrite bool
	// Log receives progress and recoverable errors. Nil disables logging.
	Log *zap.Logger
}

// DefaultOptions returns options for the standard template layout with a
// numbering file at numberingPath and no exporter.
func DefaultOptions(numberingPath string) Options {
	return Options{
		Layout:          models.DefaultLayout(),
		Numberer:        numbering.NewNumberer(numbering.NewFileStore(numberingPath), nil),
		Namer:           naming.MustDefault(),
		MediaFallback:   true,
		MediaExtensions: parser.DefaultMediaExtensions,
	}
}

// OptionsFromConfig builds options from the application configuration.
func OptionsFromConfig(cfg *config.AppConfig, log *zap.Logger) (Options, error) {
	log = logger.OrNop(log)

	namer, err := naming.New(cfg.Naming.Label, cfg.Naming.Output)
	if err != nil {
		return Options{}, fmt.Errorf("naming: %w", err)
	}

	return Options{
		Layout:          cfg.Layout,
		Numberer:        numbering.NewNumberer(numbering.NewFileStore(cfg.Numbering.Path), log),
		Namer:           namer,
		Exporter:        export.New(cfg.Export, cfg.Layout, log),
		MediaFallback:   cfg.Assets.Fallback,
		ScratchDir:      cfg.Assets.ScratchDir,
		MediaExtensions: cfg.Assets.Extensions,
		Log:             log,
	}, nil
}

func (o Options) logger() *zap.Logger {
	return logger.OrNop(o.Log)
}
