// Package export turns a finished quote copy into a PDF.
package export

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/config"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"go.uber.org/zap"
)

// Exporter produces a PDF next to a saved workbook.
type Exporter interface {
	// Name identifies the engine in logs.
	Name() string
	// Export converts xlsxPath and returns the PDF path.
	Export(ctx context.Context, xlsxPath string) (string, error)
}

// officeCandidates are looked up on PATH when no binary is configured.
var officeCandidates = []string{"soffice", "libreoffice"}

// PDFPath returns the PDF path for a workbook: same directory and base name.
func PDFPath(xlsxPath string) string {
	return strings.TrimSuffix(xlsxPath, filepath.Ext(xlsxPath)) + ".pdf"
}

// FindOffice locates the office converter. A configured binary wins over
// the PATH candidates.
func FindOffice(configured string) (string, error) {
	if configured != "" {
		return exec.LookPath(configured)
	}
	var lastErr error
	for _, name := range officeCandidates {
		p, err := exec.LookPath(name)
		if err == nil {
			return p, nil
		}
		lastErr = err
	}
	return "", lastErr
}

// New resolves the configured engine. It returns nil when no PDF can be
// produced; callers then ask the user to export manually.
func New(cfg config.ExportConfig, layout models.Layout, log *zap.Logger) Exporter {
	log = logger.OrNop(log)
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch cfg.Engine {
	case config.EngineNone:
		return nil
	case config.EngineNative:
		return NewNative(layout, log)
	case config.EngineOffice, config.EngineAuto, "":
		bin, err := FindOffice(cfg.OfficeBinary)
		if err != nil {
			if cfg.Engine == config.EngineOffice {
				log.Warn("office converter not found, pdf export disabled", zap.Error(err))
			} else {
				log.Info("no office converter found, pdf export disabled")
			}
			return nil
		}
		return NewOffice(bin, timeout, log)
	default:
		log.Warn("unknown export engine, pdf export disabled", zap.String("engine", cfg.Engine))
		return nil
	}
}
