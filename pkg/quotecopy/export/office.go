package export

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/ukaji3/quotecopy/pkg/logger"
	"go.uber.org/zap"
)

// Office converts workbooks with a headless office suite.
type Office struct {
	Binary  string
	Timeout time.Duration
	log     *zap.Logger
}

// NewOffice returns an exporter running binary.
func NewOffice(binary string, timeout time.Duration, log *zap.Logger) *Office {
	return &Office{Binary: binary, Timeout: timeout, log: logger.OrNop(log)}
}

func (o *Office) Name() string { return "office" }

// Export runs the converter with the workbook's directory as output
// directory. A PDF left behind by a failed run is removed.
func (o *Office) Export(ctx context.Context, xlsxPath string) (string, error) {
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	pdf := PDFPath(xlsxPath)
	cmd := exec.CommandContext(ctx, o.Binary,
		"--headless", "--convert-to", "pdf",
		"--outdir", filepath.Dir(xlsxPath),
		xlsxPath)

	start := time.Now()
	out, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(pdf)
		return "", fmt.Errorf("%s: %w: %s", filepath.Base(o.Binary), err, strings.TrimSpace(string(out)))
	}
	if _, err := os.Stat(pdf); err != nil {
		return "", fmt.Errorf("converter finished without writing %s: %s", filepath.Base(pdf), strings.TrimSpace(string(out)))
	}

	o.log.Debug("office conversion finished", zap.String("pdf", pdf), zap.Duration("elapsed", time.Since(start)))
	return pdf, nil
}
