// Package total sums line-item totals written in the Brazilian number format
// ("1.234,56": period groups thousands, comma separates decimals).
package total

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/ukaji3/quotecopy/pkg/logger"
	"github.com/ukaji3/quotecopy/pkg/quotecopy/models"
	"go.uber.org/zap"
)

// ParseAmount parses a Brazilian-formatted amount. A leading "R$" is ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimSpace(strings.TrimPrefix(clean, "R$"))
	if clean == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.Replace(clean, ",", ".", 1)
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// FormatAmount renders d with two decimals, period grouping and comma decimals.
func FormatAmount(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if d.Round(2).Sign() < 0 {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// Sum adds the real total of every item. Empty values and the zero hint are
// skipped; unparseable values are logged and skipped.
func Sum(items []models.LineItem, log *zap.Logger) (decimal.Decimal, int) {
	log = logger.OrNop(log)
	sum := decimal.Zero
	counted := 0
	for i := range items {
		raw := items[i].Total.Value()
		if raw == "" || raw == models.ZeroAmount {
			continue
		}
		d, err := ParseAmount(raw)
		if err != nil {
			log.Warn("skipping invalid item total",
				zap.Int("item", i+1),
				zap.String("cell", items[i].Total.Cell),
				zap.String("raw", raw),
				zap.Error(err))
			continue
		}
		sum = sum.Add(d)
		counted++
	}
	return sum, counted
}

// Compute returns the formatted grand total of items. It has no side effects
// besides logging and may be called on every edit.
func Compute(items []models.LineItem, log *zap.Logger) string {
	sum, counted := Sum(items, log)
	formatted := FormatAmount(sum)
	logger.OrNop(log).Debug("total computed", zap.String("total", formatted), zap.Int("items", counted))
	return formatted
}
