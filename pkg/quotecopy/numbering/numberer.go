package numbering

import (
	"fmt"

	"github.com/ukaji3/quotecopy/pkg/logger"
	"go.uber.org/zap"
)

// Numberer reconciles and advances the persisted quote number.
type Numberer struct {
	store Store
	log   *zap.Logger
}

// NewNumberer wraps store. A nil logger disables logging.
func NewNumberer(store Store, log *zap.Logger) *Numberer {
	return &Numberer{store: store, log: logger.OrNop(log)}
}

// Peek returns the persisted next number without changing it.
func (n *Numberer) Peek() (int, error) {
	return n.store.Next()
}

// Reconcile proposes the number for labelText and persists it right away,
// so a second load before any copy still proposes a non-decreasing number.
func (n *Numberer) Reconcile(labelText string) (int, error) {
	persisted, err := n.store.Next()
	if err != nil {
		n.log.Warn("numbering store unreadable, using 1", zap.Error(err))
		persisted = 1
	}

	next := Reconcile(labelText, persisted)
	n.log.Info("quote number reconciled",
		zap.String("label", labelText),
		zap.Int("extracted", ExtractNumber(labelText)),
		zap.Int("persisted", persisted),
		zap.Int("next", next))

	if err := n.store.SetNext(next); err != nil {
		return next, fmt.Errorf("persist next number %d: %w", next, err)
	}
	return next, nil
}

// Advance records that used was consumed by a copy and persists used+1.
func (n *Numberer) Advance(used int) (int, error) {
	next := used + 1
	if err := n.store.SetNext(next); err != nil {
		return next, fmt.Errorf("persist next number %d: %w", next, err)
	}
	n.log.Info("quote number advanced", zap.Int("used", used), zap.Int("next", next))
	return next, nil
}

// Set overwrites the persisted next number.
func (n *Numberer) Set(next int) error {
	if next < 1 {
		return fmt.Errorf("next number must be positive, got %d", next)
	}
	return n.store.SetNext(next)
}
