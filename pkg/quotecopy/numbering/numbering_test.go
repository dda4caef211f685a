package numbering

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"Quote No. 5", 5},
		{"N° do Orçamento 7", 7},
		{"N° 10 rev 3", 10},
		{"abc123def456", 123},
		{"0042", 42},
		{"no digits", 1},
		{"", 1},
		{"99999999999999999999999999", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ExtractNumber(tt.input), "ExtractNumber(%q)", tt.input)
	}
}

func TestReconcileMonotonic(t *testing.T) {
	labels := []string{"", "Quote No. 1", "Quote No. 7", "N° 120", "sem número"}
	for _, label := range labels {
		for persisted := 1; persisted < 200; persisted += 13 {
			got := Reconcile(label, persisted)
			assert.GreaterOrEqual(t, got, persisted)
			assert.GreaterOrEqual(t, got, ExtractNumber(label)+1)
		}
	}
}

func TestReconcileScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store := NewFileStore(path)
	require.NoError(t, store.SetNext(3))

	n := NewNumberer(store, nil)
	got, err := n.Reconcile("Quote No. 7")
	require.NoError(t, err)
	assert.Equal(t, 8, got)

	persisted, err := store.Next()
	require.NoError(t, err)
	assert.Equal(t, 8, persisted)

	again, err := n.Reconcile("Quote No. 7")
	require.NoError(t, err)
	assert.Equal(t, 8, again)
}

func TestReconcilePersistedAhead(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, store.SetNext(40))

	got, err := NewNumberer(store, nil).Reconcile("Quote No. 7")
	require.NoError(t, err)
	assert.Equal(t, 40, got)
}

func TestAdvanceAndSet(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "config.json"))
	n := NewNumberer(store, nil)

	next, err := n.Advance(8)
	require.NoError(t, err)
	assert.Equal(t, 9, next)

	peek, err := n.Peek()
	require.NoError(t, err)
	assert.Equal(t, 9, peek)

	assert.Error(t, n.Set(0))
	require.NoError(t, n.Set(15))
	peek, err = n.Peek()
	require.NoError(t, err)
	assert.Equal(t, 15, peek)
}

func TestFileStoreMissingAndLegacy(t *testing.T) {
	dir := t.TempDir()

	missing := NewFileStore(filepath.Join(dir, "missing.json"))
	n, err := missing.Next()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	legacyPath := filepath.Join(dir, "legacy.json")
	require.NoError(t, os.WriteFile(legacyPath, []byte(`{"proximo_numero": 12}`), 0644))
	n, err = NewFileStore(legacyPath).Next()
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	badPath := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{`), 0644))
	_, err = NewFileStore(badPath).Next()
	assert.Error(t, err)
}

type brokenStore struct{ written int }

func (b *brokenStore) Next() (int, error) { return 0, errors.New("disk on fire") }
func (b *brokenStore) SetNext(n int) error {
	b.written = n
	return nil
}

func TestReconcileUnreadableStore(t *testing.T) {
	store := &brokenStore{}
	got, err := NewNumberer(store, nil).Reconcile("Quote No. 4")
	require.NoError(t, err)
	assert.Equal(t, 5, got)
	assert.Equal(t, 5, store.written)
}
