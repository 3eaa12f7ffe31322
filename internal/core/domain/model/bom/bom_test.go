package bom_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/bom"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLine(t *testing.T, piece kernel.Section) bom.Item {
	t.Helper()
	item, err := bom.NewItem(kernel.NewUUID(), 1.5, "meter", piece)
	require.NoError(t, err)
	return item
}

func TestNewBOM(t *testing.T) {
	now := time.Now()
	productID := kernel.NewUUID()

	t.Run("creates inactive bom with normalized size", func(t *testing.T) {
		b, err := bom.NewBOM(kernel.NewUUID(), productID, " M ", 1, []bom.Item{newLine(t, kernel.Shirt)}, now)

		require.NoError(t, err)
		require.NoError(t, b.Validate())
		assert.Equal(t, "m", b.Size())
		assert.Equal(t, 1, b.Version())
		assert.False(t, b.IsActive())
		assert.Len(t, b.Items(), 1)
	})

	t.Run("joins every validation failure", func(t *testing.T) {
		var noID kernel.UUID

		b, err := bom.NewBOM(noID, productID, "", 0, nil, now)

		require.Error(t, err)
		assert.Nil(t, b)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "size")
		assert.Contains(t, err.Error(), "version")
		assert.Contains(t, err.Error(), "bom items")
	})
}

func TestNewItem(t *testing.T) {
	_, err := bom.NewItem(kernel.NewUUID(), 0, " ", kernel.Section("sleeve"))

	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestActivate(t *testing.T) {
	now := time.Now()
	productID := kernel.NewUUID()
	mk := func(size string, version int, active bool) *bom.BOM {
		return bom.RestoreBOM(kernel.NewUUID(), productID, size, version, active, []bom.Item{newLine(t, kernel.Shirt)}, now)
	}

	t.Run("deactivates exactly the siblings", func(t *testing.T) {
		v1 := mk("m", 1, true)
		v2 := mk("m", 2, false)
		v3 := mk("m", 3, false)

		changed, err := bom.Activate(v3, []*bom.BOM{v1, v2, v3})

		require.NoError(t, err)
		assert.ElementsMatch(t, []*bom.BOM{v1, v3}, changed)
		assert.False(t, v1.IsActive())
		assert.False(t, v2.IsActive())
		assert.True(t, v3.IsActive())
	})

	t.Run("never touches another size", func(t *testing.T) {
		medium := mk("m", 1, false)
		large := mk("l", 1, true)

		_, err := bom.Activate(medium, []*bom.BOM{medium, large})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.True(t, large.IsActive())
		assert.False(t, medium.IsActive())
	})

	t.Run("re-activating the active bom changes nothing", func(t *testing.T) {
		v1 := mk("s", 1, true)

		changed, err := bom.Activate(v1, []*bom.BOM{v1})

		require.NoError(t, err)
		assert.Empty(t, changed)
		assert.True(t, v1.IsActive())
	})
}

func TestNextVersion(t *testing.T) {
	now := time.Now()
	productID := kernel.NewUUID()
	items := []bom.Item{newLine(t, kernel.Dupatta)}

	assert.Equal(t, 1, bom.NextVersion(nil))
	assert.Equal(t, 4, bom.NextVersion([]*bom.BOM{
		bom.RestoreBOM(kernel.NewUUID(), productID, "m", 3, false, items, now),
		bom.RestoreBOM(kernel.NewUUID(), productID, "m", 1, true, items, now),
	}))
}
