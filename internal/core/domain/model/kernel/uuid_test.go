package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.NotEqual(t, uuid.Nil.String(), id1.String())
	assert.False(t, id1.IsEqual(id2))
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should accept the supported textual forms", func(t *testing.T) {
		for _, raw := range []string{
			validUUID,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(raw)

			require.NoError(t, err, raw)
			assert.Equal(t, validUUID, id.String())
		}
	})

	t.Run("should reject malformed input as invalid value", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject the nil uuid", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	raw := uuid.New()

	id, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.Equal(t, raw, id.Bytes())

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	var zero [16]byte
	_, err = kernel.UUIDFromBytes(zero[:])
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_Validate(t *testing.T) {
	var id kernel.UUID

	require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
	require.NoError(t, kernel.NewUUID().Validate())
}

func TestSortUUIDs(t *testing.T) {
	a, _ := kernel.UUIDFromString("00000000-0000-0000-0000-00000000000a")
	b, _ := kernel.UUIDFromString("00000000-0000-0000-0000-00000000000b")
	c, _ := kernel.UUIDFromString("00000000-0000-0000-0000-00000000000c")

	sorted := kernel.SortUUIDs([]kernel.UUID{c, a, b})

	assert.Equal(t, []kernel.UUID{a, b, c}, sorted)
	assert.True(t, a.Less(b))
	assert.False(t, c.Less(a))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 0, b.Compare(b))
	assert.Equal(t, 1, c.Compare(a))
}
