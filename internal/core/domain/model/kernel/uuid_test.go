package kernel_test

import (
	"encoding/json"
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	t.Run("should create a valid random UUID", func(t *testing.T) {
		id := kernel.NewUUID()

		require.NoError(t, id.Validate())
		assert.False(t, id.IsZero())
		assert.Equal(t, uuid.Version(4), id.Bytes().Version())
	})

	t.Run("should create unique UUIDs", func(t *testing.T) {
		assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
	})
}

func TestDeterministicUUID(t *testing.T) {
	t.Run("should return the same id for the same parts", func(t *testing.T) {
		a := kernel.DeterministicUUID("shipment_packed", "group-1", "seller-1")
		b := kernel.DeterministicUUID("shipment_packed", "group-1", "seller-1")

		assert.True(t, a.IsEqual(b))
		assert.Equal(t, uuid.Version(5), a.Bytes().Version())
	})

	t.Run("should not collide when parts shift across boundaries", func(t *testing.T) {
		a := kernel.DeterministicUUID("ab", "c")
		b := kernel.DeterministicUUID("a", "bc")

		assert.False(t, a.IsEqual(b))
	})

	t.Run("should differ per recipient", func(t *testing.T) {
		a := kernel.DeterministicUUID("shipment_packed", "group-1", "seller-1")
		b := kernel.DeterministicUUID("shipment_packed", "group-1", "seller-2")

		assert.False(t, a.IsEqual(b))
	})
}

func TestUUIDFromString(t *testing.T) {
	const canonical = "550e8400-e29b-41d4-a716-446655440000"

	t.Run("should accept the common textual forms", func(t *testing.T) {
		for _, input := range []string{
			canonical,
			"{550e8400-e29b-41d4-a716-446655440000}",
			"urn:uuid:550e8400-e29b-41d4-a716-446655440000",
			"550e8400e29b41d4a716446655440000",
		} {
			id, err := kernel.UUIDFromString(input)

			require.NoError(t, err, input)
			assert.Equal(t, canonical, id.String())
		}
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, input := range []string{"", "not-a-uuid", "550e8400-e29b-41d4-a716"} {
			_, err := kernel.UUIDFromString(input)

			require.Error(t, err, input)
			assert.Contains(t, err.Error(), "invalid UUID format")
		}
	})

	t.Run("should reject the nil UUID", func(t *testing.T) {
		_, err := kernel.UUIDFromString("00000000-0000-0000-0000-000000000000")

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUIDFromBytes(t *testing.T) {
	t.Run("should round trip through Bytes", func(t *testing.T) {
		original := kernel.NewUUID()
		raw := original.Bytes()

		restored, err := kernel.UUIDFromBytes(raw[:])

		require.NoError(t, err)
		assert.True(t, original.IsEqual(restored))
	})

	t.Run("should reject wrong length", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes([]byte{0x55, 0x0e})

		require.Error(t, err)
	})

	t.Run("should reject all-zero bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))

		assert.Equal(t, kernel.ErrUUIDIsNotConstructed, err)
	})
}

func TestUUID_Validate(t *testing.T) {
	var id kernel.UUID

	assert.Equal(t, kernel.ErrUUIDIsNotConstructed, id.Validate())
}

func TestUUID_JSON(t *testing.T) {
	type payload struct {
		ProductID kernel.UUID `json:"product_id"`
	}

	t.Run("should encode as canonical string", func(t *testing.T) {
		id, _ := kernel.UUIDFromString("550e8400-e29b-41d4-a716-446655440000")

		b, err := json.Marshal(payload{ProductID: id})

		require.NoError(t, err)
		assert.JSONEq(t, `{"product_id":"550e8400-e29b-41d4-a716-446655440000"}`, string(b))
	})

	t.Run("should decode and validate", func(t *testing.T) {
		var p payload

		err := json.Unmarshal([]byte(`{"product_id":"00000000-0000-0000-0000-000000000000"}`), &p)

		require.Error(t, err)
	})
}
