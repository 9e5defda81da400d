package polyline

import (
	"testing"

	"github.com/itinerary-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	t.Run("reference fixture", func(t *testing.T) {
		// Эталонная строка из документации Google polyline
		coords := Decode("_p~iF~ps|U_ulLnnqC_mqNvxq`@")

		require.Len(t, coords, 3)
		assert.InDelta(t, 38.5, coords[0].Lat, 1e-5)
		assert.InDelta(t, -120.2, coords[0].Lng, 1e-5)
		assert.InDelta(t, 40.7, coords[1].Lat, 1e-5)
		assert.InDelta(t, -120.95, coords[1].Lng, 1e-5)
		assert.InDelta(t, 43.252, coords[2].Lat, 1e-5)
		assert.InDelta(t, -126.453, coords[2].Lng, 1e-5)
	})

	t.Run("empty string", func(t *testing.T) {
		assert.Nil(t, Decode(""))
	})

	t.Run("single point", func(t *testing.T) {
		coords := Decode(Encode([]domain.Coordinate{{Lat: 41.3851, Lng: 2.1734}}))
		require.Len(t, coords, 1)
		assert.InDelta(t, 41.3851, coords[0].Lat, 1e-5)
		assert.InDelta(t, 2.1734, coords[0].Lng, 1e-5)
	})

	t.Run("deterministic", func(t *testing.T) {
		encoded := "_p~iF~ps|U_ulLnnqC_mqNvxq`@"
		assert.Equal(t, Decode(encoded), Decode(encoded))
	})
}

func TestEncode(t *testing.T) {
	t.Run("reference fixture round-trip", func(t *testing.T) {
		coords := []domain.Coordinate{
			{Lat: 38.5, Lng: -120.2},
			{Lat: 40.7, Lng: -120.95},
			{Lat: 43.252, Lng: -126.453},
		}

		assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", Encode(coords))
	})

	t.Run("empty slice", func(t *testing.T) {
		assert.Equal(t, "", Encode(nil))
	})

	t.Run("negative deltas survive round-trip", func(t *testing.T) {
		coords := []domain.Coordinate{
			{Lat: 41.40338, Lng: 2.17403},
			{Lat: 41.39001, Lng: 2.15002},
			{Lat: 41.41234, Lng: 2.18999},
		}

		decoded := Decode(Encode(coords))
		require.Len(t, decoded, len(coords))
		for i := range coords {
			assert.InDelta(t, coords[i].Lat, decoded[i].Lat, 1e-5)
			assert.InDelta(t, coords[i].Lng, decoded[i].Lng, 1e-5)
		}
	})
}
