package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseLocatedActivities(t *testing.T) {
	now := time.Now()

	t.Run("filters invalid records", func(t *testing.T) {
		records := []ActivityRecord{
			{ID: "ok-1", StartTime: now, LocationLat: strPtr("41.3851"), LocationLng: strPtr("2.1734")},
			{ID: "nil-coords", StartTime: now},
			{ID: "empty-lat", StartTime: now, LocationLat: strPtr(""), LocationLng: strPtr("2.0")},
			{ID: "not-a-number", StartTime: now, LocationLat: strPtr("abc"), LocationLng: strPtr("2.0")},
			{ID: "nan", StartTime: now, LocationLat: strPtr("NaN"), LocationLng: strPtr("2.0")},
			{ID: "lat-out-of-range", StartTime: now, LocationLat: strPtr("91"), LocationLng: strPtr("2.0")},
			{ID: "lng-out-of-range", StartTime: now, LocationLat: strPtr("41.0"), LocationLng: strPtr("-180.5")},
			{ID: "ok-2", StartTime: now, LocationLat: strPtr("48.8566"), LocationLng: strPtr("2.3522")},
		}

		located := ParseLocatedActivities(records)

		require.Len(t, located, 2)
		assert.Equal(t, "ok-1", located[0].ID)
		assert.Equal(t, "ok-2", located[1].ID)
		assert.InDelta(t, 41.3851, located[0].Lat, 1e-9)
		assert.InDelta(t, 2.1734, located[0].Lng, 1e-9)
	})

	t.Run("boundary values accepted", func(t *testing.T) {
		records := []ActivityRecord{
			{ID: "pole", StartTime: now, LocationLat: strPtr("90"), LocationLng: strPtr("-180")},
		}

		located := ParseLocatedActivities(records)

		require.Len(t, located, 1)
		assert.Equal(t, 90.0, located[0].Lat)
		assert.Equal(t, -180.0, located[0].Lng)
	})

	t.Run("whitespace trimmed", func(t *testing.T) {
		records := []ActivityRecord{
			{ID: "padded", StartTime: now, LocationLat: strPtr(" 41.5 "), LocationLng: strPtr(" 2.2 ")},
		}

		located := ParseLocatedActivities(records)

		require.Len(t, located, 1)
		assert.Equal(t, 41.5, located[0].Lat)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParseLocatedActivities(nil))
	})
}

func TestLocatedActivityCoordinate(t *testing.T) {
	a := LocatedActivity{ID: "a", Lat: 41.0, Lng: 2.0}
	assert.Equal(t, Coordinate{Lat: 41.0, Lng: 2.0}, a.Coordinate())
}
