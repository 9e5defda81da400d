package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackLeg(t *testing.T) {
	from := Coordinate{Lat: 41.0, Lng: 2.0}
	to := Coordinate{Lat: 41.5, Lng: 2.5}

	leg := FallbackLeg(from, to, ModeWalking)

	assert.False(t, leg.Measured)
	assert.Equal(t, 0.0, leg.DistanceMeters)
	assert.Equal(t, 0.0, leg.DurationSeconds)
	assert.Equal(t, ModeWalking, leg.Mode)
	require.Len(t, leg.Path, 2)
	assert.Equal(t, from, leg.Path[0])
	assert.Equal(t, to, leg.Path[1])
}

func TestItineraryRoutePartial(t *testing.T) {
	full := &ItineraryRoute{RoutedLegs: 3, UnroutedLegs: 0}
	assert.False(t, full.Partial())

	partial := &ItineraryRoute{RoutedLegs: 2, UnroutedLegs: 1}
	assert.True(t, partial.Partial())
}

func TestTransportModeValid(t *testing.T) {
	assert.True(t, ModeWalking.Valid())
	assert.True(t, ModeDriving.Valid())
	assert.True(t, ModeCycling.Valid())
	assert.False(t, TransportMode("flying").Valid())
	assert.False(t, TransportMode("").Valid())
}

func TestTripRouteEventModes(t *testing.T) {
	t.Run("explicit mode", func(t *testing.T) {
		e := TripRouteEvent{TripID: uuid.New(), Mode: ModeDriving}
		assert.Equal(t, []TransportMode{ModeDriving}, e.Modes())
	})

	t.Run("empty mode means all", func(t *testing.T) {
		e := TripRouteEvent{TripID: uuid.New()}
		assert.Equal(t, []TransportMode{ModeWalking, ModeDriving, ModeCycling}, e.Modes())
	})
}
