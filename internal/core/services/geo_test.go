package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openeats/dinesync/internal/core/domain"
)

func TestDistanceMiles_SamePoint(t *testing.T) {
	ref := domain.Coordinates{Latitude: 29.4241, Longitude: -98.4936}

	assert.Equal(t, 0.0, DistanceMiles(ref, ref))
}

func TestDistanceMiles_OneMileApart(t *testing.T) {
	// ~0.0145 degrees of latitude is about one mile.
	a := domain.Coordinates{Latitude: 29.4241, Longitude: -98.4936}
	b := domain.Coordinates{Latitude: 29.4386, Longitude: -98.4936}

	assert.InDelta(t, 1.0, DistanceMiles(a, b), 0.05)
}

func TestDistanceMiles_Symmetric(t *testing.T) {
	a := domain.Coordinates{Latitude: 29.4241, Longitude: -98.4936}
	b := domain.Coordinates{Latitude: 29.4841, Longitude: -98.4658}

	assert.Equal(t, DistanceMiles(a, b), DistanceMiles(b, a))
}

func TestDistanceMiles_RoundedToOneDecimal(t *testing.T) {
	a := domain.Coordinates{Latitude: 29.4241, Longitude: -98.4936}
	b := domain.Coordinates{Latitude: 29.5127, Longitude: -98.4001}

	d := DistanceMiles(a, b)
	assert.Equal(t, math.Round(d*10)/10, d)
}
