package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVehicleHealthBoundaries(t *testing.T) {
	assert.Equal(t, 100.0, VehicleHealth(0))
	assert.Equal(t, 100.0, VehicleHealth(-500))
	assert.Equal(t, 0.0, VehicleHealth(100000))
	assert.Equal(t, 0.0, VehicleHealth(250000))
	assert.Equal(t, 50.0, VehicleHealth(50000))
	assert.Equal(t, 75.0, VehicleHealth(25000))
}

func TestVehicleHealthMonotonicAndBounded(t *testing.T) {
	prev := VehicleHealth(0)
	for mileage := 0; mileage <= 150000; mileage += 1357 {
		h := VehicleHealth(mileage)
		assert.LessOrEqual(t, h, prev, "health must not increase with mileage (at %d km)", mileage)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.LessOrEqual(t, h, 100.0)
		prev = h
	}
}
