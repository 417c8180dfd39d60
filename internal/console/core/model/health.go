package model

// maxMileage is the mileage at which a vehicle's health reaches zero.
const maxMileage = 100000

// VehicleHealth derives a 0-100 condition score from an odometer reading.
// Health is 100 at zero mileage and degrades linearly to 0 at 100000 km;
// the result is always clamped to [0, 100]. Pure, recomputed on demand.
func VehicleHealth(mileage int) float64 {
	h := 100 - (float64(mileage)/maxMileage)*100
	if h < 0 {
		return 0
	}
	if h > 100 {
		return 100
	}
	return h
}
