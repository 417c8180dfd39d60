package model

// FleetStats is a derived summary of the current vehicle snapshot, computed
// on read and never cached.
type FleetStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Busy        int `json:"busy"`
	Maintenance int `json:"maintenance"`

	// TotalMileage is the sum of all odometer readings.
	TotalMileage int `json:"totalMileage"`

	// AverageHealth is the mean health score across the fleet, 0 for an
	// empty fleet.
	AverageHealth float64 `json:"averageHealth"`
}

// ComputeFleetStats derives FleetStats from a vehicle snapshot.
func ComputeFleetStats(vehicles []Vehicle) FleetStats {
	stats := FleetStats{Total: len(vehicles)}

	var healthSum float64
	for i := range vehicles {
		v := &vehicles[i]
		switch v.Status {
		case StatusAvailable:
			stats.Available++
		case StatusBusy:
			stats.Busy++
		case StatusMaintenance:
			stats.Maintenance++
		}
		stats.TotalMileage += v.Mileage
		healthSum += VehicleHealth(v.Mileage)
	}

	if stats.Total > 0 {
		stats.AverageHealth = healthSum / float64(stats.Total)
	}
	return stats
}
