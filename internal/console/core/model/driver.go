package model

// Driver represents a driver as reported by the remote fleet service.
// Read-only from the console's perspective.
type Driver struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`

	// Rating is the driver's score in [0, 5].
	Rating float64 `json:"rating"`

	// Trips is the total trip count.
	Trips int `json:"trips"`

	// Earnings is the driver's total earnings.
	Earnings float64 `json:"earnings"`

	// History is the driver's trips, most recent first. Populated only when
	// a single driver is fetched with trip history.
	History []Trip `json:"history,omitempty"`
}

// Trip is a single completed trip record, fetched on demand. Read-only.
type Trip struct {
	ID       string  `json:"id"`
	Vehicle  string  `json:"vehicle"`
	Date     string  `json:"date"`
	Earnings float64 `json:"earnings"`
	Distance float64 `json:"distance"`
}
