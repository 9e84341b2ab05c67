package entity

import "time"

// LocationRetention is how long a location document may go without updates
// before the daily cleanup purges it.
const LocationRetention = 24 * time.Hour

// UserLocation is the single live location document of a user, keyed by user id.
type UserLocation struct {
	ID        string    `json:"id"` // Always equal to UserID.
	UserID    string    `json:"user_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	Accuracy  float64   `json:"accuracy"` // Meters.
	Altitude  float64   `json:"altitude"` // Meters.
	Speed     float64   `json:"speed"`    // Meters per second.
	Bearing   float64   `json:"bearing"`  // Degrees.
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStale reports whether the location is older than the retention window at now.
func (l *UserLocation) IsStale(now time.Time) bool {
	return l.UpdatedAt.Before(now.Add(-LocationRetention))
}

// FriendLocation is a friend's live location together with its distance from the viewer.
type FriendLocation struct {
	UserLocation
	DistanceMeters *float64 `json:"distance_meters,omitempty"` // Nil when the viewer has no location.
}
