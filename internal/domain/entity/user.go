// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is the account document stored under users/{id}. The ID equals the
// identity provider's subject id.
type User struct {
	ID                     string    `json:"id"`                       // Identity provider subject id, also the document id.
	Email                  string    `json:"email"`                    // Lowercased email, unique by convention only.
	DisplayName            string    `json:"display_name"`             // Name shown to friends.
	ProfilePictureURL      string    `json:"profile_picture_url"`      // Avatar URL.
	FCMToken               string    `json:"fcm_token,omitempty"`      // Push token of the user's current device.
	LocationSharingEnabled bool      `json:"location_sharing_enabled"` // Whether friends may see the live location.
	CreatedAt              time.Time `json:"created_at"`               // Account creation time.
	LastActive             time.Time `json:"last_active"`              // Refreshed on every location write.
}

// NormalizeEmail lowercases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HasPushToken reports whether the user can receive push notifications.
func (u *User) HasPushToken() bool {
	return u != nil && u.FCMToken != ""
}
