// Package model holds the Firestore document shapes and their mapping to domain entities.
package model

import (
	"time"

	"friendlocator/internal/domain/entity"
)

// UserModel mirrors a document in the 'users' collection. The document id is the user id.
type UserModel struct {
	Email                  string    `firestore:"email"`
	DisplayName            string    `firestore:"display_name"`
	ProfilePictureURL      string    `firestore:"profile_picture_url"`
	FCMToken               string    `firestore:"fcm_token"`
	LocationSharingEnabled bool      `firestore:"location_sharing_enabled"`
	CreatedAt              time.Time `firestore:"created_at"`
	LastActive             time.Time `firestore:"last_active"`
}

// ToUserDomain maps a user document to the domain entity.
func ToUserDomain(id string, m *UserModel) *entity.User {
	return &entity.User{
		ID:                     id,
		Email:                  m.Email,
		DisplayName:            m.DisplayName,
		ProfilePictureURL:      m.ProfilePictureURL,
		FCMToken:               m.FCMToken,
		LocationSharingEnabled: m.LocationSharingEnabled,
		CreatedAt:              m.CreatedAt,
		LastActive:             m.LastActive,
	}
}

// FromUserDomain maps a domain user to its document.
func FromUserDomain(u *entity.User) *UserModel {
	return &UserModel{
		Email:                  u.Email,
		DisplayName:            u.DisplayName,
		ProfilePictureURL:      u.ProfilePictureURL,
		FCMToken:               u.FCMToken,
		LocationSharingEnabled: u.LocationSharingEnabled,
		CreatedAt:              u.CreatedAt,
		LastActive:             u.LastActive,
	}
}
