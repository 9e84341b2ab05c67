package entity

import "time"

// Friendship is one direction of the symmetric friend relation. Every
// friendship exists as two documents, (A, B) and (B, A), written and deleted
// together.
type Friendship struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`      // Owner of this view of the relation.
	FriendID    string    `json:"friend_id"`    // The other participant.
	FriendEmail string    `json:"friend_email"` // Denormalized from the friend's profile at accept time.
	FriendName  string    `json:"friend_name"`
	FriendPhoto string    `json:"friend_photo"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewFriendship builds the owner's view of a friendship with fresh profile data of friend.
func NewFriendship(ownerID string, friend *User, now time.Time) *Friendship {
	return &Friendship{
		UserID:      ownerID,
		FriendID:    friend.ID,
		FriendEmail: friend.Email,
		FriendName:  friend.DisplayName,
		FriendPhoto: friend.ProfilePictureURL,
		CreatedAt:   now,
	}
}
