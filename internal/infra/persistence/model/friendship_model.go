package model

import (
	"time"

	"friendlocator/internal/domain/entity"
)

// FriendshipModel mirrors a document in the 'friendships' collection.
type FriendshipModel struct {
	UserID      string    `firestore:"user_id"`
	FriendID    string    `firestore:"friend_id"`
	FriendEmail string    `firestore:"friend_email"`
	FriendName  string    `firestore:"friend_name"`
	FriendPhoto string    `firestore:"friend_photo"`
	CreatedAt   time.Time `firestore:"created_at"`
}

func ToFriendshipDomain(id string, m *FriendshipModel) *entity.Friendship {
	return &entity.Friendship{
		ID:          id,
		UserID:      m.UserID,
		FriendID:    m.FriendID,
		FriendEmail: m.FriendEmail,
		FriendName:  m.FriendName,
		FriendPhoto: m.FriendPhoto,
		CreatedAt:   m.CreatedAt,
	}
}

func FromFriendshipDomain(f *entity.Friendship) *FriendshipModel {
	return &FriendshipModel{
		UserID:      f.UserID,
		FriendID:    f.FriendID,
		FriendEmail: f.FriendEmail,
		FriendName:  f.FriendName,
		FriendPhoto: f.FriendPhoto,
		CreatedAt:   f.CreatedAt,
	}
}
