package model

import (
	"time"

	"friendlocator/internal/domain/entity"
)

// FriendRequestModel mirrors a document in the 'friend_requests' collection.
type FriendRequestModel struct {
	FromUserID    string    `firestore:"from_user_id"`
	ToUserID      string    `firestore:"to_user_id"`
	FromUserEmail string    `firestore:"from_user_email"`
	FromUserName  string    `firestore:"from_user_name"`
	FromUserPhoto string    `firestore:"from_user_photo"`
	ToUserEmail   string    `firestore:"to_user_email"`
	Status        string    `firestore:"status"`
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func ToFriendRequestDomain(id string, m *FriendRequestModel) *entity.FriendRequest {
	return &entity.FriendRequest{
		ID:            id,
		FromUserID:    m.FromUserID,
		ToUserID:      m.ToUserID,
		FromUserEmail: m.FromUserEmail,
		FromUserName:  m.FromUserName,
		FromUserPhoto: m.FromUserPhoto,
		ToUserEmail:   m.ToUserEmail,
		Status:        entity.FriendRequestStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func FromFriendRequestDomain(r *entity.FriendRequest) *FriendRequestModel {
	return &FriendRequestModel{
		FromUserID:    r.FromUserID,
		ToUserID:      r.ToUserID,
		FromUserEmail: r.FromUserEmail,
		FromUserName:  r.FromUserName,
		FromUserPhoto: r.FromUserPhoto,
		ToUserEmail:   r.ToUserEmail,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
