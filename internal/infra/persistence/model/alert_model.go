package model

import (
	"time"

	"friendlocator/internal/domain/entity"
)

// AlertModel mirrors a document in the 'alerts' collection.
type AlertModel struct {
	FromUserID    string    `firestore:"from_user_id"`
	ToUserID      string    `firestore:"to_user_id"`
	FromUserName  string    `firestore:"from_user_name"`
	FromUserPhoto string    `firestore:"from_user_photo"`
	Message       string    `firestore:"message"`
	IsRead        bool      `firestore:"is_read"`
	CreatedAt     time.Time `firestore:"created_at"`
}

func ToAlertDomain(id string, m *AlertModel) *entity.Alert {
	return &entity.Alert{
		ID:            id,
		FromUserID:    m.FromUserID,
		ToUserID:      m.ToUserID,
		FromUserName:  m.FromUserName,
		FromUserPhoto: m.FromUserPhoto,
		Message:       m.Message,
		IsRead:        m.IsRead,
		CreatedAt:     m.CreatedAt,
	}
}

func FromAlertDomain(a *entity.Alert) *AlertModel {
	return &AlertModel{
		FromUserID:    a.FromUserID,
		ToUserID:      a.ToUserID,
		FromUserName:  a.FromUserName,
		FromUserPhoto: a.FromUserPhoto,
		Message:       a.Message,
		IsRead:        a.IsRead,
		CreatedAt:     a.CreatedAt,
	}
}
