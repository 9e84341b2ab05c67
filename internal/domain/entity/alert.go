package entity

import "time"

// DefaultAlertMessage is used when the sender does not supply a message.
const DefaultAlertMessage = "is trying to reach you!"

// Alert is a one-shot high-priority ping from one friend to another.
type Alert struct {
	ID            string    `json:"id"`
	FromUserID    string    `json:"from_user_id"`
	ToUserID      string    `json:"to_user_id"`
	FromUserName  string    `json:"from_user_name"`
	FromUserPhoto string    `json:"from_user_photo"`
	Message       string    `json:"message"`
	IsRead        bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}
