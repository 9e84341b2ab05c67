package entity

import "time"

// FriendRequestStatus is the state of a friend request.
type FriendRequestStatus string

const (
	FriendRequestPending  FriendRequestStatus = "PENDING"
	FriendRequestAccepted FriendRequestStatus = "ACCEPTED"
	FriendRequestDeclined FriendRequestStatus = "DECLINED"
)

// IsTerminal reports whether no further transition is allowed.
func (s FriendRequestStatus) IsTerminal() bool {
	return s == FriendRequestAccepted || s == FriendRequestDeclined
}

// CanTransitionTo reports whether the state machine allows moving from s to next.
// A request resolves exactly once: PENDING -> ACCEPTED or PENDING -> DECLINED.
func (s FriendRequestStatus) CanTransitionTo(next FriendRequestStatus) bool {
	return s == FriendRequestPending && next.IsTerminal()
}

// FriendRequest is a directed, single-use proposal from one user to another.
// The from_user_* fields are copied at send time and are not refreshed afterwards.
type FriendRequest struct {
	ID            string              `json:"id"`
	FromUserID    string              `json:"from_user_id"`
	ToUserID      string              `json:"to_user_id"`
	FromUserEmail string              `json:"from_user_email"`
	FromUserName  string              `json:"from_user_name"`
	FromUserPhoto string              `json:"from_user_photo"`
	ToUserEmail   string              `json:"to_user_email"`
	Status        FriendRequestStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
