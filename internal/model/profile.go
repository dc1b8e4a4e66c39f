package model

import "time"

type EmailKind string

const (
	ResetPinEmailKind  EmailKind = "reset_pin"
	ResetLinkEmailKind EmailKind = "reset_link"
	LikeEmailKind      EmailKind = "like"
	FollowEmailKind    EmailKind = "follow"
)

// UserProfile lives in the "users" collection keyed by the Firebase user id.
// EnableNotifications gates like/follow emails and is read-only for this
// service; the site UI flips it.
type UserProfile struct {
	Email               string    `firestore:"email"`
	DisplayName         string    `firestore:"displayName"`
	EnableNotifications bool      `firestore:"enableNotifications"`
	CreatedAt           time.Time `firestore:"createdAt"`
}

type RegisterArgs struct {
	Email       string
	Password    string
	DisplayName string
}

type UpdateProfileArgs struct {
	UserID      string
	DisplayName string
	Password    string
}

type ResetRequestArgs struct {
	Email string
}

type ResetVerifyArgs struct {
	Email       string
	Pin         string
	NewPassword string
}
