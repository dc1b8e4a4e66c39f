package model

import "time"

// PinRecord is one outstanding password-reset attempt, stored in the
// "passwordResetPins" collection keyed by the Firebase user id. A user has at
// most one record; issuing a new PIN overwrites the previous one.
type PinRecord struct {
	Pin       string `firestore:"pin"`
	ExpiresAt int64  `firestore:"expiresAt"`
	Used      bool   `firestore:"used"`
}

func (r *PinRecord) Expired(now time.Time) bool {
	return now.UnixMilli() > r.ExpiresAt
}
