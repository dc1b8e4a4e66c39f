package model

import "time"

const (
	LikeNotification   = "like"
	FollowNotification = "follow"
)

// Notification records one dispatched like/follow email in the
// "notifications" collection. Records are pruned by the daily cleanup once
// they pass the configured retention.
type Notification struct {
	ID         string    `firestore:"-"`
	Kind       string    `firestore:"kind"`
	ActorID    string    `firestore:"actorId"`
	ActorName  string    `firestore:"actorName"`
	ActorEmail string    `firestore:"actorEmail"`
	PhotoID    string    `firestore:"photoId,omitempty"`
	CreatedAt  time.Time `firestore:"createdAt"`
}

type NotifyArgs struct {
	// ActorID is the verified identity of the caller performing the like or
	// follow; the recipient preference check runs against their profile.
	ActorID    string
	ActorName  string
	ActorEmail string
	PhotoID    string
}
