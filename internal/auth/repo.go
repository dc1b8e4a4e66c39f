package auth

import (
	"context"

	firebaseAuth "firebase.google.com/go/auth"

	"github.com/itwasdom/portfolio-service/internal/model"
)

// IdentityClient is the slice of the Firebase Auth client this service uses.
type IdentityClient interface {
	GetUserByEmail(ctx context.Context, email string) (*firebaseAuth.UserRecord, error)
	CreateUser(ctx context.Context, params *firebaseAuth.UserToCreate) (*firebaseAuth.UserRecord, error)
	UpdateUser(ctx context.Context, uid string, params *firebaseAuth.UserToUpdate) (*firebaseAuth.UserRecord, error)
	PasswordResetLinkWithSettings(ctx context.Context, email string, settings *firebaseAuth.ActionCodeSettings) (string, error)
}

// Store aggregates the document-store collaborators.
type Store interface {
	PinStore
	ProfileStore
}

// PinStore holds reset PIN records keyed by user id.
type PinStore interface {
	// SetPin unconditionally overwrites the user's record; a newer reset
	// request supersedes any outstanding PIN.
	SetPin(ctx context.Context, userID string, rec *model.PinRecord) error
	// GetPin returns (nil, nil) when no record exists.
	GetPin(ctx context.Context, userID string) (*model.PinRecord, error)
	// ConsumePin flips used to true. The write is conditional: it fails with
	// a failed-precondition error if the record is already consumed or gone.
	ConsumePin(ctx context.Context, userID string) error
}

// ProfileStore holds user profile documents.
type ProfileStore interface {
	CreateProfile(ctx context.Context, userID string, profile *model.UserProfile) error
	UpdateDisplayName(ctx context.Context, userID string, displayName string) error
}

type EmailSender interface {
	SendPinEmail(ctx context.Context, email string, pin string) error
	SendResetLinkEmail(ctx context.Context, email string, link string) error
}
