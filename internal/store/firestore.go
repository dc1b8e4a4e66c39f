package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/itwasdom/portfolio-service/internal/apierr"
	"github.com/itwasdom/portfolio-service/internal/model"
)

const (
	pinCollection          = "passwordResetPins"
	userCollection         = "users"
	notificationCollection = "notifications"
)

// FirestoreStore implements the document-store collaborators over the
// project's Firestore database.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) SetPin(ctx context.Context, userID string, rec *model.PinRecord) error {
	_, err := s.client.Collection(pinCollection).Doc(userID).Set(ctx, rec)
	return err
}

func (s *FirestoreStore) GetPin(ctx context.Context, userID string) (*model.PinRecord, error) {
	snap, err := s.client.Collection(pinCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var rec model.PinRecord
	if err := snap.DataTo(&rec); err != nil {
		return nil, err
	}

	return &rec, nil
}

// ConsumePin re-checks the used flag inside a transaction so two concurrent
// verifications cannot both burn the same PIN.
func (s *FirestoreStore) ConsumePin(ctx context.Context, userID string) error {
	ref := s.client.Collection(pinCollection).Doc(userID)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return apierr.NotFound("No PIN found for this user")
			}
			return err
		}

		var rec model.PinRecord
		if err := snap.DataTo(&rec); err != nil {
			return err
		}
		if rec.Used {
			return apierr.FailedPrecondition("PIN already used")
		}

		return tx.Update(ref, []firestore.Update{{Path: "used", Value: true}})
	})
}

func (s *FirestoreStore) CreateProfile(ctx context.Context, userID string, profile *model.UserProfile) error {
	_, err := s.client.Collection(userCollection).Doc(userID).Set(ctx, profile)
	return err
}

func (s *FirestoreStore) UpdateDisplayName(ctx context.Context, userID string, displayName string) error {
	_, err := s.client.Collection(userCollection).Doc(userID).Set(ctx, map[string]interface{}{
		"displayName": displayName,
	}, firestore.MergeAll)
	return err
}

func (s *FirestoreStore) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	snap, err := s.client.Collection(userCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, nil
		}
		return nil, err
	}

	var profile model.UserProfile
	if err := snap.DataTo(&profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

func (s *FirestoreStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	_, err := s.client.Collection(notificationCollection).Doc(n.ID).Set(ctx, n)
	return err
}

// DeleteNotificationsBefore removes notification records created before the
// cutoff and reports how many were deleted. Individual delete failures do not
// stop the sweep.
func (s *FirestoreStore) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	iter := s.client.Collection(notificationCollection).
		Where("createdAt", "<", cutoff).
		Documents(ctx)
	defer iter.Stop()

	deleted := 0
	var lastErr error
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return deleted, err
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			lastErr = err
			continue
		}
		deleted++
	}

	return deleted, lastErr
}
