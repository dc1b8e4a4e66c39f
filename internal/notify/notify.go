package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/itwasdom/portfolio-service/internal/apierr"
	"github.com/itwasdom/portfolio-service/internal/model"
)

var dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "portfolio",
	Subsystem: "notify",
	Name:      "dispatch_total",
	Help:      "Notification dispatch outcomes, by kind.",
}, []string{"kind", "outcome"})

// ProfileReader exposes the recipient preference lookup.
type ProfileReader interface {
	// GetProfile returns (nil, nil) when the profile document is absent.
	GetProfile(ctx context.Context, userID string) (*model.UserProfile, error)
}

type NotificationStore interface {
	CreateNotification(ctx context.Context, n *model.Notification) error
}

type EmailSender interface {
	SendLikeEmail(ctx context.Context, actorName, actorEmail, photoID string) error
	SendFollowEmail(ctx context.Context, actorName, actorEmail string) error
}

// Result reports a dispatch outcome. A suppressed notification (recipient
// opted out or has no profile) is a normal non-error result.
type Result struct {
	Sent   bool
	Reason string
}

const ReasonDisabled = "disabled"

type Notifier struct {
	profiles      ProfileReader
	notifications NotificationStore
	logger        *zap.Logger
	emailSender   EmailSender
}

func NewNotifier(
	profiles ProfileReader,
	notifications NotificationStore,
	logger *zap.Logger,
	emailSender EmailSender,
) *Notifier {
	return &Notifier{
		profiles:      profiles,
		notifications: notifications,
		logger:        logger,
		emailSender:   emailSender,
	}
}

// Like dispatches a like notification for an authenticated actor.
func (n *Notifier) Like(ctx context.Context, args *model.NotifyArgs) (*Result, error) {
	return n.dispatch(ctx, model.LikeNotification, args)
}

// Follow dispatches a follow notification for an authenticated actor.
func (n *Notifier) Follow(ctx context.Context, args *model.NotifyArgs) (*Result, error) {
	return n.dispatch(ctx, model.FollowNotification, args)
}

func (n *Notifier) dispatch(ctx context.Context, kind string, args *model.NotifyArgs) (*Result, error) {
	if args.ActorID == "" {
		return nil, apierr.Unauthenticated("User must be authenticated")
	}

	profile, err := n.profiles.GetProfile(ctx, args.ActorID)
	if err != nil {
		n.logger.Error("failed to load notification preference: ", zap.Error(err))
		return nil, apierr.Internal("failed to load notification preference", err)
	}
	if profile == nil || !profile.EnableNotifications {
		n.logger.Info("notifications disabled, skipping send",
			zap.String("kind", kind), zap.String("actor_id", args.ActorID))
		dispatches.WithLabelValues(kind, "disabled").Inc()
		return &Result{Sent: false, Reason: ReasonDisabled}, nil
	}

	// Best effort: a failed record write is logged but does not block the
	// email.
	err = n.notifications.CreateNotification(ctx, &model.Notification{
		ID:         uuid.NewString(),
		Kind:       kind,
		ActorID:    args.ActorID,
		ActorName:  args.ActorName,
		ActorEmail: args.ActorEmail,
		PhotoID:    args.PhotoID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		n.logger.Warn("failed to record notification: ", zap.Error(err))
	}

	switch kind {
	case model.LikeNotification:
		err = n.emailSender.SendLikeEmail(ctx, args.ActorName, args.ActorEmail, args.PhotoID)
	case model.FollowNotification:
		err = n.emailSender.SendFollowEmail(ctx, args.ActorName, args.ActorEmail)
	}
	if err != nil {
		n.logger.Error("failed to send notification email: ", zap.Error(err))
		return nil, apierr.Internal("failed to send notification email", err)
	}
	dispatches.WithLabelValues(kind, "sent").Inc()

	return &Result{Sent: true}, nil
}
