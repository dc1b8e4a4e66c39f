package auth

import (
	"context"
	"crypto/subtle"
	"strings"
	"time"

	firebaseAuth "firebase.google.com/go/auth"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/itwasdom/portfolio-service/internal/apierr"
	"github.com/itwasdom/portfolio-service/internal/model"

	"go.uber.org/zap"
)

var isUserNotFound = firebaseAuth.IsUserNotFound

var pinsIssued = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "portfolio",
	Subsystem: "reset",
	Name:      "pins_issued_total",
	Help:      "Reset PINs generated and stored.",
})

type AuthClient struct {
	store       Store
	logger      *zap.Logger
	identity    IdentityClient
	emailSender EmailSender
	siteBaseURL string
}

func NewAuthService(
	store Store,
	logger *zap.Logger,
	identity IdentityClient,
	emailSender EmailSender,
	siteBaseURL string,
) *AuthClient {
	return &AuthClient{
		store:       store,
		logger:      logger,
		identity:    identity,
		emailSender: emailSender,
		siteBaseURL: strings.TrimRight(siteBaseURL, "/"),
	}
}

// Register creates the account in Firebase Auth and mirrors the profile into
// the users collection.
func (a *AuthClient) Register(ctx context.Context, args model.RegisterArgs) (string, error) {
	params := (&firebaseAuth.UserToCreate{}).Email(args.Email).Password(args.Password)
	if args.DisplayName != "" {
		params = params.DisplayName(args.DisplayName)
	}
	user, err := a.identity.CreateUser(ctx, params)
	if err != nil {
		mappedErr := mapIdentityError(err)
		a.logger.Error("failed to create user in firebase: ", zap.Error(mappedErr))
		return "", mappedErr
	}

	err = a.store.CreateProfile(ctx, user.UID, &model.UserProfile{
		Email:       args.Email,
		DisplayName: args.DisplayName,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		a.logger.Error("failed to store user profile: ", zap.Error(err))
		return "", apierr.Internal("failed to store user profile", err)
	}

	return user.UID, nil
}

func mapIdentityError(err error) error {
	if strings.Contains(err.Error(), "EMAIL_EXISTS") {
		return apierr.InvalidArgument("an account with this email already exists")
	}
	return apierr.Internal("identity provider request failed", err)
}

// UpdateProfile applies the optional display-name and password changes for an
// authenticated user.
func (a *AuthClient) UpdateProfile(ctx context.Context, args model.UpdateProfileArgs) error {
	if args.DisplayName != "" {
		_, err := a.identity.UpdateUser(ctx, args.UserID, (&firebaseAuth.UserToUpdate{}).DisplayName(args.DisplayName))
		if err != nil {
			a.logger.Error("failed to update display name: ", zap.Error(err))
			return apierr.Internal("failed to update display name", err)
		}
		err = a.store.UpdateDisplayName(ctx, args.UserID, args.DisplayName)
		if err != nil {
			a.logger.Error("failed to update profile document: ", zap.Error(err))
			return apierr.Internal("failed to update profile", err)
		}
	}

	if args.Password != "" {
		_, err := a.identity.UpdateUser(ctx, args.UserID, (&firebaseAuth.UserToUpdate{}).Password(args.Password))
		if err != nil {
			a.logger.Error("failed to update password: ", zap.Error(err))
			return apierr.Internal("failed to update password", err)
		}
	}

	return nil
}

// RequestPasswordResetPin issues a fresh PIN for the account behind the email
// and mails it. Any outstanding PIN for the user is overwritten.
func (a *AuthClient) RequestPasswordResetPin(ctx context.Context, args *model.ResetRequestArgs) error {
	user, err := a.resolveEmail(ctx, args.Email)
	if err != nil {
		return err
	}

	pin, expiresAt, err := generatePin(time.Now())
	if err != nil {
		a.logger.Error("failed to generate reset pin: ", zap.Error(err))
		return apierr.Internal("failed to generate reset pin", err)
	}

	err = a.store.SetPin(ctx, user.UID, &model.PinRecord{
		Pin:       pin,
		ExpiresAt: expiresAt,
		Used:      false,
	})
	if err != nil {
		a.logger.Error("failed to store reset pin: ", zap.Error(err))
		return apierr.Internal("failed to store reset pin", err)
	}
	pinsIssued.Inc()

	err = a.emailSender.SendPinEmail(ctx, args.Email, pin)
	if err != nil {
		a.logger.Error("failed to send reset pin email: ", zap.Error(err))
		return apierr.Internal("failed to send reset pin email", err)
	}

	return nil
}

// VerifyPasswordResetPin checks the submitted PIN and, on success, consumes
// the record and applies the new password. Checks run in a fixed order so the
// first failure determines the reported error: existence, consumption,
// expiry, match.
func (a *AuthClient) VerifyPasswordResetPin(ctx context.Context, args *model.ResetVerifyArgs) error {
	user, err := a.resolveEmail(ctx, args.Email)
	if err != nil {
		return err
	}

	rec, err := a.store.GetPin(ctx, user.UID)
	if err != nil {
		a.logger.Error("failed to load reset pin: ", zap.Error(err))
		return apierr.Internal("failed to load reset pin", err)
	}
	if rec == nil {
		return apierr.NotFound("No PIN found for this user")
	}
	if rec.Used {
		return apierr.FailedPrecondition("PIN already used")
	}
	if rec.Expired(time.Now()) {
		return apierr.DeadlineExceeded("PIN expired")
	}
	if subtle.ConstantTimeCompare([]byte(rec.Pin), []byte(args.Pin)) != 1 {
		return apierr.PermissionDenied("Invalid PIN")
	}

	// Consume before touching the credential so a crash in between burns the
	// PIN instead of leaving it replayable.
	err = a.store.ConsumePin(ctx, user.UID)
	if err != nil {
		a.logger.Error("failed to consume reset pin: ", zap.Error(err))
		return err
	}

	_, err = a.identity.UpdateUser(ctx, user.UID, (&firebaseAuth.UserToUpdate{}).Password(args.NewPassword))
	if err != nil {
		a.logger.Error("failed to update password: ", zap.Error(err))
		return apierr.Internal("failed to update password", err)
	}

	return nil
}

// SendPasswordResetLink is the link-based flow: Firebase mints the reset link
// and we mail it with the site's continue URL.
func (a *AuthClient) SendPasswordResetLink(ctx context.Context, args *model.ResetRequestArgs) error {
	settings := &firebaseAuth.ActionCodeSettings{
		URL:             a.siteBaseURL + "/reset-password.html",
		HandleCodeInApp: false,
	}
	link, err := a.identity.PasswordResetLinkWithSettings(ctx, args.Email, settings)
	if err != nil {
		a.logger.Error("failed to generate password reset link: ", zap.Error(err))
		return apierr.Internal("failed to generate password reset link", err)
	}

	err = a.emailSender.SendResetLinkEmail(ctx, args.Email, link)
	if err != nil {
		a.logger.Error("failed to send password reset email: ", zap.Error(err))
		return apierr.Internal("failed to send password reset email", err)
	}

	return nil
}

func (a *AuthClient) resolveEmail(ctx context.Context, email string) (*firebaseAuth.UserRecord, error) {
	user, err := a.identity.GetUserByEmail(ctx, email)
	if err != nil {
		if isUserNotFound(err) {
			return nil, apierr.NotFound("No user found with that email")
		}
		a.logger.Error("failed to look up user by email: ", zap.Error(err))
		return nil, apierr.Internal("failed to look up user", err)
	}
	return user, nil
}
