package handlers

import (
	"context"

	firebaseAuth "firebase.google.com/go/auth"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/itwasdom/portfolio-service/config"
	"github.com/itwasdom/portfolio-service/internal/auth"
	"github.com/itwasdom/portfolio-service/internal/maintenance"
	"github.com/itwasdom/portfolio-service/internal/notify"
)

// TokenVerifier checks bearer tokens on authenticated routes.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseAuth.Token, error)
}

// Service struct holds all variables common to all handlers.
// That is why members have to be safe for concurrent use and do not cause race conditions!
type Service struct {
	ServiceName    string
	Config         *config.Config
	AuthService    *auth.AuthClient
	Notifier       *notify.Notifier
	Cleaner        *maintenance.Cleaner
	TokenVerifier  TokenVerifier
	Logger         *zap.Logger
	TracerProvider *trace.TracerProvider
}
