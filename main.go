package main

import (
	"context"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	firebase "firebase.google.com/go"
	firebaseAuth "firebase.google.com/go/auth"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/kelseyhightower/envconfig"

	"github.com/itwasdom/portfolio-service/config"
	"github.com/itwasdom/portfolio-service/handlers"
	"github.com/itwasdom/portfolio-service/internal/auth"
	"github.com/itwasdom/portfolio-service/internal/email"
	"github.com/itwasdom/portfolio-service/internal/maintenance"
	"github.com/itwasdom/portfolio-service/internal/notify"
	"github.com/itwasdom/portfolio-service/internal/store"

	"go.uber.org/zap"

	"google.golang.org/api/option"
)

const serviceName = "portfolio-service"

func main() {
	var conf config.Config
	if err := envconfig.Process("", &conf); err != nil {
		panic("Failed to load environment variables:" + err.Error())
	}
	if !strings.HasPrefix(conf.ServerPort, ":") {
		conf.ServerPort = ":" + conf.ServerPort
	}

	logger, err := zap.NewProduction()
	if err != nil {
		panic("Failed to build logger:" + err.Error())
	}
	defer logger.Sync()

	if conf.SentryDSN != "" {
		err = sentry.Init(sentry.ClientOptions{Dsn: conf.SentryDSN, ServerName: serviceName})
		if err != nil {
			logger.Fatal("Failed to initialize sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
	}

	startService(&conf, logger)
}

func startService(conf *config.Config, logger *zap.Logger) {
	logger.Info("Starting", zap.String("service", serviceName))

	tp, shutdown := newTracerProvider(serviceName, conf.OTLPEndpoint, logger)
	defer shutdown()

	// Initialize Firebase
	ctx := context.Background()
	opt := option.WithCredentialsJSON([]byte(conf.Firebase.PrivateKey))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Firebase.ProjectID}, opt)
	if err != nil {
		logger.Fatal("error initializing Firebase app: ", zap.Error(err))
	}
	var authClient *firebaseAuth.Client
	authClient, err = app.Auth(ctx)
	if err != nil {
		logger.Fatal("error initializing Firebase Auth: ", zap.Error(err))
	}
	firestoreClient, err := app.Firestore(ctx)
	if err != nil {
		logger.Fatal("error initializing Firestore: ", zap.Error(err))
	}
	defer firestoreClient.Close()

	documentStore := store.NewFirestoreStore(firestoreClient)
	sender := email.NewSender(conf.SMTP, conf.AdminEmail, conf.SiteBaseURL)

	authService := auth.NewAuthService(documentStore, logger, authClient, sender, conf.SiteBaseURL)
	notifier := notify.NewNotifier(documentStore, documentStore, logger, sender)
	cleaner := maintenance.NewCleaner(documentStore, logger, conf.NotificationRetentionDays)

	srv := &handlers.Service{
		ServiceName:    serviceName,
		Config:         conf,
		Logger:         logger,
		TracerProvider: tp,
		AuthService:    authService,
		Notifier:       notifier,
		Cleaner:        cleaner,
		TokenVerifier:  authClient,
	}

	router, err := handlers.SetupRouter(srv)
	if err != nil {
		logger.Panic("Failed to setup router", zap.Error(err))
	}

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleaner.Schedule(runCtx)

	errCh := make(chan error, 2)

	go func() {
		errCh <- listenAndServe(runCtx, router, conf.ServerPort, logger)
	}()

	err = <-errCh
	if err != nil {
		logger.Error("Server exited with error", zap.Error(err))
	} else {
		logger.Info("Server exited gracefully")
	}
}

func listenAndServe(ctx context.Context, router *gin.Engine, serverPort string, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:    serverPort,
		Handler: router,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		logger.Info("Listening on address", zap.String("port", serverPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutting down gracefully")

		ctxShutDown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctxShutDown); err != nil {
			return err
		}

		return nil
	case err := <-serverErrCh:
		return err
	}
}
