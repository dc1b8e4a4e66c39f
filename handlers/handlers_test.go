package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	firebaseAuth "firebase.google.com/go/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itwasdom/portfolio-service/config"
	"github.com/itwasdom/portfolio-service/internal/auth"
	"github.com/itwasdom/portfolio-service/internal/maintenance"
	"github.com/itwasdom/portfolio-service/internal/model"
	"github.com/itwasdom/portfolio-service/internal/notify"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock Identity Client ---
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) GetUserByEmail(ctx context.Context, email string) (*firebaseAuth.UserRecord, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*firebaseAuth.UserRecord)
	return user, args.Error(1)
}

func (m *MockIdentity) CreateUser(ctx context.Context, params *firebaseAuth.UserToCreate) (*firebaseAuth.UserRecord, error) {
	args := m.Called(ctx, params)
	user, _ := args.Get(0).(*firebaseAuth.UserRecord)
	return user, args.Error(1)
}

func (m *MockIdentity) UpdateUser(ctx context.Context, uid string, params *firebaseAuth.UserToUpdate) (*firebaseAuth.UserRecord, error) {
	args := m.Called(ctx, uid, params)
	user, _ := args.Get(0).(*firebaseAuth.UserRecord)
	return user, args.Error(1)
}

func (m *MockIdentity) PasswordResetLinkWithSettings(ctx context.Context, email string, settings *firebaseAuth.ActionCodeSettings) (string, error) {
	args := m.Called(ctx, email, settings)
	return args.String(0), args.Error(1)
}

// --- Mock Store ---
type MockStore struct {
	mock.Mock
}

func (m *MockStore) SetPin(ctx context.Context, userID string, rec *model.PinRecord) error {
	args := m.Called(ctx, userID, rec)
	return args.Error(0)
}

func (m *MockStore) GetPin(ctx context.Context, userID string) (*model.PinRecord, error) {
	args := m.Called(ctx, userID)
	rec, _ := args.Get(0).(*model.PinRecord)
	return rec, args.Error(1)
}

func (m *MockStore) ConsumePin(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockStore) CreateProfile(ctx context.Context, userID string, profile *model.UserProfile) error {
	args := m.Called(ctx, userID, profile)
	return args.Error(0)
}

func (m *MockStore) UpdateDisplayName(ctx context.Context, userID string, displayName string) error {
	args := m.Called(ctx, userID, displayName)
	return args.Error(0)
}

// --- Mock Email Senders ---
type MockResetSender struct {
	mock.Mock
}

func (m *MockResetSender) SendPinEmail(ctx context.Context, email string, pin string) error {
	args := m.Called(ctx, email, pin)
	return args.Error(0)
}

func (m *MockResetSender) SendResetLinkEmail(ctx context.Context, email string, link string) error {
	args := m.Called(ctx, email, link)
	return args.Error(0)
}

type MockNotifySender struct {
	mock.Mock
}

func (m *MockNotifySender) SendLikeEmail(ctx context.Context, actorName, actorEmail, photoID string) error {
	args := m.Called(ctx, actorName, actorEmail, photoID)
	return args.Error(0)
}

func (m *MockNotifySender) SendFollowEmail(ctx context.Context, actorName, actorEmail string) error {
	args := m.Called(ctx, actorName, actorEmail)
	return args.Error(0)
}

// --- Mock Profile Reader / Notification Store ---
type MockProfiles struct {
	mock.Mock
}

func (m *MockProfiles) GetProfile(ctx context.Context, userID string) (*model.UserProfile, error) {
	args := m.Called(ctx, userID)
	profile, _ := args.Get(0).(*model.UserProfile)
	return profile, args.Error(1)
}

type MockNotifications struct {
	mock.Mock
}

func (m *MockNotifications) CreateNotification(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

type MockCleanupStore struct {
	mock.Mock
}

func (m *MockCleanupStore) DeleteNotificationsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	args := m.Called(ctx, cutoff)
	return args.Int(0), args.Error(1)
}

// --- Mock Token Verifier ---
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyIDToken(ctx context.Context, idToken string) (*firebaseAuth.Token, error) {
	args := m.Called(ctx, idToken)
	token, _ := args.Get(0).(*firebaseAuth.Token)
	return token, args.Error(1)
}

type fixture struct {
	identity      *MockIdentity
	store         *MockStore
	resetSender   *MockResetSender
	profiles      *MockProfiles
	notifications *MockNotifications
	notifySender  *MockNotifySender
	cleanupStore  *MockCleanupStore
	verifier      *MockVerifier
	router        *gin.Engine
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{
		identity:      new(MockIdentity),
		store:         new(MockStore),
		resetSender:   new(MockResetSender),
		profiles:      new(MockProfiles),
		notifications: new(MockNotifications),
		notifySender:  new(MockNotifySender),
		cleanupStore:  new(MockCleanupStore),
		verifier:      new(MockVerifier),
	}

	cfg := &config.Config{
		AdminEmail:                "owner@example.test",
		AdminAllowlist:            []string{"admin@example.test"},
		SiteBaseURL:               "https://example.test",
		NotificationRetentionDays: 30,
	}
	logger := zap.NewNop()

	svr := &Service{
		ServiceName:   "portfolio-service",
		Config:        cfg,
		AuthService:   auth.NewAuthService(f.store, logger, f.identity, f.resetSender, cfg.SiteBaseURL),
		Notifier:      notify.NewNotifier(f.profiles, f.notifications, logger, f.notifySender),
		Cleaner:       maintenance.NewCleaner(f.cleanupStore, logger, cfg.NotificationRetentionDays),
		TokenVerifier: f.verifier,
		Logger:        logger,
	}

	router, err := SetupRouter(svr)
	require.NoError(t, err)
	f.router = router
	return f
}

func (f *fixture) do(t *testing.T, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func (f *fixture) grantToken(token, uid, email string) {
	f.verifier.On("VerifyIDToken", mock.Anything, token).Return(&firebaseAuth.Token{
		UID:    uid,
		Claims: map[string]interface{}{"email": email},
	}, nil)
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/service/api/portfolio/v1/health", nil, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Success"`)
}

func TestRegister_InvalidEmail(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/auth/register",
		gin.H{"email": "not-an-email", "password": "secret-pass"}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid-argument", errorCode(t, rec))
	f.identity.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
}

func TestRegister_ShortPassword(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/auth/register",
		gin.H{"email": "dom@example.test", "password": "abc"}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid-argument", errorCode(t, rec))
}

func TestRequestPasswordResetPin_Success(t *testing.T) {
	f := newFixture(t)
	f.identity.On("GetUserByEmail", mock.Anything, "dom@example.test").
		Return(&firebaseAuth.UserRecord{UserInfo: &firebaseAuth.UserInfo{UID: "uid-1"}}, nil)
	f.store.On("SetPin", mock.Anything, "uid-1", mock.Anything).Return(nil)
	f.resetSender.On("SendPinEmail", mock.Anything, "dom@example.test", mock.Anything).Return(nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/auth/password-reset/pin",
		gin.H{"email": "dom@example.test"}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password reset PIN sent")
	f.store.AssertExpectations(t)
	f.resetSender.AssertExpectations(t)
}

func TestVerifyPasswordResetPin_MalformedPin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/auth/password-reset/verify",
		gin.H{"email": "dom@example.test", "pin": "12x456", "newPassword": "fresh-pass"}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid-argument", errorCode(t, rec))
	f.identity.AssertNotCalled(t, "GetUserByEmail", mock.Anything, mock.Anything)
}

func TestVerifyPasswordResetPin_UsedPin(t *testing.T) {
	f := newFixture(t)
	f.identity.On("GetUserByEmail", mock.Anything, "dom@example.test").
		Return(&firebaseAuth.UserRecord{UserInfo: &firebaseAuth.UserInfo{UID: "uid-1"}}, nil)
	f.store.On("GetPin", mock.Anything, "uid-1").Return(&model.PinRecord{
		Pin:       "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute).UnixMilli(),
		Used:      true,
	}, nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/auth/password-reset/verify",
		gin.H{"email": "dom@example.test", "pin": "123456", "newPassword": "fresh-pass"}, "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "failed-precondition", errorCode(t, rec))
	f.identity.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerifyPasswordResetPin_ExpiredPin(t *testing.T) {
	f := newFixture(t)
	f.identity.On("GetUserByEmail", mock.Anything, "dom@example.test").
		Return(&firebaseAuth.UserRecord{UserInfo: &firebaseAuth.UserInfo{UID: "uid-1"}}, nil)
	f.store.On("GetPin", mock.Anything, "uid-1").Return(&model.PinRecord{
		Pin:       "123456",
		ExpiresAt: time.Now().Add(-time.Minute).UnixMilli(),
	}, nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/auth/password-reset/verify",
		gin.H{"email": "dom@example.test", "pin": "123456", "newPassword": "fresh-pass"}, "")

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	assert.Equal(t, "deadline-exceeded", errorCode(t, rec))
}

func TestVerifyPasswordResetPin_Success(t *testing.T) {
	f := newFixture(t)
	f.identity.On("GetUserByEmail", mock.Anything, "dom@example.test").
		Return(&firebaseAuth.UserRecord{UserInfo: &firebaseAuth.UserInfo{UID: "uid-1"}}, nil)
	f.store.On("GetPin", mock.Anything, "uid-1").Return(&model.PinRecord{
		Pin:       "123456",
		ExpiresAt: time.Now().Add(10 * time.Minute).UnixMilli(),
	}, nil)
	f.store.On("ConsumePin", mock.Anything, "uid-1").Return(nil)
	f.identity.On("UpdateUser", mock.Anything, "uid-1", mock.Anything).
		Return(&firebaseAuth.UserRecord{UserInfo: &firebaseAuth.UserInfo{UID: "uid-1"}}, nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/auth/password-reset/verify",
		gin.H{"email": "dom@example.test", "pin": "123456", "newPassword": "fresh-pass"}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Password has been successfully reset")
	f.store.AssertExpectations(t)
	f.identity.AssertExpectations(t)
}

func TestSendPasswordResetLink_Success(t *testing.T) {
	f := newFixture(t)
	f.identity.On("PasswordResetLinkWithSettings", mock.Anything, "dom@example.test", mock.Anything).
		Return("https://reset.example.test/x", nil)
	f.resetSender.On("SendResetLinkEmail", mock.Anything, "dom@example.test", "https://reset.example.test/x").
		Return(nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/auth/password-reset/link",
		gin.H{"email": "dom@example.test"}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.resetSender.AssertExpectations(t)
}

func TestUpdateProfile_RequiresToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/profile",
		gin.H{"displayName": "Dom"}, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", errorCode(t, rec))
}

func TestUpdateProfile_RejectsBadToken(t *testing.T) {
	f := newFixture(t)
	f.verifier.On("VerifyIDToken", mock.Anything, "bad-token").
		Return(nil, errors.New("token expired"))

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/profile",
		gin.H{"displayName": "Dom"}, "bad-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "unauthenticated", errorCode(t, rec))
}

func TestUpdateProfile_Success(t *testing.T) {
	f := newFixture(t)
	f.grantToken("good-token", "uid-1", "dom@example.test")
	f.identity.On("UpdateUser", mock.Anything, "uid-1", mock.Anything).
		Return(&firebaseAuth.UserRecord{UserInfo: &firebaseAuth.UserInfo{UID: "uid-1"}}, nil)
	f.store.On("UpdateDisplayName", mock.Anything, "uid-1", "Dom").Return(nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/profile",
		gin.H{"displayName": "Dom"}, "good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.store.AssertExpectations(t)
}

func TestNotifyLike_DisabledPreference(t *testing.T) {
	f := newFixture(t)
	f.grantToken("good-token", "uid-1", "dom@example.test")
	f.profiles.On("GetProfile", mock.Anything, "uid-1").
		Return(&model.UserProfile{Email: "dom@example.test", EnableNotifications: false}, nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/notifications/like",
		gin.H{"userEmail": "dom@example.test", "userName": "Dom", "photoId": "p1"}, "good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
	assert.Contains(t, rec.Body.String(), `"reason":"disabled"`)
	f.notifySender.AssertNotCalled(t, "SendLikeEmail", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNotifyFollow_Success(t *testing.T) {
	f := newFixture(t)
	f.grantToken("good-token", "uid-1", "dom@example.test")
	f.profiles.On("GetProfile", mock.Anything, "uid-1").
		Return(&model.UserProfile{Email: "dom@example.test", EnableNotifications: true}, nil)
	f.notifications.On("CreateNotification", mock.Anything, mock.Anything).Return(nil)
	f.notifySender.On("SendFollowEmail", mock.Anything, "Dom", "dom@example.test").Return(nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/notifications/follow",
		gin.H{"userEmail": "dom@example.test", "userName": "Dom"}, "good-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":true`)
	f.notifySender.AssertExpectations(t)
}

func TestCleanup_RejectsNonAdmin(t *testing.T) {
	f := newFixture(t)
	f.grantToken("user-token", "uid-1", "dom@example.test")

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/admin/cleanup", nil, "user-token")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "permission-denied", errorCode(t, rec))
	f.cleanupStore.AssertNotCalled(t, "DeleteNotificationsBefore", mock.Anything, mock.Anything)
}

func TestCleanup_AllowsAdmin(t *testing.T) {
	f := newFixture(t)
	f.grantToken("admin-token", "uid-admin", "Admin@Example.Test")
	f.cleanupStore.On("DeleteNotificationsBefore", mock.Anything, mock.Anything).Return(3, nil)

	rec := f.do(t, http.MethodPost, "/service/api/portfolio/v1/admin/cleanup", nil, "admin-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":3`)
	f.cleanupStore.AssertExpectations(t)
}
