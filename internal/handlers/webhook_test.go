package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/ilyasseisov/flashcards/internal/models"
	"github.com/ilyasseisov/flashcards/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	svix "github.com/svix/svix-webhooks/go"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const webhookTestSecret = "whsec_MfKQ9r8GKYqrTwjUPD8ILPZIo2LaLaSw"

func newWebhookRouter(t *testing.T) (*gin.Engine, *services.UserService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Outcome{}))

	progress := services.NewProgressService(db, services.NewAggregatorService())
	userService := services.NewUserService(db, progress)

	r := gin.New()
	r.POST("/api/webhooks/identity", NewWebhookHandler(userService, webhookTestSecret).HandleIdentityEvent)
	return r, userService
}

func signedRequest(t *testing.T, payload []byte) *http.Request {
	t.Helper()

	wh, err := svix.NewWebhook(webhookTestSecret)
	require.NoError(t, err)

	msgID := "msg_test"
	now := time.Now()
	signature, err := wh.Sign(msgID, now, payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader(payload))
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
	req.Header.Set("svix-signature", signature)
	return req
}

func TestHandleIdentityEvent_UserCreated(t *testing.T) {
	router, userService := newWebhookRouter(t)

	payload := []byte(`{
		"type": "user.created",
		"data": {
			"id": "clerk_1",
			"email_addresses": [{"email_address": "a@example.com"}]
		}
	}`)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, payload))

	assert.Equal(t, http.StatusOK, w.Code)
	user, err := userService.Get("clerk_1")
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
}

func TestHandleIdentityEvent_UserDeleted(t *testing.T) {
	router, userService := newWebhookRouter(t)
	_, err := userService.SyncCreated("clerk_1", "a@example.com")
	require.NoError(t, err)

	payload := []byte(`{"type": "user.deleted", "data": {"id": "clerk_1"}}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, payload))

	assert.Equal(t, http.StatusOK, w.Code)
	_, err = userService.Get("clerk_1")
	assert.Error(t, err)
}

func TestHandleIdentityEvent_DeleteIsIdempotent(t *testing.T) {
	router, _ := newWebhookRouter(t)

	payload := []byte(`{"type": "user.deleted", "data": {"id": "clerk_missing"}}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, payload))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleIdentityEvent_RejectsUnsignedPayload(t *testing.T) {
	router, _ := newWebhookRouter(t)

	payload := []byte(`{"type": "user.created", "data": {"id": "clerk_1"}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleIdentityEvent_RejectsMissingUserData(t *testing.T) {
	router, _ := newWebhookRouter(t)

	payload := []byte(`{"type": "user.created", "data": {"id": ""}}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, payload))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleIdentityEvent_UnhandledTypeIsAcknowledged(t *testing.T) {
	router, _ := newWebhookRouter(t)

	payload := []byte(`{"type": "session.created", "data": {"id": "sess_1"}}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, signedRequest(t, payload))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHandleIdentityEvent_UnconfiguredSecret(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/webhooks/identity", NewWebhookHandler(nil, "").HandleIdentityEvent)

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/identity", bytes.NewReader([]byte(`{}`)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
