package integration

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estradaLeveAPI/handlers"
	"estradaLeveAPI/services"
	"estradaLeveAPI/tests/helpers"
)

// TestClerkWebhookLifecycle drives user.created, user.updated and
// user.deleted through the webhook handler with signature verification
// disabled.
func TestClerkWebhookLifecycle(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer helpers.CleanupTestDB(t, pool)

	userService := services.NewUserService(pool)
	webhookHandler := handlers.NewWebhookHandler(userService)

	os.Setenv("CLERK_WEBHOOK_SECRET", "")
	defer os.Unsetenv("CLERK_WEBHOOK_SECRET")

	clerkID := "user_test_" + time.Now().Format("20060102150405")
	ctx := context.Background()

	createPayload := helpers.MockClerkWebhookPayload("user.created", clerkID)
	req := httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(createPayload))
	rr := httptest.NewRecorder()
	webhookHandler.HandleClerkWebhook(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	u, err := userService.GetUserByClerkID(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, "test.driver@example.com", u.Email)
	assert.Equal(t, "testdriver", u.Nickname)

	updatePayload := helpers.MockClerkWebhookPayload("user.updated", clerkID)
	req = httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(updatePayload))
	rr = httptest.NewRecorder()
	webhookHandler.HandleClerkWebhook(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	u, err = userService.GetUserByClerkID(ctx, clerkID)
	require.NoError(t, err)
	assert.Equal(t, "updateddriver", u.Nickname)

	deletePayload := helpers.MockClerkWebhookPayload("user.deleted", clerkID)
	req = httptest.NewRequest(http.MethodPost, "/webhooks/clerk", bytes.NewReader(deletePayload))
	rr = httptest.NewRecorder()
	webhookHandler.HandleClerkWebhook(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	_, err = userService.GetUserByClerkID(ctx, clerkID)
	assert.Error(t, err)
}
