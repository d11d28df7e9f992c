//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"
	"time"

	"staybook/internal/handler/dto/request"
	"staybook/internal/handler/dto/response"
	"staybook/internal/pkg/jwt"
	"staybook/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// GetToken exchanges client credentials for a bearer token over the real
// token endpoint.
func GetToken(t *testing.T, router *gin.Engine, clientID, apiKey string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/token",
		request.TokenRequest{ClientID: clientID, APIKey: apiKey}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var tokenRes response.TokenResponse
	err := httptest.DecodeResponseBody(t, w.Body, &tokenRes)
	require.NoError(t, err)
	require.NotEmpty(t, tokenRes.AccessToken, "Access token missing from response")

	return tokenRes.AccessToken
}

// CreateExpiredToken mints a token that is already past its expiry.
func CreateExpiredToken(t *testing.T, secret, clientID string) string {
	t.Helper()

	service := jwt.NewService(secret, 1*time.Millisecond)
	token, _, err := service.GenerateToken(clientID)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
