package api

import (
	"log/slog"
	"net/http"

	reqdto "staybook/internal/handler/dto/request"
	resdto "staybook/internal/handler/dto/response"
	"staybook/internal/handler/httperr"
	"staybook/internal/pkg/apikey"
	"staybook/internal/pkg/config"
	"staybook/internal/pkg/errs"
	"staybook/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

var errInvalidCredentials = errs.New("invalid client credentials")

type AuthHandler struct {
	tokens *jwt.Service
	cfg    config.AuthConfig
}

func NewAuthHandler(tokens *jwt.Service, cfg config.Config) *AuthHandler {
	return &AuthHandler{tokens: tokens, cfg: cfg.Auth}
}

// @Summary Issue access token
// @Description Exchange a client API key for a short-lived bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.TokenRequest true "Client credentials"
// @Success 200 {object} resdto.TokenResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/token [post]
func (h *AuthHandler) Token(c *gin.Context) {
	var req reqdto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if req.ClientID != h.cfg.ClientID {
		httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidCredentials, "Invalid client credentials", nil)
		return
	}
	if err := apikey.Compare(h.cfg.APIKeyHash, req.APIKey); err != nil {
		slog.Warn("api key comparison failed", "client_id", req.ClientID)
		httperr.AbortWithError(c, http.StatusUnauthorized, errInvalidCredentials, "Invalid client credentials", nil)
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.ClientID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to issue token", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	})
}
