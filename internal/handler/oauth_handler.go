package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/oauth"
	"github.com/prismedia/news-server/internal/service"
	"github.com/prismedia/news-server/internal/utils"
)

// redirectURICookieTTL bounds the life of the transient redirect-intent
// cookie to a single login hop
const redirectURICookieTTL = 180

// OAuthHandler drives the authorization-code login flow: the outbound
// redirect to the provider and the callback that provisions the user and
// sets the session cookies.
type OAuthHandler struct {
	clients               map[string]oauth.Client
	userService           service.UserService
	tokenService          service.TokenService
	stateStore            *service.OAuthStateStore
	authorizedRedirectURI string
	stateTTL              time.Duration
	logger                *zap.Logger
}

// NewOAuthHandler creates a new OAuth2 flow handler. stateTTL bounds both
// the server-side state record and the matching browser cookie.
func NewOAuthHandler(
	userService service.UserService,
	tokenService service.TokenService,
	stateStore *service.OAuthStateStore,
	authorizedRedirectURI string,
	stateTTL time.Duration,
	logger *zap.Logger,
	clients ...oauth.Client,
) *OAuthHandler {
	byProvider := make(map[string]oauth.Client, len(clients))
	for _, client := range clients {
		byProvider[client.Provider()] = client
	}
	return &OAuthHandler{
		clients:               byProvider,
		userService:           userService,
		tokenService:          tokenService,
		stateStore:            stateStore,
		authorizedRedirectURI: authorizedRedirectURI,
		stateTTL:              stateTTL,
		logger:                logger,
	}
}

// Authorize starts the login flow: it records the client's return URI and a
// single-use state nonce, then redirects the browser to the provider.
func (h *OAuthHandler) Authorize(c *gin.Context) {
	client, ok := h.clients[c.Param("provider")]
	if !ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: c.Param("provider") + " 로그인은 지원하지 않습니다",
		})
		return
	}

	if redirectURI := c.Query("redirect_uri"); redirectURI != "" {
		if !h.authorizedRedirect(redirectURI) {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Status:  http.StatusBadRequest,
				Error:   "Bad Request",
				Message: "허용되지 않은 리다이렉트 URI입니다.",
			})
			return
		}
		utils.SetCookie(c, utils.RedirectURICookie, redirectURI, redirectURICookieTTL)
	}

	state := uuid.NewString()
	if err := h.stateStore.Store(c.Request.Context(), state); err != nil {
		h.logger.Error("failed to store oauth state", zap.Error(err))
		c.JSON(http.StatusInternalServerError, internalError())
		return
	}
	utils.SetCookie(c, utils.OAuthStateCookie, state, int(h.stateTTL.Seconds()))

	c.Redirect(http.StatusFound, client.AuthCodeURL(state))
}

// Callback finishes the login flow. Success ends in a redirect to the
// client's return URI with both token cookies set; any processing failure
// ends in a redirect carrying an error query parameter instead.
func (h *OAuthHandler) Callback(c *gin.Context) {
	provider := c.Param("provider")
	target := h.redirectTarget(c)

	// The target comes from a client-controlled cookie, so it gets the
	// same host+port check as the authorize hop
	if !h.authorizedRedirect(target) {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: "허용되지 않은 리다이렉트 URI입니다.",
		})
		return
	}

	client, ok := h.clients[provider]
	if !ok {
		h.failureRedirect(c, target, provider+" 로그인은 지원하지 않습니다")
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		h.failureRedirect(c, target, errParam)
		return
	}

	if !h.consumeState(c) {
		h.failureRedirect(c, target, "유효하지 않은 인증 요청입니다.")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.failureRedirect(c, target, "인증 코드가 없습니다.")
		return
	}

	attributes, err := client.FetchProfile(c.Request.Context(), code)
	if err != nil {
		h.logger.Warn("failed to fetch oauth profile", zap.String("provider", provider), zap.Error(err))
		h.failureRedirect(c, target, "인증에 실패했습니다.")
		return
	}

	user, err := h.userService.ProcessOAuthUser(c.Request.Context(), provider, attributes)
	if err != nil {
		var processing *service.OAuthProcessingError
		if errors.As(err, &processing) {
			h.failureRedirect(c, target, processing.Message)
			return
		}
		h.logger.Error("oauth provisioning failed", zap.String("provider", provider), zap.Error(err))
		h.failureRedirect(c, target, "인증에 실패했습니다.")
		return
	}

	pair, err := h.tokenService.CreateTokenPair(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("failed to issue token pair", zap.Int64("user_id", user.ID), zap.Error(err))
		h.failureRedirect(c, target, "인증에 실패했습니다.")
		return
	}

	utils.SetCookie(c, utils.AccessTokenCookie, pair.AccessToken, int(pair.AccessTokenTTL.Seconds()))
	utils.SetCookie(c, utils.RefreshTokenCookie, pair.RefreshToken, int(pair.RefreshTokenTTL.Seconds()))
	utils.DeleteCookie(c, utils.RedirectURICookie)

	c.Redirect(http.StatusFound, target)
}

// redirectTarget resolves where the browser goes after the flow: the
// redirect-intent cookie when present, the configured default otherwise
func (h *OAuthHandler) redirectTarget(c *gin.Context) string {
	if target := utils.GetCookie(c, utils.RedirectURICookie); target != "" {
		return target
	}
	return h.authorizedRedirectURI
}

// consumeState verifies the callback's state parameter against both the
// browser cookie and the single-use server-side record
func (h *OAuthHandler) consumeState(c *gin.Context) bool {
	state := c.Query("state")
	cookieState := utils.GetCookie(c, utils.OAuthStateCookie)
	utils.DeleteCookie(c, utils.OAuthStateCookie)

	if state == "" || state != cookieState {
		return false
	}

	ok, err := h.stateStore.Consume(c.Request.Context(), state)
	if err != nil {
		h.logger.Error("failed to consume oauth state", zap.Error(err))
		return false
	}
	return ok
}

// authorizedRedirect reports whether the URI points at the exact host+port
// the frontend registered, preventing open redirects
func (h *OAuthHandler) authorizedRedirect(uri string) bool {
	target, err := url.Parse(uri)
	if err != nil {
		return false
	}
	authorized, err := url.Parse(h.authorizedRedirectURI)
	if err != nil {
		return false
	}
	return target.Host != "" && target.Host == authorized.Host
}

func (h *OAuthHandler) failureRedirect(c *gin.Context, target, message string) {
	utils.DeleteCookie(c, utils.RedirectURICookie)

	redirect, err := url.Parse(target)
	if err != nil {
		redirect = &url.URL{Path: "/"}
	}
	query := redirect.Query()
	query.Set("error", message)
	redirect.RawQuery = query.Encode()

	c.Redirect(http.StatusFound, redirect.String())
}
