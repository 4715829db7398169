package utils

import "github.com/gin-gonic/gin"

// Cookie names used for token transport and the OAuth2 login hop
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
	RedirectURICookie  = "redirect_uri"
	OAuthStateCookie   = "oauth_state"
)

// SetCookie sets an HttpOnly cookie scoped to path "/".
// Secure is off to keep local development working over plain HTTP.
func SetCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}

// GetCookie returns the named cookie value, or "" when absent
func GetCookie(c *gin.Context, name string) string {
	value, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return value
}

// DeleteCookie expires the named cookie immediately
func DeleteCookie(c *gin.Context, name string) {
	c.SetCookie(name, "", -1, "/", "", false, true)
}
