package acceptance

import (
	"net/http"
	"net/url"

	"github.com/prismedia/news-server/internal/utils"
)

func (s *Suite) TestOAuthAuthorize_RedirectsToProvider() {
	resp := s.doJSON(http.MethodGet, "/oauth2/authorize/google", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	s.Require().NoError(err)
	s.Equal("accounts.google.com", location.Host)
	s.NotEmpty(location.Query().Get("state"))

	var stateCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == utils.OAuthStateCookie {
			stateCookie = cookie
		}
	}
	s.Require().NotNil(stateCookie, "state cookie must be set")
	s.Equal(location.Query().Get("state"), stateCookie.Value)

	// The cookie lives exactly as long as the server-side state record
	s.Equal(600, stateCookie.MaxAge)
}

func (s *Suite) TestOAuthAuthorize_UnsupportedProvider() {
	resp := s.doJSON(http.MethodGet, "/oauth2/authorize/github", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestOAuthAuthorize_RejectsForeignRedirectURI() {
	resp := s.doJSON(http.MethodGet, "/oauth2/authorize/google?redirect_uri=http://evil.example.com/steal", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestOAuthCallback_InvalidStateRedirectsWithError() {
	resp := s.doJSON(http.MethodGet, "/oauth2/callback/google?code=abc&state=forged", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	s.Require().NoError(err)
	s.NotEmpty(location.Query().Get("error"))
}
