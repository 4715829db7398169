package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// ProviderGoogle is the registration id of the Google provider
const ProviderGoogle = "google"

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

func init() {
	// Google OIDC userinfo payload: sub, name, email, picture
	Register(ProviderGoogle, func(attributes map[string]any) UserInfo {
		return UserInfo{
			ID:       stringAttr(attributes, "sub"),
			Name:     stringAttr(attributes, "name"),
			Email:    stringAttr(attributes, "email"),
			ImageURL: stringAttr(attributes, "picture"),
		}
	})
}

// Client drives the authorization-code flow against a single provider:
// it builds the authorization URL and turns a callback code into the
// provider's raw profile attributes.
type Client interface {
	Provider() string
	AuthCodeURL(state string) string
	FetchProfile(ctx context.Context, code string) (map[string]any, error)
}

type googleClient struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGoogleClient creates an authorization-code client for Google
func NewGoogleClient(clientID, clientSecret, redirectURL string) Client {
	return &googleClient{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *googleClient) Provider() string {
	return ProviderGoogle
}

func (g *googleClient) AuthCodeURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

func (g *googleClient) FetchProfile(ctx context.Context, code string) (map[string]any, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch userinfo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var attributes map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attributes); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo payload: %w", err)
	}

	return attributes, nil
}
