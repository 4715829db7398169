package acceptance

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prismedia/news-server/internal/domain"
	"github.com/prismedia/news-server/internal/dto"
	"github.com/prismedia/news-server/internal/repository"
	"github.com/prismedia/news-server/internal/utils"
)

func (s *Suite) createUser(email string) *domain.User {
	user := &domain.User{
		Name:     "Test User",
		Email:    email,
		Provider: domain.ProviderLocal,
		Role:     domain.RoleUser,
	}
	err := s.Repos.User.Create(context.Background(), user)
	s.Require().NoError(err)
	return user
}

func (s *Suite) TestSignUp_Success() {
	body, _ := json.Marshal(dto.SignUpRequest{
		Name:     "Signup User",
		Email:    "signup@example.com",
		Password: "secret1",
	})

	resp := s.doJSON(http.MethodPost, "/api/auth/signup", body, "")
	defer resp.Body.Close()

	s.Equal(http.StatusCreated, resp.StatusCode)

	var signUpResp dto.SignUpResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&signUpResp))
	s.NotZero(signUpResp.ID)
	s.Equal("Signup User", signUpResp.Name)
	s.Equal("signup@example.com", signUpResp.Email)
	s.Equal("ROLE_USER", signUpResp.Role)
	s.NotEmpty(signUpResp.CreatedAt)

	// The stored password must be a hash, never the plaintext
	user, err := s.Repos.User.GetByEmail(context.Background(), "signup@example.com")
	s.Require().NoError(err)
	s.Require().NotNil(user.Password)
	s.NotEqual("secret1", *user.Password)
	s.True(utils.CheckPasswordHash("secret1", *user.Password))
}

func (s *Suite) TestSignUp_DuplicateEmail() {
	body, _ := json.Marshal(dto.SignUpRequest{
		Name:     "First",
		Email:    "dup@example.com",
		Password: "secret1",
	})

	resp1 := s.doJSON(http.MethodPost, "/api/auth/signup", body, "")
	resp1.Body.Close()
	s.Equal(http.StatusCreated, resp1.StatusCode)

	resp2 := s.doJSON(http.MethodPost, "/api/auth/signup", body, "")
	defer resp2.Body.Close()

	s.Equal(http.StatusBadRequest, resp2.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp2.Body).Decode(&errResp))
	s.Equal("해당 이메일은 이미 사용 중입니다.", errResp.Message)
}

func (s *Suite) TestSignUp_ValidationErrors() {
	body, _ := json.Marshal(dto.SignUpRequest{
		Name:     "",
		Email:    "not-an-email",
		Password: "abc",
	})

	resp := s.doJSON(http.MethodPost, "/api/auth/signup", body, "")
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Contains(errResp.FieldErrors, "name")
	s.Contains(errResp.FieldErrors, "email")
	s.Contains(errResp.FieldErrors, "password")
}

func (s *Suite) TestAuthInfo() {
	resp := s.doJSON(http.MethodGet, "/api/auth/info", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var info dto.AuthInfoResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&info))
	s.Equal("/oauth2/authorize/google", info.LoginURL)
	s.Equal("/oauth2/callback/google", info.CallbackURL)
}

func (s *Suite) TestMe_WithBearerToken() {
	user := s.createUser("me@example.com")

	token, err := s.JWTManager.CreateAccessToken(user.ID)
	s.Require().NoError(err)

	resp := s.doJSON(http.MethodGet, "/api/auth/me", nil, token)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var me dto.UserResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&me))
	s.Equal(user.ID, me.ID)
	s.Equal("me@example.com", me.Email)
}

func (s *Suite) TestMe_WithCookieToken() {
	user := s.createUser("cookie@example.com")

	token, err := s.JWTManager.CreateAccessToken(user.ID)
	s.Require().NoError(err)

	resp := s.doJSON(http.MethodGet, "/api/auth/me", nil, "", &http.Cookie{
		Name:  utils.AccessTokenCookie,
		Value: token,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)
}

func (s *Suite) TestMe_Unauthenticated() {
	resp := s.doJSON(http.MethodGet, "/api/auth/me", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal(http.StatusUnauthorized, errResp.Status)
	s.Equal("Unauthorized", errResp.Error)
}

func (s *Suite) TestRefreshToken_Success() {
	user := s.createUser("refresh@example.com")

	pair, err := s.TokenService.CreateTokenPair(context.Background(), user.ID)
	s.Require().NoError(err)

	resp := s.doJSON(http.MethodPost, "/api/auth/refresh-token", nil, "", &http.Cookie{
		Name:  utils.RefreshTokenCookie,
		Value: pair.RefreshToken,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var accessCookie *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == utils.AccessTokenCookie {
			accessCookie = cookie
		}
	}
	s.Require().NotNil(accessCookie, "access token cookie must be set")
	s.NotEmpty(accessCookie.Value)
	s.True(accessCookie.HttpOnly)
	s.Equal("/", accessCookie.Path)

	// The fresh access token must authenticate requests
	userID, err := s.JWTManager.UserIDFromToken(accessCookie.Value)
	s.Require().NoError(err)
	s.Equal(user.ID, userID)
}

func (s *Suite) TestRefreshToken_MissingCookie() {
	resp := s.doJSON(http.MethodPost, "/api/auth/refresh-token", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var errResp dto.ErrorResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&errResp))
	s.Equal("리프레시 토큰이 없습니다.", errResp.Message)
}

func (s *Suite) TestRefreshToken_ExpiredRecordIsDeleted() {
	user := s.createUser("expired@example.com")

	// The JWT itself is valid; only the persisted record is past its expiry
	refreshToken, _, err := s.JWTManager.CreateRefreshToken(user.ID)
	s.Require().NoError(err)

	record := &domain.RefreshToken{
		UserID:     user.ID,
		Token:      refreshToken,
		ExpiryDate: time.Now().Add(-time.Hour),
	}
	s.Require().NoError(s.Repos.Token.Create(context.Background(), record))

	resp := s.doJSON(http.MethodPost, "/api/auth/refresh-token", nil, "", &http.Cookie{
		Name:  utils.RefreshTokenCookie,
		Value: refreshToken,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	_, err = s.Repos.Token.GetByUserIDAndToken(context.Background(), user.ID, refreshToken)
	s.ErrorIs(err, repository.ErrNotFound)
}

func (s *Suite) TestRefreshToken_UnknownToken() {
	user := s.createUser("unknown@example.com")

	// Validly signed but never persisted
	refreshToken, _, err := s.JWTManager.CreateRefreshToken(user.ID)
	s.Require().NoError(err)

	resp := s.doJSON(http.MethodPost, "/api/auth/refresh-token", nil, "", &http.Cookie{
		Name:  utils.RefreshTokenCookie,
		Value: refreshToken,
	})
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestLogout_ClearsCookies() {
	resp := s.doJSON(http.MethodPost, "/api/auth/logout", nil, "")
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	cleared := map[string]bool{}
	for _, cookie := range resp.Cookies() {
		if cookie.MaxAge < 0 {
			cleared[cookie.Name] = true
		}
	}
	s.True(cleared[utils.AccessTokenCookie])
	s.True(cleared[utils.RefreshTokenCookie])
}
