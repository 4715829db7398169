package service

import "errors"

// ErrRefreshTokenInvalid covers every refresh failure the client can cause:
// bad signature, unknown token, wrong owner, or a credential past its expiry.
// Callers get one sentinel so responses never leak which check failed.
var ErrRefreshTokenInvalid = errors.New("refresh token is invalid or expired")

// BadRequestError carries a user-facing message for a request that is
// well-formed but violates a business rule
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

// OAuthProcessingError signals a failure while turning an OAuth2 profile
// into a local account. The message is shown to the end user on the
// redirect back to the frontend.
type OAuthProcessingError struct {
	Message string
}

func (e *OAuthProcessingError) Error() string {
	return e.Message
}
