package domain

import "time"

// RefreshToken is a persisted refresh credential. Access tokens are
// stateless and never stored; refresh tokens are checked against this
// record on every refresh, which is what makes them revocable.
type RefreshToken struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	Token      string    `json:"-" db:"token"`
	ExpiryDate time.Time `json:"expiry_date" db:"expiry_date"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Expired reports whether the persisted credential is past its expiry
func (t RefreshToken) Expired() bool {
	return t.ExpiryDate.Before(time.Now())
}

// TokenPair holds a freshly minted access/refresh token pair along with
// the configured lifetimes, used by handlers to derive cookie max-age.
type TokenPair struct {
	AccessToken     string
	RefreshToken    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
}
