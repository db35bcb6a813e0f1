package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenTTL bounds the exposure window of a leaked access token.
const AccessTokenTTL = 5 * time.Minute

// ErrInvalidToken is returned for a bad signature, a malformed token or an
// expired access token.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated user id inside both token classes.
type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService mints and validates the two token classes. The secrets are
// independent so that compromise of one class does not let an attacker forge
// the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
}

func NewTokenService(accessSecret, refreshSecret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
	}
}

// IssueAccessToken signs a short-lived token embedding the user id.
func (s *TokenService) IssueAccessToken(userID int64) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.accessSecret)
}

// IssueRefreshToken signs a token embedding the user id with no expiry.
// Revocation happens through the stored copy on the user record, not
// through a validity window.
func (s *TokenService) IssueRefreshToken(userID int64) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.refreshSecret)
}

// VerifyAccessToken returns the embedded user id, or ErrInvalidToken when
// the signature is wrong or the token expired.
func (s *TokenService) VerifyAccessToken(tokenString string) (int64, error) {
	return verify(tokenString, s.accessSecret)
}

// VerifyRefreshToken checks the signature only; refresh tokens carry no
// expiry claim.
func (s *TokenService) VerifyRefreshToken(tokenString string) (int64, error) {
	return verify(tokenString, s.refreshSecret)
}

func verify(tokenString string, secret []byte) (int64, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}
