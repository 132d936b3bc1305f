// Package token issues and verifies the JWT pairs used for authentication:
// a short-lived access token and a longer-lived refresh token, signed with
// separate HMAC keys and bound to a user id via the subject claim.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"listd/internal/apperr"
)

// Pair bundles the two credentials returned by every auth endpoint.
type Pair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Issuer signs and verifies token pairs.
type Issuer struct {
	signKey    []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// Config carries the key material and lifetimes for an Issuer.
type Config struct {
	SigningKey string
	RefreshKey string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Now        func() time.Time
}

// NewIssuer builds an Issuer; both keys are required.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.SigningKey == "" || cfg.RefreshKey == "" {
		return nil, errors.New("signing and refresh keys are required")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = 15 * time.Minute
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Issuer{
		signKey:    []byte(cfg.SigningKey),
		refreshKey: []byte(cfg.RefreshKey),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        cfg.Now,
	}, nil
}

// Issue returns a fresh access/refresh pair bound to the user id.
func (i *Issuer) Issue(userID uuid.UUID) (Pair, error) {
	access, err := i.sign(userID, i.signKey, i.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, err := i.sign(userID, i.refreshKey, i.refreshTTL)
	if err != nil {
		return Pair{}, err
	}
	return Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns the bound user id.
func (i *Issuer) VerifyAccess(raw string) (uuid.UUID, error) {
	return i.verify(raw, i.signKey)
}

// VerifyRefresh validates a refresh token and returns the bound user id.
func (i *Issuer) VerifyRefresh(raw string) (uuid.UUID, error) {
	return i.verify(raw, i.refreshKey)
}

func (i *Issuer) sign(userID uuid.UUID, key []byte, ttl time.Duration) (string, error) {
	now := i.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}

func (i *Issuer) verify(raw string, key []byte) (uuid.UUID, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return key, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, apperr.Unauthorized("token expired")
		}
		return uuid.Nil, apperr.Unauthorized("invalid token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperr.Unauthorized("invalid token subject")
	}
	return userID, nil
}
