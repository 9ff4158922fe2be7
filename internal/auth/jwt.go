package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prehab-dev/prehab/internal/types"
)

type claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer signs and resolves HS256 tokens. Access and refresh tokens carry
// a scope claim and are never accepted in place of each other.
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}

	return &TokenIssuer{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

func (i *TokenIssuer) IssuePair(userID uint) (TokenPair, error) {
	access, err := i.issue(userID, types.ScopeAccess, i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := i.issue(userID, types.ScopeRefresh, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (i *TokenIssuer) issue(userID uint, scope string, ttl time.Duration) (string, error) {
	now := i.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", scope, err)
	}

	return signed, nil
}

// ResolveAccess maps a bearer credential to a user id. Every failure is
// types.ErrUnauthorized.
func (i *TokenIssuer) ResolveAccess(tokenString string) (uint, error) {
	return i.resolve(tokenString, types.ScopeAccess)
}

func (i *TokenIssuer) ResolveRefresh(tokenString string) (uint, error) {
	return i.resolve(tokenString, types.ScopeRefresh)
}

func (i *TokenIssuer) resolve(tokenString, scope string) (uint, error) {
	if tokenString == "" {
		return 0, fmt.Errorf("%w: missing token", types.ErrUnauthorized)
	}

	parsed := &claims{}

	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, fmt.Errorf("%w: token has expired", types.ErrUnauthorized)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return 0, fmt.Errorf("%w: malformed token", types.ErrUnauthorized)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, fmt.Errorf("%w: invalid token signature", types.ErrUnauthorized)
		default:
			return 0, fmt.Errorf("%w: invalid or expired token", types.ErrUnauthorized)
		}
	}

	if !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", types.ErrUnauthorized)
	}

	if parsed.Scope != scope {
		return 0, fmt.Errorf("%w: invalid token scope", types.ErrUnauthorized)
	}

	userID, err := strconv.ParseUint(parsed.Subject, 10, strconv.IntSize)
	if err != nil || userID == 0 {
		return 0, fmt.Errorf("%w: invalid token subject", types.ErrUnauthorized)
	}

	return uint(userID), nil
}
