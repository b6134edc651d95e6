package identity

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const signingMethod = "HS256"

// Local verifies HS256 tokens signed with a shared secret and reads the user
// id from a configurable claim.
type Local struct {
	secret []byte
	claim  string
	now    func() time.Time
}

func NewLocal(secret, claim string) *Local {
	return &Local{secret: []byte(secret), claim: claim, now: time.Now}
}

func (l *Local) Resolve(_ context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrMissingCredential
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return l.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod}),
		jwt.WithTimeFunc(l.now),
	)
	if err != nil {
		return 0, mapJWTError(err)
	}

	id, ok, err := parseUserID(claims[l.claim])
	if err != nil {
		return 0, wrap(ErrMalformedCredential, err)
	}
	if !ok {
		return 0, ErrMissingClaim
	}
	return id, nil
}

func mapJWTError(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return wrap(ErrExpiredCredential, err)
	}
	return wrap(ErrMalformedCredential, err)
}

// SignToken issues a token Local accepts, carrying userID under claim and
// expiring after ttl.
func SignToken(secret, claim string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	// registered claim sub is a StringOrURI (RFC 7519 4.1.2)
	if claim == "sub" {
		claims[claim] = strconv.FormatInt(userID, 10)
	} else {
		claims[claim] = userID
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
