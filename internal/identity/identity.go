// Package identity maps a request credential to the id of the user making the
// request. Two strategies exist: Local verifies a signed JWT with a shared
// secret, Remote delegates verification to the user-identity API. Cached wraps
// either one with a redis-backed lookup cache.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Resolver interface {
	Resolve(ctx context.Context, credential string) (int64, error)
}

type Kind int

const (
	KindMissingCredential Kind = iota + 1
	KindExpiredCredential
	KindMalformedCredential
	KindMissingClaim
	KindUnauthorized
	KindUpstream
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Kind so callers can test against the sentinel values below.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrMissingCredential   = &Error{Kind: KindMissingCredential, Message: "Authorization header is missing"}
	ErrExpiredCredential   = &Error{Kind: KindExpiredCredential, Message: "Token has expired"}
	ErrMalformedCredential = &Error{Kind: KindMalformedCredential, Message: "Invalid token"}
	ErrMissingClaim        = &Error{Kind: KindMissingClaim, Message: "User ID is missing from token payload"}
	ErrUnauthorized        = &Error{Kind: KindUnauthorized, Message: "Unauthorized, invalid or expired token"}
	ErrUpstream            = &Error{Kind: KindUpstream, Message: "User API is unavailable"}
)

func wrap(sentinel *Error, err error) *Error {
	return &Error{Kind: sentinel.Kind, Message: sentinel.Message, Err: err}
}

// TokenFromHeader accepts either a raw token or "<scheme> <token>".
func TokenFromHeader(header string) string {
	if !strings.Contains(header, " ") {
		return header
	}
	return strings.Split(header, " ")[1]
}

// parseUserID accepts positive integers encoded as JSON numbers or numeric
// strings. ok is false for absent, null, zero or empty values.
func parseUserID(v any) (id int64, ok bool, err error) {
	switch t := v.(type) {
	case nil:
		return 0, false, nil
	case float64:
		if t == 0 {
			return 0, false, nil
		}
		if t != math.Trunc(t) || t < 0 || t >= math.MaxInt64 {
			return 0, false, fmt.Errorf("user id %v is not a positive integer", t)
		}
		return int64(t), true, nil
	case json.Number:
		return parseUserID(string(t))
	case string:
		if t == "" || t == "0" {
			return 0, false, nil
		}
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil || n < 0 {
			return 0, false, fmt.Errorf("user id %q is not a positive integer", t)
		}
		return n, true, nil
	default:
		return 0, false, fmt.Errorf("user id has unsupported type %T", v)
	}
}
