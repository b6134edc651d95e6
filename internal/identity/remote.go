package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/chxlky/trello-clone-api/integrations"
)

// UserAPI is the slice of the user-identity API the Remote strategy needs.
type UserAPI interface {
	Me(ctx context.Context, token string) (*integrations.UserInfo, error)
}

// Remote delegates token verification to the user-identity API.
type Remote struct {
	api UserAPI
}

func NewRemote(api UserAPI) *Remote {
	return &Remote{api: api}
}

var errMissingAPIUserID = &Error{Kind: KindMissingClaim, Message: "User ID is missing from user API response"}

func (r *Remote) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrMissingCredential
	}

	info, err := r.api.Me(ctx, token)
	if err != nil {
		var statusErr *integrations.StatusError
		if errors.As(err, &statusErr) {
			return 0, wrap(ErrUnauthorized, err)
		}
		return 0, wrap(ErrUpstream, err)
	}

	var raw any
	if len(info.ID) > 0 {
		if err := json.Unmarshal(info.ID, &raw); err != nil {
			return 0, wrap(ErrUpstream, fmt.Errorf("decode user id: %w", err))
		}
	}
	id, ok, err := parseUserID(raw)
	if err != nil {
		return 0, wrap(ErrUpstream, err)
	}
	if !ok {
		return 0, errMissingAPIUserID
	}
	return id, nil
}
