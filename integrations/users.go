package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// StatusError is returned when an upstream API answers with a non-200 status.
type StatusError struct {
	Service string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API returned non-200 status: %d, body: %s", e.Service, e.Code, e.Body)
}

// UserInfo is the subset of the user API's /me payload this service reads.
// ID is left undecoded since the API has served both numbers and strings.
type UserInfo struct {
	ID json.RawMessage `json:"id"`
}

// UserClient talks to the external user-identity API.
type UserClient struct {
	Client  *http.Client
	BaseURL string
}

func NewUserClient(baseURL string, timeout time.Duration) *UserClient {
	return &UserClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Me verifies token against GET {base}/me and returns the caller's profile.
func (uc *UserClient) Me(ctx context.Context, token string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uc.BaseURL+"/me", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create me request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	// the user API is reachable through an ngrok tunnel, which otherwise serves an HTML interstitial
	req.Header.Set("ngrok-skip-browser-warning", "true")

	resp, err := uc.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send me request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, &StatusError{Service: "user", Code: resp.StatusCode, Body: string(bodyBytes)}
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode user API response: %w", err)
	}

	zap.L().Debug("Verified token against user API", zap.String("baseURL", uc.BaseURL))

	return &info, nil
}
