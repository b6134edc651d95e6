package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// JokeClient fetches random jokes from the Chuck Norris API.
type JokeClient struct {
	Client  *http.Client
	BaseURL string
}

func NewJokeClient(baseURL string, timeout time.Duration) *JokeClient {
	return &JokeClient{
		Client:  &http.Client{Timeout: timeout},
		BaseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (jc *JokeClient) Random(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, jc.BaseURL+"/jokes/random", nil)
	if err != nil {
		return "", fmt.Errorf("failed to create joke request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := jc.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send joke request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &StatusError{Service: "joke", Code: resp.StatusCode, Body: string(bodyBytes)}
	}

	var joke struct {
		Value *string `json:"value"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&joke); err != nil {
		return "", fmt.Errorf("failed to decode joke response: %w", err)
	}
	if joke.Value == nil {
		return "", fmt.Errorf("joke response is missing the value field")
	}

	return *joke.Value, nil
}
