package assessment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the HTTP implementation of Gateway against the HireStage server
// surface, so the assessment flow can be embedded in any front end or CLI.
type Client struct {
	BaseURL     string
	BearerToken string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// NewClient creates a client with sane defaults.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		Timeout:    10 * time.Second,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError wraps non-2xx responses.
type APIError struct {
	StatusCode int
	Code       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status=%d code=%s body=%s", e.StatusCode, e.Code, e.Body)
}

func (c *Client) FetchDuration(ctx context.Context, postingID uint) (int, error) {
	var resp struct {
		Time int `json:"time"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("api/v1/postings/%d/duration", postingID), nil, &resp)
	if err != nil {
		return 0, err
	}
	if resp.Time <= 0 {
		return 0, fmt.Errorf("posting %d has no valid time allotment", postingID)
	}
	return resp.Time, nil
}

func (c *Client) FetchLevel(ctx context.Context, candidateID uint) (string, error) {
	var resp struct {
		Level string `json:"level"`
	}
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("api/v1/candidates/%d/level", candidateID), nil, &resp)
	return resp.Level, err
}

func (c *Client) FetchQuestions(ctx context.Context, postingID uint, level string) ([]Question, error) {
	var resp struct {
		Questions []Question `json:"questions"`
	}
	endpoint := fmt.Sprintf("api/v1/postings/%d/questions?level=%s", postingID, level)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Questions, nil
}

func (c *Client) CheckCompleted(ctx context.Context, candidateID, postingID uint) (bool, error) {
	var resp struct {
		IsCompleted bool `json:"isCompleted"`
	}
	endpoint := fmt.Sprintf("api/v1/sessions/completed?candidate_id=%d&posting_id=%d", candidateID, postingID)
	err := c.do(ctx, http.MethodGet, endpoint, nil, &resp)
	return resp.IsCompleted, err
}

func (c *Client) PersistSession(ctx context.Context, candidateID, postingID uint, answers []Answer, completed bool) (*PersistResult, error) {
	body := map[string]any{
		"candidateId": candidateID,
		"postId":      postingID,
		"responses":   answers,
		"completed":   completed,
	}
	var resp PersistResult
	err := c.do(ctx, http.MethodPost, "api/v1/sessions", body, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Code == "already_completed" {
			return nil, ErrAlreadyCompleted
		}
		return nil, err
	}
	return &resp, nil
}

func (c *Client) AttachFeedback(ctx context.Context, sessionID uint, feedback string) error {
	body := map[string]any{"feedback": feedback}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("api/v1/sessions/%d/feedback", sessionID), body, nil)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any) error {
	// Fall back without writing the field so a zero-value Client stays safe to
	// share between goroutines.
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.Timeout}
	}
	url := strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.BearerToken)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(b)}
		var payload struct {
			Code string `json:"code"`
		}
		if json.Unmarshal(b, &payload) == nil {
			apiErr.Code = payload.Code
		}
		return apiErr
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
