package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/refero-hq/partnerctl/internal/logging"
)

// FallbackSubmitError is shown when the platform returns a failure
// without a usable message.
const FallbackSubmitError = "Failed to submit your application. Please try again."

const defaultTimeout = 30 * time.Second

// Error is a platform API failure carrying the server-provided message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api request failed with status %d", e.StatusCode)
}

// UserMessage returns the server-provided message, or the fallback
// string when the server gave none.
func (e *Error) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return FallbackSubmitError
}

// Client talks to the partner platform API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a platform API client for the given base URL.
// An empty token disables the Authorization header.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// errorEnvelope matches the platform's error response body.
type errorEnvelope struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// ListPrograms fetches the programs the partner can apply to.
func (c *Client) ListPrograms(ctx context.Context) ([]Program, error) {
	var programs []Program
	if err := c.get(ctx, "/partner/programs", &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// GetProgram fetches a single program by slug.
func (c *Client) GetProgram(ctx context.Context, slug string) (*Program, error) {
	var program Program
	if err := c.get(ctx, "/partner/programs/"+slug, &program); err != nil {
		return nil, err
	}
	return &program, nil
}

// GetProfile fetches the partner's own profile.
func (c *Client) GetProfile(ctx context.Context) (*PartnerProfile, error) {
	var profile PartnerProfile
	if err := c.get(ctx, "/partner/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// SubmitApplication submits one program application. On a non-2xx
// response the returned error is an *Error carrying the server message
// when the platform provided one.
func (c *Client) SubmitApplication(ctx context.Context, payload ApplicationPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/partner/applications", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	logging.Debug("submitting application", "program", payload.ProgramID, "idempotencyKey", payload.IdempotencyKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return decodeError(resp)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// decodeError extracts the server-provided message from an error
// response body. Bodies that are not the expected envelope yield an
// Error with an empty message, which surfaces as the fallback string.
func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		apiErr.Message = envelope.Error.Message
	}

	return apiErr
}
