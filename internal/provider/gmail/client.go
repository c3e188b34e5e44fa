// Package gmail implements the provider client against the Gmail v1
// REST API.
package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nhle/nostlichat/internal/provider"
)

// DefaultBaseURL is the Gmail v1 message API root for the
// authenticated user.
const DefaultBaseURL = "https://gmail.googleapis.com/gmail/v1/users/me"

// searchScope is the fixed query every list call uses.
const searchScope = "is:anywhere"

// Client is a thin HTTP client for the Gmail v1 REST API. It handles
// Bearer token authentication and JSON (de)serialization. There is no
// retry: a failed call is reported once and the caller decides whether
// to skip or surface it.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Gmail client. The baseURL should be the user
// message root (see DefaultBaseURL); the token is the OAuth bearer
// token obtained out of band.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListMessages returns up to max recent message IDs matching the fixed
// search scope.
func (c *Client) ListMessages(ctx context.Context, max int) ([]string, error) {
	if max <= 0 {
		max = 10
	}

	var list messageList
	path := fmt.Sprintf("/messages?maxResults=%d&q=%s", max, searchScope)
	if err := c.get(ctx, path, &list); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(list.Messages))
	for _, m := range list.Messages {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// GetMessage fetches a single message and extracts the Subject and
// From headers. A missing Subject defaults to "No Subject"; a missing
// From defaults to the empty string.
func (c *Client) GetMessage(ctx context.Context, id string) (provider.Message, error) {
	var msg message
	if err := c.get(ctx, "/messages/"+id, &msg); err != nil {
		return provider.Message{}, err
	}

	out := provider.Message{Subject: "No Subject"}
	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "Subject":
			out.Subject = h.Value
		case "From":
			out.From = h.Value
		}
	}
	return out, nil
}

// SendRaw submits a raw RFC-822 message to the send endpoint. The
// message bytes are base64url-encoded without padding, as the API
// requires.
func (c *Client) SendRaw(ctx context.Context, raw []byte) error {
	body := sendRequest{
		Raw: base64.RawURLEncoding.EncodeToString(raw),
	}
	return c.post(ctx, "/messages/send", body, nil)
}

// get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// post performs an HTTP POST request with a JSON body.
func (c *Client) post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// do is the core HTTP method that builds the request, handles auth,
// and JSON (de)serialization.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return &provider.AuthError{
			Message: "authentication failed (401): token rejected by provider",
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf(
			"unexpected status %d on %s %s: %s",
			resp.StatusCode, method, path, string(respBody),
		)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w", method, path, err,
		)
	}

	return nil
}
