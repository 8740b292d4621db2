// Package webhook posts chat messages to an automation webhook (an n8n
// workflow, for example) and turns the JSON it answers with into reply text.
//
// One call to Client.Send is one exchange. There are no retries and no
// timeout beyond what the caller's context and http.Client impose.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

// TimestampLayout matches JavaScript's Date.prototype.toISOString.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Request is the JSON body posted for every user message.
type Request struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Timestamp string `json:"timestamp"`
}

// NewRequest builds the body for text sent at sentAt.
func NewRequest(text, sessionID string, sentAt time.Time) Request {
	return Request{
		Message:   text,
		SessionID: sessionID,
		Timestamp: sentAt.UTC().Format(TimestampLayout),
	}
}

type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient wraps httpClient; nil means a client without a timeout.
func NewClient(httpClient *http.Client, userAgent string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		httpClient: httpClient,
		userAgent:  userAgent,
	}
}

// Send posts req to endpoint and returns the extracted reply.
// Every failure is a *TransportError.
func (c *Client) Send(ctx context.Context, endpoint string, req Request) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", &TransportError{Err: errors.Wrap(err, "encode request")}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &TransportError{Err: errors.Wrap(err, "build request")}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &TransportError{Err: errors.Wrap(err, "post webhook")}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused; the body is ignored on failure.
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", &TransportError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: errors.Wrap(err, "read reply")}
	}

	reply, err := ExtractReply(body)
	if err != nil {
		return "", &TransportError{Err: errors.Wrap(err, "parse reply")}
	}

	return reply, nil
}
