// Package telegram integrates the Telegram Bot API as a second inbound
// channel. The Client is a dumb transport; all cursor bookkeeping lives
// in the Poller.
package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"context"
)

// DefaultBaseURL is the public Bot API endpoint
const DefaultBaseURL = "https://api.telegram.org"

// Telegram rejects messages over 4096 chars; stay under with headroom
const maxMessageLen = 4000

// Update is one entry from getUpdates
type Update struct {
	UpdateID int64            `json:"update_id"`
	Message  *IncomingMessage `json:"message"`
}

// IncomingMessage is a message sent to the bot
type IncomingMessage struct {
	From User   `json:"from"`
	Chat Chat   `json:"chat"`
	Text string `json:"text"`
	Date int64  `json:"date"`
}

// User identifies a Telegram sender
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username"`
}

// Chat identifies the conversation the message arrived in
type Chat struct {
	ID int64 `json:"id"`
}

// apiResponse is Telegram's uniform wrapper
type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

// Client is a minimal Bot API transport
type Client struct {
	// BaseURL is overridable for tests
	BaseURL string

	token string
	http  *http.Client
}

// NewClient creates a transport for the given bot token
func NewClient(token string) *Client {
	return &Client{
		BaseURL: DefaultBaseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) call(ctx context.Context, method string, params url.Values, result any) error {
	endpoint := fmt.Sprintf("%s/bot%s/%s", c.BaseURL, c.token, method)
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var api apiResponse
	if err := json.Unmarshal(raw, &api); err != nil {
		return fmt.Errorf("telegram returned non-json payload (HTTP %d)", resp.StatusCode)
	}
	if !api.OK {
		return fmt.Errorf("telegram error: %s", api.Description)
	}
	if result != nil {
		if err := json.Unmarshal(api.Result, result); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}
	return nil
}

// GetUpdates fetches updates at or after offset
func (c *Client) GetUpdates(ctx context.Context, offset int64) ([]Update, error) {
	params := url.Values{}
	if offset > 0 {
		params.Set("offset", strconv.FormatInt(offset, 10))
	}
	var updates []Update
	if err := c.call(ctx, "getUpdates", params, &updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// SendMessage pushes text to a chat, truncating to Telegram's limit
func (c *Client) SendMessage(ctx context.Context, chatID, text string) error {
	if len(text) > maxMessageLen {
		text = text[:maxMessageLen] + "\n\n[truncated]"
	}
	params := url.Values{}
	params.Set("chat_id", chatID)
	params.Set("text", text)
	return c.call(ctx, "sendMessage", params, nil)
}
