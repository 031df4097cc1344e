package whatsgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client talks to a WhatsApp HTTP gateway. Sends are rate limited locally
// so a burst of bookings cannot trip the gateway's own throttling.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        Logger
}

// NewClient creates a gateway client. messagesPerSecond bounds the local
// send rate; the gateway typically allows 10/s.
func NewClient(baseURL, apiKey string, timeout time.Duration, messagesPerSecond float64, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(messagesPerSecond), 1),
		log:     log,
	}
}

// Send delivers one message, blocking on the local rate limiter first.
func (c *Client) Send(ctx context.Context, msg Message) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter wait: %v", ErrInternal, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrInternal, err)
	}

	url := c.baseURL + "/v1/messages"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		var parsed sendResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return fmt.Errorf("%w: decode response: %v", ErrInvalidResponse, err)
		}
		c.log.Info("whatsgw: message accepted, id=%s status=%s", parsed.MessageID, parsed.Status)
		return nil
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		return ErrInvalidRecipient
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(raw))
	}
}
