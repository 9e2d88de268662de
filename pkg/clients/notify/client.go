package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client delivers report notifications to an external webhook.
type Client interface {
	SendReport(ctx context.Context, req ReportMessage) error
}

// ReportMessage is the JSON payload posted to the webhook.
type ReportMessage struct {
	Date    string  `json:"date"`
	Summary string  `json:"summary"`
	Revenue float64 `json:"revenue"`
	Cost    float64 `json:"cost"`
	Profit  float64 `json:"profit"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook notifier for the given URL.
func NewClient(url string) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{
		httpClient: restyClient,
		url:        url,
	}
}

// apiError captures a structured error body, when the receiver returns one.
type apiError struct {
	Error string `json:"error"`
}

// SendReport posts the report message to the configured webhook.
func (c *WebhookClient) SendReport(ctx context.Context, req ReportMessage) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(req).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send report notification: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error
		if message == "" {
			message = resp.Status()
		}
		return fmt.Errorf("notification webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
