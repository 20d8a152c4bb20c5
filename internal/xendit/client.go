package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"xendit-gateway/internal/logger"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://api.xendit.co"

// Client is a thin wrapper over the Xendit REST API. Requests authenticate
// with HTTP basic auth, the API key as username and an empty password. There
// is no retry policy; every call is attempted once and failures surface to
// the caller.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	if apiKey == "" {
		logger.L().Warn("Xendit API key is empty")
	}

	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	log := logger.FromCtx(ctx).With(
		zap.String("method", method),
		zap.String("path", path),
	)

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			log.Error("Failed to marshal request body", zap.Error(err))
			return err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return err
	}

	req.SetBasicAuth(c.apiKey, "")
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("Xendit request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return fmt.Errorf("failed to read xendit response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("Xendit returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return fmt.Errorf("xendit error: %s", string(bodyBytes))
	}

	if out != nil {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			log.Error("Failed decoding Xendit response", zap.Error(err))
			return err
		}
	}
	return nil
}

// CreateInvoice creates a hosted payment page session.
func (c *Client) CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*Invoice, error) {
	var inv Invoice
	if err := c.do(ctx, http.MethodPost, "/v2/invoices", req, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetInvoice looks up invoices by the external id echoed back by the
// processor. The endpoint answers with a list; zero results is not an error.
func (c *Client) GetInvoice(ctx context.Context, externalID string) ([]Invoice, error) {
	path := "/v2/invoices/?external_id=" + url.QueryEscape(externalID)

	var invoices []Invoice
	if err := c.do(ctx, http.MethodGet, path, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// GetInvoiceList lists invoices matching the given filters.
func (c *Client) GetInvoiceList(ctx context.Context, filters url.Values) ([]Invoice, error) {
	path := "/v2/invoices?" + filters.Encode()

	var invoices []Invoice
	if err := c.do(ctx, http.MethodGet, path, nil, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// GetBalance fetches the account balance, also used as a cheap live check
// that an API key authenticates.
func (c *Client) GetBalance(ctx context.Context, accountType, currency string) (*Balance, error) {
	path := fmt.Sprintf("/balance?account_type=%s&currency=%s",
		url.QueryEscape(accountType), url.QueryEscape(currency))

	var balance Balance
	if err := c.do(ctx, http.MethodGet, path, nil, &balance); err != nil {
		return nil, err
	}
	return &balance, nil
}
