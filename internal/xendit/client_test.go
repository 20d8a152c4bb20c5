package xendit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockRoundTripper allows us to mock the HTTP response
type MockRoundTripper func(req *http.Request) *http.Response

func (f MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

type MockRoundTripperWithError func(req *http.Request) (*http.Response, error)

func (f MockRoundTripperWithError) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func jsonResponse(code int, body string) *http.Response {
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Header:     make(http.Header),
	}
}

func TestClient_CreateInvoice(t *testing.T) {
	apiKey := "test-secret"
	c := NewClient(apiKey)

	req := &CreateInvoiceRequest{
		ExternalID:      "NDI9MTAwLjAw",
		Amount:          decimal.RequireFromString("103"),
		Description:     "Payment",
		InvoiceDuration: 86400,
		Currency:        "IDR",
		Fees:            []Fee{{Type: "ADMIN", Value: decimal.RequireFromString("3")}},
	}

	t.Run("Success", func(t *testing.T) {
		respBody := `{
			"id": "inv_1",
			"external_id": "NDI9MTAwLjAw",
			"status": "PENDING",
			"amount": 103,
			"invoice_url": "https://checkout.xendit.co/web/inv_1"
		}`

		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "https://api.xendit.co/v2/invoices", r.URL.String())

			// Verify Auth
			user, pass, ok := r.BasicAuth()
			assert.True(t, ok)
			assert.Equal(t, apiKey, user)
			assert.Equal(t, "", pass)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			// Amounts must go over the wire as JSON numbers
			body, _ := io.ReadAll(r.Body)
			var decoded map[string]interface{}
			require.NoError(t, json.Unmarshal(body, &decoded))
			assert.Equal(t, float64(103), decoded["amount"])

			return jsonResponse(http.StatusOK, respBody)
		})

		inv, err := c.CreateInvoice(context.Background(), req)
		assert.NoError(t, err)
		require.NotNil(t, inv)
		assert.Equal(t, "inv_1", inv.ID)
		assert.Equal(t, "https://checkout.xendit.co/web/inv_1", inv.InvoiceURL)
		require.NotNil(t, inv.Status)
		assert.Equal(t, "PENDING", *inv.Status)
	})

	t.Run("APIError", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			return jsonResponse(http.StatusBadRequest, `{"error_code": "INVALID_DATA"}`)
		})

		inv, err := c.CreateInvoice(context.Background(), req)
		assert.Error(t, err)
		assert.Nil(t, inv)
		assert.Contains(t, err.Error(), "INVALID_DATA")
	})

	t.Run("TransportError", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripperWithError(func(r *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		inv, err := c.CreateInvoice(context.Background(), req)
		assert.Error(t, err)
		assert.Nil(t, inv)
	})

	t.Run("DecodeError", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `not-json`)
		})

		inv, err := c.CreateInvoice(context.Background(), req)
		assert.Error(t, err)
		assert.Nil(t, inv)
	})
}

func TestClient_GetInvoice(t *testing.T) {
	c := NewClient("test-secret")

	t.Run("Success", func(t *testing.T) {
		respBody := `[{
			"id": "inv_1",
			"external_id": "NDI9MTAwLjAw",
			"status": "PAID",
			"paid_amount": 103,
			"payment_id": "pay_1"
		}]`

		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			assert.Equal(t, "GET", r.Method)
			assert.Equal(t, "https://api.xendit.co/v2/invoices/?external_id=NDI9MTAwLjAw", r.URL.String())
			return jsonResponse(http.StatusOK, respBody)
		})

		invoices, err := c.GetInvoice(context.Background(), "NDI9MTAwLjAw")
		assert.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Equal(t, "inv_1", invoices[0].ID)
		require.NotNil(t, invoices[0].PaymentID)
		assert.Equal(t, "pay_1", *invoices[0].PaymentID)
		require.NotNil(t, invoices[0].PaidAmount)
		assert.True(t, decimal.RequireFromString("103").Equal(*invoices[0].PaidAmount))
	})

	t.Run("EmptyList", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `[]`)
		})

		invoices, err := c.GetInvoice(context.Background(), "missing")
		assert.NoError(t, err)
		assert.Empty(t, invoices)
	})

	t.Run("OptionalFieldsAbsent", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `[{"id": "inv_2", "external_id": "x"}]`)
		})

		invoices, err := c.GetInvoice(context.Background(), "x")
		assert.NoError(t, err)
		require.Len(t, invoices, 1)
		assert.Nil(t, invoices[0].Status)
		assert.Nil(t, invoices[0].PaidAmount)
		assert.Nil(t, invoices[0].PaymentID)
	})
}

func TestClient_GetInvoiceList(t *testing.T) {
	c := NewClient("test-secret")

	c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
		assert.Equal(t, "https://api.xendit.co/v2/invoices?limit=2&statuses=PAID", r.URL.String())
		return jsonResponse(http.StatusOK, `[{"id": "inv_1", "external_id": "a"}, {"id": "inv_2", "external_id": "b"}]`)
	})

	filters := url.Values{}
	filters.Set("statuses", "PAID")
	filters.Set("limit", "2")

	invoices, err := c.GetInvoiceList(context.Background(), filters)
	assert.NoError(t, err)
	assert.Len(t, invoices, 2)
}

func TestClient_GetBalance(t *testing.T) {
	c := NewClient("test-secret")

	t.Run("Success", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			assert.Equal(t, "https://api.xendit.co/balance?account_type=CASH&currency=IDR", r.URL.String())
			return jsonResponse(http.StatusOK, `{"balance": 1500000}`)
		})

		balance, err := c.GetBalance(context.Background(), "CASH", "IDR")
		assert.NoError(t, err)
		require.NotNil(t, balance)
		require.NotNil(t, balance.Balance)
		assert.True(t, decimal.RequireFromString("1500000").Equal(*balance.Balance))
	})

	t.Run("NoBalanceField", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{}`)
		})

		balance, err := c.GetBalance(context.Background(), "CASH", "IDR")
		assert.NoError(t, err)
		require.NotNil(t, balance)
		assert.Nil(t, balance.Balance)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		c.httpClient.Transport = MockRoundTripper(func(r *http.Request) *http.Response {
			return jsonResponse(http.StatusUnauthorized, `{"error_code": "API_VALIDATION_ERROR"}`)
		})

		balance, err := c.GetBalance(context.Background(), "CASH", "IDR")
		assert.Error(t, err)
		assert.Nil(t, balance)
	})
}
