package xendit

import "github.com/shopspring/decimal"

func init() {
	// The Xendit API expects amounts as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Customer is the payer block sent on invoice creation.
type Customer struct {
	GivenNames   string    `json:"given_names,omitempty"`
	Surname      string    `json:"surname,omitempty"`
	MobileNumber string    `json:"mobile_number,omitempty"`
	Addresses    []Address `json:"addresses,omitempty"`
}

type Address struct {
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	State      string `json:"state,omitempty"`
	Street     string `json:"street,omitempty"`
}

// Fee is an itemized markup attached to an invoice.
type Fee struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

// CreateInvoiceRequest is the POST /v2/invoices body.
type CreateInvoiceRequest struct {
	ExternalID          string          `json:"external_id"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description,omitempty"`
	InvoiceDuration     int             `json:"invoice_duration,omitempty"`
	Customer            *Customer       `json:"customer,omitempty"`
	ClientType          string          `json:"client_type,omitempty"`
	PlatformCallbackURL string          `json:"platform_callback_url,omitempty"`
	SuccessRedirectURL  string          `json:"success_redirect_url,omitempty"`
	FailureRedirectURL  string          `json:"failure_redirect_url,omitempty"`
	Currency            string          `json:"currency,omitempty"`
	Fees                []Fee           `json:"fees,omitempty"`
}

// Invoice is the processor's hosted payment session. The same shape arrives
// on webhook pushes and invoice lookups. Optional fields are pointers so a
// missing field is distinguishable from a zero value.
type Invoice struct {
	ID                 string           `json:"id"`
	ExternalID         string           `json:"external_id"`
	Status             *string          `json:"status,omitempty"`
	Amount             *decimal.Decimal `json:"amount,omitempty"`
	PaidAmount         *decimal.Decimal `json:"paid_amount,omitempty"`
	PaymentID          *string          `json:"payment_id,omitempty"`
	InvoiceURL         string           `json:"invoice_url,omitempty"`
	SuccessRedirectURL string           `json:"success_redirect_url,omitempty"`
	FailureRedirectURL string           `json:"failure_redirect_url,omitempty"`
	Currency           string           `json:"currency,omitempty"`
	PaidAt             *string          `json:"paid_at,omitempty"`
}

// Balance is the GET /balance response. The pointer lets callers check that
// the account actually answered with a balance field.
type Balance struct {
	Balance *decimal.Decimal `json:"balance,omitempty"`
}
