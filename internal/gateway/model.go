package gateway

import (
	"context"

	"github.com/shopspring/decimal"
)

// Status is the billing platform's transaction vocabulary.
type Status string

const (
	StatusApproved Status = "approved"
	StatusDeclined Status = "declined"
	StatusPending  Status = "pending"
	StatusVoid     Status = "void"
	StatusRefunded Status = "refunded"
)

// InvoiceAllocation is one slice of a payment applied to a platform invoice.
// The id must not contain '|' or '=', the codec does not escape them.
type InvoiceAllocation struct {
	ID     string
	Amount decimal.Decimal
}

// Transaction is the normalized result handed back to the platform after a
// callback or browser return has been reconciled.
type Transaction struct {
	ClientID            string
	Amount              decimal.Decimal
	Currency            string
	Invoices            []InvoiceAllocation
	Status              Status
	ReferenceID         string
	TransactionID       string
	ParentTransactionID string // always empty, refunds are unsupported
}

// ContactInfo mirrors the contact record the platform passes into payment
// initiation. State and Country carry the display names, not ISO codes.
type ContactInfo struct {
	ID        string
	ClientID  string
	FirstName string
	LastName  string
	Company   string
	Address1  string
	Address2  string
	City      string
	State     string
	Country   string
	Zip       string
}

// Recurrence describes the platform's recurring terms. Xendit invoices have
// no native recurring charge, so only the amount is normalized here.
type Recurrence struct {
	Amount decimal.Decimal
	Term   int
	Period string
}

type PaymentOptions struct {
	Description string
	ReturnURL   string
	Recur       *Recurrence
}

// ContactDirectory is the platform's contact store, looked up for the payer's
// phone numbers.
type ContactDirectory interface {
	PhoneNumbers(ctx context.Context, contactID string) ([]string, error)
}

// Recorder receives reconciled transactions on the platform's ledger side.
type Recorder interface {
	Record(ctx context.Context, tx *Transaction) error
}
