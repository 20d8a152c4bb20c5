package gateway

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"xendit-gateway/internal/logger"
	"xendit-gateway/internal/utils"
	"xendit-gateway/internal/xendit"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	currency        = "IDR"
	invoiceDuration = 86400 // hosted invoice lives 24h
)

// feeRate is the fixed 3% markup added at initiation and backed out again at
// reconciliation. It is business policy, not configuration; both sides must
// use the same constant or reconciled amounts drift.
var feeRate = decimal.New(3, -2)

// InvoiceAPI is the slice of the Xendit client the adapter needs.
type InvoiceAPI interface {
	CreateInvoice(ctx context.Context, req *xendit.CreateInvoiceRequest) (*xendit.Invoice, error)
	GetInvoice(ctx context.Context, externalID string) ([]xendit.Invoice, error)
	GetBalance(ctx context.Context, accountType, currency string) (*xendit.Balance, error)
}

// Gateway adapts the billing platform's payment calls onto Xendit hosted
// invoices. It holds no mutable state; every call is an independent request
// against the processor.
type Gateway struct {
	api          InvoiceAPI
	apiKey       string
	contacts     ContactDirectory
	callbackBase string
	companyID    string
	diag         *zap.Logger
}

// Options carries the host platform wiring for the adapter.
type Options struct {
	APIKey       string
	CallbackBase string
	CompanyID    string
	Diagnostics  *zap.Logger
}

func New(api InvoiceAPI, contacts ContactDirectory, opts Options) *Gateway {
	diag := opts.Diagnostics
	if diag == nil {
		diag = logger.L().Named("diagnostics")
	}

	return &Gateway{
		api:          api,
		apiKey:       opts.APIKey,
		contacts:     contacts,
		callbackBase: opts.CallbackBase,
		companyID:    opts.CompanyID,
		diag:         diag,
	}
}

func (g *Gateway) log(ctx context.Context) *zap.Logger {
	return logger.FromCtx(ctx).Named("gateway")
}

// BuildProcess turns a platform payment attempt into a Xendit hosted invoice
// and returns the invoice URL the payer should be redirected to. Any failure
// creating the invoice is a setup error; no partial invoice is usable.
func (g *Gateway) BuildProcess(
	ctx context.Context,
	contact ContactInfo,
	amount decimal.Decimal,
	allocations []InvoiceAllocation,
	opts PaymentOptions,
) (string, error) {
	// Force 2-decimal places only. The fee below stays full precision.
	amount = amount.Round(2)
	if opts.Recur != nil {
		opts.Recur.Amount = opts.Recur.Amount.Round(2)
	}

	log := g.log(ctx).With(
		zap.String("client_id", contact.ClientID),
		zap.String("amount", amount.String()),
		zap.Int("allocations", len(allocations)),
	)

	phone := ""
	numbers, err := g.contacts.PhoneNumbers(ctx, contact.ID)
	if err != nil {
		log.Error("Failed to look up contact phone numbers", zap.Error(err))
		return "", err
	}
	if len(numbers) > 0 {
		phone = utils.NormalizePhone(numbers[0])
	}

	description := opts.Description
	if description == "" {
		description = "Payment"
	}

	firstInvoiceID := ""
	if len(allocations) > 0 {
		firstInvoiceID = allocations[0].ID
	}
	// The processor does not distinguish outcome at redirect time, so the
	// success and failure URLs are identical; reconciliation happens on the
	// callback path.
	returnURL := opts.ReturnURL + "&invoice_id=" + firstInvoiceID

	fee := amount.Mul(feeRate)

	req := &xendit.CreateInvoiceRequest{
		ExternalID:      EncodeExternalID(allocations),
		Amount:          amount.Add(fee),
		Description:     description,
		InvoiceDuration: invoiceDuration,
		Customer: &xendit.Customer{
			GivenNames:   contact.FirstName,
			Surname:      contact.LastName,
			MobileNumber: phone,
			Addresses: []xendit.Address{{
				City:       contact.City,
				Country:    contact.Country,
				PostalCode: contact.Zip,
				State:      contact.State,
				Street:     utils.Concat(" ", contact.Address1, contact.Address2),
			}},
		},
		ClientType:          "INTEGRATION",
		PlatformCallbackURL: g.callbackBase + g.companyID + "/xendit/?client_id=" + contact.ClientID,
		SuccessRedirectURL:  returnURL,
		FailureRedirectURL:  returnURL,
		Currency:            currency,
		Fees:                []xendit.Fee{{Type: "ADMIN", Value: fee}},
	}

	invoice, err := g.api.CreateInvoice(ctx, req)
	if err != nil {
		log.Error("Failed to create Xendit invoice", zap.Error(err))
		return "", err
	}

	log.Info("Xendit invoice created",
		zap.String("invoice_id", invoice.ID),
		zap.String("invoice_url", invoice.InvoiceURL),
	)
	return invoice.InvoiceURL, nil
}

// webhookProbe detects webhook mode: a JSON body carrying an external_id.
type webhookProbe struct {
	ExternalID *string `json:"external_id"`
}

// Validate reconciles a processor callback into a platform transaction. Two
// entry modes share this path: a webhook push, where the body already is the
// transaction, and a browser return, where the invoice is looked up from the
// invoice_id query parameter.
//
// A (nil, nil) return means "nothing to reconcile yet" and is deliberately
// distinct from a declined transaction.
func (g *Gateway) Validate(ctx context.Context, query url.Values, body []byte) (*Transaction, error) {
	log := g.log(ctx)

	var tx *xendit.Invoice
	if fromWebhook(body) {
		var pushed xendit.Invoice
		if err := json.Unmarshal(body, &pushed); err != nil {
			log.Error("Failed decoding webhook body", zap.Error(err))
			return nil, err
		}
		tx = &pushed
	} else {
		externalID := query.Get("invoice_id")

		invoices, err := g.api.GetInvoice(ctx, externalID)
		if err != nil {
			log.Error("Invoice lookup failed", zap.Error(err))
			return nil, err
		}
		if len(invoices) == 0 {
			raw, _ := json.Marshal(invoices)
			g.diag.Warn("invoice lookup returned no results",
				zap.String("external_id", externalID),
				zap.ByteString("response", raw),
			)
			return nil, nil
		}
		tx = &invoices[0]
	}

	// The redirect URL embedded in the transaction is the authoritative
	// source of the client id, not the raw query parameter.
	clientID := clientIDFromRedirectURL(tx.SuccessRedirectURL)

	if tx.Status == nil {
		g.diag.Warn("transaction has no status, dropping",
			zap.String("external_id", tx.ExternalID),
			zap.String("invoice_id", tx.ID),
		)
		return nil, nil
	}

	paid := decimal.Zero
	if tx.PaidAmount != nil {
		paid = *tx.PaidAmount
	}
	// Back the 3% fee out of the paid amount, symmetric to BuildProcess.
	net := paid.Sub(paid.Mul(feeRate))

	transactionID := ""
	if tx.PaymentID != nil {
		transactionID = *tx.PaymentID
	}

	return &Transaction{
		ClientID:      clientID,
		Amount:        net,
		Currency:      currency,
		Invoices:      DecodeExternalID(tx.ExternalID),
		Status:        mapStatus(*tx.Status),
		ReferenceID:   tx.ID,
		TransactionID: transactionID,
	}, nil
}

// Success handles the plain browser-return receipt. Unlike Validate it
// reports the raw invoice amount with no fee backed out and recovers no
// allocations; the two paths diverge on purpose.
func (g *Gateway) Success(ctx context.Context, query url.Values) (*Transaction, error) {
	log := g.log(ctx)

	invoices, err := g.api.GetInvoice(ctx, query.Get("invoice_id"))
	if err != nil {
		log.Error("Invoice lookup failed", zap.Error(err))
		return nil, err
	}
	if len(invoices) == 0 {
		g.diag.Warn("success return found no invoice",
			zap.String("invoice_id", query.Get("invoice_id")),
		)
		return nil, nil
	}
	tx := invoices[0]

	raw, _ := json.Marshal(tx)
	g.diag.Info("success return", zap.ByteString("transaction", raw))

	if tx.Status == nil {
		return nil, nil
	}

	amount := decimal.Zero
	if tx.Amount != nil {
		amount = *tx.Amount
	}

	return &Transaction{
		ClientID:      query.Get("client_id"),
		Amount:        amount,
		Currency:      currency,
		Status:        mapStatus(*tx.Status),
		TransactionID: tx.ID,
	}, nil
}

// Refund is not supported by this gateway.
func (g *Gateway) Refund(ctx context.Context, referenceID, transactionID string, amount decimal.Decimal, notes string) (*Transaction, error) {
	return nil, ErrUnsupported
}

// Void is not supported by this gateway.
func (g *Gateway) Void(ctx context.Context, referenceID, transactionID string, notes string) (*Transaction, error) {
	return nil, ErrUnsupported
}

func fromWebhook(body []byte) bool {
	if len(body) == 0 {
		return false
	}
	var probe webhookProbe
	if err := json.Unmarshal(body, &probe); err != nil {
		return false
	}
	return probe.ExternalID != nil
}

// clientIDFromRedirectURL pulls the client id out of the redirect URL built
// at initiation: everything after "client_id=" up to the next '&'.
func clientIDFromRedirectURL(redirectURL string) string {
	_, after, ok := strings.Cut(redirectURL, "client_id=")
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(after, "&")
	return id
}
