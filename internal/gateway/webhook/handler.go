package webhook

import (
	"encoding/json"
	"html/template"
	"io"
	"net/http"

	"xendit-gateway/internal/gateway"
	"xendit-gateway/internal/logger"
	"xendit-gateway/internal/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handler exposes the gateway over the platform's callback surface: webhook
// pushes, browser returns and the payment initiation form.
type Handler struct {
	Gateway  *gateway.Gateway
	Recorder gateway.Recorder
	Metrics  *metrics.Registry
}

func NewHandler(gw *gateway.Gateway, recorder gateway.Recorder, reg *metrics.Registry) *Handler {
	return &Handler{
		Gateway:  gw,
		Recorder: recorder,
		Metrics:  reg,
	}
}

// CallbackHandler serves both callback entry modes. A webhook push arrives as
// a POST whose body is the transaction; a browser return arrives with just
// query parameters and triggers an invoice lookup. Callbacks that reconcile
// to nothing are acknowledged with 200 so the processor stops retrying.
func (h *Handler) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)
	h.Metrics.WebhooksReceived.Inc()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	tx, err := h.Gateway.Validate(ctx, r.URL.Query(), body)
	if err != nil {
		log.Error("callback validation failed", zap.Error(err))
		http.Error(w, "failed to validate callback", http.StatusBadGateway)
		return
	}
	if tx == nil {
		h.Metrics.ReconcileDrops.Inc()
		w.WriteHeader(http.StatusOK)
		return
	}

	if err := h.Recorder.Record(ctx, tx); err != nil {
		log.Error("failed to record transaction", zap.Error(err))
		http.Error(w, "failed to record transaction", http.StatusInternalServerError)
		return
	}

	h.Metrics.CallbacksReconciled.Inc()
	log.Info("transaction reconciled",
		zap.String("client_id", tx.ClientID),
		zap.String("status", string(tx.Status)),
		zap.String("transaction_id", tx.TransactionID),
	)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type receiptResponse struct {
	ClientID      string `json:"client_id"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id"`
}

// ReceiptHandler serves the browser-return receipt. It reports the raw
// invoice amount; reconciliation itself always runs through the callback.
func (h *Handler) ReceiptHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	tx, err := h.Gateway.Success(ctx, r.URL.Query())
	if err != nil {
		log.Error("receipt lookup failed", zap.Error(err))
		http.Error(w, "failed to load receipt", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if tx == nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "no payment found"})
		return
	}

	_ = json.NewEncoder(w).Encode(receiptResponse{
		ClientID:      tx.ClientID,
		Amount:        tx.Amount.String(),
		Currency:      tx.Currency,
		Status:        string(tx.Status),
		TransactionID: tx.TransactionID,
	})
}

type allocationDTO struct {
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

type payRequest struct {
	Contact     gateway.ContactInfo `json:"contact"`
	Amount      decimal.Decimal     `json:"amount"`
	Invoices    []allocationDTO     `json:"invoices"`
	Description string              `json:"description"`
	ReturnURL   string              `json:"return_url"`
}

var processTemplate = template.Must(template.New("process").Parse(`<!DOCTYPE html>
<html>
<body onload="document.getElementById('payment-form').submit();">
<form id="payment-form" method="GET" action="{{.}}">
<button type="submit">Pay with Xendit</button>
</form>
</body>
</html>
`))

// PayHandler starts a payment attempt: it creates the hosted invoice and
// answers with an auto-submitting form pointing at the processor's payment
// page.
func (h *Handler) PayHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromCtx(ctx)

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	allocations := make([]gateway.InvoiceAllocation, 0, len(req.Invoices))
	for _, inv := range req.Invoices {
		allocations = append(allocations, gateway.InvoiceAllocation{ID: inv.ID, Amount: inv.Amount})
	}

	redirect, err := h.Gateway.BuildProcess(ctx, req.Contact, req.Amount, allocations, gateway.PaymentOptions{
		Description: req.Description,
		ReturnURL:   req.ReturnURL,
	})
	if err != nil {
		log.Error("payment setup failed", zap.Error(err))
		http.Error(w, "failed to set up payment", http.StatusBadGateway)
		return
	}

	h.Metrics.InvoicesCreated.Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := processTemplate.Execute(w, redirect); err != nil {
		log.Error("failed rendering process form", zap.Error(err))
	}
}
