package main

import (
	"context"
	"net/http"

	"xendit-gateway/internal/config"
	"xendit-gateway/internal/gateway"
	"xendit-gateway/internal/gateway/webhook"
	"xendit-gateway/internal/logger"
	"xendit-gateway/internal/metrics"
	"xendit-gateway/internal/xendit"

	"go.uber.org/zap"
)

// logRecorder stands in for the platform's ledger: reconciled transactions
// are logged until the host wires its own Recorder.
type logRecorder struct{}

func (logRecorder) Record(ctx context.Context, tx *gateway.Transaction) error {
	logger.FromCtx(ctx).Info("transaction recorded",
		zap.String("client_id", tx.ClientID),
		zap.String("amount", tx.Amount.String()),
		zap.String("currency", tx.Currency),
		zap.String("status", string(tx.Status)),
		zap.String("reference_id", tx.ReferenceID),
		zap.String("transaction_id", tx.TransactionID),
		zap.Int("invoices", len(tx.Invoices)),
	)
	return nil
}

// noContacts is the standalone default; the host platform supplies the real
// contact directory when embedding the gateway.
type noContacts struct{}

func (noContacts) PhoneNumbers(ctx context.Context, contactID string) ([]string, error) {
	return nil, nil
}

func main() {
	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	client := xendit.NewClient(cfg.XenditSecretKey)
	gw := gateway.New(client, noContacts{}, gateway.Options{
		APIKey:       cfg.XenditSecretKey,
		CallbackBase: cfg.CallbackBaseURL,
		CompanyID:    cfg.CompanyID,
		Diagnostics:  logger.Diagnostics(cfg.DiagLogPath),
	})

	if err := gw.ValidateSettings(context.Background()); err != nil {
		logger.L().Warn("gateway settings did not validate", zap.Error(err))
	}

	reg := metrics.NewRegistry()
	h := webhook.NewHandler(gw, logRecorder{}, reg)

	mux := http.NewServeMux()
	mux.HandleFunc("/"+cfg.CompanyID+"/xendit/", h.CallbackHandler)
	mux.HandleFunc("/receipt", h.ReceiptHandler)
	mux.HandleFunc("/pay", h.PayHandler)

	handler := logger.RequestIDMiddleware(logger.LoggingMiddleware(mux))

	addr := ":" + cfg.AppPort
	logger.L().Info("gateway server listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
