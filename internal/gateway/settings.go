package gateway

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

var (
	// ErrUnsupported is reported for operations the gateway does not
	// implement, refunds and voids among them.
	ErrUnsupported = errors.New("the gateway does not support that action")

	// ErrAPIKeyEmpty and ErrAPIKeyInvalid are the only two reasons settings
	// validation ever reports. Live-check failures collapse into the latter
	// so no API detail leaks into the settings UI.
	ErrAPIKeyEmpty   = errors.New("the API key cannot be empty")
	ErrAPIKeyInvalid = errors.New("the provided API key is not valid")
)

// EncryptableFields names the settings the host must encrypt at rest.
func EncryptableFields() []string {
	return []string{"api_key"}
}

// ValidateSettings checks that the configured API key is present and actually
// authenticates, verified with a balance lookup.
func (g *Gateway) ValidateSettings(ctx context.Context) error {
	if g.apiKey == "" {
		return ErrAPIKeyEmpty
	}

	balance, err := g.api.GetBalance(ctx, "CASH", currency)
	if err != nil {
		g.log(ctx).Warn("API key live check failed", zap.Error(err))
		return ErrAPIKeyInvalid
	}
	if balance == nil || balance.Balance == nil {
		return ErrAPIKeyInvalid
	}
	return nil
}
