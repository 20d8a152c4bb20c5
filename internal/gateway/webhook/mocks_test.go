package webhook

import (
	"context"

	"xendit-gateway/internal/gateway"
	"xendit-gateway/internal/xendit"

	"github.com/stretchr/testify/mock"
)

type MockInvoiceAPI struct {
	mock.Mock
}

func (m *MockInvoiceAPI) CreateInvoice(ctx context.Context, req *xendit.CreateInvoiceRequest) (*xendit.Invoice, error) {
	args := m.Called(ctx, req)
	if inv := args.Get(0); inv != nil {
		return inv.(*xendit.Invoice), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInvoiceAPI) GetInvoice(ctx context.Context, externalID string) ([]xendit.Invoice, error) {
	args := m.Called(ctx, externalID)
	if invs := args.Get(0); invs != nil {
		return invs.([]xendit.Invoice), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockInvoiceAPI) GetBalance(ctx context.Context, accountType, currency string) (*xendit.Balance, error) {
	args := m.Called(ctx, accountType, currency)
	if b := args.Get(0); b != nil {
		return b.(*xendit.Balance), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockContactDirectory struct {
	mock.Mock
}

func (m *MockContactDirectory) PhoneNumbers(ctx context.Context, contactID string) ([]string, error) {
	args := m.Called(ctx, contactID)
	if numbers := args.Get(0); numbers != nil {
		return numbers.([]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, tx *gateway.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
