// Package report exposes accounting reports pulled from the ledger provider.
package report

import (
	"context"

	"github.com/Tebogokaulela455/kaulela-backend/internal/quickbooks"
)

// Accounting fetches financial reports.
type Accounting interface {
	GetProfitAndLoss(ctx context.Context, startDate, endDate string) (*quickbooks.ProfitAndLoss, error)
}

// Service wraps the accounting provider.
type Service struct {
	accounting Accounting
}

func New(accounting Accounting) *Service {
	return &Service{accounting: accounting}
}

// ProfitAndLoss returns the profit and loss report for the period.
func (s *Service) ProfitAndLoss(ctx context.Context, startDate, endDate string) (*quickbooks.ProfitAndLoss, error) {
	return s.accounting.GetProfitAndLoss(ctx, startDate, endDate)
}
