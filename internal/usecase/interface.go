package usecase

import (
	"context"

	"grocery-reconciliation/internal/domain"
)

// TransactionRepository defines the interface for fetching raw receipts.
// The usecase layer depends on this interface, not on a concrete implementation.
//
//go:generate mockgen -destination=mocks/mock_repository.go -source=interface.go TransactionRepository
type TransactionRepository interface {
	GetTransactions(ctx context.Context, paths []string) ([]domain.Transaction, error)
}
