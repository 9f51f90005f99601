package gateway

import (
	"encoding/json"
	"fmt"
	"os"

	"grocery-reconciliation/internal/domain"
)

// readJSON reads the receipt_raw.json shape written by the email extraction step.
func (r *FileTransactionRepository) readJSON(path string) ([]domain.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open receipt file %s: %w", path, err)
	}

	var transactions []domain.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("could not decode receipts from %s: %w", path, err)
	}

	for i, tx := range transactions {
		if tx.Lines == nil {
			return nil, fmt.Errorf("transaction %d in %s has no receipt_raw lines", i, path)
		}
	}
	return transactions, nil
}
