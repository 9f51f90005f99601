package gateway

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"grocery-reconciliation/internal/domain"
)

// readCSV reads "transaction_id,line" rows. Lines keep their padding, and the
// rows of one transaction keep their file order even when interleaved.
func (r *FileTransactionRepository) readCSV(path string) ([]domain.Transaction, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open receipt file %s: %w", path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = false
	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header from %s: %w", path, err)
	}

	var transactions []domain.Transaction
	index := make(map[string]int)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading record from %s: %w", path, err)
		}

		id := record[0]
		if id == "" {
			return nil, fmt.Errorf("empty transaction_id in %s", path)
		}

		i, ok := index[id]
		if !ok {
			i = len(transactions)
			index[id] = i
			transactions = append(transactions, domain.Transaction{ID: id, Index: i})
		}
		transactions[i].Lines = append(transactions[i].Lines, record[1])
	}
	return transactions, nil
}
