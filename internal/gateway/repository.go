package gateway

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"grocery-reconciliation/internal/domain"
)

// FileTransactionRepository implements the TransactionRepository interface for
// receipt line files. The format is chosen by extension:
//
//	.json  array of {"id", "idx", "date_raw", "receipt_raw": [lines]} records
//	.csv   "transaction_id,line" rows, lines grouped by id in file order
//	.txt   one receipt per file, one receipt line per text line
type FileTransactionRepository struct {
	newID func() string
}

// NewFileTransactionRepository creates a new repository instance.
func NewFileTransactionRepository() *FileTransactionRepository {
	return &FileTransactionRepository{newID: uuid.NewString}
}

// GetTransactions reads every file in paths, in order.
func (r *FileTransactionRepository) GetTransactions(ctx context.Context, paths []string) ([]domain.Transaction, error) {
	var all []domain.Transaction

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var (
			transactions []domain.Transaction
			err          error
		)
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".json":
			transactions, err = r.readJSON(path)
		case ".csv":
			transactions, err = r.readCSV(path)
		case ".txt", "":
			transactions, err = r.readText(path)
		default:
			return nil, fmt.Errorf("unsupported receipt file type %q for %s", ext, path)
		}
		if err != nil {
			return nil, err
		}

		source := filepath.Base(path)
		for i := range transactions {
			transactions[i].Source = source
			if transactions[i].ID == "" {
				transactions[i].ID = r.newID()
			}
		}
		all = append(all, transactions...)
	}
	return all, nil
}
