package domain

import "github.com/shopspring/decimal"

// Summary provides high-level statistics of a batch run.
type Summary struct {
	TotalTransactionsProcessed int             `json:"total_transactions_processed"`
	CleanReceipts              int             `json:"clean_receipts"`
	ReceiptsWithWarnings       int             `json:"receipts_with_warnings"`
	ReceiptsWithSkippedLines   int             `json:"receipts_with_skipped_lines"`
	TotalItems                 int             `json:"total_items"`
	TotalBalance               decimal.Decimal `json:"total_balance"`
}

// BatchReport is the top-level structure for the final JSON output.
type BatchReport struct {
	Summary      Summary       `json:"summary"`
	Transactions []Transaction `json:"transactions"`
}
