package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"grocery-reconciliation/internal/domain"
	"grocery-reconciliation/internal/receipt"
)

// minReceiptLines is the shortest receipt that still looks like a full one.
const minReceiptLines = 10

const (
	warnShortReceipt receipt.WarningCode = "short_receipt"
	warnUnevenWidths receipt.WarningCode = "uneven_widths"
)

// ReceiptUseCase orchestrates parsing and reconciling a batch of receipts.
type ReceiptUseCase struct {
	repo   TransactionRepository
	engine *receipt.Engine
	logger *slog.Logger
}

// NewReceiptUseCase creates a new instance of the usecase.
func NewReceiptUseCase(repo TransactionRepository, engine *receipt.Engine, logger *slog.Logger) *ReceiptUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReceiptUseCase{repo: repo, engine: engine, logger: logger}
}

// Process loads every receipt from paths, parses and reconciles each one and
// collects the results into a report.
func (uc *ReceiptUseCase) Process(ctx context.Context, paths []string) (*domain.BatchReport, error) {
	// Step 1: Data Ingestion
	transactions, err := uc.repo.GetTransactions(ctx, paths)
	if err != nil {
		return nil, fmt.Errorf("could not get transactions: %w", err)
	}

	report := domain.BatchReport{
		Transactions: make([]domain.Transaction, 0, len(transactions)),
	}

	// Step 2: Parse and reconcile each receipt on its own
	for _, tx := range transactions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		warnings := lineShapeWarnings(tx.Lines)

		res := uc.engine.Process(tx.Lines)
		tx.Receipt = res.Document
		tx.Lines = nil
		for _, w := range append(warnings, res.Diagnostics.Warnings()...) {
			tx.AddWarning(string(w.Code), w.Message)
		}

		uc.logger.Debug("receipt processed",
			"id", tx.ID,
			"source", tx.Source,
			"items", len(tx.Receipt.Items),
			"mode", res.Mode.String(),
		)
		if len(tx.Warnings) > 0 {
			uc.logger.Warn("receipt has warnings",
				"id", tx.ID,
				"count", len(tx.Warnings),
				"skipped", len(tx.Receipt.Skipped),
			)
		}

		uc.tally(&report.Summary, &tx)
		report.Transactions = append(report.Transactions, tx)
	}

	return &report, nil
}

func (uc *ReceiptUseCase) tally(summary *domain.Summary, tx *domain.Transaction) {
	summary.TotalTransactionsProcessed++
	summary.TotalItems += len(tx.Receipt.Items)

	if len(tx.Warnings) == 0 {
		summary.CleanReceipts++
	} else {
		summary.ReceiptsWithWarnings++
	}
	if tx.HasSkippedLines() {
		summary.ReceiptsWithSkippedLines++
	}
	if tx.Receipt.Balance != nil {
		summary.TotalBalance = summary.TotalBalance.Add(*tx.Receipt.Balance)
	}
}

// lineShapeWarnings flags receipts that look truncated or were not rendered
// at a single fixed width.
func lineShapeWarnings(lines []string) []receipt.Warning {
	var warnings []receipt.Warning
	if len(lines) < minReceiptLines {
		warnings = append(warnings, receipt.Warning{Code: warnShortReceipt, Message: "Receipt seems kinda short?"})
	}

	seen := make(map[int]bool)
	for _, line := range lines {
		seen[len(line)] = true
	}
	if len(seen) > 1 {
		widths := make([]int, 0, len(seen))
		for w := range seen {
			widths = append(widths, w)
		}
		sort.Ints(widths)
		warnings = append(warnings, receipt.Warning{
			Code:    warnUnevenWidths,
			Message: fmt.Sprintf("Receipt lines are not all the same length: %v", widths),
		})
	}
	return warnings
}
