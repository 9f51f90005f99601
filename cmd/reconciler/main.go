package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"grocery-reconciliation/internal/config"
	"grocery-reconciliation/internal/domain"
	"grocery-reconciliation/internal/gateway"
	"grocery-reconciliation/internal/receipt"
	"grocery-reconciliation/internal/usecase"
)

type options struct {
	configPath string
	taxRate    string
	outputPath string
	verbose    bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "reconciler [flags] <file>...",
		Short: "Parse grocery receipts and reconcile them against their printed totals",
		Long: `reconciler reads raw receipt lines from .json, .csv or .txt files, turns
each receipt into items with their adjustments, and checks the items against
the receipt's TAX and BALANCE lines.

The JSON report goes to stdout (or --output). A one-line summary goes to stderr.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, args)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML config file (built-in rules when empty)")
	cmd.Flags().StringVar(&opts.taxRate, "tax-rate", "", "Override the tax rate, e.g. 0.06")
	cmd.Flags().StringVarP(&opts.outputPath, "output", "o", "", "Write the JSON report to this file instead of stdout")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	return cmd
}

func run(ctx context.Context, opts *options, paths []string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, opts.verbose)
	if err != nil {
		return err
	}

	// --- Dependency Injection (Wiring the application) ---
	engine, err := receipt.NewEngine(cfg.Receipt)
	if err != nil {
		return err
	}
	repo := gateway.NewFileTransactionRepository()
	receiptUseCase := usecase.NewReceiptUseCase(repo, engine, logger)

	// --- Execute the Usecase ---
	logger.Info("processing receipts", "files", len(paths), "tax_rate", engine.TaxRate().String())
	report, err := receiptUseCase.Process(ctx, paths)
	if err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	// --- Present the Output ---
	output, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to generate JSON report: %w", err)
	}

	if opts.outputPath == "" {
		fmt.Println(string(output))
	} else if err := os.WriteFile(opts.outputPath, output, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	printSummary(report.Summary)
	return nil
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.taxRate != "" {
		rate, err := decimal.NewFromString(opts.taxRate)
		if err != nil {
			return nil, fmt.Errorf("invalid --tax-rate %q: %w", opts.taxRate, err)
		}
		cfg.Receipt.TaxRate = rate
	}
	return cfg, nil
}

func newLogger(level string, verbose bool) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func printSummary(s domain.Summary) {
	color.New(color.BgBlue, color.FgWhite).Fprintf(os.Stderr, " %d receipts ", s.TotalTransactionsProcessed)
	color.New(color.FgGreen).Fprintf(os.Stderr, " %d clean", s.CleanReceipts)
	fmt.Fprintf(os.Stderr, ", %d items, balance %s", s.TotalItems, s.TotalBalance.StringFixed(2))

	if s.ReceiptsWithSkippedLines > 0 {
		color.New(color.FgRed).Fprintf(os.Stderr, ", still have %d transactions with skipped lines", s.ReceiptsWithSkippedLines)
	} else if s.ReceiptsWithWarnings > 0 {
		color.New(color.FgYellow).Fprintf(os.Stderr, ", %d with warnings", s.ReceiptsWithWarnings)
	}
	fmt.Fprintln(os.Stderr)
}
