// Package receipt turns the fixed-width text of a grocery receipt into a
// structured document and checks it against the receipt's printed totals.
//
// Parsing is a single pass over the lines. Lines that cannot be classified
// switch the document into recovery: the rest of its grocery lines are kept
// verbatim in ReceiptDocument.Skipped and nothing is guessed. Every finding
// is a warning; the engine never fails and never panics on malformed input.
package receipt

import (
	"fmt"

	"github.com/shopspring/decimal"

	"grocery-reconciliation/internal/config"
	"grocery-reconciliation/internal/domain"
)

// Result is the outcome of parsing and reconciling one receipt.
type Result struct {
	Document    *domain.ReceiptDocument
	Mode        Mode
	Diagnostics *Diagnostics
}

// Clean reports whether every grocery line was interpreted.
func (r *Result) Clean() bool {
	return r.Mode == ModeNormal
}

// Engine parses and reconciles receipts for one store format.
// It holds no per-document state and is safe for concurrent use.
type Engine struct {
	matchers *matchers
	taxable  map[string]bool
	taxRate  decimal.Decimal
}

// NewEngine compiles the receipt rules into an engine.
func NewEngine(rules config.ReceiptRules) (*Engine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid receipt rules: %w", err)
	}

	taxable := make(map[string]bool, len(rules.TaxableCodes))
	for _, code := range rules.TaxableCodes {
		taxable[code] = true
	}

	return &Engine{
		matchers: newMatchers(rules.Categories),
		taxable:  taxable,
		taxRate:  rules.TaxRate,
	}, nil
}

// TaxRate returns the rate used when reconciling tax.
func (e *Engine) TaxRate() decimal.Decimal {
	return e.taxRate
}

// Parse builds a document from one receipt's lines.
func (e *Engine) Parse(lines []string) *Result {
	p := &parser{
		matchers: e.matchers,
		taxable:  e.taxable,
		doc:      domain.NewReceiptDocument(),
		diag:     &Diagnostics{},
		state:    seekingStoreHeader,
		mode:     ModeNormal,
	}
	p.run(lines)

	return &Result{Document: p.doc, Mode: p.mode, Diagnostics: p.diag}
}

// Process parses lines and reconciles the resulting document.
func (e *Engine) Process(lines []string) *Result {
	res := e.Parse(lines)
	e.Reconcile(res)
	return res
}
