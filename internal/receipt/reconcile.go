package receipt

import (
	"github.com/shopspring/decimal"

	"grocery-reconciliation/internal/domain"
)

// Reconcile checks the parsed document against its printed tax and balance.
// Findings are appended to res.Diagnostics; the document is not modified.
//
// Tax and balance are only checked when the store header was found and the
// parse never entered recovery, since a partial item list cannot add up.
func (e *Engine) Reconcile(res *Result) {
	doc := res.Document
	diag := res.Diagnostics

	if doc.StoreNumber == nil {
		diag.Warnf(WarnMissingStoreNumber, "missing store number (never started parsing)")
	}
	if n := len(doc.Skipped); n > 0 {
		diag.Warnf(WarnSkippedLines, "%d receipt lines have not been accounted for (skipped)", n)
	}

	if doc.StoreNumber == nil || !res.Clean() {
		return
	}

	e.reconcileTax(doc, diag)
	reconcileBalance(doc, diag)
}

func (e *Engine) reconcileTax(doc *domain.ReceiptDocument, diag *Diagnostics) {
	if doc.Tax == nil || !doc.Tax.IsPositive() {
		return
	}

	taxableSum := decimal.Zero
	for _, item := range doc.Items {
		if item.Taxable {
			taxableSum = taxableSum.Add(item.Price)
		}
	}
	if taxableSum.IsZero() {
		diag.Warnf(WarnTaxWithoutTaxable, "receipt charges tax %s but has no taxable items", doc.Tax.StringFixed(2))
	}

	expected := ExpectedTax(taxableSum, e.taxRate)
	if !doc.Tax.Equal(expected) {
		diag.Warnf(WarnTaxMismatch, "tax mismatch: receipt says %s, expected %s (%s of taxable %s)",
			doc.Tax.StringFixed(2), expected.StringFixed(2), e.taxRate.String(), taxableSum.StringFixed(2))
	}
}

func reconcileBalance(doc *domain.ReceiptDocument, diag *Diagnostics) {
	if doc.Balance == nil {
		diag.Warnf(WarnMissingBalance, "no balance found on receipt")
		return
	}

	expected := decimal.Zero
	for _, item := range doc.Items {
		expected = expected.Add(item.Price)
	}
	if doc.Tax != nil {
		expected = expected.Add(*doc.Tax)
	}
	if !doc.Balance.Equal(expected) {
		diag.Warnf(WarnBalanceMismatch, "balance mismatch: receipt says %s, items and tax sum to %s",
			doc.Balance.StringFixed(2), expected.StringFixed(2))
	}
}

// ExpectedTax applies rate to a taxable amount, rounding up to whole cents.
func ExpectedTax(taxable, rate decimal.Decimal) decimal.Decimal {
	return taxable.Mul(rate).RoundUp(2)
}
