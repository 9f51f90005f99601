package receipt

import "fmt"

// WarningCode classifies a diagnostic so callers and tests can filter on it.
type WarningCode string

const (
	WarnTaxableMismatch      WarningCode = "taxable_mismatch"
	WarnWeightCostMissing    WarningCode = "weight_cost_missing"
	WarnWeightCostUnexpected WarningCode = "weight_cost_unexpected"
	WarnWeightAmountMismatch WarningCode = "weight_amount_mismatch"
	WarnWeightPriceMismatch  WarningCode = "weight_price_mismatch"
	WarnQuantityMismatch     WarningCode = "quantity_mismatch"
	WarnQuantityMalformed    WarningCode = "quantity_malformed"
	WarnDuplicateTax         WarningCode = "duplicate_tax"
	WarnDuplicateBalance     WarningCode = "duplicate_balance"
	WarnUnknownLine          WarningCode = "unknown_line"
	WarnMissingCategory      WarningCode = "missing_category"
	WarnNoOpenItem           WarningCode = "no_open_item"
	WarnPriceMismatch        WarningCode = "price_mismatch"
	WarnUnfinishedGroceries  WarningCode = "unfinished_groceries"
	WarnMissingStoreNumber   WarningCode = "missing_store_number"
	WarnSkippedLines         WarningCode = "skipped_lines"
	WarnTaxWithoutTaxable    WarningCode = "tax_without_taxable_items"
	WarnTaxMismatch          WarningCode = "tax_mismatch"
	WarnBalanceMismatch      WarningCode = "balance_mismatch"
	WarnMissingBalance       WarningCode = "missing_balance"
)

// Warning is one human-readable finding about a receipt.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}

// Diagnostics is the append-only warning list owned by a single document.
type Diagnostics struct {
	warnings []Warning
}

// Warnf records a warning.
func (d *Diagnostics) Warnf(code WarningCode, format string, args ...any) {
	d.warnings = append(d.warnings, Warning{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Warnings returns the recorded warnings in the order they were raised.
func (d *Diagnostics) Warnings() []Warning {
	return append([]Warning(nil), d.warnings...)
}

// Messages returns the recorded warnings as plain strings.
func (d *Diagnostics) Messages() []string {
	messages := make([]string, 0, len(d.warnings))
	for _, w := range d.warnings {
		messages = append(messages, w.Message)
	}
	return messages
}

// Count returns how many warnings carry code.
func (d *Diagnostics) Count(code WarningCode) int {
	n := 0
	for _, w := range d.warnings {
		if w.Code == code {
			n++
		}
	}
	return n
}

// Len returns the number of recorded warnings.
func (d *Diagnostics) Len() int {
	return len(d.warnings)
}
