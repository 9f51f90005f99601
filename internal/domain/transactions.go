package domain

// Transaction is one purchase email: its raw receipt lines as handed over by
// the extraction step, and the parsed result once the engine has run.
type Transaction struct {
	ID      string   `json:"id"`
	Index   int      `json:"idx"`
	DateRaw string   `json:"date_raw,omitempty"`
	Source  string   `json:"source,omitempty"` // e.g., "receipt_raw.json"
	Lines   []string `json:"receipt_raw,omitempty"`

	Receipt  *ReceiptDocument `json:"receipt_data,omitempty"`
	Warnings []string         `json:"warning,omitempty"`

	// WarningCodes[i] classifies Warnings[i].
	WarningCodes []string `json:"warning_codes,omitempty"`
}

// AddWarning appends one diagnostic to the transaction record.
func (t *Transaction) AddWarning(code, message string) {
	t.Warnings = append(t.Warnings, message)
	t.WarningCodes = append(t.WarningCodes, code)
}

// HasSkippedLines reports whether the parsed receipt left lines unaccounted for.
func (t *Transaction) HasSkippedLines() bool {
	return t.Receipt != nil && len(t.Receipt.Skipped) > 0
}
