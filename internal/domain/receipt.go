package domain

import "github.com/shopspring/decimal"

// AdjustmentKind tags which variant an Adjustment carries.
type AdjustmentKind string

const (
	AdjustmentSum    AdjustmentKind = "sum"
	AdjustmentVerify AdjustmentKind = "verify"
)

// Sum is a priced line that contributes to an item's running total.
// A leading '-' in Code makes it a reduction.
type Sum struct {
	Amount decimal.Decimal `json:"amount"`
	Code   string          `json:"code"`
}

// Verify is a "PRICE YOU PAY" assertion of the item's total so far.
type Verify struct {
	Price    decimal.Decimal `json:"price"`
	Quantity *int            `json:"quantity,omitempty"`
}

// Adjustment is one line that opened, changed or verified an item.
// Exactly one of Sum and Verify is set, matching Kind.
type Adjustment struct {
	Kind AdjustmentKind `json:"type"`
	Name string         `json:"name"`
	*Sum
	*Verify

	// Readouts are stitched in from descriptor lines around the adjustment.
	WeightReadout   string           `json:"weight_readout,omitempty"`
	WeightPrice     *decimal.Decimal `json:"weight_price,omitempty"`
	QuantityReadout string           `json:"quantity_readout,omitempty"`
}

// SignedAmount returns the contribution of a Sum adjustment to the item price.
// Verify adjustments contribute nothing.
func (a Adjustment) SignedAmount() decimal.Decimal {
	if a.Sum == nil {
		return decimal.Zero
	}
	if len(a.Code) > 0 && a.Code[0] == '-' {
		return a.Amount.Neg()
	}
	return a.Amount
}

// Item is a purchased product and every receipt line that priced it.
type Item struct {
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category,omitempty"`
	Taxable     bool            `json:"taxable"`
	Adjustments []Adjustment    `json:"adjustments"`
	Lines       []string        `json:"lines"`
}

// LastAdjustment returns the most recently appended adjustment, or nil.
func (i *Item) LastAdjustment() *Adjustment {
	if len(i.Adjustments) == 0 {
		return nil
	}
	return &i.Adjustments[len(i.Adjustments)-1]
}

// ReceiptDocument is the structured form of one receipt's text block.
type ReceiptDocument struct {
	StoreNumber *int             `json:"store_number,omitempty"`
	Tax         *decimal.Decimal `json:"tax,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
	Items       []*Item          `json:"items"`
	Skipped     []string         `json:"skipped,omitempty"`
}

// NewReceiptDocument returns an empty document ready for parsing.
func NewReceiptDocument() *ReceiptDocument {
	return &ReceiptDocument{Items: make([]*Item, 0)}
}
