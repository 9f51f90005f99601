package receipt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocery-reconciliation/internal/config"
	"grocery-reconciliation/internal/domain"
	"grocery-reconciliation/internal/receipt"
)

// sampleReceipt is a complete receipt: 7.83 of taxable goods at 6% is 0.47 tax.
func sampleReceipt() []string {
	return []string{
		"       WELCOME TO OUR STORE           ",
		blankLine,
		"Store #55                             ",
		dairyLine,
		"        BLACKCHRY 0% 4PK        5.99 F",
		"GENERAL MERCHANDISE                   ",
		"        SL GARLIC PRESS         8.59 T",
		"        BONUS BUY SAVINGS       0.86-T",
		"   PRICE YOU PAY           7.73       ",
		"        PAPER NAPKINS           0.10 T",
		terminatorLine,
		"                        TAX     0.47  ",
		"****  BALANCE                  14.29  ",
	}
}

func replaceLine(lines []string, old, with string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line == old {
			line = with
		}
		out[i] = line
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestEngine_Reconcile_SampleReceipt(t *testing.T) {
	engine := newTestEngine(t)

	t.Run("clean receipt has no warnings", func(t *testing.T) {
		res := engine.Process(sampleReceipt())

		assert.True(t, res.Clean())
		require.NotNil(t, res.Document.StoreNumber)
		assert.Equal(t, 55, *res.Document.StoreNumber)
		assert.Len(t, res.Document.Items, 3)
		assert.Equal(t, "0.47", res.Document.Tax.StringFixed(2))
		assert.Equal(t, "14.29", res.Document.Balance.StringFixed(2))
		assert.Empty(t, res.Diagnostics.Messages())
	})

	t.Run("perturbed tax", func(t *testing.T) {
		lines := replaceLine(sampleReceipt(),
			"                        TAX     0.47  ",
			"                        TAX     0.48  ")
		res := engine.Process(lines)

		assert.Equal(t, 1, res.Diagnostics.Count(receipt.WarnTaxMismatch))
		assert.Equal(t, 1, res.Diagnostics.Count(receipt.WarnBalanceMismatch))
		prices := make([]string, 0, len(res.Document.Items))
		for _, item := range res.Document.Items {
			prices = append(prices, item.Price.StringFixed(2))
		}
		assert.Equal(t, []string{"5.99", "7.73", "0.10"}, prices)
	})

	t.Run("perturbed balance", func(t *testing.T) {
		lines := replaceLine(sampleReceipt(),
			"****  BALANCE                  14.29  ",
			"****  BALANCE                  14.30  ")
		res := engine.Process(lines)

		assert.Equal(t, 0, res.Diagnostics.Count(receipt.WarnTaxMismatch))
		assert.Equal(t, 1, res.Diagnostics.Count(receipt.WarnBalanceMismatch))
	})

	t.Run("recovered receipt is not reconciled", func(t *testing.T) {
		lines := replaceLine(sampleReceipt(),
			"   PRICE YOU PAY           7.73       ",
			"   PRICE YOU PAY           7.00       ")
		res := engine.Process(lines)

		assert.False(t, res.Clean())
		assert.Equal(t, 0, res.Diagnostics.Count(receipt.WarnTaxMismatch))
		assert.Equal(t, 0, res.Diagnostics.Count(receipt.WarnBalanceMismatch))
		assert.Equal(t, 1, res.Diagnostics.Count(receipt.WarnSkippedLines))
		assert.Equal(t, []string{"        PAPER NAPKINS           0.10 T"}, res.Document.Skipped)
	})
}

func TestEngine_Reconcile(t *testing.T) {
	taxable := func(price string) *domain.Item {
		return &domain.Item{Name: "TAXABLE", Price: dec(price), Taxable: true}
	}
	food := func(price string) *domain.Item {
		return &domain.Item{Name: "FOOD", Price: dec(price)}
	}
	store := 55

	tests := []struct {
		name  string
		doc   *domain.ReceiptDocument
		mode  receipt.Mode
		codes map[receipt.WarningCode]int
	}{
		{
			name: "tax rounds up to the cent",
			doc: &domain.ReceiptDocument{
				StoreNumber: &store,
				Items:       []*domain.Item{taxable("7.73"), taxable("0.10")},
				Tax:         decPtr("0.47"),
				Balance:     decPtr("8.30"),
			},
			codes: map[receipt.WarningCode]int{receipt.WarnTaxMismatch: 0, receipt.WarnBalanceMismatch: 0},
		},
		{
			name: "tax off by a cent",
			doc: &domain.ReceiptDocument{
				StoreNumber: &store,
				Items:       []*domain.Item{taxable("7.83")},
				Tax:         decPtr("0.48"),
				Balance:     decPtr("8.31"),
			},
			codes: map[receipt.WarningCode]int{receipt.WarnTaxMismatch: 1, receipt.WarnBalanceMismatch: 0},
		},
		{
			name: "tax without taxable items",
			doc: &domain.ReceiptDocument{
				StoreNumber: &store,
				Items:       []*domain.Item{food("5.00")},
				Tax:         decPtr("0.30"),
				Balance:     decPtr("5.30"),
			},
			codes: map[receipt.WarningCode]int{receipt.WarnTaxWithoutTaxable: 1, receipt.WarnTaxMismatch: 1},
		},
		{
			name: "zero tax is not checked",
			doc: &domain.ReceiptDocument{
				StoreNumber: &store,
				Items:       []*domain.Item{taxable("5.00")},
				Tax:         decPtr("0.00"),
				Balance:     decPtr("5.00"),
			},
			codes: map[receipt.WarningCode]int{receipt.WarnTaxMismatch: 0, receipt.WarnTaxWithoutTaxable: 0},
		},
		{
			name: "balance without tax",
			doc: &domain.ReceiptDocument{
				StoreNumber: &store,
				Items:       []*domain.Item{food("5.00"), food("1.25")},
				Balance:     decPtr("6.25"),
			},
			codes: map[receipt.WarningCode]int{receipt.WarnBalanceMismatch: 0, receipt.WarnMissingBalance: 0},
		},
		{
			name: "missing balance",
			doc: &domain.ReceiptDocument{
				StoreNumber: &store,
				Items:       []*domain.Item{food("5.00")},
			},
			codes: map[receipt.WarningCode]int{receipt.WarnMissingBalance: 1},
		},
		{
			name: "missing store number skips totals",
			doc: &domain.ReceiptDocument{
				Items: []*domain.Item{},
			},
			codes: map[receipt.WarningCode]int{receipt.WarnMissingStoreNumber: 1, receipt.WarnMissingBalance: 0},
		},
		{
			name: "skipped lines are counted",
			doc: &domain.ReceiptDocument{
				StoreNumber: &store,
				Items:       []*domain.Item{food("5.00")},
				Skipped:     []string{"a", "b", "c"},
				Balance:     decPtr("9.99"),
			},
			mode:  receipt.ModeRecovery,
			codes: map[receipt.WarningCode]int{receipt.WarnSkippedLines: 1, receipt.WarnBalanceMismatch: 0},
		},
	}

	engine := newTestEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := make([]string, 0, len(tt.doc.Items))
			for _, item := range tt.doc.Items {
				before = append(before, item.Price.String())
			}

			res := &receipt.Result{Document: tt.doc, Mode: tt.mode, Diagnostics: &receipt.Diagnostics{}}
			engine.Reconcile(res)

			for code, want := range tt.codes {
				assert.Equal(t, want, res.Diagnostics.Count(code), "%s: %v", code, res.Diagnostics.Messages())
			}

			after := make([]string, 0, len(tt.doc.Items))
			for _, item := range tt.doc.Items {
				after = append(after, item.Price.String())
			}
			assert.Equal(t, before, after)
		})
	}
}

func TestEngine_Reconcile_SkippedMessage(t *testing.T) {
	engine := newTestEngine(t)
	res := &receipt.Result{
		Document:    &domain.ReceiptDocument{Skipped: []string{"a", "b"}},
		Mode:        receipt.ModeRecovery,
		Diagnostics: &receipt.Diagnostics{},
	}
	engine.Reconcile(res)

	assert.Contains(t, res.Diagnostics.Messages(), "2 receipt lines have not been accounted for (skipped)")
}

func TestExpectedTax(t *testing.T) {
	tests := []struct {
		taxable string
		rate    string
		want    string
	}{
		{taxable: "7.83", rate: "0.06", want: "0.47"},
		{taxable: "7.00", rate: "0.06", want: "0.42"},
		{taxable: "0.01", rate: "0.06", want: "0.01"},
		{taxable: "0", rate: "0.06", want: "0.00"},
		{taxable: "10.00", rate: "0.0625", want: "0.63"},
	}

	for _, tt := range tests {
		t.Run(tt.taxable+"@"+tt.rate, func(t *testing.T) {
			got := receipt.ExpectedTax(dec(tt.taxable), dec(tt.rate))
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestNewEngine_CustomRules(t *testing.T) {
	rules := config.Default().Receipt
	rules.TaxRate = dec("0.07")
	rules.Categories = []string{"SNACKS"}

	engine, err := receipt.NewEngine(rules)
	require.NoError(t, err)
	assert.Equal(t, "0.07", engine.TaxRate().StringFixed(2))

	res := engine.Parse([]string{
		storeLine,
		"SNACKS                                ",
		"        PRETZELS                2.00 T",
		dairyLine,
	})
	assert.Len(t, res.Document.Items, 1)
	assert.Equal(t, []string{dairyLine}, res.Document.Skipped)

	_, err = receipt.NewEngine(config.ReceiptRules{})
	assert.Error(t, err)
}
