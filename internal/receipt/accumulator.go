package receipt

import (
	"strings"

	"github.com/shopspring/decimal"

	"grocery-reconciliation/internal/domain"
)

// pendingReadout is a weight or quantity descriptor waiting for the line it
// annotates. It remembers the open item and how many of its lines existed
// when it was read, so it can be spliced back in receipt order.
type pendingReadout struct {
	line    string
	readout string
	cost    *decimal.Decimal
	item    *domain.Item
	at      int
}

func (p *parser) isTaxable(code string) bool {
	return p.taxable[code]
}

// addSum adds a priced line to item and moves its running total.
func (p *parser) addSum(item *domain.Item, name string, amount decimal.Decimal, code, line string) {
	adj := domain.Adjustment{
		Kind: domain.AdjustmentSum,
		Name: strings.TrimSpace(name),
		Sum:  &domain.Sum{Amount: amount, Code: code},
	}

	if taxable := p.isTaxable(code); taxable != item.Taxable {
		p.diag.Warnf(WarnTaxableMismatch, "taxability mismatch on %q: code %q is taxable=%t, item is taxable=%t",
			item.Name, code, taxable, item.Taxable)
	}

	item.Price = item.Price.Add(adj.SignedAmount())
	item.Adjustments = append(item.Adjustments, adj)
	item.Lines = append(item.Lines, line)
}

// addVerify records a price assertion on item.
func (p *parser) addVerify(item *domain.Item, name string, price decimal.Decimal, quantity *int, line string) {
	item.Adjustments = append(item.Adjustments, domain.Adjustment{
		Kind:   domain.AdjustmentVerify,
		Name:   strings.TrimSpace(name),
		Verify: &domain.Verify{Price: price, Quantity: quantity},
	})
	item.Lines = append(item.Lines, line)
}

// spliceLine inserts a descriptor line into item.Lines at the point it was read.
// A descriptor read before item was opened precedes the item's first line.
func spliceLine(item *domain.Item, pending *pendingReadout) {
	at := 0
	if pending.item == item && pending.at <= len(item.Lines) {
		at = pending.at
	}
	item.Lines = append(item.Lines, "")
	copy(item.Lines[at+1:], item.Lines[at:])
	item.Lines[at] = pending.line
}

// attachWeight annotates the item's latest adjustment with a weight readout.
// A cost is only printed on the weight line that precedes the verify line;
// when expected it is checked against the adjustment and the item total.
func (p *parser) attachWeight(item *domain.Item, pending *pendingReadout, expectCost bool) {
	adj := item.LastAdjustment()
	if adj == nil {
		return
	}
	spliceLine(item, pending)
	adj.WeightReadout = pending.readout

	if !expectCost {
		if pending.cost != nil {
			p.diag.Warnf(WarnWeightCostUnexpected, "unexpected cost on opening weight line %q for %q",
				strings.TrimSpace(pending.line), item.Name)
		}
		return
	}

	if pending.cost == nil {
		p.diag.Warnf(WarnWeightCostMissing, "weight line %q for %q is missing its cost",
			strings.TrimSpace(pending.line), item.Name)
		return
	}

	cost := *pending.cost
	adj.WeightPrice = &cost
	if amount := adjustmentAmount(adj); !cost.Equal(amount) {
		p.diag.Warnf(WarnWeightAmountMismatch, "weight cost %s does not match %s amount %s for %q",
			cost.StringFixed(2), adj.Name, amount.StringFixed(2), item.Name)
	}
	if !cost.Equal(item.Price) {
		p.diag.Warnf(WarnWeightPriceMismatch, "weight cost %s does not match item price %s for %q",
			cost.StringFixed(2), item.Price.StringFixed(2), item.Name)
	}
}

// attachQuantity annotates the item's latest adjustment with a quantity readout
// and checks count * unit price against the adjustment amount.
func (p *parser) attachQuantity(item *domain.Item, pending *pendingReadout) {
	adj := item.LastAdjustment()
	if adj == nil {
		return
	}
	spliceLine(item, pending)
	adj.QuantityReadout = pending.readout

	count, unit, ok := parseQuantityReadout(pending.readout)
	if !ok {
		p.diag.Warnf(WarnQuantityMalformed, "malformed quantity readout %q for %q", pending.readout, item.Name)
		return
	}
	total := unit.Mul(decimal.NewFromInt(int64(count)))
	if amount := adjustmentAmount(adj); !total.Equal(amount) {
		p.diag.Warnf(WarnQuantityMismatch, "quantity readout %q (%s) does not match amount %s for %q",
			pending.readout, total.StringFixed(2), amount.StringFixed(2), item.Name)
	}
}

func adjustmentAmount(adj *domain.Adjustment) decimal.Decimal {
	switch {
	case adj.Sum != nil:
		return adj.Sum.Amount
	case adj.Verify != nil:
		return adj.Verify.Price
	}
	return decimal.Zero
}
