package receipt

import (
	"strings"

	"github.com/shopspring/decimal"

	"grocery-reconciliation/internal/domain"
)

// Mode tells whether a document is still being interpreted line by line.
type Mode int

const (
	// ModeNormal interprets every line.
	ModeNormal Mode = iota
	// ModeRecovery records every remaining grocery line as skipped.
	// Once entered it is never left for the rest of the document.
	ModeRecovery
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeRecovery:
		return "recovery"
	default:
		return "unknown"
	}
}

type groceryState int

const (
	seekingStoreHeader groceryState = iota
	inGroceries
	afterGroceries
)

// cursor is the in-progress position of the parser within the receipt.
// At most one item is open, and at most one descriptor of each kind waits.
type cursor struct {
	category string
	item     *domain.Item
	weight   *pendingReadout
	quantity *pendingReadout
}

// parser turns one receipt's lines into a document in a single pass.
type parser struct {
	matchers *matchers
	taxable  map[string]bool

	doc   *domain.ReceiptDocument
	diag  *Diagnostics
	state groceryState
	mode  Mode
	cur   cursor
}

func (p *parser) run(lines []string) {
	for _, line := range lines {
		p.feed(line)
	}
	if p.state == inGroceries {
		p.diag.Warnf(WarnUnfinishedGroceries, "never finished parsing groceries")
	}
	p.cur.item = nil
}

func (p *parser) feed(line string) {
	if isBlank(line) {
		return
	}

	// Everything before the store header is noise.
	if p.doc.StoreNumber == nil {
		if n, ok := matchStoreHeader(line); ok {
			p.doc.StoreNumber = &n
			p.state = inGroceries
		}
		return
	}

	if isTerminator(line) {
		p.endGroceries()
		return
	}
	if tax, ok := matchTax(line); ok {
		p.endGroceries()
		if p.doc.Tax != nil {
			p.diag.Warnf(WarnDuplicateTax, "duplicate TAX line: %s replaces %s",
				tax.StringFixed(2), p.doc.Tax.StringFixed(2))
		}
		p.doc.Tax = &tax
		return
	}
	if balance, ok := matchBalance(line); ok {
		p.endGroceries()
		if p.doc.Balance != nil {
			p.diag.Warnf(WarnDuplicateBalance, "duplicate BALANCE line: %s replaces %s",
				balance.StringFixed(2), p.doc.Balance.StringFixed(2))
		}
		p.doc.Balance = &balance
		return
	}

	if p.state != inGroceries {
		return
	}
	if p.mode == ModeRecovery {
		p.skip(line)
		return
	}

	if isUnindented(line) {
		if category, ok := p.matchers.matchCategory(line); ok {
			p.cur.category = category
			return
		}
		p.cur.category = ""
		p.recover(line, WarnUnknownLine, "unrecognized line %q", strings.TrimSpace(line))
		return
	}

	if p.cur.category == "" {
		p.recover(line, WarnMissingCategory, "missing category for line %q", strings.TrimSpace(line))
		return
	}

	lm, ok := p.matchers.matchIndented(line)
	if !ok {
		p.recover(line, WarnUnknownLine, "unrecognized line %q", strings.TrimSpace(line))
		return
	}

	switch lm.kind {
	case lineItem:
		p.openItem(lm, line)
	case lineSavings, lineCredit:
		p.adjustItem(lm, line)
	case lineVerify, lineVerifyQuantity:
		p.verifyItem(lm, line)
	case lineWeight:
		p.cur.weight = p.pending(lm, line)
	case lineQuantity:
		p.cur.quantity = p.pending(lm, line)
	}
}

// openItem starts a new item, implicitly closing the previous one.
func (p *parser) openItem(lm lineMatch, line string) {
	item := &domain.Item{
		Name:        lm.name,
		Price:       decimal.Zero,
		Category:    p.cur.category,
		Taxable:     p.isTaxable(lm.code),
		Adjustments: make([]domain.Adjustment, 0, 1),
		Lines:       make([]string, 0, 1),
	}
	p.addSum(item, lm.name, lm.amount, lm.code, line)
	p.doc.Items = append(p.doc.Items, item)
	p.cur.item = item

	if p.cur.weight != nil && lm.marker == "WT" {
		p.attachWeight(item, p.cur.weight, false)
		p.cur.weight = nil
	}
	if p.cur.quantity != nil {
		p.attachQuantity(item, p.cur.quantity)
		p.cur.quantity = nil
	}
}

// adjustItem applies a savings or credit line to the open item.
// Several credits may stack against the same item.
func (p *parser) adjustItem(lm lineMatch, line string) {
	item := p.cur.item
	if item == nil {
		p.recover(line, WarnNoOpenItem, "no open item for adjustment %q", strings.TrimSpace(line))
		return
	}
	p.addSum(item, lm.name, lm.amount, lm.code, line)

	if p.cur.quantity != nil {
		p.attachQuantity(item, p.cur.quantity)
		p.cur.quantity = nil
	}
}

// verifyItem checks a PRICE YOU PAY line against the open item's total.
// A match closes the item; a mismatch leaves it open and starts recovery.
func (p *parser) verifyItem(lm lineMatch, line string) {
	item := p.cur.item
	if item == nil {
		p.recover(line, WarnNoOpenItem, "no open item for price check %q", strings.TrimSpace(line))
		return
	}

	var quantity *int
	if lm.kind == lineVerifyQuantity {
		q := lm.quantity
		quantity = &q
	}
	p.addVerify(item, lm.name, lm.amount, quantity, line)

	if p.cur.weight != nil {
		p.attachWeight(item, p.cur.weight, true)
		p.cur.weight = nil
	}
	if p.cur.quantity != nil {
		p.attachQuantity(item, p.cur.quantity)
		p.cur.quantity = nil
	}

	if !lm.amount.Equal(item.Price) {
		p.mode = ModeRecovery
		p.diag.Warnf(WarnPriceMismatch, "price mismatch for %q: receipt says %s, adjustments sum to %s",
			item.Name, lm.amount.StringFixed(2), item.Price.StringFixed(2))
		return
	}
	p.cur.item = nil
}

func (p *parser) pending(lm lineMatch, line string) *pendingReadout {
	r := &pendingReadout{line: line, readout: lm.readout, cost: lm.cost, item: p.cur.item}
	if r.item != nil {
		r.at = len(r.item.Lines)
	}
	return r
}

// endGroceries closes any open item and category; tax, balance and the
// terminator all end the itemized section.
func (p *parser) endGroceries() {
	p.cur = cursor{}
	p.state = afterGroceries
}

func (p *parser) recover(line string, code WarningCode, format string, args ...any) {
	p.diag.Warnf(code, format, args...)
	p.mode = ModeRecovery
	p.skip(line)
}

func (p *parser) skip(line string) {
	p.doc.Skipped = append(p.doc.Skipped, line)
}
