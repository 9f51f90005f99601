package receipt

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Receipt line shapes. Lines are fixed width and right-padded with blanks,
// so every pattern tolerates trailing padding instead of assuming a width.
var (
	storeHeaderPattern = regexp.MustCompile(`^Store #(\d+)`)
	taxPattern         = regexp.MustCompile(`^\s*TAX\s+(\d+\.\d\d)\s*$`)
	balancePattern     = regexp.MustCompile(`^\s*\**\s*BALANCE\s+(\d+\.\d\d)\s*$`)

	// "WT      RED SEEDLESS GRA        6.10 F"
	itemPattern = regexp.MustCompile(`^(WT|MR)?\s+(\S.{15})\s*(\d+\.\d\d)([ \-A-Z][A-Z])\s*$`)
	// "SC      STORE COUPON            1.00-F"
	creditPattern = regexp.MustCompile(`^SC\s+(\S.{15})\s*(\d+\.\d\d)(-F| F)\s*$`)
	// "        BONUS BUY SAVINGS       0.99-F"
	savingsPattern = regexp.MustCompile(`^\s+(BONUS BUY SAVINGS|SAVINGS)\s+(\d+\.\d\d)([ \-][A-Z])\s*$`)
	// "   PRICE YOU PAY           3.00       "
	verifyPattern = regexp.MustCompile(`^\s+(PRICE YOU PAY)\s+(\d+\.\d\d|FREE)\s*$`)
	// "   PRICE YOU PAY FOR   4   2.00       "
	verifyQuantityPattern = regexp.MustCompile(`^\s+(PRICE YOU PAY FOR)\s+(\d+)\s+(\d+\.\d\d|FREE)\s*$`)
	// " 1.12 lb @ 2.99 /lb = 3.35            "
	weightPattern = regexp.MustCompile(`^\s+(\d+\.\d+ lb @ \d+\.\d+ /lb)(?:\s*=\s*(\d+\.\d\d))?\s*$`)
	// " 4 @ 0.79                             "
	quantityPattern = regexp.MustCompile(`^\s+(\d+ @ \d+\.\d+)\s*$`)
)

// indentMarkers are the prefixes that make a line part of an item block.
var indentMarkers = []string{" ", "WT ", "MR ", "SC "}

const freePrice = "FREE"

type lineKind int

const (
	lineSavings lineKind = iota
	lineItem
	lineCredit
	lineVerify
	lineVerifyQuantity
	lineWeight
	lineQuantity
)

// lineMatch holds the fields extracted from an indented line.
type lineMatch struct {
	kind     lineKind
	marker   string
	name     string
	amount   decimal.Decimal
	code     string
	quantity int
	readout  string
	cost     *decimal.Decimal
}

type lineMatcher func(line string) (lineMatch, bool)

// matchers is the compiled, read-only pattern set for one store format.
type matchers struct {
	category *regexp.Regexp

	// indented is tried in order; the first match wins. Savings must come
	// before items because both end in an amount and a code.
	indented []lineMatcher
}

func newMatchers(categories []string) *matchers {
	quoted := make([]string, 0, len(categories))
	for _, c := range categories {
		quoted = append(quoted, regexp.QuoteMeta(c))
	}
	return &matchers{
		category: regexp.MustCompile(`^(` + strings.Join(quoted, "|") + `)\s*$`),
		indented: []lineMatcher{
			matchSavings,
			matchItem,
			matchCredit,
			matchVerify,
			matchVerifyQuantity,
			matchWeight,
			matchQuantity,
		},
	}
}

func (m *matchers) matchCategory(line string) (string, bool) {
	sm := m.category.FindStringSubmatch(line)
	if sm == nil {
		return "", false
	}
	return sm[1], true
}

func (m *matchers) matchIndented(line string) (lineMatch, bool) {
	for _, match := range m.indented {
		if lm, ok := match(line); ok {
			return lm, true
		}
	}
	return lineMatch{}, false
}

func matchStoreHeader(line string) (int, bool) {
	sm := storeHeaderPattern.FindStringSubmatch(line)
	if sm == nil {
		return 0, false
	}
	n, err := strconv.Atoi(sm[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

func isTerminator(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && strings.Trim(trimmed, "*") == ""
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func isUnindented(line string) bool {
	for _, marker := range indentMarkers {
		if strings.HasPrefix(line, marker) {
			return false
		}
	}
	return true
}

func matchTax(line string) (decimal.Decimal, bool) {
	return matchAmount(taxPattern, line)
}

func matchBalance(line string) (decimal.Decimal, bool) {
	return matchAmount(balancePattern, line)
}

func matchAmount(pattern *regexp.Regexp, line string) (decimal.Decimal, bool) {
	sm := pattern.FindStringSubmatch(line)
	if sm == nil {
		return decimal.Zero, false
	}
	return decimal.RequireFromString(sm[1]), true
}

func matchSavings(line string) (lineMatch, bool) {
	sm := savingsPattern.FindStringSubmatch(line)
	if sm == nil {
		return lineMatch{}, false
	}
	return lineMatch{kind: lineSavings, name: sm[1], amount: decimal.RequireFromString(sm[2]), code: sm[3]}, true
}

func matchItem(line string) (lineMatch, bool) {
	sm := itemPattern.FindStringSubmatch(line)
	if sm == nil {
		return lineMatch{}, false
	}
	return lineMatch{
		kind:   lineItem,
		marker: sm[1],
		name:   strings.TrimSpace(sm[2]),
		amount: decimal.RequireFromString(sm[3]),
		code:   sm[4],
	}, true
}

func matchCredit(line string) (lineMatch, bool) {
	sm := creditPattern.FindStringSubmatch(line)
	if sm == nil {
		return lineMatch{}, false
	}
	return lineMatch{
		kind:   lineCredit,
		marker: "SC",
		name:   strings.TrimSpace(sm[1]),
		amount: decimal.RequireFromString(sm[2]),
		code:   sm[3],
	}, true
}

func matchVerify(line string) (lineMatch, bool) {
	sm := verifyPattern.FindStringSubmatch(line)
	if sm == nil {
		return lineMatch{}, false
	}
	return lineMatch{kind: lineVerify, name: sm[1], amount: parsePrice(sm[2])}, true
}

func matchVerifyQuantity(line string) (lineMatch, bool) {
	sm := verifyQuantityPattern.FindStringSubmatch(line)
	if sm == nil {
		return lineMatch{}, false
	}
	quantity, err := strconv.Atoi(sm[2])
	if err != nil {
		return lineMatch{}, false
	}
	return lineMatch{kind: lineVerifyQuantity, name: sm[1], quantity: quantity, amount: parsePrice(sm[3])}, true
}

func matchWeight(line string) (lineMatch, bool) {
	sm := weightPattern.FindStringSubmatch(line)
	if sm == nil {
		return lineMatch{}, false
	}
	lm := lineMatch{kind: lineWeight, readout: sm[1]}
	if sm[2] != "" {
		cost := decimal.RequireFromString(sm[2])
		lm.cost = &cost
	}
	return lm, true
}

func matchQuantity(line string) (lineMatch, bool) {
	sm := quantityPattern.FindStringSubmatch(line)
	if sm == nil {
		return lineMatch{}, false
	}
	return lineMatch{kind: lineQuantity, readout: sm[1]}, true
}

// parsePrice reads a verify amount; FREE is a zero price.
func parsePrice(s string) decimal.Decimal {
	if s == freePrice {
		return decimal.RequireFromString("0.00")
	}
	return decimal.RequireFromString(s)
}

// parseQuantityReadout splits "4 @ 0.79" into its count and unit price.
func parseQuantityReadout(readout string) (int, decimal.Decimal, bool) {
	count, unit, found := strings.Cut(readout, "@")
	if !found {
		return 0, decimal.Zero, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(count))
	if err != nil {
		return 0, decimal.Zero, false
	}
	price, err := decimal.NewFromString(strings.TrimSpace(unit))
	if err != nil {
		return 0, decimal.Zero, false
	}
	return n, price, true
}
