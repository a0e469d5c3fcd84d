package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

// Strategy extracts candidate line items from the whole document. Strategies
// are tried in priority order and never merged, the first one that yields at
// least one item wins.
type Strategy interface {
	Name() string
	Extract(lines []string) []LineItem
}

var footerWords = []string{
	"total", "subtotal", "tax", "shipping", "discount", "amount", "payment",
}

// isFooterDescription rejects summary rows that regex strategies would
// otherwise read as items.
func isFooterDescription(desc string) bool {
	lower := strings.ToLower(strings.TrimSpace(desc))
	for _, w := range footerWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func parseAmount(s string) float64 {
	s = strings.TrimSpace(strings.Trim(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// regexStrategy matches one pattern per line. The groups func maps the
// submatches to (name, quantity, unit price).
type regexStrategy struct {
	name    string
	pattern *regexp.Regexp
	groups  func(m []string) (desc string, qty int, unitPrice float64)
}

func (s *regexStrategy) Name() string { return s.name }

func (s *regexStrategy) Extract(lines []string) []LineItem {
	var items []LineItem
	for _, line := range lines {
		m := s.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		desc, qty, price := s.groups(m)
		desc = strings.TrimSpace(desc)
		if desc == "" || isFooterDescription(desc) {
			continue
		}
		item := LineItem{Name: desc, Quantity: qty, UnitPrice: price}
		item.normalize()
		items = append(items, item)
	}
	return items
}

// InvoiceStrategies returns the extraction cascade for priced invoices,
// most specific first.
func InvoiceStrategies() []Strategy {
	return []Strategy{
		&regexStrategy{
			name:    "comma_triple",
			pattern: regexp.MustCompile(`^([^,]+?)\s*,\s*(\d+)\s*,\s*\$?(\d[\d,]*(?:\.\d{1,2})?)\s*$`),
			groups: func(m []string) (string, int, float64) {
				return m[1], parseQuantity(m[2]), parseAmount(m[3])
			},
		},
		&regexStrategy{
			name:    "marked_qty_price",
			pattern: regexp.MustCompile(`(?i)^(.+?)\s+(?:qty[:.]?\s*|x\s*)(\d+)\s+(?:@\s*)?\$?(\d[\d,]*\.\d{2})\s*$`),
			groups: func(m []string) (string, int, float64) {
				return m[1], parseQuantity(m[2]), parseAmount(m[3])
			},
		},
		&regexStrategy{
			name:    "bare_desc_qty_price",
			pattern: regexp.MustCompile(`^(.+?)(?:\s+(\d+))?\s+\$?(\d[\d,]*\.\d{2})\s*$`),
			groups: func(m []string) (string, int, float64) {
				desc := strings.TrimSpace(m[1])
				// Leading digits belong to the quantity-first layout.
				if desc != "" && desc[0] >= '0' && desc[0] <= '9' {
					return "", 0, 0
				}
				qty := 1
				if m[2] != "" {
					qty = parseQuantity(m[2])
				}
				return desc, qty, parseAmount(m[3])
			},
		},
		&regexStrategy{
			name:    "qty_first",
			pattern: regexp.MustCompile(`^(\d+)\s+(.+?)\s+\$?(\d[\d,]*\.\d{2})\s*$`),
			groups: func(m []string) (string, int, float64) {
				return m[2], parseQuantity(m[1]), parseAmount(m[3])
			},
		},
	}
}
