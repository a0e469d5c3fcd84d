package parsing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	inventoryHeader4 = regexp.MustCompile(`(?i)^category\s*,\s*item\s+code\s*,\s*item\s+name\s*,\s*quantity`)
	codeToken        = regexp.MustCompile(`^[A-Za-z0-9-]*\d[A-Za-z0-9-]*$`)
)

// ExtractInventoryItems parses stock-report rows. Every accepted row yields
// an item with zero prices, inventory reports carry quantities only.
func ExtractInventoryItems(lines []string) []LineItem {
	fourColumn := false
	for _, line := range lines {
		if inventoryHeader4.MatchString(line) {
			fourColumn = true
			break
		}
	}

	var items []LineItem
	for _, line := range lines {
		if isInventoryHeader(line) || isFooterDescription(line) {
			continue
		}
		if item, ok := parseInventoryRow(line, fourColumn); ok {
			items = append(items, item)
		}
	}
	return items
}

func isInventoryHeader(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "item code") ||
		strings.Contains(lower, "item name") ||
		strings.Contains(lower, "valuation report")
}

func parseInventoryRow(line string, fourColumn bool) (LineItem, bool) {
	if cols := splitColumns(line); len(cols) >= 3 {
		// Category,Item Code,Item Name,Quantity layout when the header said so.
		if fourColumn && len(cols) >= 4 {
			if qty, err := strconv.Atoi(cols[3]); err == nil && codeToken.MatchString(cols[1]) {
				return inventoryItem(cols[2], qty), true
			}
		}
		if qty, err := strconv.Atoi(cols[2]); err == nil && codeToken.MatchString(cols[0]) {
			return inventoryItem(cols[1], qty), true
		}
		return LineItem{}, false
	}

	// Whitespace layout: code, name tokens, trailing integer quantity.
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return LineItem{}, false
	}
	qty, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil || !codeToken.MatchString(fields[0]) || !strings.ContainsAny(fields[0], "0123456789") {
		return LineItem{}, false
	}
	name := strings.Join(fields[1:len(fields)-1], " ")
	return inventoryItem(name, qty), true
}

func inventoryItem(name string, qty int) LineItem {
	if qty < 0 {
		qty = 0
	}
	return LineItem{Name: strings.TrimSpace(name), Quantity: qty}
}

func splitColumns(line string) []string {
	if !strings.Contains(line, ",") {
		return nil
	}
	parts := strings.Split(line, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		cols = append(cols, strings.TrimSpace(p))
	}
	return cols
}
