package parsing

import (
	"regexp"
	"strings"
)

// code, name, integer-quantity
var inventoryCSVRow = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*\d[A-Za-z0-9-]*\s*,\s*[^,]+,\s*\d+\s*$`)

// DetectFormat decides whether the text is a tabular stock report or a
// priced invoice. Ambiguity defaults to INVOICE, inventory-only parsing
// would drop the prices of a real invoice.
func DetectFormat(text string) DocumentFormat {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "item code") && strings.Contains(lower, "item name") {
		hasBalanceQty := strings.Contains(lower, "balance") && strings.Contains(lower, "quantity")
		if hasBalanceQty || strings.Contains(lower, "valuation report") {
			return FormatInventoryReport
		}
	}

	csvRows := 0
	for _, line := range strings.Split(text, "\n") {
		if inventoryCSVRow.MatchString(strings.TrimSpace(line)) {
			csvRows++
			if csvRows >= 2 {
				return FormatInventoryReport
			}
		}
	}
	return FormatInvoice
}
