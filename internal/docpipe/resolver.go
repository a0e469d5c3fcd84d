package docpipe

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicetradeai-create/bizzauto-project/internal/parsing"
)

// Lines carrying invoice structure are never client-name candidates.
var structureWords = []string{"invoice", "date", "status", "item", "qty", "total"}

// clientNameCandidates returns the ordered list of plausible client names.
// A "Bill To" anchor takes priority: the remainder of the anchor line plus
// the next one to three non-empty lines, minus a "Name:" prefix. Without an
// anchor every non-structural line is a candidate for an exact match.
func clientNameCandidates(lines []string) []string {
	for i, line := range lines {
		lower := strings.ToLower(line)
		idx := strings.Index(lower, "bill to")
		if idx < 0 {
			continue
		}

		var candidates []string
		rest := strings.TrimSpace(strings.TrimLeft(line[idx+len("bill to"):], ":- "))
		if rest != "" {
			candidates = append(candidates, stripNamePrefix(rest))
		}
		for j := i + 1; j < len(lines) && len(candidates) < 3; j++ {
			candidate := stripNamePrefix(strings.TrimSpace(lines[j]))
			if candidate != "" {
				candidates = append(candidates, candidate)
			}
		}
		return candidates
	}

	var candidates []string
	for _, line := range lines {
		if containsStructureWord(line) {
			continue
		}
		candidates = append(candidates, strings.TrimSpace(line))
	}
	return candidates
}

func stripNamePrefix(line string) string {
	lower := strings.ToLower(line)
	if strings.HasPrefix(lower, "name:") {
		return strings.TrimSpace(line[len("name:"):])
	}
	return line
}

func containsStructureWord(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range structureWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// resolveClient looks each candidate up in order and returns the first hit.
func (p *Processor) resolveClient(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, lines []string) (*uuid.UUID, error) {
	for _, candidate := range clientNameCandidates(lines) {
		client, err := p.clientRepo.FindByName(ctx, tx, companyID, candidate)
		if err != nil {
			return nil, err
		}
		if client != nil {
			return &client.ID, nil
		}
	}
	return nil, nil
}

// resolveItems matches extracted items against the product catalog. A hit
// sets MatchedProductID and, when OCR produced no price, adopts the catalog
// sale price. Misses are kept as free-text items for manual reconciliation.
func (p *Processor) resolveItems(ctx context.Context, tx *gorm.DB, companyID uuid.UUID, items []parsing.LineItem) (int, error) {
	matched := 0
	for i := range items {
		product, err := p.productRepo.FindByName(ctx, tx, companyID, items[i].Name)
		if err != nil {
			return matched, err
		}
		if product == nil {
			continue
		}

		id := product.ID
		items[i].MatchedProductID = &id
		if items[i].UnitPrice == 0 && product.SalePrice > 0 {
			items[i].UnitPrice = product.SalePrice
			items[i].LineTotal = product.SalePrice * float64(items[i].Quantity)
		}
		matched++
	}
	return matched, nil
}
