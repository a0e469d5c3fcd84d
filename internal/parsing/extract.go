package parsing

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var numberToken = regexp.MustCompile(`\$?\d[\d,]*(?:\.\d+)?`)

// Extractor runs the per-format extraction cascade.
type Extractor struct {
	log        *zap.Logger
	strategies []Strategy
}

func NewExtractor(log *zap.Logger) *Extractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{
		log:        log.Named("parsing.extractor"),
		strategies: InvoiceStrategies(),
	}
}

// Result is the full parse of one document.
type Result struct {
	Document Document
	Lines    []string
	Warnings []string
}

// Parse runs repair, classification, extraction and reconciliation over raw
// OCR text.
func (e *Extractor) Parse(raw string) Result {
	lines := RepairText(raw)
	format := DetectFormat(strings.Join(lines, "\n"))
	items, warnings := e.Extract(format, lines)

	doc := Document{Format: format, Items: items}
	Reconcile(&doc, lines)
	return Result{Document: doc, Lines: lines, Warnings: warnings}
}

// Extract returns candidate items plus human-readable warnings. The item
// slice is never empty, an unparsable document yields one clearly named
// placeholder so audits can tell it from a real item.
func (e *Extractor) Extract(format DocumentFormat, lines []string) ([]LineItem, []string) {
	if format == FormatInventoryReport {
		items := ExtractInventoryItems(lines)
		if len(items) > 0 {
			return items, nil
		}
		return e.placeholder(lines)
	}

	for _, s := range e.strategies {
		items := s.Extract(lines)
		if len(items) > 0 {
			e.log.Debug("strategy matched",
				zap.String("strategy", s.Name()),
				zap.Int("items", len(items)))
			return items, nil
		}
		e.log.Debug("strategy yielded nothing", zap.String("strategy", s.Name()))
	}

	if items := fallbackTwoNumbers(lines); len(items) > 0 {
		e.log.Debug("generic two-number fallback matched", zap.Int("items", len(items)))
		return items, []string{"line items recovered by generic number scan, verify quantities"}
	}

	return e.placeholder(lines)
}

// IsPlaceholderItem reports whether the item is the synthetic row emitted
// when nothing else could be extracted.
func IsPlaceholderItem(item LineItem) bool {
	return strings.HasPrefix(item.Name, "Unparsed content")
}

func (e *Extractor) placeholder(lines []string) ([]LineItem, []string) {
	item := LineItem{
		Name:     fmt.Sprintf("Unparsed content (%d lines)", len(lines)),
		Quantity: 1,
	}
	warning := "no extraction strategy matched, kept a single placeholder item"
	e.log.Debug("extraction fell through to placeholder", zap.Int("lines", len(lines)))
	return []LineItem{item}, []string{warning}
}

// fallbackTwoNumbers keeps any line carrying at least two numbers. The
// larger trailing number is read as the line total; the smaller one is a
// quantity when it is a whole number, a unit price otherwise.
func fallbackTwoNumbers(lines []string) []LineItem {
	var items []LineItem
	for _, line := range lines {
		if isFooterDescription(line) {
			continue
		}
		locs := numberToken.FindAllStringIndex(line, -1)
		if len(locs) < 2 {
			continue
		}
		first := locs[len(locs)-2]
		a := parseAmount(line[first[0]:first[1]])
		last := locs[len(locs)-1]
		b := parseAmount(line[last[0]:last[1]])

		name := strings.TrimSpace(line[:first[0]])
		if name == "" || a <= 0 || b <= 0 {
			continue
		}

		total := math.Max(a, b)
		other := math.Min(a, b)
		item := LineItem{Name: name, LineTotal: total}
		if other == math.Trunc(other) {
			item.Quantity = int(other)
		} else {
			item.Quantity = 1
			item.UnitPrice = other
		}
		item.normalize()
		items = append(items, item)
	}
	return items
}
