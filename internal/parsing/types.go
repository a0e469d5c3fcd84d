// Package parsing turns noisy OCR text into structured invoice or inventory
// line items. All functions here are pure with respect to storage; catalog
// matching and persistence live in the document pipeline.
package parsing

import (
	"time"

	"github.com/google/uuid"
)

// DocumentFormat is decided once per document by DetectFormat.
type DocumentFormat string

const (
	FormatInvoice         DocumentFormat = "INVOICE"
	FormatInventoryReport DocumentFormat = "INVENTORY_REPORT"
)

// LineItem is one extracted product row. Quantity defaults to 1 when the
// text does not say otherwise. UnitPrice and LineTotal are cross-derivable.
type LineItem struct {
	Name             string
	Quantity         int
	UnitPrice        float64
	LineTotal        float64
	MatchedProductID *uuid.UUID
}

// Document is the reconciled parse of one uploaded document.
type Document struct {
	Format           DocumentFormat
	Date             *time.Time
	DeclaredTotal    float64
	Items            []LineItem
	ResolvedClientID *uuid.UUID
}

// normalize fills the derivable side of the quantity/price/total triangle.
func (li *LineItem) normalize() {
	if li.Quantity < 1 {
		li.Quantity = 1
	}
	if li.LineTotal == 0 && li.UnitPrice > 0 {
		li.LineTotal = li.UnitPrice * float64(li.Quantity)
	}
	if li.UnitPrice == 0 && li.LineTotal > 0 {
		li.UnitPrice = li.LineTotal / float64(li.Quantity)
	}
}

// ItemsTotal sums the extracted line totals.
func ItemsTotal(items []LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += it.LineTotal
	}
	return sum
}
