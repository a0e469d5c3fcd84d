package parsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDetectFormat_InventoryHeaderTokens(t *testing.T) {
	text := "Stock Valuation Report\nItem Code  Item Name  Balance Quantity\nABC-1 Widget 10"
	assert.Equal(t, FormatInventoryReport, DetectFormat(text))
}

func TestDetectFormat_CommaRows(t *testing.T) {
	text := "A100, Blue Widget, 12\nB200, Red Widget, 4"
	assert.Equal(t, FormatInventoryReport, DetectFormat(text))

	// A single matching row is not enough evidence.
	assert.Equal(t, FormatInvoice, DetectFormat("A100, Blue Widget, 12"))
}

func TestDetectFormat_DefaultsToInvoice(t *testing.T) {
	assert.Equal(t, FormatInvoice, DetectFormat("Widget A  2  10.00\nTotal $20.00"))
	assert.Equal(t, FormatInvoice, DetectFormat("completely free text"))
}

func TestExtract_InventoryRoundTrip(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	text := "Item Code,Item Name,Quantity\nA100, Blue Widget, 12\nB200, Red Widget, 4\nC300, Green Widget, 0"

	assert.Equal(t, FormatInventoryReport, DetectFormat(text))

	items, warnings := e.Extract(FormatInventoryReport, RepairText(text))
	assert.Empty(t, warnings)
	assert.Len(t, items, 3)
	for _, it := range items {
		assert.Zero(t, it.UnitPrice)
		assert.Zero(t, it.LineTotal)
	}
	assert.Equal(t, "Blue Widget", items[0].Name)
	assert.Equal(t, 12, items[0].Quantity)
	assert.Equal(t, 0, items[2].Quantity)
}

func TestExtract_FourColumnInventory(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	text := "Category,Item Code,Item Name,Quantity\nTools, T-10, Hammer, 7\nTools, T-11, Chisel, 3"

	items, _ := e.Extract(FormatInventoryReport, RepairText(text))
	assert.Len(t, items, 2)
	assert.Equal(t, "Hammer", items[0].Name)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestParse_SimpleInvoice(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	res := e.Parse("Widget A  2  10.00\nTotal $20.00")

	assert.Equal(t, FormatInvoice, res.Document.Format)
	assert.Len(t, res.Document.Items, 1)

	item := res.Document.Items[0]
	assert.Equal(t, "Widget A", item.Name)
	assert.Equal(t, 2, item.Quantity)
	assert.InDelta(t, 10.00, item.UnitPrice, 0.001)
	assert.InDelta(t, 20.00, item.LineTotal, 0.001)
	assert.InDelta(t, 20.00, res.Document.DeclaredTotal, 0.001)
}

func TestParse_MissingTotalFallsBackToItemSum(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	res := e.Parse("Widget A  2  10.00\nGadget B  1  25.50")

	assert.Len(t, res.Document.Items, 2)
	assert.InDelta(t, 45.50, res.Document.DeclaredTotal, 0.001)
}

func TestParse_FooterLinesNeverBecomeItems(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	res := e.Parse("Widget A  2  10.00\nSubtotal 20.00\nTax 2.00\nShipping 5.00\nDiscount 1.00\nTotal $26.00")

	assert.Len(t, res.Document.Items, 1)
	assert.Equal(t, "Widget A", res.Document.Items[0].Name)
	assert.InDelta(t, 26.00, res.Document.DeclaredTotal, 0.001)
}

func TestParse_CommaTripleStrategyWins(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	res := e.Parse("Blue Widget, 3, 4.50\nRed Widget, 1, 9.99")

	assert.Len(t, res.Document.Items, 2)
	assert.Equal(t, 3, res.Document.Items[0].Quantity)
	assert.InDelta(t, 13.50, res.Document.Items[0].LineTotal, 0.001)
}

func TestParse_MarkedQuantityAndPrice(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	items, _ := e.Extract(FormatInvoice, []string{"Blue Widget Qty 3 @ $4.50"})

	assert.Len(t, items, 1)
	assert.Equal(t, "Blue Widget", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)
	assert.InDelta(t, 4.50, items[0].UnitPrice, 0.001)
}

func TestParse_QuantityFirstLayout(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	items, _ := e.Extract(FormatInvoice, []string{"3 Blue Widget 4.50"})

	assert.Len(t, items, 1)
	assert.Equal(t, "Blue Widget", items[0].Name)
	assert.Equal(t, 3, items[0].Quantity)
}

func TestParse_UnparsableDocumentYieldsPlaceholder(t *testing.T) {
	e := NewExtractor(zap.NewNop())
	res := e.Parse("Dear customer\nthank you for your business\nsee you soon")

	assert.Len(t, res.Document.Items, 1)
	assert.Contains(t, res.Document.Items[0].Name, "Unparsed content")
	assert.Equal(t, 1, res.Document.Items[0].Quantity)
	assert.NotEmpty(t, res.Warnings)
}

func TestRepairText_MergesFragmentedRow(t *testing.T) {
	lines := RepairText("Blue Widget\n2 10.00\nRed Widget 1 9.99")

	assert.Equal(t, []string{"Blue Widget 2 10.00", "Red Widget 1 9.99"}, lines)
}

func TestRepairText_DoesNotMergeIntoFooter(t *testing.T) {
	lines := RepairText("Blue Widget\nTotal $20.00")

	assert.Equal(t, []string{"Blue Widget", "Total $20.00"}, lines)
}

func TestExtractDate_Formats(t *testing.T) {
	cases := map[string]time.Time{
		"Invoice Date: 03/05/2024": time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		"Date 2024-03-05":          time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		"March 5, 2024":            time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		"Mar 5 2024":               time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	for line, want := range cases {
		got := ExtractDate([]string{line})
		if assert.NotNil(t, got, line) {
			assert.Equal(t, want, *got, line)
		}
	}

	assert.Nil(t, ExtractDate([]string{"no date here"}))
}

func TestExtractDeclaredTotal_LastMatchWins(t *testing.T) {
	total, ok := ExtractDeclaredTotal([]string{
		"Subtotal: $40.00",
		"Tax total 5.50",
		"Amount Due: $45.50",
	})
	assert.True(t, ok)
	assert.InDelta(t, 45.50, total, 0.001)

	_, ok = ExtractDeclaredTotal([]string{"no totals at all"})
	assert.False(t, ok)
}
