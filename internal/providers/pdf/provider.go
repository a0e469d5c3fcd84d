package pdf

import (
	"context"
	"io"
)

// Provider renders documents for download and WhatsApp delivery.
type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) (io.Reader, error)
}

// InvoiceData is the flattened, display-ready view of an invoice. The
// handler formats amounts and dates before handing it over so the
// renderer stays free of business rules.
type InvoiceData struct {
	CompanyName    string
	CompanyAddress string
	CompanyEmail   string
	CompanyPhone   string

	InvoiceNumber string
	InvoiceDate   string
	PaymentStatus string

	BillToName    string
	BillToAddress string
	BillToEmail   string

	Items []InvoiceItem

	Notes string
	Total string
}

type InvoiceItem struct {
	Description string
	Qty         int
	UnitPrice   string
	Amount      string
}
