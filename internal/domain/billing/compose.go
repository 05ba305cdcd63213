package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kirana/backend/internal/domain/shared"
)

var composeHundred = decimal.NewFromInt(100)

// LinePricing is the catalog snapshot a draft line is priced from. Prices
// and rates always come from the server-side catalog, never from the
// client request.
type LinePricing struct {
	ProductID   uuid.UUID
	ProductName string
	Barcode     string
	Quantity    int64
	UnitPrice   decimal.Decimal
	GSTRate     decimal.Decimal
}

// DraftLine is one priced line of a draft bill
type DraftLine struct {
	ProductID   uuid.UUID
	ProductName string
	Barcode     string
	Quantity    int64
	UnitPrice   decimal.Decimal
	GSTRate     decimal.Decimal
	Subtotal    decimal.Decimal
	GSTAmount   decimal.Decimal
}

// Draft is a fully priced bill before it has a number or has touched stock
type Draft struct {
	Lines     []DraftLine
	Subtotal  decimal.Decimal
	GSTAmount decimal.Decimal
	Total     decimal.Decimal
}

// roundHalfUp rounds to 2 decimal places, half away from zero. All amounts
// here are non-negative so this is ordinary half-up rounding.
func roundHalfUp(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Compose prices a bill from catalog snapshots. It is a pure calculation:
// no stock is touched and no number is allocated.
//
// Per line: subtotal = price * quantity, tax = subtotal * rate / 100, each
// rounded half-up to 2 decimal places. Bill totals are sums of the rounded
// line amounts, so the bill always adds up exactly from its printed lines.
func Compose(lines []LinePricing) (*Draft, error) {
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_BILL", "a bill must contain at least one item")
	}

	draft := &Draft{
		Lines:     make([]DraftLine, 0, len(lines)),
		Subtotal:  decimal.Zero,
		GSTAmount: decimal.Zero,
	}

	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "quantity must be greater than zero")
		}
		if !line.UnitPrice.IsPositive() {
			return nil, shared.NewDomainError("INVALID_PRICE", "unit price must be greater than zero")
		}
		if line.GSTRate.IsNegative() || line.GSTRate.GreaterThan(composeHundred) {
			return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate must be between 0 and 100")
		}

		subtotal := roundHalfUp(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
		gst := roundHalfUp(subtotal.Mul(line.GSTRate).Div(composeHundred))

		draft.Lines = append(draft.Lines, DraftLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Barcode:     line.Barcode,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			GSTRate:     line.GSTRate,
			Subtotal:    subtotal,
			GSTAmount:   gst,
		})
		draft.Subtotal = draft.Subtotal.Add(subtotal)
		draft.GSTAmount = draft.GSTAmount.Add(gst)
	}

	draft.Total = draft.Subtotal.Add(draft.GSTAmount)
	return draft, nil
}
