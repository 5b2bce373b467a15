/*
dto.go - Request/response data structures for the HTTP API

PURPOSE:
  Wire shapes for the seller endpoints. Request bodies mirror DRAFTS, so
  every numeric field arrives as a string exactly as typed into a form;
  the validator owns numeric meaning. Response bodies mirror persisted
  records, so numerics are numbers.

UNKNOWN FIELDS:
  Handlers decode with DisallowUnknownFields; a request inventing a field
  is a 400, not a silent drop.
*/
package api

import (
	"time"

	"github.com/warp/seller-core/catalog"
	"github.com/warp/seller-core/ledger"
	"github.com/warp/seller-core/record"
)

// =============================================================================
// SHARED
// =============================================================================

// ErrorResponse is the uniform error body. Fields is present only for
// validation failures.
type ErrorResponse struct {
	Error  string             `json:"error"`
	Fields record.FieldErrors `json:"fields,omitempty"`
}

// MeResponse reports the resolved identity and its post-login landing page.
type MeResponse struct {
	UserID  string `json:"user_id"`
	Role    string `json:"role,omitempty"`
	Landing string `json:"landing"`
}

// =============================================================================
// SALES LEDGER
// =============================================================================

// EntryDTO is one persisted sales entry.
type EntryDTO struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	Category      string `json:"category"`
	ProductName   string `json:"product_name"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unit_price"`
	TotalPrice    int64  `json:"total_price"`
	BuyerName     string `json:"buyer_name"`
	PaymentMethod string `json:"payment_method"`
	CreatedAt     string `json:"created_at"`
}

func entryDTO(e ledger.SalesEntry) EntryDTO {
	return EntryDTO{
		ID:            e.ID,
		Date:          e.Date,
		Category:      string(e.Category),
		ProductName:   e.ProductName,
		Quantity:      e.Quantity,
		UnitPrice:     e.UnitPrice,
		TotalPrice:    e.TotalPrice,
		BuyerName:     e.BuyerName,
		PaymentMethod: string(e.PaymentMethod),
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

// SummaryDTO is the listing metadata block.
type SummaryDTO struct {
	Entries   int            `json:"entries"`
	UnitsSold int            `json:"units_sold"`
	Revenue   string         `json:"revenue"` // major units, 2 decimal places
	ByPayment map[string]int `json:"by_payment"`
}

func summaryDTO(s ledger.Summary) SummaryDTO {
	byPayment := make(map[string]int, len(s.ByPayment))
	for m, n := range s.ByPayment {
		byPayment[string(m)] = n
	}
	return SummaryDTO{
		Entries:   s.Entries,
		UnitsSold: s.UnitsSold,
		Revenue:   s.Revenue.StringFixed(2),
		ByPayment: byPayment,
	}
}

// ListEntriesResponse is a seller's ledger page: entries newest first,
// plus aggregates.
type ListEntriesResponse struct {
	Entries []EntryDTO `json:"entries"`
	Summary SummaryDTO `json:"summary"`
}

// CreateEntryRequest carries a complete draft; all fields as typed.
type CreateEntryRequest struct {
	Date          string `json:"date"`
	Category      string `json:"category"`
	ProductName   string `json:"product_name"`
	Quantity      string `json:"quantity"`
	UnitPrice     string `json:"unit_price"`
	BuyerName     string `json:"buyer_name"`
	PaymentMethod string `json:"payment_method"`
}

func (r CreateEntryRequest) draft() ledger.EntryDraft {
	return ledger.EntryDraft{
		Date:          r.Date,
		Category:      r.Category,
		ProductName:   r.ProductName,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		BuyerName:     r.BuyerName,
		PaymentMethod: r.PaymentMethod,
	}
}

// UpdateEntryRequest carries edited fields only; absent fields keep their
// loaded values.
type UpdateEntryRequest struct {
	Date          *string `json:"date"`
	Category      *string `json:"category"`
	ProductName   *string `json:"product_name"`
	Quantity      *string `json:"quantity"`
	UnitPrice     *string `json:"unit_price"`
	BuyerName     *string `json:"buyer_name"`
	PaymentMethod *string `json:"payment_method"`
}

// edits lists the (field, value) pairs present in the request, in a fixed
// order for deterministic behavior.
func (r UpdateEntryRequest) edits() []fieldEdit {
	var out []fieldEdit
	add := func(field string, v *string) {
		if v != nil {
			out = append(out, fieldEdit{field: field, value: *v})
		}
	}
	add(ledger.FieldDate, r.Date)
	add(ledger.FieldCategory, r.Category)
	add(ledger.FieldProductName, r.ProductName)
	add(ledger.FieldQuantity, r.Quantity)
	add(ledger.FieldUnitPrice, r.UnitPrice)
	add(ledger.FieldBuyerName, r.BuyerName)
	add(ledger.FieldPaymentMethod, r.PaymentMethod)
	return out
}

type fieldEdit struct {
	field string
	value string
}

// =============================================================================
// PRODUCT CATALOG
// =============================================================================

// ProductDTO is one persisted catalog item. StockLabel is the derived
// display value; zero or unset stock always reads "out of stock".
type ProductDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Category   *string `json:"category,omitempty"`
	Stock      *int    `json:"stock_quantity,omitempty"`
	StockLabel string  `json:"stock_label"`
	Price      *int64  `json:"price,omitempty"`
	ImageRef   *string `json:"image_ref,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

func productDTO(p catalog.ProductRecord) ProductDTO {
	return ProductDTO{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Stock:      p.StockQuantity,
		StockLabel: p.StockLabel(),
		Price:      p.Price,
		ImageRef:   p.ImageRef,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
	}
}

// CreateProductRequest carries a complete product draft.
type CreateProductRequest struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	StockQuantity string `json:"stock_quantity"`
	Price         string `json:"price"`
	ImageRef      string `json:"image_ref"`
}

func (r CreateProductRequest) draft() catalog.ProductDraft {
	return catalog.ProductDraft{
		Name:          r.Name,
		Category:      r.Category,
		StockQuantity: r.StockQuantity,
		Price:         r.Price,
		ImageRef:      r.ImageRef,
	}
}

// UpdateProductRequest carries edited fields only.
type UpdateProductRequest struct {
	Name          *string `json:"name"`
	Category      *string `json:"category"`
	StockQuantity *string `json:"stock_quantity"`
	Price         *string `json:"price"`
	ImageRef      *string `json:"image_ref"`
}

func (r UpdateProductRequest) edits() []fieldEdit {
	var out []fieldEdit
	add := func(field string, v *string) {
		if v != nil {
			out = append(out, fieldEdit{field: field, value: *v})
		}
	}
	add(catalog.FieldName, r.Name)
	add(catalog.FieldCategory, r.Category)
	add(catalog.FieldStockQuantity, r.StockQuantity)
	add(catalog.FieldPrice, r.Price)
	add(catalog.FieldImageRef, r.ImageRef)
	return out
}
