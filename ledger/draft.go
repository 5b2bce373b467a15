package ledger

import (
	"fmt"
	"strconv"
)

// EntryDraft is the ephemeral, caller-local copy of a sales entry under
// edit. All fields are strings because they back free-text inputs; numeric
// meaning is assigned only by Validate. A draft never shares identity with
// the persisted record: it is a value copy, discarded on cancel or save.
type EntryDraft struct {
	Date          string
	Category      string
	ProductName   string
	Quantity      string
	UnitPrice     string
	BuyerName     string
	PaymentMethod string
}

// Draft field names, as accepted by Set and reported in FieldErrors.
const (
	FieldDate          = "date"
	FieldCategory      = "category"
	FieldProductName   = "product_name"
	FieldQuantity      = "quantity"
	FieldUnitPrice     = "unit_price"
	FieldBuyerName     = "buyer_name"
	FieldPaymentMethod = "payment_method"
)

// DraftOf copies a persisted entry into an editable draft, stringifying
// the numeric fields for text inputs.
func DraftOf(e SalesEntry) EntryDraft {
	return EntryDraft{
		Date:          e.Date,
		Category:      string(e.Category),
		ProductName:   e.ProductName,
		Quantity:      strconv.Itoa(e.Quantity),
		UnitPrice:     strconv.FormatInt(e.UnitPrice, 10),
		BuyerName:     e.BuyerName,
		PaymentMethod: string(e.PaymentMethod),
	}
}

// Set assigns one field by name. Unknown field names are rejected here,
// at the edit boundary, rather than silently dropped.
func (d *EntryDraft) Set(field, value string) error {
	switch field {
	case FieldDate:
		d.Date = value
	case FieldCategory:
		d.Category = value
	case FieldProductName:
		d.ProductName = value
	case FieldQuantity:
		d.Quantity = value
	case FieldUnitPrice:
		d.UnitPrice = value
	case FieldBuyerName:
		d.BuyerName = value
	case FieldPaymentMethod:
		d.PaymentMethod = value
	default:
		return fmt.Errorf("unknown sales entry field %q", field)
	}
	return nil
}
