/*
validate.go - Draft validation and total derivation

PURPOSE:
  Pure validation of an EntryDraft. Numeric fields arrive as free text;
  a value that does not parse is a FIELD error, never a fault. Every
  failing field is reported in one pass so a form can surface all
  problems simultaneously.

DERIVATION:
  TotalPrice is computed only from the successfully parsed quantity and
  unit price, never from raw strings. A draft with any invalid field
  produces no entry at all, so garbage can never reach persisted state.
*/
package ledger

import (
	"strconv"
	"strings"
	"time"

	"github.com/warp/seller-core/record"
)

// Validation messages, one per failure mode.
const (
	msgRequired      = "is required"
	msgNotANumber    = "must be a whole number"
	msgQuantityMin   = "must be at least 1"
	msgPriceNegative = "must not be negative"
	msgBadDate       = "must be a date in YYYY-MM-DD form"
	msgUnknownChoice = "is not a recognized option"
)

// Validate checks every field of the draft in one pass. On success it
// returns the validated entry (id, owner and creation time unset; those
// are stamped by the repository) with the derived total computed. On
// failure it returns a message for every failing field.
func Validate(d EntryDraft) (SalesEntry, record.FieldErrors) {
	errs := record.FieldErrors{}
	var entry SalesEntry

	// Date: required, fixed layout.
	date := strings.TrimSpace(d.Date)
	switch {
	case date == "":
		errs[FieldDate] = msgRequired
	default:
		if _, err := time.Parse(DateLayout, date); err != nil {
			errs[FieldDate] = msgBadDate
		} else {
			entry.Date = date
		}
	}

	// Category: required, fixed set.
	category := Category(strings.TrimSpace(d.Category))
	switch {
	case category == "":
		errs[FieldCategory] = msgRequired
	case !category.Valid():
		errs[FieldCategory] = msgUnknownChoice
	default:
		entry.Category = category
	}

	// Product name: required.
	name := strings.TrimSpace(d.ProductName)
	if name == "" {
		errs[FieldProductName] = msgRequired
	} else {
		entry.ProductName = name
	}

	// Quantity: required, positive integer.
	qtyOK := false
	qtyRaw := strings.TrimSpace(d.Quantity)
	switch {
	case qtyRaw == "":
		errs[FieldQuantity] = msgRequired
	default:
		qty, err := strconv.Atoi(qtyRaw)
		switch {
		case err != nil:
			errs[FieldQuantity] = msgNotANumber
		case qty < 1:
			errs[FieldQuantity] = msgQuantityMin
		default:
			entry.Quantity = qty
			qtyOK = true
		}
	}

	// Unit price: required, non-negative integer.
	priceOK := false
	priceRaw := strings.TrimSpace(d.UnitPrice)
	switch {
	case priceRaw == "":
		errs[FieldUnitPrice] = msgRequired
	default:
		price, err := strconv.ParseInt(priceRaw, 10, 64)
		switch {
		case err != nil:
			errs[FieldUnitPrice] = msgNotANumber
		case price < 0:
			errs[FieldUnitPrice] = msgPriceNegative
		default:
			entry.UnitPrice = price
			priceOK = true
		}
	}

	// Buyer name: required.
	buyer := strings.TrimSpace(d.BuyerName)
	if buyer == "" {
		errs[FieldBuyerName] = msgRequired
	} else {
		entry.BuyerName = buyer
	}

	// Payment method: required, fixed set.
	method := PaymentMethod(strings.TrimSpace(d.PaymentMethod))
	switch {
	case method == "":
		errs[FieldPaymentMethod] = msgRequired
	case !method.Valid():
		errs[FieldPaymentMethod] = msgUnknownChoice
	default:
		entry.PaymentMethod = method
	}

	if len(errs) > 0 {
		return SalesEntry{}, errs
	}

	// Derived total: computed on validated numbers only.
	if qtyOK && priceOK {
		entry.TotalPrice = int64(entry.Quantity) * entry.UnitPrice
	}
	return entry, nil
}
