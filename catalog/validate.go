package catalog

import (
	"strconv"
	"strings"

	"github.com/warp/seller-core/record"
)

const (
	msgRequired      = "is required"
	msgNotANumber    = "must be a whole number"
	msgStockNegative = "must not be negative"
	msgPriceNegative = "must not be negative"
)

// Validate checks a product draft in one pass. Only the name is required;
// empty optional fields become nil, and present ones must parse as
// non-negative integers.
func Validate(d ProductDraft) (ProductRecord, record.FieldErrors) {
	errs := record.FieldErrors{}
	var rec ProductRecord

	name := strings.TrimSpace(d.Name)
	if name == "" {
		errs[FieldName] = msgRequired
	} else {
		rec.Name = name
	}

	if category := strings.TrimSpace(d.Category); category != "" {
		rec.Category = &category
	}

	if raw := strings.TrimSpace(d.StockQuantity); raw != "" {
		stock, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs[FieldStockQuantity] = msgNotANumber
		case stock < 0:
			errs[FieldStockQuantity] = msgStockNegative
		default:
			rec.StockQuantity = &stock
		}
	}

	if raw := strings.TrimSpace(d.Price); raw != "" {
		price, err := strconv.ParseInt(raw, 10, 64)
		switch {
		case err != nil:
			errs[FieldPrice] = msgNotANumber
		case price < 0:
			errs[FieldPrice] = msgPriceNegative
		default:
			rec.Price = &price
		}
	}

	if ref := strings.TrimSpace(d.ImageRef); ref != "" {
		rec.ImageRef = &ref
	}

	if len(errs) > 0 {
		return ProductRecord{}, errs
	}
	return rec, nil
}
