package catalog

import (
	"fmt"
	"strconv"
)

// ProductDraft is the editable text-form copy of a product. Empty strings
// in the optional fields mean "unset"; Validate turns them back into nils.
type ProductDraft struct {
	Name          string
	Category      string
	StockQuantity string
	Price         string
	ImageRef      string
}

// Draft field names, as accepted by Set and reported in FieldErrors.
const (
	FieldName          = "name"
	FieldCategory      = "category"
	FieldStockQuantity = "stock_quantity"
	FieldPrice         = "price"
	FieldImageRef      = "image_ref"
)

// DraftOf copies a persisted product into an editable draft.
func DraftOf(p ProductRecord) ProductDraft {
	d := ProductDraft{Name: p.Name}
	if p.Category != nil {
		d.Category = *p.Category
	}
	if p.StockQuantity != nil {
		d.StockQuantity = strconv.Itoa(*p.StockQuantity)
	}
	if p.Price != nil {
		d.Price = strconv.FormatInt(*p.Price, 10)
	}
	if p.ImageRef != nil {
		d.ImageRef = *p.ImageRef
	}
	return d
}

// Set assigns one field by name, rejecting unknown names at the boundary.
func (d *ProductDraft) Set(field, value string) error {
	switch field {
	case FieldName:
		d.Name = value
	case FieldCategory:
		d.Category = value
	case FieldStockQuantity:
		d.StockQuantity = value
	case FieldPrice:
		d.Price = value
	case FieldImageRef:
		d.ImageRef = value
	default:
		return fmt.Errorf("unknown product field %q", field)
	}
	return nil
}
