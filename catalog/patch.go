package catalog

import "github.com/warp/seller-core/record"

// ProductPatch replaces every editable field of a product. Product edits
// always submit the complete form, so unlike ledger.EntryPatch this is a
// full-field patch: a nil optional field clears the stored value. Applying
// the same patch twice yields the same record.
type ProductPatch struct {
	Name          string
	Category      *string
	StockQuantity *int
	Price         *int64
	ImageRef      *string
}

func (p ProductPatch) Apply(rec ProductRecord) ProductRecord {
	rec.Name = p.Name
	rec.Category = p.Category
	rec.StockQuantity = p.StockQuantity
	rec.Price = p.Price
	rec.ImageRef = p.ImageRef
	return rec
}

// PatchOf builds the full-field patch from a validated product.
func PatchOf(v ProductRecord) ProductPatch {
	return ProductPatch{
		Name:          v.Name,
		Category:      v.Category,
		StockQuantity: v.StockQuantity,
		Price:         v.Price,
		ImageRef:      v.ImageRef,
	}
}

// ProductCodec adapts products to the edit workflow. Satisfies
// workflow.Codec.
type ProductCodec struct{}

func (ProductCodec) Draft(p ProductRecord) ProductDraft {
	return DraftOf(p)
}

func (ProductCodec) Edit(d *ProductDraft, field, value string) error {
	return d.Set(field, value)
}

func (ProductCodec) Validate(d ProductDraft) (record.Patch[ProductRecord], record.FieldErrors) {
	v, errs := Validate(d)
	if errs != nil {
		return nil, errs
	}
	return PatchOf(v), nil
}
