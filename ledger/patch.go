package ledger

// EntryPatch is an explicit partial update for a sales entry. Nil fields
// are left untouched. Id, owner and creation time are not patchable; the
// repository recomputes the derived total after the patch is applied, so
// a quantity-only patch keeps the total consistent.
type EntryPatch struct {
	Date          *string
	Category      *Category
	ProductName   *string
	Quantity      *int
	UnitPrice     *int64
	BuyerName     *string
	PaymentMethod *PaymentMethod
}

// Apply returns a copy of e with the patched fields replaced. Applying the
// same patch twice yields the same entry.
func (p EntryPatch) Apply(e SalesEntry) SalesEntry {
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.ProductName != nil {
		e.ProductName = *p.ProductName
	}
	if p.Quantity != nil {
		e.Quantity = *p.Quantity
	}
	if p.UnitPrice != nil {
		e.UnitPrice = *p.UnitPrice
	}
	if p.BuyerName != nil {
		e.BuyerName = *p.BuyerName
	}
	if p.PaymentMethod != nil {
		e.PaymentMethod = *p.PaymentMethod
	}
	return e.Normalize()
}

// PatchOf builds a full-field patch from a validated entry. The edit
// workflow validates the whole draft and submits all editable fields.
func PatchOf(v SalesEntry) EntryPatch {
	return EntryPatch{
		Date:          &v.Date,
		Category:      &v.Category,
		ProductName:   &v.ProductName,
		Quantity:      &v.Quantity,
		UnitPrice:     &v.UnitPrice,
		BuyerName:     &v.BuyerName,
		PaymentMethod: &v.PaymentMethod,
	}
}
