/*
entry.go - The sales ledger record and its fixed vocabularies

PURPOSE:
  SalesEntry is one recorded sale in a seller's ledger. Category and
  payment method come from fixed enumerated sets; prices are integers in
  the smallest currency unit.

DERIVED TOTAL:
  TotalPrice is always Quantity * UnitPrice. The validator computes it
  from parsed numeric values and Normalize() recomputes it before every
  write, so the invariant holds at every persisted state even for callers
  that bypass the validator.

SEE ALSO:
  - validate.go: Draft validation and total derivation
  - patch.go: Partial updates
*/
package ledger

import (
	"fmt"
	"time"
)

// Table is the record store table holding sales entries.
const Table = "sales_ledger"

// =============================================================================
// ENUMERATED SETS
// =============================================================================

// Category classifies what kind of product was sold.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryFashion     Category = "fashion"
	CategoryElectronics Category = "electronics"
	CategoryBeauty      Category = "beauty"
	CategoryHousehold   Category = "household"
	CategoryOther       Category = "other"
)

// Categories lists every valid category, in display order.
func Categories() []Category {
	return []Category{
		CategoryFood, CategoryFashion, CategoryElectronics,
		CategoryBeauty, CategoryHousehold, CategoryOther,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFood, CategoryFashion, CategoryElectronics,
		CategoryBeauty, CategoryHousehold, CategoryOther:
		return true
	}
	return false
}

// PaymentMethod is how the buyer paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentEWallet  PaymentMethod = "ewallet"
	PaymentQRIS     PaymentMethod = "qris"
)

// PaymentMethods lists every valid payment method.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentTransfer, PaymentEWallet, PaymentQRIS}
}

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentTransfer, PaymentEWallet, PaymentQRIS:
		return true
	}
	return false
}

// DateLayout is the wire format for sale dates.
const DateLayout = "2006-01-02"

// =============================================================================
// SALES ENTRY
// =============================================================================

// SalesEntry is one recorded sale. Id, owner and creation time are
// server-assigned; the owner is immutable after creation.
type SalesEntry struct {
	ID            string        `json:"id"`
	OwnerID       string        `json:"owner_id"`
	Date          string        `json:"date"` // YYYY-MM-DD
	Category      Category      `json:"category"`
	ProductName   string        `json:"product_name"`
	Quantity      int           `json:"quantity"`
	UnitPrice     int64         `json:"unit_price"`  // smallest currency unit
	TotalPrice    int64         `json:"total_price"` // derived: Quantity * UnitPrice
	BuyerName     string        `json:"buyer_name"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time     `json:"created_at"`
}

func (e SalesEntry) RecordID() string           { return e.ID }
func (e SalesEntry) RecordOwner() string        { return e.OwnerID }
func (e SalesEntry) RecordCreatedAt() time.Time { return e.CreatedAt }

func (e SalesEntry) WithID(id string) SalesEntry {
	e.ID = id
	return e
}

func (e SalesEntry) WithOwner(owner string) SalesEntry {
	e.OwnerID = owner
	return e
}

func (e SalesEntry) WithCreatedAt(at time.Time) SalesEntry {
	e.CreatedAt = at
	return e
}

// Normalize recomputes the derived total. The repository calls this before
// every write.
func (e SalesEntry) Normalize() SalesEntry {
	e.TotalPrice = int64(e.Quantity) * e.UnitPrice
	return e
}

func (e SalesEntry) String() string {
	return fmt.Sprintf("sale %s: %dx %q = %d (%s)",
		e.ID, e.Quantity, e.ProductName, e.TotalPrice, e.PaymentMethod)
}
