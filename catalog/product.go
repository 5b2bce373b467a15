/*
product.go - The product catalog record

PURPOSE:
  ProductRecord is one item in a seller's catalog. Unlike a sales entry,
  most fields are optional: a seller can list a product before deciding
  its price or stocking it. Optional fields are pointers; nil means the
  seller never set them.

STOCK DISPLAY:
  A stock quantity of zero or nil always renders as "out of stock".
  Negative stock can never be persisted (the validator rejects it), so
  derived displays never show a negative number.
*/
package catalog

import (
	"fmt"
	"time"
)

// Table is the record store table holding catalog products.
const Table = "products"

// ProductRecord is one catalog item. Id, owner and creation time are
// server-assigned; the owner is immutable after creation. ImageRef is an
// opaque reference into the external image store.
type ProductRecord struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	Name          string    `json:"name"`
	Category      *string   `json:"category,omitempty"`
	StockQuantity *int      `json:"stock_quantity,omitempty"`
	Price         *int64    `json:"price,omitempty"` // smallest currency unit
	ImageRef      *string   `json:"image_ref,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (p ProductRecord) RecordID() string           { return p.ID }
func (p ProductRecord) RecordOwner() string        { return p.OwnerID }
func (p ProductRecord) RecordCreatedAt() time.Time { return p.CreatedAt }

func (p ProductRecord) WithID(id string) ProductRecord {
	p.ID = id
	return p
}

func (p ProductRecord) WithOwner(owner string) ProductRecord {
	p.OwnerID = owner
	return p
}

func (p ProductRecord) WithCreatedAt(at time.Time) ProductRecord {
	p.CreatedAt = at
	return p
}

// InStock reports whether the product has any stock recorded.
func (p ProductRecord) InStock() bool {
	return p.StockQuantity != nil && *p.StockQuantity > 0
}

// StockLabel renders stock for display. Zero or unset stock is always
// "out of stock", never a number below one.
func (p ProductRecord) StockLabel() string {
	if !p.InStock() {
		return "out of stock"
	}
	return fmt.Sprintf("%d in stock", *p.StockQuantity)
}
