/*
Package sqlite provides the SQLite-backed record store.

PURPOSE:
  Implements record.Store for both tables (sales_ledger, products) on a
  single database handle. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

SCOPING:
  The store stays deliberately dumb about ownership. Filters arrive from
  the repository with the owner already conjoined; every WHERE clause is
  built from the filter verbatim, so the compound (id AND owner_id)
  predicate is the mutation predicate itself and a cross-owner update
  matches zero rows.

SCHEMA:
  sales_ledger: one row per recorded sale, integer prices in the smallest
                currency unit, total_price kept consistent by the layer
                above. CHECK constraints back up the validator.
  products:     one row per catalog item; category/stock/price/image_ref
                are nullable.

  Times are stored as RFC3339 TEXT in UTC; listings order by created_at
  with id as tiebreak.

WAL MODE:
  Opened with WAL for better concurrency: readers don't block, single
  writer, better crash recovery.

USAGE:
  db, err := sqlite.New("./seller.db")   // ":memory:" for tests
  ledgerStore := db.Ledger()
  productStore := db.Products()

SEE ALSO:
  - record/store.go: Interface definitions
  - record/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/seller-core/catalog"
	"github.com/warp/seller-core/ledger"
	"github.com/warp/seller-core/record"
)

// DB owns the database handle and hands out per-table stores.
type DB struct {
	db *sql.DB
}

// New opens (and migrates) the database at path. Use ":memory:" for an
// in-memory database.
func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &DB{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *DB) Close() error {
	return s.db.Close()
}

// Ledger returns the sales_ledger table as a record store.
func (s *DB) Ledger() record.Store[ledger.SalesEntry] {
	return &ledgerTable{db: s.db}
}

// Products returns the products table as a record store.
func (s *DB) Products() record.Store[catalog.ProductRecord] {
	return &productTable{db: s.db}
}

func (s *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sales_ledger (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		sale_date TEXT NOT NULL,
		category TEXT NOT NULL,
		product_name TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK (quantity >= 1),
		unit_price INTEGER NOT NULL CHECK (unit_price >= 0),
		total_price INTEGER NOT NULL,
		buyer_name TEXT NOT NULL,
		payment_method TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	-- Owner listing is the hot path.
	CREATE INDEX IF NOT EXISTS idx_sales_ledger_owner_created
		ON sales_ledger(owner_id, created_at DESC);

	CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		owner_id TEXT NOT NULL,
		name TEXT NOT NULL,
		category TEXT,
		stock_quantity INTEGER CHECK (stock_quantity IS NULL OR stock_quantity >= 0),
		price INTEGER CHECK (price IS NULL OR price >= 0),
		image_ref TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_products_owner_created
		ON products(owner_id, created_at DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// whereClause builds the conjunctive WHERE from a filter. Zero fields are
// not part of the predicate.
func whereClause(f record.Filter) (string, []any) {
	var conds []string
	var args []any
	if f.ID != "" {
		conds = append(conds, "id = ?")
		args = append(args, f.ID)
	}
	if f.Owner != "" {
		conds = append(conds, "owner_id = ?")
		args = append(args, f.Owner)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func orderClause(ord record.Order) string {
	if ord == record.CreatedAsc {
		return " ORDER BY created_at ASC, id ASC"
	}
	return " ORDER BY created_at DESC, id DESC"
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// =============================================================================
// SALES LEDGER TABLE
// =============================================================================

type ledgerTable struct {
	db *sql.DB
}

const ledgerColumns = `id, owner_id, sale_date, category, product_name,
	quantity, unit_price, total_price, buyer_name, payment_method, created_at`

func scanEntry(scan func(...any) error) (ledger.SalesEntry, error) {
	var e ledger.SalesEntry
	var createdAt string
	if err := scan(&e.ID, &e.OwnerID, &e.Date, &e.Category, &e.ProductName,
		&e.Quantity, &e.UnitPrice, &e.TotalPrice, &e.BuyerName,
		&e.PaymentMethod, &createdAt); err != nil {
		return ledger.SalesEntry{}, err
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

func (t *ledgerTable) SelectOne(ctx context.Context, f record.Filter) (ledger.SalesEntry, bool, error) {
	where, args := whereClause(f)
	row := t.db.QueryRowContext(ctx,
		"SELECT "+ledgerColumns+" FROM sales_ledger"+where+" LIMIT 1", args...)

	e, err := scanEntry(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.SalesEntry{}, false, nil
	}
	if err != nil {
		return ledger.SalesEntry{}, false, err
	}
	return e, true, nil
}

func (t *ledgerTable) Select(ctx context.Context, f record.Filter, ord record.Order) ([]ledger.SalesEntry, error) {
	where, args := whereClause(f)
	rows, err := t.db.QueryContext(ctx,
		"SELECT "+ledgerColumns+" FROM sales_ledger"+where+orderClause(ord), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ledger.SalesEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

func (t *ledgerTable) Insert(ctx context.Context, e ledger.SalesEntry) error {
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO sales_ledger (`+ledgerColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.OwnerID, e.Date, e.Category, e.ProductName,
		e.Quantity, e.UnitPrice, e.TotalPrice, e.BuyerName,
		e.PaymentMethod, formatTime(e.CreatedAt))
	return err
}

func (t *ledgerTable) Update(ctx context.Context, f record.Filter, e ledger.SalesEntry) (bool, error) {
	where, args := whereClause(f)
	if where == "" {
		return false, fmt.Errorf("refusing unfiltered update on sales_ledger")
	}
	res, err := t.db.ExecContext(ctx, `
		UPDATE sales_ledger SET
			sale_date = ?, category = ?, product_name = ?, quantity = ?,
			unit_price = ?, total_price = ?, buyer_name = ?, payment_method = ?`+where,
		append([]any{e.Date, e.Category, e.ProductName, e.Quantity,
			e.UnitPrice, e.TotalPrice, e.BuyerName, e.PaymentMethod}, args...)...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (t *ledgerTable) Delete(ctx context.Context, f record.Filter) (bool, error) {
	where, args := whereClause(f)
	if where == "" {
		return false, fmt.Errorf("refusing unfiltered delete on sales_ledger")
	}
	res, err := t.db.ExecContext(ctx, "DELETE FROM sales_ledger"+where, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// =============================================================================
// PRODUCTS TABLE
// =============================================================================

type productTable struct {
	db *sql.DB
}

const productColumns = `id, owner_id, name, category, stock_quantity,
	price, image_ref, created_at`

func scanProduct(scan func(...any) error) (catalog.ProductRecord, error) {
	var p catalog.ProductRecord
	var category, imageRef sql.NullString
	var stock, price sql.NullInt64
	var createdAt string

	if err := scan(&p.ID, &p.OwnerID, &p.Name, &category, &stock,
		&price, &imageRef, &createdAt); err != nil {
		return catalog.ProductRecord{}, err
	}

	if category.Valid {
		p.Category = &category.String
	}
	if stock.Valid {
		n := int(stock.Int64)
		p.StockQuantity = &n
	}
	if price.Valid {
		v := price.Int64
		p.Price = &v
	}
	if imageRef.Valid {
		p.ImageRef = &imageRef.String
	}
	p.CreatedAt = parseTime(createdAt)
	return p, nil
}

func productArgs(p catalog.ProductRecord) (category, imageRef sql.NullString, stock, price sql.NullInt64) {
	if p.Category != nil {
		category = sql.NullString{String: *p.Category, Valid: true}
	}
	if p.ImageRef != nil {
		imageRef = sql.NullString{String: *p.ImageRef, Valid: true}
	}
	if p.StockQuantity != nil {
		stock = sql.NullInt64{Int64: int64(*p.StockQuantity), Valid: true}
	}
	if p.Price != nil {
		price = sql.NullInt64{Int64: *p.Price, Valid: true}
	}
	return
}

func (t *productTable) SelectOne(ctx context.Context, f record.Filter) (catalog.ProductRecord, bool, error) {
	where, args := whereClause(f)
	row := t.db.QueryRowContext(ctx,
		"SELECT "+productColumns+" FROM products"+where+" LIMIT 1", args...)

	p, err := scanProduct(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.ProductRecord{}, false, nil
	}
	if err != nil {
		return catalog.ProductRecord{}, false, err
	}
	return p, true, nil
}

func (t *productTable) Select(ctx context.Context, f record.Filter, ord record.Order) ([]catalog.ProductRecord, error) {
	where, args := whereClause(f)
	rows, err := t.db.QueryContext(ctx,
		"SELECT "+productColumns+" FROM products"+where+orderClause(ord), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []catalog.ProductRecord
	for rows.Next() {
		p, err := scanProduct(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (t *productTable) Insert(ctx context.Context, p catalog.ProductRecord) error {
	category, imageRef, stock, price := productArgs(p)
	_, err := t.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.OwnerID, p.Name, category, stock, price, imageRef,
		formatTime(p.CreatedAt))
	return err
}

func (t *productTable) Update(ctx context.Context, f record.Filter, p catalog.ProductRecord) (bool, error) {
	where, args := whereClause(f)
	if where == "" {
		return false, fmt.Errorf("refusing unfiltered update on products")
	}
	category, imageRef, stock, price := productArgs(p)
	res, err := t.db.ExecContext(ctx, `
		UPDATE products SET
			name = ?, category = ?, stock_quantity = ?, price = ?, image_ref = ?`+where,
		append([]any{p.Name, category, stock, price, imageRef}, args...)...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (t *productTable) Delete(ctx context.Context, f record.Filter) (bool, error) {
	where, args := whereClause(f)
	if where == "" {
		return false, fmt.Errorf("refusing unfiltered delete on products")
	}
	res, err := t.db.ExecContext(ctx, "DELETE FROM products"+where, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
