/*
handlers.go - HTTP handlers for the seller endpoints

PURPOSE:
  Exposes the owner-scoped CRUD core over REST. Handlers parse and decode,
  then delegate: creation goes through the validator and repository,
  editing drives an edit-session workflow, and listing attaches summary
  metadata. Handlers NEVER touch a Store directly; every data access runs
  through a Repository so the owner filter is always present.

ENDPOINTS:
  GET    /api/me                  Resolved identity + landing page
  GET    /api/ledger              List own sales entries + summary
  POST   /api/ledger              Record a sale
  GET    /api/ledger/{id}         Fetch one sales entry
  PUT    /api/ledger/{id}         Edit a sales entry (edit workflow)
  DELETE /api/ledger/{id}         Delete a sales entry
  GET    /api/products            List own products
  POST   /api/products            Add a product
  GET    /api/products/{id}       Fetch one product
  PUT    /api/products/{id}       Edit a product (edit workflow)
  DELETE /api/products/{id}       Delete a product

ERROR HANDLING:
  - 400: validation failures (with the field->message map), bad bodies,
         unknown fields
  - 401: no resolved identity (generic body)
  - 404: id absent or owned by someone else (generic body; deliberately
         indistinguishable)
  - 502: record store fault (sanitized)
  - 500: anything else

SEE ALSO:
  - dto.go: Wire shapes
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/warp/seller-core/catalog"
	"github.com/warp/seller-core/identity"
	"github.com/warp/seller-core/ledger"
	"github.com/warp/seller-core/record"
	"github.com/warp/seller-core/workflow"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Ledger   *record.Repository[ledger.SalesEntry]
	Products *record.Repository[catalog.ProductRecord]
	Identity *identity.Resolver
	Log      *zap.Logger
}

// NewHandler creates a handler over the two repositories.
func NewHandler(
	ledgerRepo *record.Repository[ledger.SalesEntry],
	productRepo *record.Repository[catalog.ProductRecord],
	ids *identity.Resolver,
	log *zap.Logger,
) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Ledger: ledgerRepo, Products: productRepo, Identity: ids, Log: log}
}

// =============================================================================
// IDENTITY
// =============================================================================

// Me reports the resolved identity and where its role hint lands after
// login. The hint routes; it never authorizes.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Identity.Current(r.Context())
	if err != nil {
		if errors.Is(err, identity.ErrUnauthenticated) {
			writeError(w, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		h.Log.Error("identity provider failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "identity unavailable", nil)
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{
		UserID:  string(sess.UserID),
		Role:    string(sess.Role),
		Landing: identity.LandingPath(sess.Role),
	})
}

// =============================================================================
// SALES LEDGER
// =============================================================================

// ListEntries returns the caller's ledger, newest first, with aggregates.
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Ledger.FetchAll(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	dtos := make([]EntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = entryDTO(e)
	}
	writeJSON(w, http.StatusOK, ListEntriesResponse{
		Entries: dtos,
		Summary: summaryDTO(ledger.Summarize(entries)),
	})
}

// CreateEntry validates a complete draft and records the sale.
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	entry, errs := ledger.Validate(req.draft())
	if errs != nil {
		writeValidation(w, errs)
		return
	}

	saved, err := h.Ledger.Insert(r.Context(), entry)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, entryDTO(saved))
}

// GetEntry fetches one of the caller's entries.
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.Ledger.FetchOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entryDTO(entry))
}

// UpdateEntry drives an edit session: load, apply the request's field
// edits onto the draft, save. Absent fields keep their loaded values.
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var req UpdateEntryRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	sess := workflow.NewSession[ledger.SalesEntry, ledger.EntryDraft](
		h.Ledger, ledger.EntryCodec{}, h.Log)

	if err := sess.Load(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	for _, edit := range req.edits() {
		if err := sess.Edit(edit.field, edit.value); err != nil {
			writeError(w, http.StatusBadRequest, "invalid field", nil)
			return
		}
	}
	saved, err := sess.Save(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entryDTO(saved))
}

// DeleteEntry removes one of the caller's entries.
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// PRODUCT CATALOG
// =============================================================================

// ListProducts returns the caller's catalog, newest first.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.FetchAll(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = productDTO(p)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateProduct validates a product draft and adds it to the catalog.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	product, errs := catalog.Validate(req.draft())
	if errs != nil {
		writeValidation(w, errs)
		return
	}

	saved, err := h.Products.Insert(r.Context(), product)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, productDTO(saved))
}

// GetProduct fetches one of the caller's products.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.FetchOne(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productDTO(product))
}

// UpdateProduct drives an edit session over the product draft.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := decodeStrict(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	sess := workflow.NewSession[catalog.ProductRecord, catalog.ProductDraft](
		h.Products, catalog.ProductCodec{}, h.Log)

	if err := sess.Load(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	for _, edit := range req.edits() {
		if err := sess.Edit(edit.field, edit.value); err != nil {
			writeError(w, http.StatusBadRequest, "invalid field", nil)
			return
		}
	}
	saved, err := sess.Save(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, productDTO(saved))
}

// DeleteProduct removes one of the caller's products.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// HELPERS
// =============================================================================

// writeDomainError maps the record error taxonomy to HTTP. Unauthorized
// and NotFound bodies are generic on purpose: internal detail for either
// would let callers distinguish "doesn't exist" from "not yours".
func (h *Handler) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case record.IsValidation(err):
		writeValidation(w, record.ValidationFields(err))
	case record.IsUnauthorized(err):
		writeError(w, http.StatusUnauthorized, "authentication required", nil)
	case record.IsNotFound(err):
		writeError(w, http.StatusNotFound, "not found", nil)
	case record.IsRetryable(err):
		h.Log.Error("record store failure",
			zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusBadGateway, "storage temporarily unavailable", nil)
	default:
		h.Log.Error("request failed",
			zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func decodeStrict(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, fields record.FieldErrors) {
	writeJSON(w, status, ErrorResponse{Error: message, Fields: fields})
}

func writeValidation(w http.ResponseWriter, errs record.FieldErrors) {
	writeError(w, http.StatusBadRequest, "validation failed", errs)
}
