package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gcashledger/internal/adapter/http/dto"
	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

// TransactionService defines the ledger mutations needed by TransactionHandler.
type TransactionService interface {
	CreateTransaction(ctx context.Context, input usecase.CreateTransactionInput) (*domain.LedgerEntry, error)
	UpdateTransaction(ctx context.Context, input usecase.UpdateTransactionInput) (*domain.LedgerEntry, error)
	DeleteTransaction(ctx context.Context, ownerID, entryID string) error
}

// EntryReader defines the entry lookups needed by TransactionHandler.
type EntryReader interface {
	ListEntries(ctx context.Context, ownerID string, filter domain.EntryFilter, limit, offset int) ([]*domain.LedgerEntry, error)
	GetEntry(ctx context.Context, ownerID, entryID string) (*domain.LedgerEntry, error)
}

// TransactionHandler handles ledger entry requests.
type TransactionHandler struct {
	txUC    TransactionService
	entries EntryReader
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(txUC TransactionService, entries EntryReader) *TransactionHandler {
	return &TransactionHandler{txUC: txUC, entries: entries}
}

// Create records a cash-in or cash-out.
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	entry, err := h.txUC.CreateTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Update changes an existing entry and re-settles it.
func (h *TransactionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(ownerID(r), chi.URLParam(r, EntryIDParam))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	entry, err := h.txUC.UpdateTransaction(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Delete reverses and removes an entry.
func (h *TransactionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.txUC.DeleteTransaction(r.Context(), ownerID(r), chi.URLParam(r, EntryIDParam)); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Get returns one entry.
func (h *TransactionHandler) Get(w http.ResponseWriter, r *http.Request) {
	entry, err := h.entries.GetEntry(r.Context(), ownerID(r), chi.URLParam(r, EntryIDParam))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// List returns entries filtered by kind, category and date range.
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	from, to, err := parseRangeQuery(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	filter := domain.EntryFilter{From: from, To: to}
	if raw := r.URL.Query().Get("kind"); raw != "" {
		kind, err := domain.ParseTransactionKind(raw)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		filter.Kind = &kind
	}
	if category := r.URL.Query().Get("category_id"); category != "" {
		filter.CategoryID = &category
	}

	entries, err := h.entries.ListEntries(r.Context(), ownerID(r), filter,
		parseIntQuery(r, "limit", 50), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   len(entries),
	})
}
