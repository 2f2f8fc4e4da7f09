package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gcashledger/internal/adapter/http/dto"
	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	GenerateReport(ctx context.Context, input usecase.GenerateReportInput) (*domain.Report, error)
	GetReport(ctx context.Context, ownerID, reportID string) (*domain.Report, error)
	ListReports(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Report, error)
	ExportReport(ctx context.Context, ownerID, reportID, format string) (*usecase.ExportedReport, error)
}

// ReconciliationService defines the behavior needed by ReportHandler.Reconcile.
type ReconciliationService interface {
	ReconcileOwner(ctx context.Context, ownerID string) (*usecase.ReconciliationResult, error)
}

// ReportHandler handles period reports, exports and reconciliation checks.
type ReportHandler struct {
	reportUC    ReportService
	reconcileUC ReconciliationService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService, reconcileUC ReconciliationService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC, reconcileUC: reconcileUC}
}

// Generate builds and stores a report.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req dto.GenerateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input, err := req.ToUseCaseInput(ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	report, err := h.reportUC.GenerateReport(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.ReportFromDomain(report))
}

// Get returns a stored report.
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUC.GetReport(r.Context(), ownerID(r), chi.URLParam(r, ReportIDParam))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ReportFromDomain(report))
}

// List returns the owner's reports, newest first.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	reports, err := h.reportUC.ListReports(r.Context(), ownerID(r),
		parseIntQuery(r, "limit", 20), parseIntQuery(r, "offset", 0))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ReportsFromDomain(reports))
}

// Export renders a stored report as ?format=pdf|xlsx.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "pdf"
	}

	exported, err := h.reportUC.ExportReport(r.Context(), ownerID(r), chi.URLParam(r, ReportIDParam), format)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", exported.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", exported.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(exported.Data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(exported.Data)
}

// Reconcile compares the owner's profit aggregate with the ledger.
func (h *ReportHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.reconcileUC.ReconcileOwner(r.Context(), ownerID(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}
