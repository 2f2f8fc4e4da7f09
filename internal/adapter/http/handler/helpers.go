package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/iho/gcashledger/internal/adapter/http/dto"
	"github.com/iho/gcashledger/internal/domain"
)

// URL parameter names shared with the router.
const (
	OwnerIDParam  = "ownerID"
	EntryIDParam  = "entryID"
	ReportIDParam = "reportID"
)

// ErrCodeInternal is the error code of unmapped failures.
const ErrCodeInternal = "internal_error"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   code,
		Message: message,
	})
}

type errorMapping struct {
	err    error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrOwnerNotFound, http.StatusNotFound, "owner_not_found"},
	{domain.ErrEntryNotFound, http.StatusNotFound, "entry_not_found"},
	{domain.ErrCategoryNotFound, http.StatusNotFound, "category_not_found"},
	{domain.ErrReportNotFound, http.StatusNotFound, "report_not_found"},

	{domain.ErrInvalidAmount, http.StatusBadRequest, "invalid_amount"},
	{domain.ErrInvalidPercentage, http.StatusBadRequest, "invalid_percentage"},
	{domain.ErrInvalidKind, http.StatusBadRequest, "invalid_kind"},
	{domain.ErrInvalidPeriod, http.StatusBadRequest, "invalid_period"},
	{domain.ErrInvalidDateRange, http.StatusBadRequest, "invalid_date"},
	{domain.ErrInvalidFormat, http.StatusBadRequest, "invalid_format"},
	{domain.ErrInvalidTrend, http.StatusBadRequest, "invalid_trend"},
	{domain.ErrInvalidName, http.StatusBadRequest, "invalid_name"},
	{domain.ErrInvalidEmail, http.StatusBadRequest, "invalid_email"},
	{domain.ErrPasswordTooWeak, http.StatusBadRequest, "weak_password"},
	{domain.ErrNoteTooLong, http.StatusBadRequest, "note_too_long"},

	{domain.ErrInsufficientFunds, http.StatusUnprocessableEntity, "insufficient_funds"},

	{domain.ErrOwnerExists, http.StatusConflict, "owner_exists"},
	{domain.ErrCategoryExists, http.StatusConflict, "category_exists"},
	{domain.ErrAlreadyOnboarded, http.StatusConflict, "already_onboarded"},
	{domain.ErrNotOnboarded, http.StatusConflict, "owner_not_onboarded"},
	{domain.ErrInconsistentState, http.StatusConflict, "inconsistent_state"},

	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{domain.ErrExpiredToken, http.StatusUnauthorized, "expired_token"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
}

// mapDomainError maps domain errors to an HTTP status code and error code.
func mapDomainError(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			return m.status, m.code
		}
	}
	return http.StatusInternalServerError, ErrCodeInternal
}

// writeDomainError writes err using mapDomainError. Unmapped errors are
// logged and hidden from the client.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := mapDomainError(err)
	if status == http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
		writeError(w, status, code, "internal server error")
		return
	}
	writeError(w, status, code, err.Error())
}

// decodeJSON decodes the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return false
	}
	return true
}

func ownerID(r *http.Request) string {
	return chi.URLParam(r, OwnerIDParam)
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses an optional YYYY-MM-DD query parameter.
func parseDateQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}
	t, err := dto.ParseDate(val)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseRangeQuery parses the optional from and to query parameters.
func parseRangeQuery(r *http.Request) (from, to *time.Time, err error) {
	if from, err = parseDateQuery(r, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = parseDateQuery(r, "to"); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, domain.ErrInvalidDateRange
	}
	return from, to, nil
}
