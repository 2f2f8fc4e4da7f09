package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/iho/gcashledger/internal/domain"
)

// OwnerLookup is satisfied by the owner use case.
type OwnerLookup interface {
	GetOwner(ctx context.Context, id string) (*domain.Owner, error)
}

// RequireOnboarded blocks ledger routes until the owner has set initial balances.
func RequireOnboarded(owners OwnerLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, err := owners.GetOwner(r.Context(), chi.URLParam(r, "ownerID"))
			switch {
			case errors.Is(err, domain.ErrOwnerNotFound):
				writeError(w, http.StatusNotFound, "owner_not_found", err.Error())
				return
			case err != nil:
				log.Ctx(r.Context()).Error().Err(err).Msg("owner lookup failed")
				writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
				return
			case !owner.Onboarded:
				writeError(w, http.StatusConflict, "owner_not_onboarded", domain.ErrNotOnboarded.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
