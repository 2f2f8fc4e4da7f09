package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	redisrepo "github.com/iho/gcashledger/internal/adapter/repository/redis"
	"github.com/iho/gcashledger/internal/usecase"
)

const (
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader is set on responses served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	maxFingerprintBody = 1 << 20
)

// recordedResponse is the envelope kept for a completed write. Fingerprint
// is a hash of the request body; replaying a key with a different body
// (another amount, another kind) is refused instead of answered.
type recordedResponse struct {
	Fingerprint string `json:"fingerprint"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// IdempotencyMiddleware makes ledger writes safe to retry: a POST, PUT or
// PATCH carrying Idempotency-Key runs once, later copies get the recorded
// 2xx response. Failed writes release the key.
type IdempotencyMiddleware struct {
	store usecase.IdempotencyStore
	ttl   time.Duration
}

// NewIdempotencyMiddleware uses usecase.IdempotencyKeyTTL when ttl is zero.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientKey := r.Header.Get(IdempotencyKeyHeader)
		if clientKey == "" || !isWrite(r.Method) {
			next.ServeHTTP(w, r)
			return
		}
		key := scopedKey(r, clientKey)
		logger := log.Ctx(r.Context()).With().Str("idempotency_key", clientKey).Logger()

		fingerprint, err := fingerprintBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "request body could not be read")
			return
		}

		exists, stored, err := m.store.CheckAndSet(r.Context(), key, nil, m.ttl)
		if err != nil {
			logger.Error().Err(err).Msg("idempotency store unavailable")
			writeError(w, http.StatusInternalServerError, "internal_error", "idempotency check failed")
			return
		}
		if exists {
			m.answerDuplicate(w, stored, fingerprint)
			return
		}

		var body bytes.Buffer
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Tee(&body)
		next.ServeHTTP(ww, r)

		// The client may have gone away; the key still has to be settled.
		ctx := context.WithoutCancel(r.Context())
		status := responseStatus(ww)
		if status < 200 || status >= 300 {
			if err := m.store.Release(ctx, key); err != nil {
				logger.Warn().Err(err).Msg("failed to release idempotency key")
			}
			return
		}

		record, err := json.Marshal(recordedResponse{
			Fingerprint: fingerprint,
			Status:      status,
			ContentType: ww.Header().Get("Content-Type"),
			Body:        body.Bytes(),
		})
		if err == nil {
			err = m.store.Update(ctx, key, record, m.ttl)
		}
		if err != nil {
			logger.Warn().Err(err).Msg("failed to record idempotent response")
		}
	})
}

func (m *IdempotencyMiddleware) answerDuplicate(w http.ResponseWriter, stored []byte, fingerprint string) {
	if len(stored) == 0 || redisrepo.IsProcessing(stored) {
		writeError(w, http.StatusConflict, "request_in_progress", "a request with this idempotency key is still being processed")
		return
	}

	var rec recordedResponse
	if err := json.Unmarshal(stored, &rec); err != nil || rec.Status == 0 {
		rec = recordedResponse{Status: http.StatusOK, ContentType: "application/json", Body: stored}
	}
	if rec.Fingerprint != "" && rec.Fingerprint != fingerprint {
		writeError(w, http.StatusUnprocessableEntity, "idempotency_key_reused", "idempotency key was already used with a different request body")
		return
	}

	if rec.ContentType != "" {
		w.Header().Set("Content-Type", rec.ContentType)
	}
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(rec.Status)
	_, _ = w.Write(rec.Body)
}

func isWrite(method string) bool {
	return method == http.MethodPost || method == http.MethodPut || method == http.MethodPatch
}

// scopedKey ties a client key to the route it was sent to, so one key can
// never replay a response from another owner's endpoint.
func scopedKey(r *http.Request, clientKey string) string {
	return r.Method + ":" + r.URL.Path + ":" + clientKey
}

// fingerprintBody hashes the body and puts it back for the handler.
func fingerprintBody(r *http.Request) (string, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return "", nil
	}
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxFingerprintBody))
	if err != nil {
		return "", err
	}
	_ = r.Body.Close()
	r.Body = io.NopCloser(bytes.NewReader(raw))

	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
