package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/gcashledger/internal/domain"
	"github.com/iho/gcashledger/internal/infrastructure/postgres/generated"
	"github.com/iho/gcashledger/internal/usecase"
)

// maxOutboxBatch bounds one relay poll; FOR UPDATE SKIP LOCKED holds every
// returned row until the relay commits.
const maxOutboxBatch = 1000

// OutboxRepository stores ledger events (entry created/updated/deleted,
// owner onboarded, low balance) next to the balance change that raised them.
type OutboxRepository struct {
	queries *generated.Queries
}

func NewOutboxRepository(db generated.DBTX) *OutboxRepository {
	return &OutboxRepository{queries: generated.New(db)}
}

// Create must run inside the ledger transaction: an event for a rolled-back
// balance change must never reach the relay.
func (r *OutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if event.AggregateID == "" || event.EventType == "" {
		return fmt.Errorf("outbox event %q: aggregate id and event type are required", event.ID)
	}

	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("encode %s event for %s: %w", event.EventType, event.AggregateID, err)
	}

	err = txQueries(tx).CreateOutboxEvent(ctx, generated.CreateOutboxEventParams{
		ID:            event.ID,
		AggregateID:   event.AggregateID,
		AggregateType: event.AggregateType,
		EventType:     event.EventType,
		Payload:       payload,
		CreatedAt:     timeToPgTimestamptz(event.CreatedAt),
		Published:     false,
	})
	if err != nil {
		return fmt.Errorf("store %s event: %w", event.EventType, err)
	}
	return nil
}

// GetUnpublished returns pending events oldest first. limit is clamped to
// [1, maxOutboxBatch].
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	limit = min(max(limit, 1), maxOutboxBatch)

	rows, err := r.queries.GetUnpublishedEvents(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("load pending events: %w", err)
	}

	events := make([]*domain.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		event, err := outboxEventFromRow(row)
		if err != nil {
			// A corrupt payload would block the queue forever; relay it bare.
			log.Ctx(ctx).Warn().Err(err).Str("event_id", row.ID).Msg("outbox payload unreadable")
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	err := r.queries.MarkEventPublished(ctx, generated.MarkEventPublishedParams{
		ID:          id,
		PublishedAt: timeToPgTimestamptz(publishedAt),
	})
	if err != nil {
		return fmt.Errorf("mark event %s published: %w", id, err)
	}
	return nil
}

// DeletePublished prunes delivered events published before the cutoff.
func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if err := r.queries.DeletePublishedEvents(ctx, timeToPgTimestamptz(before)); err != nil {
		return fmt.Errorf("prune events published before %s: %w", before.Format(time.RFC3339), err)
	}
	return nil
}

func outboxEventFromRow(row generated.OutboxEvent) (*domain.OutboxEvent, error) {
	event := &domain.OutboxEvent{
		ID:            row.ID,
		AggregateID:   row.AggregateID,
		AggregateType: row.AggregateType,
		EventType:     row.EventType,
		CreatedAt:     row.CreatedAt.Time,
		Published:     row.Published,
	}
	if row.PublishedAt.Valid {
		at := row.PublishedAt.Time
		event.PublishedAt = &at
	}

	if len(row.Payload) == 0 {
		return event, nil
	}
	if err := json.Unmarshal(row.Payload, &event.Payload); err != nil {
		return event, fmt.Errorf("decode payload of %s: %w", row.ID, err)
	}
	return event, nil
}

// NullOutboxRepository stands in when OUTBOX_ENABLED is false. Events are
// counted and dropped so the ledger tables do not accumulate an unread queue.
type NullOutboxRepository struct {
	dropped atomic.Int64
}

func NewNullOutboxRepository() *NullOutboxRepository {
	return &NullOutboxRepository{}
}

func (r *NullOutboxRepository) Create(ctx context.Context, _ usecase.Transaction, event *domain.OutboxEvent) error {
	r.dropped.Add(1)
	log.Ctx(ctx).Debug().Str("event_type", event.EventType).Str("aggregate_id", event.AggregateID).Msg("outbox disabled, event dropped")
	return nil
}

// Dropped reports how many events were discarded since start.
func (r *NullOutboxRepository) Dropped() int64 {
	return r.dropped.Load()
}

func (r *NullOutboxRepository) GetUnpublished(context.Context, int) ([]*domain.OutboxEvent, error) {
	return nil, nil
}

func (r *NullOutboxRepository) MarkPublished(context.Context, string, time.Time) error {
	return nil
}

func (r *NullOutboxRepository) DeletePublished(context.Context, time.Time) error {
	return nil
}
