package event

import (
	"context"

	"github.com/SiteOrganizo/organize-your-catalog/internal/domain/shared"
	"github.com/SiteOrganizo/organize-your-catalog/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// ActivityLog writes every domain event to the structured log, tagged with
// the request's trace fields when present
type ActivityLog struct {
	logger *zap.Logger
}

// NewActivityLog creates the handler
func NewActivityLog(log *zap.Logger) *ActivityLog {
	return &ActivityLog{logger: log}
}

// EventTypes returns nil: the handler receives every event
func (h *ActivityLog) EventTypes() []string {
	return nil
}

// Handle logs the event
func (h *ActivityLog) Handle(ctx context.Context, event shared.DomainEvent) error {
	logger.Enrich(ctx, h.logger).Info("Catalog activity",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_type", event.AggregateType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.String("owner_id", event.OwnerID().String()),
		zap.Time("occurred_at", event.OccurredAt()),
	)
	return nil
}

var _ shared.EventHandler = (*ActivityLog)(nil)
