package level

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-levelgen/internal/entities"
)

// Event types published on the configured bus
const (
	EventLevelGenerated = "level.generated"
	EventLevelRepaired  = "level.repaired"
)

// publish emits a level event; the level is both source and subject.
// Bus failures never fail generation.
func (o *orchestrator) publish(ctx context.Context, eventType string, level *entities.Level) {
	if o.eventBus == nil {
		return
	}

	if err := o.eventBus.Publish(ctx, events.NewGameEvent(eventType, level, nil)); err != nil {
		slog.Warn("Failed to publish level event",
			"event", eventType,
			"level_id", level.ID,
			"error", err)
	}
}
