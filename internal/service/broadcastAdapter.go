package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/solomonczyk/autoservice/internal/entity"
	"github.com/solomonczyk/autoservice/pkg/broadcast"
)

// BroadcastAdapter адаптирует широковещательный канал под EventPublisher
type BroadcastAdapter struct {
	broadcaster broadcast.Broadcaster
}

func NewBroadcastAdapter(broadcaster broadcast.Broadcaster) *BroadcastAdapter {
	return &BroadcastAdapter{broadcaster: broadcaster}
}

func (a *BroadcastAdapter) Publish(ctx context.Context, event entity.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}
	return a.broadcaster.Publish(ctx, payload)
}
