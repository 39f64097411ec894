package mapview

import (
	"context"

	"github.com/region-map-service/internal/domain"
	"github.com/region-map-service/internal/domain/repository"
)

// StreamPublisher пишет события выбора в Redis stream для сервиса заявлений
type StreamPublisher struct {
	stream repository.StreamRepository
	name   string
}

func NewStreamPublisher(stream repository.StreamRepository) *StreamPublisher {
	return &StreamPublisher{
		stream: stream,
		name:   domain.StreamMapSelection,
	}
}

func (p *StreamPublisher) Publish(ctx context.Context, event domain.SelectionChangedEvent) error {
	return p.stream.PublishToStream(ctx, p.name, event)
}
