package pubsub

import (
	"context"

	"github.com/mauv0809/club-pairing/internal/grouping"
)

var _ grouping.Publisher = (*GroupingPublisher)(nil)

// GroupingPublisher announces committed grouping runs on the
// grouping-replaced topic.
type GroupingPublisher struct {
	client PubSubClient
}

func NewGroupingPublisher(client PubSubClient) *GroupingPublisher {
	return &GroupingPublisher{client: client}
}

func (p *GroupingPublisher) PublishGroupingReplaced(ctx context.Context, event grouping.Event) error {
	return p.client.SendMessage(ctx, EventGroupingReplaced, event)
}
