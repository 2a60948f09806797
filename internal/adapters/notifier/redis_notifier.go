package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"corkboard-listing-service/internal/ports/outbound"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const channelPrefix = "listing"

// RedisNotifier delivers mutation events over Redis pub/sub. It is the
// narrow interface to the external notification collaborator; callers treat
// a failed publish as reported, never retried.
type RedisNotifier struct {
	client *redis.Client
	logger zerolog.Logger
}

type RedisNotifierParams struct {
	RedisClient *redis.Client
	Logger      zerolog.Logger
}

func NewNotifier(params RedisNotifierParams) *RedisNotifier {
	return &RedisNotifier{
		client: params.RedisClient,
		logger: params.Logger.With().Str("component", "redis_notifier").Logger(),
	}
}

// Publish sends the event to the per-listing channel
func (n *RedisNotifier) Publish(ctx context.Context, event outbound.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	channel := fmt.Sprintf("%s:%s", channelPrefix, event.ListingID)
	if err := n.client.Publish(ctx, channel, payload).Err(); err != nil {
		n.logger.Error().
			Err(err).
			Str("channel", channel).
			Str("event_type", string(event.Type)).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	n.logger.Debug().
		Str("channel", channel).
		Str("event_type", string(event.Type)).
		Msg("Event published")

	return nil
}
