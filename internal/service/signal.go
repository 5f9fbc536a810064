package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/capitania/consimar/internal/domain"
)

const channelPrefix = "consimar:"

// SignalService fans table change events out over redis pub/sub. Every
// write the usecases commit publishes one event; dashboard sockets and
// the countdown refresher consume them.
type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event domain.Event) error {
	ctx, span := tracer.Start(ctx, "Signal.Service.Publish",
		trace.WithAttributes(attribute.String("table", event.Table)))
	defer span.End()

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channelPrefix+event.Table, jsonstr).Err()
	if err != nil {
		return err

	}

	return nil
}

// Realtime pumps change events for a client-selected set of tables into
// output. Each value received on input replaces the subscription set
// wholesale. Returns when ctx is cancelled or input closes.
func (s *SignalService) Realtime(ctx context.Context, input chan []string, output chan domain.Event) {
	psub := s.rdb.Subscribe(ctx)
	defer psub.Close()

	messages := psub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case tables, ok := <-input:
			if !ok {
				return
			}
			channels := make([]string, 0, len(tables))
			for _, table := range tables {
				channels = append(channels, channelPrefix+table)
			}
			if err := psub.Unsubscribe(ctx); err != nil {
				slog.ErrorContext(
					ctx, "Failed to reset subscription",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				return
			}
			if err := psub.Subscribe(ctx, channels...); err != nil {
				slog.ErrorContext(
					ctx, "Failed to subscribe",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				return
			}
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(
					ctx, "Failed to decode event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Watch invokes fn for every change event on a single table until ctx
// is cancelled.
func (s *SignalService) Watch(ctx context.Context, table string, fn func(domain.Event)) {
	psub := s.rdb.Subscribe(ctx, channelPrefix+table)
	defer psub.Close()

	messages := psub.Channel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event domain.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				continue
			}
			fn(event)
		}
	}
}
