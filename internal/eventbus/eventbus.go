// Package eventbus publishes the three downstream sync events
// (checkpoint/reorg/finalize) to NATS JetStream, generalizing the
// teacher's internal/nats.Publisher from one hardcoded Polymarket event
// shape into the sync service's stable external event surface (spec §6).
package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"
)

// EventType is one of the three downstream event kinds spec §6 names.
type EventType string

const (
	Checkpoint EventType = "checkpoint"
	Reorg      EventType = "reorg"
	Finalize   EventType = "finalize"
)

const (
	streamName           = "EVMINDEXER"
	streamSubjectPattern = "EVMINDEXER.*.*"
	streamCreateTimeout  = 10 * time.Second
	duplicateWindow      = 20 * time.Minute
)

// Event is the payload published for every downstream event: `{type,
// chainId, checkpoint}` per spec §6, plus ReorgFrom for reorg events (the
// highest invalidated block number) so a downstream consumer doesn't need
// to re-derive it.
type Event struct {
	Type       EventType `json:"type"`
	ChainID    uint64    `json:"chainId"`
	Checkpoint string    `json:"checkpoint"`
	ReorgFrom  uint64    `json:"reorgFrom,omitempty"`
}

// Bus publishes Events to NATS JetStream with message-ID deduplication, the
// same dedup-by-message-ID pattern as internal/nats.Publisher.
type Bus struct {
	js     jetstream.JetStream
	nc     *nats.Conn
	logger zerolog.Logger
	prefix string
}

// Config configures a Bus connection.
type Config struct {
	URL             string
	SubjectPrefix   string // defaults to streamName if empty
	PersistDuration time.Duration
}

// New connects to NATS, creates the JetStream context, and ensures the
// event stream exists (create-or-update, matching the teacher's startup
// sequence).
func New(ctx context.Context, cfg Config, logger zerolog.Logger) (*Bus, error) {
	prefix := cfg.SubjectPrefix
	if prefix == "" {
		prefix = streamName
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name("evmindexer"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Error().Err(err).Msg("nats disconnected")
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info().Msg("nats reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("eventbus: connect to nats: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("eventbus: create jetstream context: %w", err)
	}

	streamCtx, cancel := context.WithTimeout(ctx, streamCreateTimeout)
	defer cancel()

	persist := cfg.PersistDuration
	if persist <= 0 {
		persist = 24 * time.Hour
	}

	_, err = js.CreateOrUpdateStream(streamCtx, jetstream.StreamConfig{
		Name:       streamName,
		Subjects:   []string{streamSubjectPattern},
		MaxAge:     persist,
		Storage:    jetstream.FileStorage,
		Duplicates: duplicateWindow,
		Retention:  jetstream.LimitsPolicy,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("eventbus: create stream: %w", err)
	}

	logger.Info().
		Str("stream", streamName).
		Dur("max_age", persist).
		Msg("eventbus publisher initialized")

	return &Bus{
		js:     js,
		nc:     nc,
		logger: logger.With().Str("component", "eventbus").Logger(),
		prefix: prefix,
	}, nil
}

// Publish sends ev with a deterministic message ID (chainId + type +
// checkpoint) so a redelivered publish within the duplicate window is a
// no-op rather than a second event.
func (b *Bus) Publish(ctx context.Context, ev Event) error {
	subject := fmt.Sprintf("%s.%s.%d", b.prefix, ev.Type, ev.ChainID)

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("eventbus: marshal event: %w", err)
	}

	msgID := fmt.Sprintf("%d-%s-%s", ev.ChainID, ev.Type, ev.Checkpoint)

	if _, err := b.js.Publish(ctx, subject, data, jetstream.WithMsgID(msgID)); err != nil {
		b.logger.Error().Err(err).Str("subject", subject).Str("msg_id", msgID).Msg("failed to publish event")
		return fmt.Errorf("eventbus: publish: %w", err)
	}

	b.logger.Debug().Str("subject", subject).Str("msg_id", msgID).Msg("event published")
	return nil
}

// Close closes the underlying NATS connection.
func (b *Bus) Close() {
	if b.nc != nil {
		b.nc.Close()
	}
}

// Healthy reports whether the NATS connection is currently up.
func (b *Bus) Healthy() bool {
	return b.nc != nil && b.nc.IsConnected()
}
