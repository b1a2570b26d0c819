package websocket

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// busEnvelope is the NATS message carrying one emitted event between instances
type busEnvelope struct {
	Room  string          `json:"room"`
	Event string          `json:"event"`
	Frame json.RawMessage `json:"frame"`
}

// NATSBus publishes emitted events to a NATS subject and delivers every event received on
// that subject to the local hub, so each instance reaches the clients connected to it.
type NATSBus struct {
	nc      *nats.Conn
	sub     *nats.Subscription
	subject string
	hub     *Hub
	logger  zerolog.Logger
}

// NewNATSBus connects to url and subscribes hub to subject
func NewNATSBus(url, subject string, hub *Hub, logger zerolog.Logger) (*NATSBus, error) {
	nc, err := nats.Connect(url,
		nats.Name("projecthub-realtime"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(5),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return newNATSBus(nc, subject, hub, logger)
}

func newNATSBus(nc *nats.Conn, subject string, hub *Hub, logger zerolog.Logger) (*NATSBus, error) {
	b := &NATSBus{
		nc:      nc,
		subject: subject,
		hub:     hub,
		logger:  logger.With().Str("component", "nats_bus").Logger(),
	}

	sub, err := nc.Subscribe(subject, b.receive)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	b.sub = sub
	b.logger.Info().Str("subject", subject).Msg("Realtime bus subscribed")
	return b, nil
}

func (b *NATSBus) receive(msg *nats.Msg) {
	var env busEnvelope
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		b.logger.Warn().Err(err).Msg("Discarding malformed bus message")
		return
	}
	b.hub.emitRaw(env.Room, env.Event, env.Frame)
}

// Emit publishes the event to every instance. When publishing fails the event is delivered
// to local clients only.
func (b *NATSBus) Emit(room, event string, payload any) {
	frame, err := encodeFrame(event, payload)
	if err != nil {
		b.logger.Error().Err(err).Str("room", room).Str("event", event).Msg("Failed to marshal event")
		return
	}
	data, err := json.Marshal(busEnvelope{Room: room, Event: event, Frame: frame})
	if err != nil {
		b.logger.Error().Err(err).Msg("Failed to marshal bus envelope")
		return
	}
	if err := b.nc.Publish(b.subject, data); err != nil {
		b.logger.Warn().Err(err).Str("room", room).Msg("NATS publish failed, delivering locally")
		b.hub.emitRaw(room, event, frame)
	}
}

// Close unsubscribes and drains the connection
func (b *NATSBus) Close() error {
	if b.sub != nil {
		_ = b.sub.Unsubscribe()
	}
	return b.nc.Drain()
}
