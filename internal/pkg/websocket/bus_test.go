package websocket

import (
	"encoding/json"
	"testing"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNATSBusReceiveDeliversToHub(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil)
	bus := &NATSBus{hub: hub, logger: zerolog.Nop()}

	frame, err := encodeFrame(EventNotification, map[string]string{"title": "t", "message": "m", "link": "/x"})
	require.NoError(t, err)
	data, err := json.Marshal(busEnvelope{Room: "user:admin:1", Event: EventNotification, Frame: frame})
	require.NoError(t, err)

	bus.receive(&nats.Msg{Data: data})

	msg := <-hub.broadcast
	assert.Equal(t, "user:admin:1", msg.room)
	assert.Equal(t, EventNotification, msg.event)
	assert.JSONEq(t, string(frame), string(msg.data))
}

func TestNATSBusReceiveIgnoresGarbage(t *testing.T) {
	hub := NewHub(zerolog.Nop(), nil)
	bus := &NATSBus{hub: hub, logger: zerolog.Nop()}

	bus.receive(&nats.Msg{Data: []byte("{")})
	assert.Len(t, hub.broadcast, 0)
}
