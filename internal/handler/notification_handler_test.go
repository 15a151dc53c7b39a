package handler

import (
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingWriter struct {
	messages []string
}

func (w *recordingWriter) WriteMessage(messageType int, data []byte) error {
	w.messages = append(w.messages, string(data))
	return nil
}

func TestPumpNotificationsStopsWhenChannelCloses(t *testing.T) {
	ch := make(chan *redis.Message, 1)
	ch <- &redis.Message{Payload: `{"title":"hi"}`}
	close(ch)

	w := &recordingWriter{}
	finished := make(chan struct{})
	go func() {
		pumpNotifications(w, ch, make(chan struct{}), make(chan struct{}))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump kept running after the channel closed")
	}

	require.Len(t, w.messages, 1)
	assert.Equal(t, `{"title":"hi"}`, w.messages[0])
}

func TestPumpNotificationsStopsWhenClientHangsUp(t *testing.T) {
	ch := make(chan *redis.Message)
	clientClosed := make(chan struct{})
	close(clientClosed)

	finished := make(chan struct{})
	go func() {
		pumpNotifications(&recordingWriter{}, ch, clientClosed, make(chan struct{}))
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("pump kept running after the client hung up")
	}
}
