package notify

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentBroker accepts TCP connections and never answers the handshake.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu    sync.Mutex
		conns []net.Conn
	)
	go func() {
		for {
			c, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			conns = append(conns, c)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range conns {
			_ = c.Close()
		}
	})
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestAMQPSender_HandshakeHonoursContextDeadline(t *testing.T) {
	s := NewAMQPSender(silentBroker(t))
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := s.Send(ctx, Event{Event: EventAppointmentCreated, AppointmentID: 1})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "amqp dial")
	assert.Less(t, elapsed, 5*time.Second)
}

func TestAMQPSender_CancelledContextSkipsDial(t *testing.T) {
	s := NewAMQPSender(silentBroker(t))
	t.Cleanup(func() { _ = s.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	err := s.Send(ctx, Event{Event: EventAppointmentCreated, AppointmentID: 1})

	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
