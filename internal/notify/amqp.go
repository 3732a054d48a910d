package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

const QueueAppointmentCreated = "appointment.created"

// handshakeTimeout bounds the connection handshake when the send context
// carries no deadline.
const handshakeTimeout = 10 * time.Second

// AMQPSender publishes persistent messages to a durable RabbitMQ queue
// through the default exchange. The connection is opened lazily and
// reopened after a failure.
type AMQPSender struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPSender(url string) *AMQPSender {
	return &AMQPSender{url: url, queue: QueueAppointmentCreated}
}

func (a *AMQPSender) Name() string { return "amqp" }

func (a *AMQPSender) Send(ctx context.Context, ev Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ch, err := a.channel(ctx)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Type:         ev.Event,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",      // default exchange
		a.queue, // routing key = queue name
		false,
		false,
		pub,
	); err != nil {
		a.reset()
		return fmt.Errorf("amqp publish: %w", err)
	}
	return nil
}

func (a *AMQPSender) channel(ctx context.Context) (*amqp.Channel, error) {
	if a.ch != nil && !a.ch.IsClosed() {
		return a.ch, nil
	}
	a.reset()

	conn, err := amqp.DialConfig(a.url, amqp.Config{
		Locale: "en_US",
		Dial:   dialContext(ctx),
	})
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if _, err := ch.QueueDeclare(a.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("amqp queue declare: %w", err)
	}

	a.conn, a.ch = conn, ch
	return ch, nil
}

// dialContext opens the TCP connection under ctx and carries its deadline
// through the AMQP handshake. The library clears it once the connection is
// open.
func dialContext(ctx context.Context) func(network, addr string) (net.Conn, error) {
	return func(network, addr string) (net.Conn, error) {
		var d net.Dialer
		conn, err := d.DialContext(ctx, network, addr)
		if err != nil {
			return nil, err
		}
		deadline, ok := ctx.Deadline()
		if !ok {
			deadline = time.Now().Add(handshakeTimeout)
		}
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return conn, nil
	}
}

func (a *AMQPSender) reset() {
	if a.ch != nil {
		_ = a.ch.Close()
	}
	if a.conn != nil {
		_ = a.conn.Close()
	}
	a.conn, a.ch = nil, nil
}

func (a *AMQPSender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.reset()
	return nil
}
