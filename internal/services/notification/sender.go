// Package notification moves SMS events between the queue and the gateway.
package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/rabbitmq"
	"github.com/Tebogokaulela455/kaulela-backend/internal/lib/sl"
	"github.com/Tebogokaulela455/kaulela-backend/internal/models"
)

// SMSGateway delivers one text message.
type SMSGateway interface {
	Send(ctx context.Context, to, body string) error
}

// Publisher pushes SMS events onto the events exchange.
type Publisher struct {
	ch *amqp.Channel
}

func NewPublisher(ch *amqp.Channel) *Publisher {
	return &Publisher{ch: ch}
}

// PublishSMS queues one SMS event for the sender worker.
func (p *Publisher) PublishSMS(event models.SMSEvent) error {
	return rabbitmq.PublishMessage(p.ch, rabbitmq.EventsExchange, rabbitmq.RoutingKeySMS, event)
}

// Sender consumes SMS events and hands them to the gateway.
type Sender struct {
	log     *slog.Logger
	gateway SMSGateway
}

func NewSender(log *slog.Logger, gateway SMSGateway) *Sender {
	return &Sender{log: log, gateway: gateway}
}

// HandleMessage processes one queue delivery. A gateway error is returned so
// the delivery gets requeued; a malformed payload is dropped.
func (s *Sender) HandleMessage(body []byte) error {
	const op = "services.notification.HandleMessage"

	var event models.SMSEvent
	if err := json.Unmarshal(body, &event); err != nil {
		s.log.Error("dropping malformed sms event", sl.Err(err))
		return nil
	}
	if event.Phone == "" {
		s.log.Warn("dropping sms event without phone",
			slog.String("account_uid", event.AccountUID))
		return nil
	}

	if err := s.gateway.Send(context.Background(), event.Phone, event.Body); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("sms delivered", slog.String("account_uid", event.AccountUID))
	return nil
}

// Run attaches the sender to the queue and blocks until ctx is cancelled.
func (s *Sender) Run(ctx context.Context, ch *amqp.Channel, queueName string) error {
	if err := rabbitmq.ConsumeMessages(ctx, ch, queueName, s.HandleMessage); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
