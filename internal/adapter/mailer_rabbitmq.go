package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/internal/utils"
	"github.com/nitesh01487/natours/models"
)

// amqpChannel is the part of *amqp.Channel the mailer uses.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// emailJob is the message body consumed by the delivery service.
type emailJob struct {
	From string `json:"from"`
	models.Email
}

type rabbitMailer struct {
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
	from    string
	ids     *utils.UUIDGenerator
	now     func() time.Time
	logger  *logger.Logger
}

// NewMailer returns a [Mailer] publishing to cfg.Queue. Without an AMQP url
// emails are only logged, which keeps local development free of a broker.
func NewMailer(cfg config.Mailer, logger *logger.Logger) (Mailer, error) {
	if strings.TrimSpace(cfg.AMQPURL) == "" {
		logger.Warn().Str("func", "NewMailer").Msg("amqp url is empty, emails will only be logged")
		return &logMailer{logger: logger}, nil
	}

	conn, err := amqp.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Err(err).Str("func", "NewMailer").Msg("error connecting to rabbitmq")
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	m, err := newRabbitMailer(ch, cfg, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	m.conn = conn

	logger.Info().Str("func", "NewMailer").Str("queue", cfg.Queue).Msg("connected to rabbitmq")
	return m, nil
}

func newRabbitMailer(ch amqpChannel, cfg config.Mailer, logger *logger.Logger) (*rabbitMailer, error) {
	if _, err := ch.QueueDeclare(cfg.Queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %q: %w", cfg.Queue, err)
	}

	return &rabbitMailer{
		channel: ch,
		queue:   cfg.Queue,
		from:    cfg.From,
		ids:     utils.NewUUIDGenerator(),
		now:     time.Now,
		logger:  logger,
	}, nil
}

// Send implements [Mailer].
func (m *rabbitMailer) Send(ctx context.Context, email models.Email) error {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(emailJob{From: m.from, Email: email})
	if err != nil {
		return fmt.Errorf("encode email: %w", err)
	}

	err = m.channel.PublishWithContext(ctx, "", m.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    m.ids.Generate(),
		Type:         email.Template,
		Timestamp:    m.now(),
		Body:         body,
	})
	if err != nil {
		log.Err(err).Str("func", "*rabbitMailer.Send").Str("template", email.Template).Msg("error publishing email")
		return fmt.Errorf("publish email: %w", err)
	}

	log.Debug().Str("func", "*rabbitMailer.Send").Str("template", email.Template).Msg("email queued")
	return nil
}

// Close implements [Mailer].
func (m *rabbitMailer) Close() error {
	if m.channel != nil {
		_ = m.channel.Close()
	}
	if m.conn != nil {
		return m.conn.Close()
	}
	return nil
}

// logMailer records emails in the log instead of sending them. Template
// variables are not logged since they may carry reset links.
type logMailer struct {
	logger *logger.Logger
}

func (m *logMailer) Send(ctx context.Context, email models.Email) error {
	logger.FromContext(ctx).Info().
		Str("func", "*logMailer.Send").
		Str("template", email.Template).
		Str("subject", email.Subject).
		Msg("email not sent: mailer has no broker")
	return nil
}

func (m *logMailer) Close() error {
	return nil
}
