package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitesh01487/natours/internal/config"
	"github.com/nitesh01487/natours/internal/logger"
	"github.com/nitesh01487/natours/models"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	declareErr error
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	if f.declareErr != nil {
		return amqp.Queue{}, f.declareErr
	}
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

var mailerCfg = config.Mailer{Queue: "natours.emails", From: "Natours <hello@natours.dev>"}

func TestRabbitMailer_Send(t *testing.T) {
	ch := &fakeChannel{}
	m, err := newRabbitMailer(ch, mailerCfg, logger.Nop())
	require.NoError(t, err)
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	email := models.Email{
		Template: models.EmailTemplatePasswordReset,
		To:       "jonas@example.io",
		Subject:  "Your password reset token (valid for only 10 minutes)",
		Vars:     map[string]string{"url": "http://localhost:8080/api/v1/users/resetPassword/abc"},
	}
	require.NoError(t, m.Send(context.Background(), email))

	assert.Equal(t, []string{"natours.emails"}, ch.declared)
	require.Len(t, ch.published, 1)
	assert.Equal(t, []string{"natours.emails"}, ch.keys)

	msg := ch.published[0]
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, models.EmailTemplatePasswordReset, msg.Type)
	assert.Equal(t, now, msg.Timestamp)
	assert.NotEmpty(t, msg.MessageId)

	var job map[string]any
	require.NoError(t, json.Unmarshal(msg.Body, &job))
	assert.Equal(t, "Natours <hello@natours.dev>", job["from"])
	assert.Equal(t, "jonas@example.io", job["to"])
	assert.Equal(t, "passwordReset", job["template"])
}

func TestRabbitMailer_SendError(t *testing.T) {
	ch := &fakeChannel{}
	m, err := newRabbitMailer(ch, mailerCfg, logger.Nop())
	require.NoError(t, err)

	ch.publishErr = amqp.ErrClosed
	err = m.Send(context.Background(), models.Email{Template: models.EmailTemplateWelcome})
	assert.ErrorIs(t, err, amqp.ErrClosed)
}

func TestRabbitMailer_DeclareError(t *testing.T) {
	ch := &fakeChannel{declareErr: errors.New("access refused")}
	_, err := newRabbitMailer(ch, mailerCfg, logger.Nop())
	assert.ErrorContains(t, err, "access refused")
	assert.True(t, ch.closed)
}

func TestRabbitMailer_Close(t *testing.T) {
	ch := &fakeChannel{}
	m, err := newRabbitMailer(ch, mailerCfg, logger.Nop())
	require.NoError(t, err)

	assert.NoError(t, m.Close())
	assert.True(t, ch.closed)
}

func TestNewMailer_WithoutBroker(t *testing.T) {
	m, err := NewMailer(config.Mailer{}, logger.Nop())
	require.NoError(t, err)

	assert.IsType(t, &logMailer{}, m)
	assert.NoError(t, m.Send(context.Background(), models.Email{Template: models.EmailTemplateWelcome}))
	assert.NoError(t, m.Close())
}
