package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studentportal/domain"
	"studentportal/services/registration/repository"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *captureWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func TestRegistrationEvents_PublishesSummaryWithoutPassword(t *testing.T) {
	w := &captureWriter{}
	reg := domain.NewRegistration(domain.Document{
		"fullName": "Ann",
		"email":    "ann@x.io",
		"course":   "B.Sc",
		"password": "hunter2",
	})
	reg.ID = "0190a0b0-0000-7000-8000-000000000001"
	reg.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	err := repository.NewRegistrationEvents(w).Registered(context.Background(), reg)

	require.NoError(t, err)
	require.Len(t, w.msgs, 1)
	assert.Equal(t, reg.ID, string(w.msgs[0].Key))
	assert.NotContains(t, string(w.msgs[0].Value), "hunter2")

	var ev domain.RegistrationEvent
	require.NoError(t, sonic.Unmarshal(w.msgs[0].Value, &ev))
	assert.Equal(t, domain.NewRegistrationEvent(reg), ev)
}

func TestRegistrationEvents_WriteFailure(t *testing.T) {
	w := &captureWriter{err: errors.New("broker down")}
	reg := domain.NewRegistration(domain.Document{"fullName": "Ann"})
	reg.ID = "x"

	err := repository.NewRegistrationEvents(w).Registered(context.Background(), reg)

	assert.ErrorContains(t, err, "broker down")
}
