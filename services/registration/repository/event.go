package repository

import (
	"context"
	"fmt"
	"studentportal/domain"

	"github.com/bytedance/sonic"
	"github.com/segmentio/kafka-go"
)

// MessageWriter is the part of *kafka.Writer the event publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type registrationEvents struct {
	writer MessageWriter
}

func NewRegistrationEvents(writer MessageWriter) domain.RegistrationEvents {
	return &registrationEvents{
		writer: writer,
	}
}

func (re *registrationEvents) Registered(ctx context.Context, reg *domain.Registration) error {
	value, err := sonic.Marshal(domain.NewRegistrationEvent(reg))
	if err != nil {
		return fmt.Errorf("failed to marshal registration event: %w", err)
	}

	err = re.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(reg.ID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("failed to publish registration %s: %w", reg.ID, err)
	}
	return nil
}
