package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/hetulpatel/catalogseed/internal/models"
)

// MessageWriter is the part of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// PublishUser announces a registered username. The password never leaves the store.
func PublishUser(ctx context.Context, writer MessageWriter, u models.User) error {
	if writer == nil {
		return nil
	}
	msg, err := buildMessage(models.NewUserEvent(u, time.Now().UTC()), u.Username)
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, msg)
}

// PublishEntries announces each committed catalog entry.
func PublishEntries(ctx context.Context, writer MessageWriter, entries []models.CatalogEntry) error {
	if writer == nil || len(entries) == 0 {
		return nil
	}
	msgs, err := entryMessages(entries, time.Now().UTC())
	if err != nil {
		return err
	}
	return writer.WriteMessages(ctx, msgs...)
}

func entryMessages(entries []models.CatalogEntry, captured time.Time) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(entries))
	for _, e := range entries {
		msg, err := buildMessage(models.NewEntryEvent(e, captured), e.Path)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func buildMessage(ev models.SeedEvent, key string) (kafka.Message, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("marshal %s event %s: %w", ev.Kind, key, err)
	}
	return kafka.Message{
		Key:   []byte(fmt.Sprintf("%s-%s", ev.Kind, key)),
		Value: payload,
	}, nil
}
