package kafka

import (
	"context"
	"fmt"
	"os"

	"github.com/segmentio/kafka-go"
)

type EventReader struct {
	reader *kafka.Reader
}

func GetNewReader(topic string) (reader *EventReader, err error) {
	// config
	kafkaurl := os.Getenv("SAFEDRIVE_KAFKA_URL")
	if kafkaurl == "" {
		return nil, fmt.Errorf("env SAFEDRIVE_KAFKA_URL is not set")
	}
	kafkaport := os.Getenv("SAFEDRIVE_KAFKA_PORT")
	if kafkaport == "" {
		return nil, fmt.Errorf("env SAFEDRIVE_KAFKA_PORT is not set")
	}

	kafkaconfig := kafka.ReaderConfig{
		Brokers: []string{kafkaurl + ":" + kafkaport},
		Topic:   topic,
		GroupID: "safedrive_events",
	}
	return &EventReader{kafka.NewReader(kafkaconfig)}, nil
}

func (k *EventReader) GetNewMessage(ctx context.Context) (eventJson string, err error) {
	msg, err := k.reader.ReadMessage(ctx)
	if err != nil {
		return "", err
	}
	return string(msg.Value), nil
}

func (k *EventReader) CloseReader() {
	k.reader.Close()
}
