package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"ev-route-service/internal/ports"
	"log"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// AvailabilityUpdate is the wire format of a station availability event.
type AvailabilityUpdate struct {
	StationID      int `json:"station_id"`
	AvailablePorts int `json:"available_ports"`
}

type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
}

// Consumer applies live station-availability events to the snapshot store.
//
// This is the externally owned update path: planning calls never see these
// writes directly, only the fresh snapshot composed on their next catalog
// read. Malformed events are logged and skipped, never fatal.
type Consumer struct {
	reader *kafkago.Reader
	store  ports.AvailabilityStore
}

func NewConsumer(cfg ConsumerConfig, store ports.AvailabilityStore) *Consumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Topic,
		GroupID:        cfg.GroupID,
		StartOffset:    kafkago.LastOffset,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        1 * time.Second,
		CommitInterval: time.Second,
		ErrorLogger:    kafkago.LoggerFunc(log.Printf),
	})

	return &Consumer{reader: reader, store: store}
}

// Run consumes availability events until the context is canceled.
func (c *Consumer) Run(ctx context.Context) error {
	log.Printf("availability consumer started topic=%s", c.reader.Config().Topic)

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return c.reader.Close()
			}
			return err
		}

		var update AvailabilityUpdate
		if err := json.Unmarshal(msg.Value, &update); err != nil {
			log.Printf("availability consumer: skipping malformed event offset=%d err=%v", msg.Offset, err)
			continue
		}
		if update.StationID <= 0 || update.AvailablePorts < 0 {
			log.Printf("availability consumer: skipping invalid event station_id=%d ports=%d", update.StationID, update.AvailablePorts)
			continue
		}

		if err := c.store.SetAvailablePorts(ctx, update.StationID, update.AvailablePorts); err != nil {
			log.Printf("availability consumer: store write failed station_id=%d err=%v", update.StationID, err)
			continue
		}

		log.Printf("availability update station_id=%d ports=%d", update.StationID, update.AvailablePorts)
	}
}

// Close releases the underlying Kafka reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
