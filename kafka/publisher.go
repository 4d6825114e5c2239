package kafka

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	models "swipepoint/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type PublisherConfig struct {
	Brokers    []string
	ClientName string
	Topic      string
}

type Publisher struct {
	Client *kgo.Client
	Config *PublisherConfig
	Logger *zap.Logger
}

// NewPublisher creates a producer for payment status events. Delivery
// is best-effort; a lost event never fails the payment that caused it.
func NewPublisher(conf *PublisherConfig, metrics *kprom.Metrics, logger *zap.Logger) (*Publisher, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...), // Connects to Kafka brokers
		kgo.ClientID(conf.ClientName),    // Identifies this producer
		kgo.WithHooks(metrics),           // Attaches monitoring hooks
		kgo.DefaultProduceTopic(conf.Topic),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil || client == nil {
		return nil, err
	}

	return &Publisher{Client: client, Config: conf, Logger: logger}, nil
}

// Publish produces one event keyed by reference, asynchronously.
func (p *Publisher) Publish(ctx context.Context, event models.PaymentEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		p.Logger.Error("failed to marshal payment event", zap.Error(err))
		return
	}

	record := &kgo.Record{Key: []byte(event.Reference), Value: value}
	p.Client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			p.Logger.Error("failed to publish payment event",
				zap.String("reference", event.Reference), zap.Error(err))
		}
	})
}

func (p *Publisher) Close() {
	p.Client.Close()
}

// NopPublisher satisfies the event port when publishing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, models.PaymentEvent) {}
