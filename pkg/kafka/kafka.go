package kafka

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const BookingTopic = "shareit.bookings"

type Config struct {
	Addrs        []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	BookingTopic string   `yaml:"bookingTopic" envconfig:"KAFKA_BOOKING_TOPIC" default:"shareit.bookings"`
}

type BookingEvent struct {
	EventID   uuid.UUID `json:"eventId"`
	BookingID int64     `json:"bookingId"`
	ItemID    int64     `json:"itemId"`
	BookerID  int64     `json:"bookerId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher emits booking lifecycle events. Publish must not block on broker availability.
type Publisher interface {
	Publish(ev BookingEvent) error
	Close() error
}

func NewAsyncProducer(cfg Config) (sarama.AsyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForLocal
	defaultCfg.Producer.Return.Errors = true
	defaultCfg.Producer.Return.Successes = false

	return sarama.NewAsyncProducer(cfg.Addrs, defaultCfg)
}

// NewPublisher connects to the brokers from cfg. Without brokers events are dropped.
func NewPublisher(cfg Config, log *zap.Logger) (Publisher, error) {
	if len(cfg.Addrs) == 0 {
		return NopPublisher{}, nil
	}
	producer, err := NewAsyncProducer(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "kafka.NewAsyncProducer")
	}
	topic := cfg.BookingTopic
	if topic == "" {
		topic = BookingTopic
	}
	return NewBookingPublisher(producer, topic, log), nil
}

type bookingPublisher struct {
	producer sarama.AsyncProducer
	topic    string
	log      *zap.Logger
	done     chan struct{}
}

func NewBookingPublisher(producer sarama.AsyncProducer, topic string, log *zap.Logger) *bookingPublisher {
	p := &bookingPublisher{
		producer: producer,
		topic:    topic,
		log:      log.Named("kafka"),
		done:     make(chan struct{}),
	}
	go p.drainErrors()
	return p
}

func (p *bookingPublisher) Publish(ev BookingEvent) error {
	if ev.EventID == uuid.Nil {
		ev.EventID = uuid.New()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "marshal booking event")
	}
	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(ev.BookingID, 10)),
		Value: sarama.ByteEncoder(data),
	}
	return nil
}

func (p *bookingPublisher) Close() error {
	err := p.producer.Close()
	<-p.done
	return err
}

func (p *bookingPublisher) drainErrors() {
	defer close(p.done)
	for perr := range p.producer.Errors() {
		p.log.Warn("publish booking event", zap.Error(perr.Err))
	}
}

type NopPublisher struct{}

func (NopPublisher) Publish(BookingEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
