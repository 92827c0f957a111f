package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"amlwatch/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// Queue backends
const (
	BackendRedis = "redis"
	BackendKafka = "kafka"
)

// AIAnalysisMessage is the hand-off record for offline AI review of a case.
type AIAnalysisMessage struct {
	ID            string    `json:"id"`
	CaseNumber    string    `json:"case_number"`
	AcctNo        string    `json:"acct_no"`
	TranID        string    `json:"tran_id"`
	TranAmt       float64   `json:"tran_amt"`
	DrCrIndicator string    `json:"dr_cr_indicator"`
	QueuedAt      time.Time `json:"queued_at"`
}

// NewAIAnalysisMessage builds the hand-off record for a case.
func NewAIAnalysisMessage(caseNumber string, tx *models.TransactionData, now time.Time) AIAnalysisMessage {
	return AIAnalysisMessage{
		ID:            uuid.NewString(),
		CaseNumber:    caseNumber,
		AcctNo:        tx.AcctNo,
		TranID:        tx.TranID,
		TranAmt:       tx.TranAmt,
		DrCrIndicator: tx.DrCrIndicator,
		QueuedAt:      now.UTC(),
	}
}

// AIQueue publishes hand-off records.
type AIQueue interface {
	Publish(ctx context.Context, msg AIAnalysisMessage) error
	Close() error
}

// RedisQueue pushes JSON records onto a Redis list consumed with BRPOP.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	return &RedisQueue{client: client, key: key}
}

func (q *RedisQueue) Publish(ctx context.Context, msg AIAnalysisMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal ai message: %w", err)
	}
	if err := q.client.LPush(ctx, q.key, data).Err(); err != nil {
		return fmt.Errorf("failed to push ai message: %w", err)
	}
	return nil
}

// Close is a no-op; the client is shared and closed by its owner.
func (q *RedisQueue) Close() error {
	return nil
}

// KafkaQueue writes records to a Kafka topic keyed by account number so
// an account's cases stay ordered within a partition.
type KafkaQueue struct {
	writer *kafka.Writer
}

func NewKafkaQueue(brokers []string, topic string) *KafkaQueue {
	return &KafkaQueue{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireAll,
			MaxAttempts:            3,
			WriteTimeout:           10 * time.Second,
		},
	}
}

func (q *KafkaQueue) Publish(ctx context.Context, msg AIAnalysisMessage) error {
	km, err := encodeKafkaMessage(msg)
	if err != nil {
		return err
	}
	if err := q.writer.WriteMessages(ctx, km); err != nil {
		return fmt.Errorf("failed to write ai message: %w", err)
	}
	return nil
}

func (q *KafkaQueue) Close() error {
	return q.writer.Close()
}

func encodeKafkaMessage(msg AIAnalysisMessage) (kafka.Message, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal ai message: %w", err)
	}
	return kafka.Message{
		Key:   []byte(msg.AcctNo),
		Value: data,
		Headers: []kafka.Header{
			{Key: "message_id", Value: []byte(msg.ID)},
			{Key: "case_number", Value: []byte(msg.CaseNumber)},
		},
	}, nil
}

// NewAIQueue selects the backend by name.
func NewAIQueue(backend string, client *redis.Client, brokers []string, name string) (AIQueue, error) {
	switch backend {
	case BackendRedis, "":
		if client == nil {
			return nil, fmt.Errorf("redis backend requires a client")
		}
		return NewRedisQueue(client, name), nil
	case BackendKafka:
		if len(brokers) == 0 {
			return nil, fmt.Errorf("kafka backend requires brokers")
		}
		return NewKafkaQueue(brokers, name), nil
	default:
		return nil, fmt.Errorf("unknown ai queue backend %q", backend)
	}
}
