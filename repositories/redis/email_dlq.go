package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"
	"time"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// EmailDeadLetterStore keeps receipt emails that could not be
// delivered. Receipts are best-effort and never retried in-line; the
// dead letters exist so an operator can replay them by hand.
type EmailDeadLetterStore struct {
	client *redis.Client
	logger *zap.Logger
}

type DeadLetter struct {
	Reference string    `json:"reference"`
	To        string    `json:"to"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Reason    string    `json:"reason"`
	FailedAt  time.Time `json:"failed_at"`
}

func NewEmailDeadLetterStore(client *redis.Client, logger *zap.Logger) *EmailDeadLetterStore {
	return &EmailDeadLetterStore{client: client, logger: logger}
}

// Store writes the failed receipt under "email-dlq:{reference}".
func (r *EmailDeadLetterStore) Store(ctx context.Context, letter DeadLetter) error {
	jsonData, err := json.Marshal(letter)
	if err != nil {
		r.logger.Error("failed to marshal dead letter", zap.Error(err))
		return err
	}

	key := fmt.Sprintf("email-dlq:%s", letter.Reference)
	err = r.client.Set(ctx, key, jsonData, 0).Err()
	if err != nil {
		r.logger.Error("failed to store dead letter", zap.String("key", key), zap.Error(err))
		return err
	}

	r.logger.Info("receipt email dead-lettered", zap.String("key", key))
	return nil
}
