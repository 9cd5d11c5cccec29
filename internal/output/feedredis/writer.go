// Package feedredis publishes the feed documents under Redis keys for
// dashboard pickup. Keys are overwritten each run; nothing accumulates.
package feedredis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	redis "github.com/redis/go-redis/v9"

	"threatradar/pkg/models"
)

const defaultTimeout = 5 * time.Second

// Config configures Redis access.
type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
	Timeout   time.Duration
}

// Writer SETs the document pair under prefixed keys.
type Writer struct {
	client  *redis.Client
	prefix  string
	timeout time.Duration
}

// NewWriter connects to Redis and verifies it with a ping.
func NewWriter(cfg Config) (*Writer, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = "127.0.0.1:6379"
	}
	prefix := strings.TrimSpace(cfg.KeyPrefix)
	if prefix == "" {
		prefix = "threatradar:feed"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis feed store: %w", err)
	}

	return &Writer{client: client, prefix: prefix, timeout: timeout}, nil
}

// WriteFeed stores both documents plus the generation instant in one
// pipelined round trip.
func (w *Writer) WriteFeed(full models.FeedDocument, widget models.WidgetDocument) error {
	fullBody, err := json.Marshal(full)
	if err != nil {
		return fmt.Errorf("failed to marshal full feed: %w", err)
	}
	widgetBody, err := json.Marshal(widget)
	if err != nil {
		return fmt.Errorf("failed to marshal widget feed: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	pipe := w.client.Pipeline()
	pipe.Set(ctx, w.prefix+":full", fullBody, 0)
	pipe.Set(ctx, w.prefix+":widget", widgetBody, 0)
	pipe.Set(ctx, w.prefix+":generated", full.Metadata.Generated, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write feed redis keys: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (w *Writer) Close() error {
	return w.client.Close()
}
