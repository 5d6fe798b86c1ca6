package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Client sends requests over Redis pub/sub and waits for their replies.
type Client struct {
	rdb     *redis.Client
	timeout time.Duration
}

// NewClient creates a client. timeout applies when the caller's context has
// no deadline.
func NewClient(rdb *redis.Client, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{rdb: rdb, timeout: timeout}
}

// Call sends payload to cmd and decodes the response into out, which may be
// nil. Failures reported by the server are returned as *apperr.Error.
func (c *Client) Call(ctx context.Context, cmd string, payload, out interface{}) error {
	return c.Send(ctx, CommandPattern(cmd), payload, out)
}

// Send is Call with an explicit pattern, e.g. a legacy string pattern.
func (c *Client) Send(ctx context.Context, pattern json.RawMessage, payload, out interface{}) error {
	if c == nil || c.rdb == nil {
		return errors.New("rpc client not initialized")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	channel, err := NormalizePattern(pattern)
	if err != nil {
		return err
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	req := Request{Pattern: pattern, Data: data, ID: uuid.NewString()}
	raw, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	sub := c.rdb.Subscribe(ctx, ReplyChannel(channel))
	defer func() { _ = sub.Close() }()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}

	if err := c.rdb.Publish(ctx, channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for reply to %s: %w", channel, ctx.Err())
		case m, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			var reply Reply
			if err := json.Unmarshal([]byte(m.Payload), &reply); err != nil || reply.ID != req.ID {
				continue
			}
			if reply.Err != nil {
				return reply.Err.AsError()
			}
			if out == nil || len(reply.Response) == 0 {
				return nil
			}
			if err := json.Unmarshal(reply.Response, out); err != nil {
				return fmt.Errorf("decode response: %w", err)
			}
			return nil
		}
	}
}
