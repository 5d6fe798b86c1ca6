package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
)

// ServerOptions tunes the bus server.
type ServerOptions struct {
	// MaxInFlight bounds the number of messages handled concurrently.
	MaxInFlight int
	// RequestTimeout bounds a single command.
	RequestTimeout time.Duration
}

// Server consumes requests from Redis pub/sub and publishes the replies.
// Each command is listened for under its object pattern and its plain
// string pattern.
type Server struct {
	rdb        *redis.Client
	dispatcher *Dispatcher
	log        *logger.Logger
	sem        chan struct{}
	timeout    time.Duration
	wg         sync.WaitGroup
}

// NewServer creates a bus server for d
func NewServer(rdb *redis.Client, d *Dispatcher, log *logger.Logger, opts ServerOptions) *Server {
	if opts.MaxInFlight <= 0 {
		opts.MaxInFlight = 64
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	return &Server{
		rdb:        rdb,
		dispatcher: d,
		log:        log.With("service", "RPCServer"),
		sem:        make(chan struct{}, opts.MaxInFlight),
		timeout:    opts.RequestTimeout,
	}
}

// Channels lists the channels the server subscribes to.
func (s *Server) Channels() []string {
	commands := s.dispatcher.Commands()
	channels := make([]string, 0, 2*len(commands))
	for _, cmd := range commands {
		channels = append(channels, string(CommandPattern(cmd)), cmd)
	}
	return channels
}

// Run serves until ctx is cancelled, then waits for in-flight commands.
func (s *Server) Run(ctx context.Context) error {
	if s == nil || s.rdb == nil {
		return errors.New("rpc server not initialized")
	}

	channels := s.Channels()
	sub := s.rdb.Subscribe(ctx, channels...)
	defer func() { _ = sub.Close() }()

	// ensures subscription actually started
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("redis subscribe: %w", err)
	}
	s.log.Info("rpc server listening", "channels", len(channels))

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("rpc server stopping, waiting for in-flight commands")
			s.wg.Wait()
			return nil
		case m, ok := <-ch:
			if !ok || m == nil {
				s.wg.Wait()
				return errors.New("redis subscription closed")
			}
			select {
			case s.sem <- struct{}{}:
			case <-ctx.Done():
				messagesDropped.WithLabelValues("shutdown").Inc()
				continue
			}
			s.wg.Add(1)
			go func(channel, payload string) {
				defer func() {
					<-s.sem
					s.wg.Done()
				}()
				s.handle(ctx, channel, payload)
			}(m.Channel, m.Payload)
		}
	}
}

func (s *Server) handle(ctx context.Context, channel, payload string) {
	defer func() {
		if r := recover(); r != nil {
			messagesDropped.WithLabelValues("panic").Inc()
			s.log.Error("panic while handling message", "channel", channel, "panic", r)
		}
	}()

	var req Request
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		messagesDropped.WithLabelValues("malformed").Inc()
		s.log.Warn("bad rpc payload", "channel", channel, "error", err)
		return
	}

	// Shutdown must not abort a command that already started.
	cmdCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	reply := s.dispatcher.Serve(cmdCtx, &req)
	if req.ID == "" {
		return
	}

	raw, err := json.Marshal(reply)
	if err != nil {
		s.log.Error("failed to encode reply", "channel", channel, "error", err)
		return
	}
	if err := s.rdb.Publish(cmdCtx, ReplyChannel(channel), raw).Err(); err != nil {
		s.log.Error("failed to publish reply", "channel", channel, "id", req.ID, "error", err)
	}
}
