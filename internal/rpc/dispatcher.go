package rpc

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
	"github.com/pageza/alchemorsel-recipes/backend/internal/logger"
)

// HandlerFunc handles the raw payload of one command.
type HandlerFunc func(ctx context.Context, data json.RawMessage) (interface{}, error)

type route struct {
	command string
	handler HandlerFunc
}

// Dispatcher maps command names, aliases included, to handlers.
type Dispatcher struct {
	routes map[string]route
	log    *logger.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(log *logger.Logger) *Dispatcher {
	return &Dispatcher{
		routes: make(map[string]route),
		log:    log.With("component", "rpc"),
	}
}

// Register binds command and its aliases to h. Registering a name twice
// panics.
func (d *Dispatcher) Register(command string, h HandlerFunc, aliases ...string) {
	for _, name := range append([]string{command}, aliases...) {
		if _, exists := d.routes[name]; exists {
			panic("rpc: command registered twice: " + name)
		}
		d.routes[name] = route{command: command, handler: h}
	}
}

// Commands lists every registered name, aliases included, sorted.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.routes))
	for name := range d.routes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch runs the handler registered for cmd.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd string, data json.RawMessage) (interface{}, error) {
	r, ok := d.routes[cmd]
	if !ok {
		requestsTotal.WithLabelValues("unknown", "404").Inc()
		d.log.Warn("unknown command", "command", cmd)
		return nil, apperr.NotFound("unknown command %q", cmd)
	}

	start := time.Now()
	inFlight.Inc()
	result, err := r.handler(ctx, data)
	inFlight.Dec()
	status := apperr.StatusOf(err)
	observe(r.command, status, time.Since(start))

	switch {
	case err == nil:
		d.log.Debug("command handled", "command", r.command, "alias", cmd, "duration", time.Since(start))
	case status >= 500:
		d.log.Error("command failed", "command", r.command, "error", err)
	default:
		d.log.Debug("command rejected", "command", r.command, "status", status, "error", err)
	}
	return result, err
}
