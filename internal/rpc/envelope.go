package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/pageza/alchemorsel-recipes/backend/internal/apperr"
)

// Request is an inbound message. Pattern is either a plain string or an
// object such as {"cmd":"create_recipe"}. Requests without an ID are events
// and get no reply.
type Request struct {
	Pattern json.RawMessage `json:"pattern"`
	Data    json.RawMessage `json:"data,omitempty"`
	ID      string          `json:"id,omitempty"`
}

// Reply answers the request with the same ID.
type Reply struct {
	ID         string          `json:"id"`
	Response   json.RawMessage `json:"response,omitempty"`
	Err        *ReplyError     `json:"err,omitempty"`
	IsDisposed bool            `json:"isDisposed"`
}

// ReplyError is the structured failure carried by a reply.
type ReplyError struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *ReplyError) Error() string { return e.Message }

// AsError converts the reply failure back into an *apperr.Error.
func (e *ReplyError) AsError() *apperr.Error {
	return apperr.New(e.Status, apperr.CodeFor(e.Status), errors.New(e.Message))
}

// NormalizePattern renders a pattern the way it is used as a channel name:
// strings as they are, objects as compact JSON with sorted keys.
func NormalizePattern(pattern json.RawMessage) (string, error) {
	var v interface{}
	if err := json.Unmarshal(pattern, &v); err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}
	switch p := v.(type) {
	case string:
		return p, nil
	case map[string]interface{}:
		raw, err := json.Marshal(p)
		if err != nil {
			return "", err
		}
		return string(raw), nil
	default:
		return "", fmt.Errorf("invalid pattern: expected string or object, got %T", v)
	}
}

// CommandOf extracts the command name addressed by a pattern.
func CommandOf(pattern json.RawMessage) (string, error) {
	var v interface{}
	if err := json.Unmarshal(pattern, &v); err != nil {
		return "", fmt.Errorf("invalid pattern: %w", err)
	}
	switch p := v.(type) {
	case string:
		return strings.TrimSpace(p), nil
	case map[string]interface{}:
		cmd, ok := p["cmd"].(string)
		if !ok || strings.TrimSpace(cmd) == "" {
			return "", errors.New("invalid pattern: missing cmd")
		}
		return strings.TrimSpace(cmd), nil
	default:
		return "", fmt.Errorf("invalid pattern: expected string or object, got %T", v)
	}
}

// CommandPattern is the object pattern addressing cmd.
func CommandPattern(cmd string) json.RawMessage {
	raw, _ := json.Marshal(map[string]string{"cmd": cmd})
	return raw
}

// ReplyChannel is the channel replies to requests on channel are sent to.
func ReplyChannel(channel string) string {
	return channel + ".reply"
}

// Serve runs req through the dispatcher and builds its reply.
func (d *Dispatcher) Serve(ctx context.Context, req *Request) *Reply {
	reply := &Reply{ID: req.ID, IsDisposed: true}

	cmd, err := CommandOf(req.Pattern)
	if err != nil {
		reply.Err = &ReplyError{Status: http.StatusBadRequest, Message: err.Error()}
		return reply
	}

	result, err := d.Dispatch(ctx, cmd, req.Data)
	if err != nil {
		e := apperr.From(err)
		reply.Err = &ReplyError{Status: e.Status, Message: e.Error()}
		return reply
	}

	raw, err := json.Marshal(result)
	if err != nil {
		reply.Err = &ReplyError{Status: http.StatusInternalServerError, Message: fmt.Sprintf("failed to encode response: %v", err)}
		return reply
	}
	reply.Response = raw
	return reply
}
