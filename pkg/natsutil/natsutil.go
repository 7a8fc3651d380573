// Package natsutil provides typed NATS publish/request/reply helpers with
// OpenTelemetry trace propagation.
package natsutil

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
	"go.opentelemetry.io/otel"
)

// natsHeaderCarrier adapts nats.Msg headers for OTel TextMapCarrier.
type natsHeaderCarrier nats.Msg

func (c *natsHeaderCarrier) Get(key string) string {
	if c.Header == nil {
		return ""
	}
	return c.Header.Get(key)
}

func (c *natsHeaderCarrier) Set(key, val string) {
	if c.Header == nil {
		c.Header = make(nats.Header)
	}
	c.Header.Set(key, val)
}

func (c *natsHeaderCarrier) Keys() []string {
	if c.Header == nil {
		return nil
	}
	keys := make([]string, 0, len(c.Header))
	for k := range c.Header {
		keys = append(keys, k)
	}
	return keys
}

func encode[T any](ctx context.Context, subject string, v T) (*nats.Msg, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("natsutil: encode %s: %w", subject, err)
	}
	msg := &nats.Msg{Subject: subject, Data: data}
	otel.GetTextMapPropagator().Inject(ctx, (*natsHeaderCarrier)(msg))
	return msg, nil
}

func decode[T any](msg *nats.Msg) (context.Context, T, error) {
	ctx := otel.GetTextMapPropagator().Extract(context.Background(), (*natsHeaderCarrier)(msg))
	var v T
	if err := json.Unmarshal(msg.Data, &v); err != nil {
		return ctx, v, err
	}
	return ctx, v, nil
}

// Publish serializes v as JSON and publishes to the given subject.
// Trace context from ctx is injected into NATS message headers.
func Publish[T any](ctx context.Context, nc *nats.Conn, subject string, v T) error {
	msg, err := encode(ctx, subject, v)
	if err != nil {
		return err
	}
	return nc.PublishMsg(msg)
}

// Request sends a JSON-encoded request and decodes the response. When ctx
// carries no deadline, nats.DefaultTimeout applies.
func Request[Req, Resp any](ctx context.Context, nc *nats.Conn, subject string, req Req) (Resp, error) {
	var zero Resp
	msg, err := encode(ctx, subject, req)
	if err != nil {
		return zero, err
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, nats.DefaultTimeout)
		defer cancel()
	}
	resp, err := nc.RequestMsgWithContext(ctx, msg)
	if err != nil {
		return zero, err
	}
	var result Resp
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return zero, fmt.Errorf("natsutil: decode reply from %s: %w", subject, err)
	}
	return result, nil
}

// Reply registers a queue-group responder: each request is decoded as Req,
// passed to handler, and the returned Resp is sent back as JSON. An empty
// queue subscribes without a group. A request that fails to decode is
// answered with onBadRequest(err); with a nil onBadRequest it is dropped and
// the requester times out.
func Reply[Req, Resp any](nc *nats.Conn, subject, queue string, handler func(context.Context, Req) Resp, onBadRequest func(error) Resp) (*nats.Subscription, error) {
	return nc.QueueSubscribe(subject, queue, func(msg *nats.Msg) {
		if msg.Reply == "" {
			return
		}
		ctx, req, err := decode[Req](msg)
		var resp Resp
		switch {
		case err == nil:
			resp = handler(ctx, req)
		case onBadRequest != nil:
			resp = onBadRequest(err)
		default:
			slog.Warn("natsutil: dropping malformed request", "subject", subject, "err", err)
			return
		}
		out, err := encode(ctx, msg.Reply, resp)
		if err != nil {
			slog.Error("natsutil: encode reply", "subject", subject, "err", err)
			return
		}
		if err := msg.RespondMsg(out); err != nil {
			slog.Error("natsutil: respond", "subject", subject, "err", err)
		}
	})
}
