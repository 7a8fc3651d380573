package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"golang.org/x/time/rate"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/fn"
	"github.com/WessleyAI/wessley-vin/pkg/natsutil"
	"github.com/WessleyAI/wessley-vin/pkg/resilience"
)

// batchSuffix is appended to the decode subject for batch requests.
const batchSuffix = ".batch"

type worker struct {
	svc    *lookup.Service
	stage  fn.Stage[string, vin.Vehicle]
	limit  *rate.Limiter
	events string
	logger *slog.Logger
	nc     *nats.Conn
	subs   []*nats.Subscription
}

// newWorker builds a worker. An empty events subject disables decoded events.
func newWorker(svc *lookup.Service, limit *rate.Limiter, events string, logger *slog.Logger) *worker {
	return &worker{
		svc:    svc,
		stage:  resilience.LimiterStage(limit, svc.Stage()),
		limit:  limit,
		events: events,
		logger: logger,
	}
}

// subscribe registers the single and batch responders in the queue group.
func (w *worker) subscribe(nc *nats.Conn, subject, queue string) error {
	w.nc = nc
	single, err := natsutil.Reply(nc, subject, queue, w.handleDecode, w.badDecode)
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	batch, err := natsutil.Reply(nc, subject+batchSuffix, queue, w.handleBatch, w.badBatch)
	if err != nil {
		single.Unsubscribe()
		return fmt.Errorf("subscribe %s: %w", subject+batchSuffix, err)
	}
	w.subs = append(w.subs, single, batch)
	return nil
}

func (w *worker) handleDecode(ctx context.Context, req lookup.DecodeRequest) lookup.DecodeReply {
	r := w.stage(ctx, req.VIN)
	if v, err := r.Unwrap(); err == nil {
		w.publish(ctx, v)
	}
	return lookup.ReplyFor(req.VIN, r)
}

func (w *worker) handleBatch(ctx context.Context, req lookup.BatchRequest) lookup.BatchReply {
	if !w.limit.Allow() {
		return lookup.BatchReply{Error: resilience.ErrRateLimited.Error(), Code: lookup.ErrorCode(resilience.ErrRateLimited)}
	}
	results, err := w.svc.DecodeBatch(ctx, req.VINs)
	if err != nil {
		w.logger.Warn("batch rejected", "size", len(req.VINs), "err", err)
		return lookup.BatchReply{Error: err.Error(), Code: lookup.ErrorCode(err)}
	}
	out := lookup.BatchReply{Results: make([]lookup.DecodeReply, len(results))}
	for i, r := range results {
		if v, err := r.Unwrap(); err == nil {
			w.publish(ctx, v)
		}
		out.Results[i] = lookup.ReplyFor(req.VINs[i], r)
	}
	return out
}

func (w *worker) badDecode(err error) lookup.DecodeReply {
	err = lookup.InvalidRequest(err)
	w.logger.Debug("malformed decode request", "err", err)
	return lookup.DecodeReply{Error: err.Error(), Code: lookup.ErrorCode(err)}
}

func (w *worker) badBatch(err error) lookup.BatchReply {
	err = lookup.InvalidRequest(err)
	w.logger.Debug("malformed batch request", "err", err)
	return lookup.BatchReply{Error: err.Error(), Code: lookup.ErrorCode(err)}
}

func (w *worker) publish(ctx context.Context, v vin.Vehicle) {
	if w.events == "" || w.nc == nil {
		return
	}
	ev := lookup.NewDecodedEvent(v, w.svc.Options().Source, time.Now())
	if err := natsutil.Publish(ctx, w.nc, w.events, ev); err != nil {
		w.logger.Warn("publish decoded event", "subject", w.events, "vin", v.VIN, "err", err)
	}
}
