// Package lookup is the caller-facing decode service: it cleans up raw input,
// runs the vin decoder inside a traced stage, and records metrics and logs
// for single and batch requests.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/fn"
	"github.com/WessleyAI/wessley-vin/pkg/metrics"
)

var (
	// ErrBatchTooLarge is returned when a batch exceeds Options.MaxBatch.
	ErrBatchTooLarge = errors.New("batch too large")
	// ErrInvalidRequest marks a request payload that could not be decoded.
	ErrInvalidRequest = errors.New("invalid request")
)

// Options configures a Service.
type Options struct {
	// MaxBatch caps the number of VINs per DecodeBatch call.
	MaxBatch int
	// Workers bounds batch decode concurrency.
	Workers int
	// Source labels metrics ("http", "nats", "cli").
	Source string
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{MaxBatch: 100, Workers: 8, Source: "http"}
}

// Service decodes VINs on behalf of transports.
type Service struct {
	decoder *vin.Decoder
	metrics *metrics.Metrics
	logger  *slog.Logger
	opts    Options
	stage   fn.Stage[string, vin.Vehicle]
}

// New creates a Service. A nil decoder uses the built-in catalog and wall
// clock; nil metrics record nothing; a nil logger uses slog.Default().
func New(dec *vin.Decoder, m *metrics.Metrics, logger *slog.Logger, opts Options) *Service {
	def := DefaultOptions()
	if dec == nil {
		dec = vin.NewDecoder(nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.MaxBatch <= 0 {
		opts.MaxBatch = def.MaxBatch
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.Source == "" {
		opts.Source = def.Source
	}
	return &Service{
		decoder: dec,
		metrics: m,
		logger:  logger,
		opts:    opts,
		stage:   fn.TracedStage("vin.decode", fn.Then(fn.MapStage(Normalize), dec.Stage())),
	}
}

// Options returns the effective options after defaults were applied.
func (s *Service) Options() Options { return s.opts }

// Catalog returns the catalog the underlying decoder resolves against.
func (s *Service) Catalog() *vin.Catalog { return s.decoder.Catalog() }

// Normalize converts caller input to the form the decoder expects:
// NFKC-folded, trimmed, and upper-cased. Fullwidth characters pasted from
// documents fold to their ASCII forms.
func Normalize(raw string) string {
	s := strings.TrimSpace(norm.NFKC.String(raw))
	return cases.Upper(language.Und).String(s)
}

// Decode normalizes raw and decodes it.
func (s *Service) Decode(ctx context.Context, raw string) (vin.Vehicle, error) {
	return s.decode(ctx, raw).Unwrap()
}

func (s *Service) decode(ctx context.Context, raw string) fn.Result[vin.Vehicle] {
	start := time.Now()
	r := s.stage(ctx, raw)
	s.metrics.ObserveDecodeLatency(s.opts.Source, time.Since(start))
	s.metrics.IncrementOutcome(s.opts.Source, ErrorCode(r.Error()))
	if r.IsErr() {
		s.logger.Debug("vin decode failed", "input", raw, "err", r.Error())
	}
	return r
}

// DecodeBatch decodes raws concurrently, returning per-item results in input
// order. Individual decode failures are reported in the results; the error
// return is reserved for ErrBatchTooLarge and context cancellation.
func (s *Service) DecodeBatch(ctx context.Context, raws []string) ([]fn.Result[vin.Vehicle], error) {
	if len(raws) > s.opts.MaxBatch {
		return nil, fmt.Errorf("%w: %d VINs, max %d", ErrBatchTooLarge, len(raws), s.opts.MaxBatch)
	}
	s.metrics.ObserveBatchSize(len(raws))

	out := make([]fn.Result[vin.Vehicle], len(raws))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)
	for i, raw := range raws {
		i, raw := i, raw
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = s.decode(gctx, raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	vehicles, errs := fn.Partition(out)
	s.logger.Info("vin batch decoded",
		"size", len(raws),
		"ok", len(vehicles),
		"failed", len(errs),
	)
	return out, nil
}
