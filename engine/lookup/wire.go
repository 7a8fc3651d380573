package lookup

import (
	"errors"
	"fmt"
	"time"

	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/fn"
	"github.com/WessleyAI/wessley-vin/pkg/resilience"
)

// DecodeRequest is the message-bus request for a single decode.
type DecodeRequest struct {
	VIN string `json:"vin"`
}

// BatchRequest is the message-bus request for a batch decode.
type BatchRequest struct {
	VINs []string `json:"vins"`
}

// DecodeReply carries either a vehicle or an error with its machine code.
type DecodeReply struct {
	Input   string       `json:"input,omitempty"`
	Vehicle *vin.Vehicle `json:"vehicle,omitempty"`
	Error   string       `json:"error,omitempty"`
	Code    string       `json:"code,omitempty"`
}

// BatchReply is the reply to a BatchRequest. Error and Code are set only
// when the batch as a whole was rejected.
type BatchReply struct {
	Results []DecodeReply `json:"results,omitempty"`
	Error   string        `json:"error,omitempty"`
	Code    string        `json:"code,omitempty"`
}

// DecodedEvent is published after each successful decode.
type DecodedEvent struct {
	VIN            string    `json:"vin"`
	Brand          string    `json:"brand"`
	Model          string    `json:"model"`
	ProductionYear string    `json:"production_year"`
	Source         string    `json:"source"`
	DecodedAt      time.Time `json:"decoded_at"`
}

// NewDecodedEvent summarizes v for the event stream.
func NewDecodedEvent(v vin.Vehicle, source string, at time.Time) DecodedEvent {
	return DecodedEvent{
		VIN:            v.VIN,
		Brand:          v.Brand,
		Model:          v.Model,
		ProductionYear: v.ProductionYear,
		Source:         source,
		DecodedAt:      at.UTC(),
	}
}

// InvalidRequest wraps a payload decoding failure in ErrInvalidRequest.
func InvalidRequest(err error) error {
	return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
}

// ErrorCode extends vin.Code with the service-level failures.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrBatchTooLarge):
		return "batch_too_large"
	case errors.Is(err, ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, resilience.ErrRateLimited):
		return "rate_limited"
	}
	if c := vin.Code(err); c != "" {
		return c
	}
	return "internal"
}

// ReplyFor converts a decode result to its wire form.
func ReplyFor(input string, r fn.Result[vin.Vehicle]) DecodeReply {
	v, err := r.Unwrap()
	if err != nil {
		return DecodeReply{Input: input, Error: err.Error(), Code: ErrorCode(err)}
	}
	return DecodeReply{Input: input, Vehicle: &v}
}

// Stage exposes Decode as a pipeline stage.
func (s *Service) Stage() fn.Stage[string, vin.Vehicle] {
	return s.decode
}
