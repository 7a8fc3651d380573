package lookup

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/fn"
	"github.com/WessleyAI/wessley-vin/pkg/resilience"
)

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "", ErrorCode(nil))
	assert.Equal(t, "batch_too_large", ErrorCode(fmt.Errorf("%w: 3", ErrBatchTooLarge)))
	assert.Equal(t, "rate_limited", ErrorCode(resilience.ErrRateLimited))
	assert.Equal(t, "invalid_request", ErrorCode(InvalidRequest(errors.New("unexpected end of JSON input"))))
	assert.Equal(t, "invalid_length", ErrorCode(vin.NewDecodeError("vin", "x", vin.ErrInvalidLength)))
	assert.Equal(t, "unknown_manufacturer", ErrorCode(vin.ErrUnknownManufacturer))
	assert.Equal(t, "internal", ErrorCode(errors.New("boom")))
}

func TestReplyFor(t *testing.T) {
	s, _, _ := newService(t, Options{})

	ok := ReplyFor(vwVIN, s.Stage()(context.Background(), vwVIN))
	require.NotNil(t, ok.Vehicle)
	assert.Equal(t, "Volkswagen", ok.Vehicle.Brand)
	assert.Empty(t, ok.Error)
	assert.Empty(t, ok.Code)

	bad := ReplyFor("bad", fn.Err[vin.Vehicle](vin.NewDecodeError("vin", "bad", vin.ErrInvalidLength)))
	assert.Nil(t, bad.Vehicle)
	assert.Equal(t, "bad", bad.Input)
	assert.Equal(t, "invalid_length", bad.Code)
	assert.Contains(t, bad.Error, "invalid VIN length")
}

func TestInvalidRequest(t *testing.T) {
	err := InvalidRequest(errors.New("unexpected end of JSON input"))
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Equal(t, "invalid request: unexpected end of JSON input", err.Error())
}

func TestNewDecodedEvent(t *testing.T) {
	s, _, _ := newService(t, Options{})
	v, err := s.Decode(context.Background(), vwVIN)
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	ev := NewDecodedEvent(v, "nats", at)
	assert.Equal(t, DecodedEvent{
		VIN:            vwVIN,
		Brand:          "Volkswagen",
		Model:          "ID.3",
		ProductionYear: "2003",
		Source:         "nats",
		DecodedAt:      at.UTC(),
	}, ev)
}
