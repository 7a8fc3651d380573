package main

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"

	"github.com/WessleyAI/wessley-vin/engine/lookup"
	"github.com/WessleyAI/wessley-vin/engine/vin"
	"github.com/WessleyAI/wessley-vin/pkg/logging"
	"github.com/WessleyAI/wessley-vin/pkg/metrics"
	"github.com/WessleyAI/wessley-vin/pkg/mid"
)

const maxBodyBytes = 1 << 20

func newRouter(svc *lookup.Service, m *metrics.Metrics, limiter *rate.Limiter, logger *slog.Logger, corsOrigin string) http.Handler {
	r := chi.NewRouter()
	r.Use(
		mid.RequestID(),
		mid.Recover(logger),
		mid.Logger(logger),
		mid.CORS(corsOrigin),
		mid.OTel("vin-api"),
	)

	r.Get("/api/health", handleHealth)
	r.Handle("/metrics", m.Handler())

	r.Group(func(r chi.Router) {
		r.Use(mid.RateLimit(limiter, m.IncrementRateLimited))
		r.Get("/api/makes", handleMakes(svc.Catalog()))
		r.Get("/api/vin/{vin}", handleDecodePath(svc, logger))
		r.Post("/api/vin/decode", handleDecode(svc, logger))
		r.Post("/api/vin/batch", handleBatch(svc, logger))
	})
	return r
}

// ErrorResponse is the JSON body for every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// DecodeRequest is the JSON body for POST /api/vin/decode.
type DecodeRequest struct {
	VIN string `json:"vin"`
}

// BatchRequest is the JSON body for POST /api/vin/batch.
type BatchRequest struct {
	VINs []string `json:"vins"`
}

// BatchResponse is the JSON response for POST /api/vin/batch.
type BatchResponse struct {
	Results []lookup.DecodeReply `json:"results"`
	OK      int                  `json:"ok"`
	Failed  int                  `json:"failed"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleMakes(c *vin.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, lookup.ListMakes(c))
	}
}

func handleDecodePath(svc *lookup.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := chi.URLParam(r, "vin")
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}
		decodeAndWrite(w, r, svc, logger, raw)
	}
}

func handleDecode(svc *lookup.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DecodeRequest
		if !readJSON(w, r, &req) {
			return
		}
		decodeAndWrite(w, r, svc, logger, req.VIN)
	}
}

func decodeAndWrite(w http.ResponseWriter, r *http.Request, svc *lookup.Service, logger *slog.Logger, raw string) {
	v, err := svc.Decode(r.Context(), raw)
	if err != nil {
		logging.FromContext(r.Context(), logger).Debug("decode rejected", "input", raw, "code", vin.Code(err))
		writeDecodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func handleBatch(svc *lookup.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BatchRequest
		if !readJSON(w, r, &req) {
			return
		}
		results, err := svc.DecodeBatch(r.Context(), req.VINs)
		switch {
		case errors.Is(err, lookup.ErrBatchTooLarge):
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: err.Error(), Code: lookup.ErrorCode(err)})
			return
		case err != nil:
			logging.FromContext(r.Context(), logger).Error("batch decode failed", "err", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error", Code: "internal"})
			return
		}

		resp := BatchResponse{Results: make([]lookup.DecodeReply, len(results))}
		for i, res := range results {
			resp.Results[i] = lookup.ReplyFor(req.VINs[i], res)
			if res.IsOk() {
				resp.OK++
			} else {
				resp.Failed++
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// statusFor maps decode failures to HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, vin.ErrInvalidLength):
		return http.StatusBadRequest
	case errors.Is(err, vin.ErrUnknownManufacturer):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeDecodeError(w http.ResponseWriter, err error) {
	code := lookup.ErrorCode(err)
	msg := err.Error()
	if code == "internal" {
		msg = "internal server error"
	}
	writeJSON(w, statusFor(err), ErrorResponse{Error: msg, Code: code})
}

func readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: lookup.ErrorCode(lookup.ErrInvalidRequest)})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "err", err)
	}
}
