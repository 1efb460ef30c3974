package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/bargom/codeai/internal/bmpp/analyzer"
	"github.com/bargom/codeai/internal/bmpp/codegen"
	"github.com/bargom/codeai/pkg/logging"
	"github.com/bargom/codeai/pkg/metrics"
)

// Handler implements the HTTP driver's handlers. Every handler is a
// direct, synchronous call into the analyzer API; the handler itself
// holds no protocol state.
type Handler struct {
	log      *logging.Logger
	metrics  *metrics.Registry
	validate *validator.Validate
}

// NewHandler builds a Handler that logs via log and records metrics via
// reg. A nil log falls back to a discard logger; a nil reg skips metrics.
func NewHandler(log *logging.Logger, reg *metrics.Registry) *Handler {
	if log == nil {
		log = logging.NewWithWriter(logging.DefaultConfig(), io.Discard)
	}
	return &Handler{log: log, metrics: reg, validate: validator.New()}
}

func (h *Handler) decodeAndValidate(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return h.validate.Struct(v)
}

func (h *Handler) respondJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func (h *Handler) respondError(w http.ResponseWriter, requestID string, code int, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make(map[string]string, len(validationErrs))
		for _, e := range validationErrs {
			details[e.Field()] = e.Tag()
		}
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{RequestID: requestID, Error: "validation failed", Details: details})
		return
	}
	h.respondJSON(w, code, ErrorResponse{RequestID: requestID, Error: err.Error()})
}

func (h *Handler) recordOperation(operation string, start time.Time, outcome string, protocolCount int) {
	duration := time.Since(start)

	if h.metrics != nil {
		h.metrics.Analyzer().RecordOperation(operation, outcome, duration.Seconds(), protocolCount)
	}

	if h.log != nil && duration > h.log.SlowThreshold() {
		h.log.Warn("slow operation", "operation", operation, "outcome", outcome, "duration", duration)
	}
}

// HandleParse implements POST /v1/parse.
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	var req ParseRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.recordOperation("parse", start, "bad_request", 0)
		h.respondError(w, requestID, http.StatusBadRequest, err)
		return
	}
	filename := req.Filename
	if filename == "" {
		filename = "<request>"
	}

	opLog := h.log.WithOperation("parse")

	program, err := analyzer.Parse(filename, req.Source)
	if err != nil {
		h.recordOperation("parse", start, "error", 0)
		opLog.Error("parse failed", "request_id", requestID, "error", err)
		h.respondError(w, requestID, http.StatusUnprocessableEntity, err)
		return
	}

	h.recordOperation("parse", start, "ok", len(program.Protocols))
	opLog.Info("parse succeeded", "request_id", requestID, "protocols", len(program.Protocols))
	h.respondJSON(w, http.StatusOK, program)
}

// HandleValidate implements POST /v1/validate.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	var req ValidateRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.recordOperation("validate", start, "bad_request", 0)
		h.respondError(w, requestID, http.StatusBadRequest, err)
		return
	}
	filename := req.Filename
	if filename == "" {
		filename = "<request>"
	}

	opLog := h.log.WithOperation("validate")

	summaries, err := analyzer.Validate(filename, req.Source)
	if err != nil {
		h.recordOperation("validate", start, "error", 0)
		opLog.Error("validate failed", "request_id", requestID, "error", err)
		h.respondError(w, requestID, http.StatusUnprocessableEntity, err)
		return
	}

	resp := ValidateResponse{RequestID: requestID}
	for _, s := range summaries {
		warnings := make([]string, 0, len(s.Warnings))
		for _, wrn := range s.Warnings {
			warnings = append(warnings, wrn.String())
			if h.metrics != nil {
				h.metrics.Analyzer().RecordWarning(wrn.Kind)
			}
		}
		resp.Protocols = append(resp.Protocols, ProtocolSummaryResponse{
			Name:             s.Name,
			Description:      s.Description,
			RoleCount:        s.RoleCount,
			ParamCount:       s.ParamCount,
			InteractionCount: s.InteractionCount,
			Warnings:         warnings,
		})
		opLog.WithProtocol(s.Name).Debug("protocol validated", "request_id", requestID, "warnings", len(warnings))
	}

	h.recordOperation("validate", start, "ok", len(summaries))
	opLog.Info("validate succeeded", "request_id", requestID, "protocols", len(summaries))
	h.respondJSON(w, http.StatusOK, resp)
}

// HandleTranspile implements POST /v1/transpile.
func (h *Handler) HandleTranspile(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	start := time.Now()

	var req TranspileRequest
	if err := h.decodeAndValidate(r, &req); err != nil {
		h.recordOperation("transpile", start, "bad_request", 0)
		h.respondError(w, requestID, http.StatusBadRequest, err)
		return
	}
	filename := req.Filename
	if filename == "" {
		filename = "<request>"
	}

	program, err := analyzer.Parse(filename, req.Source)
	if err != nil {
		h.recordOperation("transpile", start, "error", 0)
		h.respondError(w, requestID, http.StatusUnprocessableEntity, err)
		return
	}
	resolved, err := analyzer.Resolve(program)
	if err != nil {
		h.recordOperation("transpile", start, "error", 0)
		h.respondError(w, requestID, http.StatusUnprocessableEntity, err)
		return
	}
	if _, err := analyzer.ValidateFlow(resolved); err != nil {
		h.recordOperation("transpile", start, "error", 0)
		h.respondError(w, requestID, http.StatusUnprocessableEntity, err)
		return
	}

	output, err := codegen.Generate(resolved, codegen.Target(req.Target))
	if err != nil {
		h.recordOperation("transpile", start, "error", 0)
		h.respondError(w, requestID, http.StatusBadRequest, err)
		return
	}

	h.recordOperation("transpile", start, "ok", len(resolved.Protocols))
	h.log.WithOperation("transpile").Info("transpile succeeded", "request_id", requestID, "target", req.Target)
	h.respondJSON(w, http.StatusOK, TranspileResponse{RequestID: requestID, Target: req.Target, Output: output})
}

// HandleHealthz implements GET /healthz.
func (h *Handler) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
