package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepmate/interview-coach/internal/ai"
	"github.com/prepmate/interview-coach/internal/config"
	"github.com/prepmate/interview-coach/internal/ratelimit"
	httperrors "github.com/prepmate/interview-coach/pkg/http/errors"
)

// Operation names used for rate-limit buckets and metrics labels.
const (
	opGenerate = "generate_questions"
	opEvaluate = "evaluate_answer"
)

// Token budgets. Generation scales with the requested batch size; evaluation
// scores one answer and needs far less room.
const (
	generateTokensPerQuestion = 4000
	evaluateMaxTokens         = 2000

	generateTemperature = 0.7
	evaluateTemperature = 0.5
)

// Handlers owns the two AI-backed operations. Each handler is a linear
// pipeline: method gate, rate limit, validation, prompt, provider call,
// response parsing, envelope.
type Handlers struct {
	provider  ai.Provider
	limiter   ratelimit.Limiter
	rateCfg   config.RateLimit
	aiTimeout time.Duration
	env       string
	logger    zerolog.Logger
}

func NewHandlers(provider ai.Provider, limiter ratelimit.Limiter, cfg *config.App, logger zerolog.Logger) *Handlers {
	return &Handlers{
		provider:  provider,
		limiter:   limiter,
		rateCfg:   cfg.RateLimit,
		aiTimeout: cfg.AI.Timeout,
		env:       cfg.Env,
		logger:    logger.With().Str("component", "interview_handlers").Logger(),
	}
}

// ClientIdentifier derives the rate-limit key for a request: the first address
// in the forwarded-for chain, or a fixed sentinel when absent. Best-effort and
// spoofable; acceptable for abuse deterrence, not identity.
func ClientIdentifier(r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return "unknown"
	}
	first, _, _ := strings.Cut(forwarded, ",")
	return strings.TrimSpace(first)
}

// GenerateQuestions handles POST /v1/generate-questions.
func (h *Handlers) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	if !h.allow(w, r, opGenerate, h.rateCfg.GenerateMax, h.rateCfg.GenerateWindow) {
		return
	}

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues(opGenerate, "bad_request").Inc()
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidJSON, "Request body must be valid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondValidation(w, opGenerate, err)
		return
	}

	prompt := BuildGenerationPrompt(req.ResumeText, req.JobDescriptionText, req.QuestionCount)
	raw, err := h.complete(r.Context(), opGenerate, ai.Request{
		Prompt:      prompt,
		MaxTokens:   int32(generateTokensPerQuestion * req.QuestionCount),
		Temperature: generateTemperature,
	})
	if err != nil {
		h.respondAIFailure(w, opGenerate, err)
		return
	}

	questions, err := ParseGenerationResponse(raw, req.QuestionCount, h.logger)
	if err != nil {
		h.respondAIFailure(w, opGenerate, err)
		return
	}

	requestsTotal.WithLabelValues(opGenerate, "ok").Inc()
	writeSuccess(w, GenerateResult{Questions: questions})
}

// EvaluateAnswer handles POST /v1/evaluate-answer.
func (h *Handlers) EvaluateAnswer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httperrors.RespondMethodNotAllowed(w)
		return
	}
	if !h.allow(w, r, opEvaluate, h.rateCfg.EvaluateMax, h.rateCfg.EvaluateWindow) {
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		requestsTotal.WithLabelValues(opEvaluate, "bad_request").Inc()
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidJSON, "Request body must be valid JSON")
		return
	}
	if err := req.Validate(); err != nil {
		h.respondValidation(w, opEvaluate, err)
		return
	}

	prompt := BuildEvaluationPrompt(req.Question, req.ModelAnswer, req.UserAnswer, req.ResumeContext)
	raw, err := h.complete(r.Context(), opEvaluate, ai.Request{
		Prompt:      prompt,
		MaxTokens:   evaluateMaxTokens,
		Temperature: evaluateTemperature,
	})
	if err != nil {
		h.respondAIFailure(w, opEvaluate, err)
		return
	}

	evaluation, err := ParseEvaluationResponse(raw)
	if err != nil {
		h.respondAIFailure(w, opEvaluate, err)
		return
	}

	requestsTotal.WithLabelValues(opEvaluate, "ok").Inc()
	writeSuccess(w, EvaluateResult{Evaluation: evaluation})
}

// allow runs the rate-limit check and writes the 429 itself when denied. A
// limiter backend failure is logged and fails open: the limiter is an abuse
// deterrent, not a correctness gate.
func (h *Handlers) allow(w http.ResponseWriter, r *http.Request, operation string, max int, window time.Duration) bool {
	clientID := ClientIdentifier(r)
	result, err := h.limiter.Check(r.Context(), clientID, operation, max, window)
	if err != nil {
		h.logger.Error().Err(err).Str("operation", operation).Msg("rate limiter check failed, allowing request")
		return true
	}
	if !result.Allowed {
		rateLimitDenials.WithLabelValues(operation).Inc()
		requestsTotal.WithLabelValues(operation, "rate_limited").Inc()
		h.logger.Info().Str("client", clientID).Str("operation", operation).Msg("rate limit exceeded")
		httperrors.RespondRateLimited(w, "Rate limit exceeded. Please try again later.", result.RetryAfter)
		return false
	}
	return true
}

// complete invokes the provider under the configured deadline and records the
// call latency.
func (h *Handlers) complete(ctx context.Context, operation string, req ai.Request) (string, error) {
	callCtx := ctx
	if h.aiTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, h.aiTimeout)
		defer cancel()
	}

	start := time.Now()
	raw, err := h.provider.Complete(callCtx, req)
	aiCallDuration.WithLabelValues(h.provider.Name(), operation).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, ai.ErrMissingCredential) {
			return "", ErrConfiguration
		}
		return "", &UpstreamError{Err: err}
	}
	return raw, nil
}

func (h *Handlers) respondValidation(w http.ResponseWriter, operation string, err error) {
	requestsTotal.WithLabelValues(operation, "validation_failed").Inc()

	var verr *ValidationError
	if errors.As(err, &verr) {
		httperrors.RespondValidationError(w, "Invalid request data", verr.Fields)
		return
	}
	httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid request data")
}

// respondAIFailure maps every post-validation failure to a 500 with a short
// user-facing message. The detailed cause, including raw provider text on
// parse failures, stays in the server log.
func (h *Handlers) respondAIFailure(w http.ResponseWriter, operation string, err error) {
	var (
		parseErr *ParseError
		shapeErr *ShapeError
		upstream *UpstreamError
	)

	switch {
	case errors.Is(err, ErrConfiguration):
		requestsTotal.WithLabelValues(operation, "config_error").Inc()
		h.logger.Error().Str("operation", operation).Msg("AI provider credential missing")
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeConfigurationError, "Server configuration error")

	case errors.As(err, &parseErr):
		requestsTotal.WithLabelValues(operation, "parse_error").Inc()
		h.logger.Error().Err(parseErr.Err).Str("operation", operation).Str("raw", parseErr.Raw).Msg("failed to parse AI response")
		httperrors.RespondInternalError(w, "Failed to process the AI response. Please try again.")

	case errors.As(err, &shapeErr):
		requestsTotal.WithLabelValues(operation, "shape_error").Inc()
		h.logger.Error().Str("operation", operation).Str("reason", shapeErr.Reason).Msg("AI response failed shape validation")
		httperrors.RespondInternalError(w, "Failed to process the AI response. Please try again.")

	case errors.As(err, &upstream):
		requestsTotal.WithLabelValues(operation, "upstream_error").Inc()
		h.logger.Error().Err(upstream.Err).Str("operation", operation).Msg("AI provider call failed")
		message := "The AI service is temporarily unavailable. Please try again."
		if h.env != "production" {
			message = upstream.Err.Error()
		}
		httperrors.RespondError(w, http.StatusInternalServerError, httperrors.ErrCodeUpstreamError, message)

	default:
		requestsTotal.WithLabelValues(operation, "error").Inc()
		h.logger.Error().Err(err).Str("operation", operation).Msg("operation failed")
		httperrors.RespondInternalError(w, "Something went wrong. Please try again.")
	}
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeSuccess(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}
