package interview

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// extractJSONCandidate returns the greedy {...} span of the completion: first
// '{' through last '}'. When no brace pair exists the whole text is the
// candidate, so a model that actually returned bare JSON still parses.
func extractJSONCandidate(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}

type generationPayload struct {
	Questions []json.RawMessage `json:"questions"`
}

// ParseGenerationResponse extracts and validates the question list embedded in
// a free-form completion. Elements missing any required field are silently
// dropped; a surviving count different from the requested count is logged as a
// discrepancy, not treated as fatal. Duplicate ids within the batch are
// remapped to fresh UUIDs so ids stay unique per batch.
func ParseGenerationResponse(raw string, requested int, logger zerolog.Logger) ([]Question, error) {
	candidate := extractJSONCandidate(raw)

	var payload generationPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	if payload.Questions == nil {
		return nil, &ShapeError{Reason: "missing questions list"}
	}

	questions := make([]Question, 0, len(payload.Questions))
	seen := make(map[string]bool, len(payload.Questions))
	dropped := 0
	for _, element := range payload.Questions {
		var q Question
		if err := json.Unmarshal(element, &q); err != nil {
			dropped++
			continue
		}
		if q.ID == "" || q.Question == "" || q.ModelAnswer == "" || q.Category == "" || q.Difficulty == "" {
			dropped++
			continue
		}
		if seen[q.ID] {
			q.ID = uuid.NewString()
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}

	if dropped > 0 {
		logger.Warn().Int("dropped", dropped).Msg("dropped malformed questions from AI response")
	}
	if len(questions) != requested {
		logger.Warn().
			Int("requested", requested).
			Int("received", len(questions)).
			Msg("AI returned unexpected question count")
	}

	return questions, nil
}

type evaluationPayload struct {
	Score               *float64 `json:"score"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Suggestions         []string `json:"suggestions"`
	DetailedFeedback    *string  `json:"detailedFeedback"`
}

// ParseEvaluationResponse extracts and validates the evaluation object. Unlike
// generation there is no partial acceptance: any missing or mistyped field
// fails the whole response.
func ParseEvaluationResponse(raw string) (Evaluation, error) {
	candidate := extractJSONCandidate(raw)

	if !json.Valid([]byte(candidate)) {
		return Evaluation{}, &ParseError{Raw: raw, Err: errInvalidJSON}
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(candidate), &payload); err != nil {
		return Evaluation{}, &ShapeError{Reason: err.Error()}
	}

	switch {
	case payload.Score == nil:
		return Evaluation{}, &ShapeError{Reason: "missing numeric score"}
	case payload.Strengths == nil:
		return Evaluation{}, &ShapeError{Reason: "missing strengths list"}
	case payload.AreasForImprovement == nil:
		return Evaluation{}, &ShapeError{Reason: "missing areasForImprovement list"}
	case payload.Suggestions == nil:
		return Evaluation{}, &ShapeError{Reason: "missing suggestions list"}
	case payload.DetailedFeedback == nil:
		return Evaluation{}, &ShapeError{Reason: "missing detailedFeedback"}
	}

	// Clamp instead of rejecting: models occasionally emit 105 or -3 and the
	// rest of the evaluation is still usable.
	score := int(math.Round(*payload.Score))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	return Evaluation{
		Score:               score,
		Strengths:           payload.Strengths,
		AreasForImprovement: payload.AreasForImprovement,
		Suggestions:         payload.Suggestions,
		DetailedFeedback:    *payload.DetailedFeedback,
	}, nil
}

var errInvalidJSON = errors.New("no decodable JSON object in completion")
