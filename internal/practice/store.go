// Package practice holds the state of one mock-interview session: the session
// context texts, the generated question batch, the user's draft answers, and
// evaluation results as they arrive.
package practice

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"github.com/prepmate/interview-coach/internal/interview"
)

// API is the slice of the platform the store drives; pkg/client satisfies it.
type API interface {
	GenerateQuestions(ctx context.Context, req interview.GenerateRequest) ([]interview.Question, error)
	EvaluateAnswer(ctx context.Context, req interview.EvaluateRequest) (interview.Evaluation, error)
}

var (
	// ErrMissingContext means résumé or job-description text has not been set.
	ErrMissingContext = errors.New("resume and job description are required")
	// ErrGenerationInFlight rejects a second generation while one is running.
	ErrGenerationInFlight = errors.New("question generation already in progress")
	// ErrEvaluationInFlight rejects a duplicate evaluation for the same question.
	ErrEvaluationInFlight = errors.New("evaluation already in progress for this question")
	// ErrUnknownQuestion means the id is not in the current batch.
	ErrUnknownQuestion = errors.New("unknown question id")
	// ErrNoAnswer means no answer has been submitted for the question.
	ErrNoAnswer = errors.New("no answer submitted for this question")
)

const defaultQuestionCount = 10

// Store is the session state machine. All methods are safe for concurrent
// use; per-question evaluation and whole-batch generation are single-flight.
type Store struct {
	api    API
	logger zerolog.Logger

	mu sync.Mutex

	resumeText    string
	jobDescText   string
	questionCount int

	questions     []interview.Question
	generating    bool
	generationErr string

	answers     map[string]string
	revealed    map[string]struct{}
	evaluating  map[string]struct{}
	evaluations map[string]interview.Evaluation
}

func NewStore(api API, logger zerolog.Logger) *Store {
	s := &Store{
		api:    api,
		logger: logger.With().Str("component", "practice_store").Logger(),
	}
	s.resetLocked()
	return s
}

func (s *Store) resetLocked() {
	s.resumeText = ""
	s.jobDescText = ""
	s.questionCount = defaultQuestionCount
	s.questions = nil
	s.generating = false
	s.generationErr = ""
	s.answers = make(map[string]string)
	s.revealed = make(map[string]struct{})
	s.evaluating = make(map[string]struct{})
	s.evaluations = make(map[string]interview.Evaluation)
}

// SetResumeText updates the session résumé text.
func (s *Store) SetResumeText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeText = text
}

// SetJobDescText updates the session job-description text.
func (s *Store) SetJobDescText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescText = text
}

// SetQuestionCount updates the requested batch size.
func (s *Store) SetQuestionCount(count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questionCount = count
}

// GenerateQuestions runs the generation operation and replaces the question
// batch. Prior questions and any recorded error are cleared up front; a
// failure records the error string for display instead of returning partial
// state.
func (s *Store) GenerateQuestions(ctx context.Context) error {
	s.mu.Lock()
	if s.resumeText == "" || s.jobDescText == "" {
		s.generationErr = ErrMissingContext.Error()
		s.mu.Unlock()
		return ErrMissingContext
	}
	if s.generating {
		s.mu.Unlock()
		return ErrGenerationInFlight
	}
	s.generating = true
	s.generationErr = ""
	s.questions = nil
	req := interview.GenerateRequest{
		ResumeText:         s.resumeText,
		JobDescriptionText: s.jobDescText,
		QuestionCount:      s.questionCount,
	}
	s.mu.Unlock()

	questions, err := s.api.GenerateQuestions(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.generating = false
	if err != nil {
		s.generationErr = err.Error()
		s.logger.Error().Err(err).Msg("question generation failed")
		return err
	}
	s.questions = questions
	return nil
}

// SubmitAnswer upserts the draft answer for a question. No minimum-length
// gate at this layer; the server validator enforces it on evaluation.
func (s *Store) SubmitAnswer(questionID, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[questionID] = answer
}

// RevealAnswer idempotently marks a model answer as revealed.
func (s *Store) RevealAnswer(questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revealed[questionID] = struct{}{}
}

// EvaluateAnswer runs the evaluation operation for one question. The id is
// held in the evaluating set for the duration of the call and removed
// unconditionally; a failure leaves any prior evaluation untouched.
func (s *Store) EvaluateAnswer(ctx context.Context, questionID string) error {
	s.mu.Lock()
	if s.resumeText == "" || s.jobDescText == "" {
		s.mu.Unlock()
		return ErrMissingContext
	}
	question, ok := s.findQuestionLocked(questionID)
	if !ok {
		s.mu.Unlock()
		return ErrUnknownQuestion
	}
	answer, ok := s.answers[questionID]
	if !ok || answer == "" {
		s.mu.Unlock()
		return ErrNoAnswer
	}
	if _, inFlight := s.evaluating[questionID]; inFlight {
		s.mu.Unlock()
		return ErrEvaluationInFlight
	}
	s.evaluating[questionID] = struct{}{}
	req := interview.EvaluateRequest{
		Question:       question.Question,
		ModelAnswer:    question.ModelAnswer,
		UserAnswer:     answer,
		ResumeContext:  s.resumeText,
		JobDescContext: s.jobDescText,
	}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.evaluating, questionID)
		s.mu.Unlock()
	}()

	evaluation, err := s.api.EvaluateAnswer(ctx, req)
	if err != nil {
		s.logger.Error().Err(err).Str("question_id", questionID).Msg("evaluation failed")
		return err
	}

	s.mu.Lock()
	s.evaluations[questionID] = evaluation
	s.mu.Unlock()
	return nil
}

// Reset clears all session state back to initial values.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

func (s *Store) findQuestionLocked(questionID string) (interview.Question, bool) {
	for _, q := range s.questions {
		if q.ID == questionID {
			return q, true
		}
	}
	return interview.Question{}, false
}

// Questions returns a copy of the current batch.
func (s *Store) Questions() []interview.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]interview.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Answer returns the submitted answer for a question, if any.
func (s *Store) Answer(questionID string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	answer, ok := s.answers[questionID]
	return answer, ok
}

// Evaluation returns the last evaluation for a question, if any.
func (s *Store) Evaluation(questionID string) (interview.Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	evaluation, ok := s.evaluations[questionID]
	return evaluation, ok
}

// IsRevealed reports whether the model answer has been revealed.
func (s *Store) IsRevealed(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.revealed[questionID]
	return ok
}

// IsEvaluating reports whether an evaluation is in flight for the question.
func (s *Store) IsEvaluating(questionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.evaluating[questionID]
	return ok
}

// IsGenerating reports whether a generation call is in flight.
func (s *Store) IsGenerating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generating
}

// GenerationError returns the last recorded generation failure, empty when the
// last generation succeeded.
func (s *Store) GenerationError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generationErr
}
