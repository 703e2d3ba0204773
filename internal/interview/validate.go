package interview

import "fmt"

// Length bounds for request fields, in characters. These mirror the limits the
// web client enforces before submitting.
const (
	minContextLen = 50
	maxContextLen = 20000

	minQuestionLen = 10
	maxQuestionLen = 1000

	minModelAnswerLen = 50
	maxAnswerLen      = 5000

	minUserAnswerLen = 10
)

// Validate checks shape and length constraints before any AI call is made.
// All violations are collected so the client sees every problem at once.
func (r GenerateRequest) Validate() error {
	fields := map[string]string{}
	checkLength(fields, "resumeText", r.ResumeText, minContextLen, maxContextLen)
	checkLength(fields, "jobDescriptionText", r.JobDescriptionText, minContextLen, maxContextLen)
	if !AllowedQuestionCounts[r.QuestionCount] {
		fields["questionCount"] = "must be 5, 10, or 15"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks the evaluation request fields.
func (r EvaluateRequest) Validate() error {
	fields := map[string]string{}
	checkLength(fields, "question", r.Question, minQuestionLen, maxQuestionLen)
	checkLength(fields, "modelAnswer", r.ModelAnswer, minModelAnswerLen, maxAnswerLen)
	checkLength(fields, "userAnswer", r.UserAnswer, minUserAnswerLen, maxAnswerLen)
	checkLength(fields, "resumeContext", r.ResumeContext, minContextLen, maxContextLen)
	checkLength(fields, "jobDescContext", r.JobDescContext, minContextLen, maxContextLen)
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func checkLength(fields map[string]string, name, value string, min, max int) {
	switch {
	case len(value) < min:
		fields[name] = fmt.Sprintf("must be at least %d characters", min)
	case len(value) > max:
		fields[name] = fmt.Sprintf("must be at most %d characters", max)
	}
}
