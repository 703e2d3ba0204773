package interview

// Question category constants.
const (
	CategoryTechnical       = "technical"
	CategoryBehavioral      = "behavioral"
	CategorySituational     = "situational"
	CategoryCompanySpecific = "company-specific"
)

// Difficulty constants for readability.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// AllowedQuestionCounts enumerates the generation batch sizes a client may request.
var AllowedQuestionCounts = map[int]bool{5: true, 10: true, 15: true}

// Question is one generated interview question with its model answer.
// Immutable once delivered; ids are unique within a generation batch.
type Question struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	ModelAnswer string `json:"modelAnswer"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`
}

// Evaluation is the structured feedback returned for one submitted answer.
type Evaluation struct {
	Score               int      `json:"score"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Suggestions         []string `json:"suggestions"`
	DetailedFeedback    string   `json:"detailedFeedback"`
}

// GenerateRequest is the body of POST /v1/generate-questions.
type GenerateRequest struct {
	ResumeText         string `json:"resumeText"`
	JobDescriptionText string `json:"jobDescriptionText"`
	QuestionCount      int    `json:"questionCount"`
}

// EvaluateRequest is the body of POST /v1/evaluate-answer.
type EvaluateRequest struct {
	Question       string `json:"question"`
	ModelAnswer    string `json:"modelAnswer"`
	UserAnswer     string `json:"userAnswer"`
	ResumeContext  string `json:"resumeContext"`
	JobDescContext string `json:"jobDescContext"`
}

// GenerateResult is the success payload of the generation operation.
type GenerateResult struct {
	Questions []Question `json:"questions"`
}

// EvaluateResult is the success payload of the evaluation operation.
type EvaluateResult struct {
	Evaluation Evaluation `json:"evaluation"`
}
