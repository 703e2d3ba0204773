package interview

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generationJSON(count int) string {
	out := `{"questions":[`
	for i := 0; i < count; i++ {
		if i > 0 {
			out += ","
		}
		out += fmt.Sprintf(`{"id":"q-%d","question":"Question %d?","modelAnswer":"Answer %d","category":"technical","difficulty":"medium"}`, i+1, i+1, i+1)
	}
	return out + `]}`
}

func TestParseGenerationResponse(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("bare JSON", func(t *testing.T) {
		questions, err := ParseGenerationResponse(generationJSON(5), 5, logger)
		require.NoError(t, err)
		assert.Len(t, questions, 5)
		assert.Equal(t, "q-1", questions[0].ID)
		assert.Equal(t, "Question 1?", questions[0].Question)
	})

	t.Run("JSON surrounded by prose", func(t *testing.T) {
		raw := "Here are your questions:\n" + generationJSON(2) + "\nGood luck!"
		questions, err := ParseGenerationResponse(raw, 2, logger)
		require.NoError(t, err)
		assert.Len(t, questions, 2)
	})

	t.Run("no braces at all", func(t *testing.T) {
		_, err := ParseGenerationResponse("I cannot help with that.", 5, logger)
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, "I cannot help with that.", perr.Raw)
	})

	t.Run("missing questions field", func(t *testing.T) {
		_, err := ParseGenerationResponse(`{"items":[]}`, 5, logger)
		var serr *ShapeError
		assert.True(t, errors.As(err, &serr))
	})

	t.Run("element missing category is dropped, rest kept", func(t *testing.T) {
		raw := `{"questions":[
			{"id":"a","question":"Q1?","modelAnswer":"A1","category":"technical","difficulty":"easy"},
			{"id":"b","question":"Q2?","modelAnswer":"A2","difficulty":"medium"},
			{"id":"c","question":"Q3?","modelAnswer":"A3","category":"behavioral","difficulty":"hard"}
		]}`
		questions, err := ParseGenerationResponse(raw, 3, logger)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "a", questions[0].ID)
		assert.Equal(t, "c", questions[1].ID)
	})

	t.Run("count mismatch is not fatal", func(t *testing.T) {
		questions, err := ParseGenerationResponse(generationJSON(3), 5, logger)
		require.NoError(t, err)
		assert.Len(t, questions, 3)
	})

	t.Run("duplicate ids are remapped", func(t *testing.T) {
		raw := `{"questions":[
			{"id":"dup","question":"Q1?","modelAnswer":"A1","category":"technical","difficulty":"easy"},
			{"id":"dup","question":"Q2?","modelAnswer":"A2","category":"behavioral","difficulty":"medium"}
		]}`
		questions, err := ParseGenerationResponse(raw, 2, logger)
		require.NoError(t, err)
		require.Len(t, questions, 2)
		assert.Equal(t, "dup", questions[0].ID)
		assert.NotEqual(t, "dup", questions[1].ID)
		assert.NotEmpty(t, questions[1].ID)
	})
}

func TestParseEvaluationResponse(t *testing.T) {
	t.Run("embedded in prose", func(t *testing.T) {
		raw := `Sure! {"score":85,"strengths":["a","b"],"areasForImprovement":["c"],"suggestions":["d"],"detailedFeedback":"..."} Hope that helps!`
		evaluation, err := ParseEvaluationResponse(raw)
		require.NoError(t, err)
		assert.Equal(t, 85, evaluation.Score)
		assert.Equal(t, []string{"a", "b"}, evaluation.Strengths)
		assert.Equal(t, []string{"c"}, evaluation.AreasForImprovement)
		assert.Equal(t, []string{"d"}, evaluation.Suggestions)
		assert.Equal(t, "...", evaluation.DetailedFeedback)
	})

	t.Run("no braces", func(t *testing.T) {
		_, err := ParseEvaluationResponse("not json")
		var perr *ParseError
		assert.True(t, errors.As(err, &perr))
	})

	t.Run("missing score", func(t *testing.T) {
		_, err := ParseEvaluationResponse(`{"strengths":[],"areasForImprovement":[],"suggestions":[],"detailedFeedback":"x"}`)
		var serr *ShapeError
		require.True(t, errors.As(err, &serr))
		assert.Contains(t, serr.Reason, "score")
	})

	t.Run("non-numeric score", func(t *testing.T) {
		_, err := ParseEvaluationResponse(`{"score":"85","strengths":[],"areasForImprovement":[],"suggestions":[],"detailedFeedback":"x"}`)
		var serr *ShapeError
		assert.True(t, errors.As(err, &serr))
	})

	t.Run("missing list field", func(t *testing.T) {
		_, err := ParseEvaluationResponse(`{"score":50,"strengths":["a"],"suggestions":["d"],"detailedFeedback":"x"}`)
		var serr *ShapeError
		require.True(t, errors.As(err, &serr))
		assert.Contains(t, serr.Reason, "areasForImprovement")
	})

	t.Run("score is clamped", func(t *testing.T) {
		evaluation, err := ParseEvaluationResponse(`{"score":120,"strengths":[],"areasForImprovement":[],"suggestions":[],"detailedFeedback":"x"}`)
		require.NoError(t, err)
		assert.Equal(t, 100, evaluation.Score)

		evaluation, err = ParseEvaluationResponse(`{"score":-5,"strengths":[],"areasForImprovement":[],"suggestions":[],"detailedFeedback":"x"}`)
		require.NoError(t, err)
		assert.Equal(t, 0, evaluation.Score)
	})
}

func TestExtractJSONCandidate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"prose around", `text {"a":1} text`, `{"a":1}`},
		{"greedy span", `x {"a":{"b":2}} y`, `{"a":{"b":2}}`},
		{"no braces falls back to whole text", `plain text`, `plain text`},
		{"only open brace falls back", `{ truncated`, `{ truncated`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractJSONCandidate(tt.in))
		})
	}
}
