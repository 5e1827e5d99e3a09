// Package validate enforces the ScoreResult contract on untrusted model
// output. It rejects rather than coerces: the single permitted default is an
// empty slice for a missing strengths/areasForImprovement array.
package validate

import (
	"fmt"

	"github.com/salesdojo/roleplay-eval/internal/models"
)

// FieldError reports which field of the raw object violated the contract and
// what was expected there. It carries enough detail for operator logs; the
// raw value itself is never persisted.
type FieldError struct {
	Field string
	Want  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: expected %s", e.Field, e.Want)
}

// ScoreResult validates a parsed JSON object against the scoring contract.
// On failure it returns a *FieldError and never a partially populated result.
// Unknown top-level fields are ignored; they cannot mask a missing required
// field.
func ScoreResult(raw map[string]any) (models.ScoreResult, error) {
	var out models.ScoreResult

	overall, err := scoreField(raw, "overallScore")
	if err != nil {
		return models.ScoreResult{}, err
	}

	scores, ok := raw["scores"].(map[string]any)
	if !ok {
		return models.ScoreResult{}, &FieldError{Field: "scores", Want: "object"}
	}

	empathy, err := scoreField(scores, "empathy")
	if err != nil {
		return models.ScoreResult{}, prefix("scores", err)
	}
	clarity, err := scoreField(scores, "clarity")
	if err != nil {
		return models.ScoreResult{}, prefix("scores", err)
	}
	product, err := scoreField(scores, "productKnowledge")
	if err != nil {
		return models.ScoreResult{}, prefix("scores", err)
	}

	feedback, ok := raw["feedback"].(map[string]any)
	if !ok {
		return models.ScoreResult{}, &FieldError{Field: "feedback", Want: "object"}
	}

	summary, ok := feedback["summary"].(string)
	if !ok || summary == "" {
		return models.ScoreResult{}, &FieldError{Field: "feedback.summary", Want: "non-empty string"}
	}

	strengths, err := stringList(feedback, "strengths")
	if err != nil {
		return models.ScoreResult{}, prefix("feedback", err)
	}
	areas, err := stringList(feedback, "areasForImprovement")
	if err != nil {
		return models.ScoreResult{}, prefix("feedback", err)
	}

	out.OverallScore = overall
	out.Scores = models.Scores{
		Empathy:          empathy,
		Clarity:          clarity,
		ProductKnowledge: product,
	}
	out.Feedback = models.Feedback{
		Summary:             summary,
		Strengths:           strengths,
		AreasForImprovement: areas,
	}

	return out, nil
}

// scoreField extracts a numeric score in [0,10]. Fractional values are
// allowed even though the prompt asks for integers.
func scoreField(obj map[string]any, key string) (float64, error) {
	v, ok := obj[key]
	if !ok {
		return 0, &FieldError{Field: key, Want: "number in [0,10]"}
	}

	n, ok := v.(float64)
	if !ok {
		return 0, &FieldError{Field: key, Want: "number in [0,10]"}
	}

	if n < 0 || n > 10 {
		return 0, &FieldError{Field: key, Want: "number in [0,10]"}
	}

	return n, nil
}

// stringList extracts an array of strings, defaulting a missing key to an
// empty slice. A present-but-wrong-typed value is still rejected.
func stringList(obj map[string]any, key string) ([]string, error) {
	v, ok := obj[key]
	if !ok || v == nil {
		return []string{}, nil
	}

	items, ok := v.([]any)
	if !ok {
		return nil, &FieldError{Field: key, Want: "array of strings"}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, &FieldError{Field: key, Want: "array of strings"}
		}
		out = append(out, s)
	}

	return out, nil
}

func prefix(parent string, err error) error {
	if fe, ok := err.(*FieldError); ok {
		return &FieldError{Field: parent + "." + fe.Field, Want: fe.Want}
	}
	return err
}
