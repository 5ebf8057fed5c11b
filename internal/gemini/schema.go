package gemini

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/veyselka/AI-LIB/internal/models"
)

// questionsSchema constrains the quiz payload: a "questions" array of
// exactly ten tagged variants.
const questionsSchema = `{
	"type": "object",
	"required": ["questions"],
	"additionalProperties": false,
	"properties": {
		"questions": {
			"type": "array",
			"minItems": 10,
			"maxItems": 10,
			"items": {
				"oneOf": [
					{
						"type": "object",
						"required": ["type", "question", "answer"],
						"properties": {
							"type": {"const": "classic"},
							"question": {"type": "string", "minLength": 1},
							"answer": {"type": "string", "minLength": 1}
						}
					},
					{
						"type": "object",
						"required": ["type", "question", "options", "correct_answer"],
						"properties": {
							"type": {"const": "multiple_choice"},
							"question": {"type": "string", "minLength": 1},
							"options": {
								"type": "array",
								"minItems": 4,
								"maxItems": 4,
								"items": {"type": "string", "minLength": 1}
							},
							"correct_answer": {"type": "string", "minLength": 1}
						}
					}
				]
			}
		}
	}
}`

var compiledQuestionsSchema = jsonschema.MustCompileString("questions.json", questionsSchema)

// ValidateQuestionsPayload checks the generated quiz JSON against the
// schema and the invariants the schema cannot express: five classic
// plus five multiple-choice questions, and each correct answer naming
// one of its own options.
func ValidateQuestionsPayload(payload string) error {
	var decoded interface{}
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}

	if err := compiledQuestionsSchema.Validate(decoded); err != nil {
		return err
	}

	var parsed models.QuestionsPayload
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return fmt.Errorf("decode questions: %w", err)
	}

	classic, multipleChoice := 0, 0
	for i, q := range parsed.Questions {
		switch q.Type {
		case "classic":
			classic++
		case "multiple_choice":
			multipleChoice++
			if !answerMatchesOption(q.CorrectAnswer, q.Options) {
				return fmt.Errorf("question %d: correct_answer %q does not reference any option", i+1, q.CorrectAnswer)
			}
		}
	}

	if classic != 5 || multipleChoice != 5 {
		return fmt.Errorf("expected 5 classic and 5 multiple_choice questions, got %d and %d", classic, multipleChoice)
	}

	return nil
}

// answerMatchesOption accepts either the bare option letter ("C") or
// the full option text ("C) ..."), both of which the model produces.
func answerMatchesOption(answer string, options []string) bool {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return false
	}

	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if strings.EqualFold(answer, opt) {
			return true
		}
		// bare letter against a labeled option like "C) Lisbon"
		label := strings.TrimRight(strings.TrimSpace(answer), ").")
		if len(label) == 1 && strings.HasPrefix(strings.ToUpper(opt), strings.ToUpper(label)+")") {
			return true
		}
	}

	return false
}
