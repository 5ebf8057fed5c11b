package gemini

import (
	"encoding/json"
	"testing"

	"github.com/veyselka/AI-LIB/internal/models"
)

func buildPayload(classic, multipleChoice int) models.QuestionsPayload {
	payload := models.QuestionsPayload{}
	for i := 0; i < classic; i++ {
		payload.Questions = append(payload.Questions, models.Question{
			Type:     "classic",
			Question: "Describe the key findings.",
			Answer:   "The findings are threefold. First one. Second one. Third one.",
		})
	}
	for i := 0; i < multipleChoice; i++ {
		payload.Questions = append(payload.Questions, models.Question{
			Type:          "multiple_choice",
			Question:      "Pick the correct statement.",
			Options:       []string{"A) One", "B) Two", "C) Three", "D) Four"},
			CorrectAnswer: "B",
		})
	}
	return payload
}

func marshalPayload(t *testing.T, p models.QuestionsPayload) string {
	t.Helper()
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(b)
}

func TestValidateQuestionsPayloadValid(t *testing.T) {
	payload := marshalPayload(t, buildPayload(5, 5))
	if err := ValidateQuestionsPayload(payload); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}
}

func TestValidateQuestionsPayloadFullOptionAnswer(t *testing.T) {
	p := buildPayload(5, 5)
	for i := range p.Questions {
		if p.Questions[i].Type == "multiple_choice" {
			p.Questions[i].CorrectAnswer = "B) Two"
		}
	}
	if err := ValidateQuestionsPayload(marshalPayload(t, p)); err != nil {
		t.Errorf("full-option correct_answer rejected: %v", err)
	}
}

func TestValidateQuestionsPayloadWrongCount(t *testing.T) {
	if err := ValidateQuestionsPayload(marshalPayload(t, buildPayload(5, 4))); err == nil {
		t.Error("nine questions accepted")
	}
}

func TestValidateQuestionsPayloadWrongSplit(t *testing.T) {
	if err := ValidateQuestionsPayload(marshalPayload(t, buildPayload(6, 4))); err == nil {
		t.Error("6/4 split accepted")
	}
}

func TestValidateQuestionsPayloadWrongOptionCount(t *testing.T) {
	p := buildPayload(5, 5)
	p.Questions[9].Options = []string{"A) One", "B) Two", "C) Three"}
	if err := ValidateQuestionsPayload(marshalPayload(t, p)); err == nil {
		t.Error("multiple-choice question with three options accepted")
	}
}

func TestValidateQuestionsPayloadUnknownCorrectAnswer(t *testing.T) {
	p := buildPayload(5, 5)
	p.Questions[9].CorrectAnswer = "E"
	if err := ValidateQuestionsPayload(marshalPayload(t, p)); err == nil {
		t.Error("correct_answer outside the options accepted")
	}
}

func TestValidateQuestionsPayloadNotJSON(t *testing.T) {
	if err := ValidateQuestionsPayload("the model apologizes and refuses"); err == nil {
		t.Error("non-JSON payload accepted")
	}
}

func TestValidateQuestionsPayloadMissingAnswer(t *testing.T) {
	p := buildPayload(5, 5)
	p.Questions[0].Answer = ""
	if err := ValidateQuestionsPayload(marshalPayload(t, p)); err == nil {
		t.Error("classic question without answer accepted")
	}
}
