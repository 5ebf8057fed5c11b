package gemini

import "fmt"

func buildSummaryPrompt(text, title string) string {
	return fmt.Sprintf(`Analyze the following document: '%s'.
Write a comprehensive, long and detailed summary covering the document's main arguments, key points, important details and conclusions.

The summary must be at least 5-6 paragraphs long and include these sections:
1. Overview: the document's main topic and purpose
2. Main Ideas: the core concepts and arguments
3. Detailed Content: important information, examples and explanations
4. Key Points: the details the document emphasizes
5. Conclusions: the document's conclusions and recommendations

Each paragraph must contain at least 4-5 sentences, written in an academic register.

Document content:
---
%s
---`, title, text)
}

func buildQuestionsPrompt(text, title string) string {
	return fmt.Sprintf(`Analyze the following document ('%s') and produce EXACTLY 10 exam questions in total.

STRICT RULES:
- Exactly 10 questions: 5 classic open-ended + 5 multiple-choice
- Classic questions must require detailed, long answers (at least 3-4 sentences)
- Multiple-choice questions must be challenging
- All options must look plausible
- Questions must cover different parts of the document

Return ONLY the JSON below, with no other text.

JSON format:
{
    "questions": [
        {
            "type": "classic",
            "question": "[Detailed question text]",
            "answer": "[Comprehensive, detailed answer, at least 3-4 sentences]"
        },
        {
            "type": "multiple_choice",
            "question": "[Multiple-choice question text]",
            "options": ["A) Answer 1", "B) Answer 2", "C) Answer 3", "D) Answer 4"],
            "correct_answer": "[Correct option letter (e.g. C)]"
        }
    ]
}

Document content:
---
%s
---`, title, text)
}
