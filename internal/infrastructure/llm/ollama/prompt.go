package ollama

import (
	"fmt"
	"strings"

	"github.com/opentutor/knowledge-service/internal/core/domain"
)

func buildSummaryPrompt(text string) string {
	return `Summarize the following page content in 1-2 sentences.
Focus on the main topics and key facts. Plain text only, no markdown.

Page content:
` + text
}

func buildQuestionPrompt(docContext string, types []domain.QuestionType) string {
	labels := make([]string, 0, len(types))
	for _, qt := range types {
		labels = append(labels, qt.Label())
	}

	return fmt.Sprintf(`You are an experienced teacher preparing practice questions.
Based only on the study material below, generate 3 questions for each of the
following question types: %s.
Number the questions and provide the correct answer after each one.

Study material:
%s
`, strings.Join(labels, ", "), docContext)
}
