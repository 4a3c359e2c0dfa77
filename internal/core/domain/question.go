package domain

import "time"

// QuestionType enumerates the practice-question formats teachers can request.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFillInBlank    QuestionType = "fill_in_the_blank"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionTrueFalse      QuestionType = "true_false"
)

// ParseQuestionType accepts both the wire form and the original UI labels.
func ParseQuestionType(tag string) (QuestionType, bool) {
	switch normalizeQuestionTag(tag) {
	case "multiple_choice":
		return QuestionMultipleChoice, true
	case "fill_in_the_blank", "fill_in_blank":
		return QuestionFillInBlank, true
	case "short_answer":
		return QuestionShortAnswer, true
	case "true_false":
		return QuestionTrueFalse, true
	default:
		return "", false
	}
}

// Label returns the human-readable form used in generation prompts.
func (qt QuestionType) Label() string {
	switch qt {
	case QuestionMultipleChoice:
		return "Multiple Choice"
	case QuestionFillInBlank:
		return "Fill-in-the-blank"
	case QuestionShortAnswer:
		return "Short Answer"
	case QuestionTrueFalse:
		return "True/False"
	default:
		return string(qt)
	}
}

// GeneratedQuestions is one stored generation run for a document.
type GeneratedQuestions struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"document_id"`
	Types      []QuestionType `json:"types"`
	Content    string         `json:"content"`
	AssignedTo string         `json:"assigned_to,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}

func normalizeQuestionTag(tag string) string {
	out := make([]rune, 0, len(tag))
	for _, r := range tag {
		switch {
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ', r == '-', r == '/':
			out = append(out, '_')
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
