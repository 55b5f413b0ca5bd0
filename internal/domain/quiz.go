package domain

import (
	"encoding/json"
	"time"
)

// Advisory cardinalities requested from the oracle. Violations are logged, not rejected.
const (
	OptionsPerQuestion = 4
	MinKeyEntities     = 5
	MaxKeyEntities     = 7
	MinQuestions       = 5
	MaxQuestions       = 10
	MinRelatedTopics   = 3
	MaxRelatedTopics   = 5
)

// UnknownArticleTitle is used when an article page has no primary heading.
const UnknownArticleTitle = "Unknown Article"

// Article is the cleaned prose of a fetched page.
type Article struct {
	Title string
	Text  string
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizOutput is the canonical structured quiz for one article.
type QuizOutput struct {
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	KeyEntities   []string       `json:"key_entities"`
	Questions     []QuizQuestion `json:"questions"`
	RelatedTopics []string       `json:"related_topics"`
}

// Marshal returns the canonical serialized form stored in full_quiz_data.
func (q *QuizOutput) Marshal() (string, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CardinalityWarnings lists advisory hints the quiz does not respect.
func (q *QuizOutput) CardinalityWarnings() []string {
	var warnings []string
	if n := len(q.KeyEntities); n < MinKeyEntities || n > MaxKeyEntities {
		warnings = append(warnings, "key_entities outside 5-7")
	}
	if n := len(q.Questions); n < MinQuestions || n > MaxQuestions {
		warnings = append(warnings, "questions outside 5-10")
	}
	if n := len(q.RelatedTopics); n < MinRelatedTopics || n > MaxRelatedTopics {
		warnings = append(warnings, "related_topics outside 3-5")
	}
	return warnings
}

// StoredQuiz is a persisted quiz row with its quiz data replayed.
type StoredQuiz struct {
	ID             string      `json:"id"`
	URL            string      `json:"url"`
	Title          string      `json:"title"`
	DateGenerated  time.Time   `json:"date_generated"`
	ScrapedContent string      `json:"scraped_content,omitempty"`
	QuizData       *QuizOutput `json:"quiz_data"`
}

// QuizSummary is one history entry.
type QuizSummary struct {
	ID            string
	URL           string
	Title         string
	DateGenerated time.Time
}
