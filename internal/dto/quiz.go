package dto

import (
	"time"

	"wiki-quiz/internal/domain"
)

// GenerateQuizRequest is the body of POST /api/generate_quiz
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	URL string `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// QuizQuestionResponse is one multiple-choice question
type QuizQuestionResponse struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

// QuizResponse is a generated quiz
// @Description Quiz generated from one article
type QuizResponse struct {
	Title         string                 `json:"title"`
	Summary       string                 `json:"summary"`
	KeyEntities   []string               `json:"key_entities"`
	Questions     []QuizQuestionResponse `json:"questions"`
	RelatedTopics []string               `json:"related_topics"`
}

// QuizHistoryItem is one entry of GET /api/history
type QuizHistoryItem struct {
	ID            string    `json:"id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	DateGenerated time.Time `json:"date_generated"`
}

// QuizDetailResponse is a stored quiz with its quiz data
type QuizDetailResponse struct {
	ID            string       `json:"id"`
	URL           string       `json:"url"`
	Title         string       `json:"title"`
	DateGenerated time.Time    `json:"date_generated"`
	QuizData      QuizResponse `json:"quiz_data"`
}

// StatusResponse is the body of GET /
type StatusResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

func NewQuizResponse(q *domain.QuizOutput) QuizResponse {
	questions := make([]QuizQuestionResponse, 0, len(q.Questions))
	for _, question := range q.Questions {
		questions = append(questions, QuizQuestionResponse{
			Question:      question.Question,
			Options:       question.Options,
			CorrectAnswer: question.CorrectAnswer,
			Explanation:   question.Explanation,
		})
	}
	return QuizResponse{
		Title:         q.Title,
		Summary:       q.Summary,
		KeyEntities:   nonNil(q.KeyEntities),
		Questions:     questions,
		RelatedTopics: nonNil(q.RelatedTopics),
	}
}

func NewQuizHistory(summaries []*domain.QuizSummary) []QuizHistoryItem {
	items := make([]QuizHistoryItem, 0, len(summaries))
	for _, s := range summaries {
		items = append(items, QuizHistoryItem{
			ID:            s.ID,
			URL:           s.URL,
			Title:         s.Title,
			DateGenerated: s.DateGenerated,
		})
	}
	return items
}

func NewQuizDetailResponse(q *domain.StoredQuiz) QuizDetailResponse {
	return QuizDetailResponse{
		ID:            q.ID,
		URL:           q.URL,
		Title:         q.Title,
		DateGenerated: q.DateGenerated,
		QuizData:      NewQuizResponse(q.QuizData),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
