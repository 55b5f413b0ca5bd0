package quizgen

import (
	"fmt"

	"wiki-quiz/internal/domain"
)

const quizPromptTemplate = `Create a quiz from this Wikipedia article in JSON format.

Article Title: %s
Article Content: %s

Return ONLY a JSON object with this shape:
{
  "title": "article title",
  "summary": "short summary of the article",
  "key_entities": ["entity", "..."],
  "questions": [
    {
      "question": "question text",
      "options": ["option A", "option B", "option C", "option D"],
      "correct_answer": "option A",
      "explanation": "why the answer is correct"
    }
  ],
  "related_topics": ["topic", "..."]
}

Include %d-%d key_entities, %d-%d questions and %d-%d related_topics.
Each question needs exactly %d options. The correct_answer must match one option exactly.`

// BuildPrompt embeds the article title and text verbatim in the quiz instructions.
func BuildPrompt(title, text string) string {
	return fmt.Sprintf(quizPromptTemplate,
		title, text,
		domain.MinKeyEntities, domain.MaxKeyEntities,
		domain.MinQuestions, domain.MaxQuestions,
		domain.MinRelatedTopics, domain.MaxRelatedTopics,
		domain.OptionsPerQuestion,
	)
}
