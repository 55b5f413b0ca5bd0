package models

import (
	"database/sql"
	"time"
)

// Quiz is a row of the quizzes table.
type Quiz struct {
	ID             string         `db:"id"`
	URL            string         `db:"url"`
	Title          string         `db:"title"`
	DateGenerated  time.Time      `db:"date_generated"`
	ScrapedContent sql.NullString `db:"scraped_content"`
	FullQuizData   string         `db:"full_quiz_data"`
}

// QuizSummary is the projection used by the history listing.
type QuizSummary struct {
	ID            string    `db:"id"`
	URL           string    `db:"url"`
	Title         string    `db:"title"`
	DateGenerated time.Time `db:"date_generated"`
}
