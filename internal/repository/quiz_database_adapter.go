package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/repository/models"
	"wiki-quiz/internal/util"
)

const (
	insertQuizQuery = `INSERT INTO quizzes (
		id, url, title, date_generated, scraped_content, full_quiz_data
	) VALUES (?, ?, ?, ?, ?, ?)`

	listQuizzesQuery = `SELECT
		id "id",
		url "url",
		title "title",
		date_generated "date_generated"
	FROM quizzes
	ORDER BY date_generated DESC, id DESC`

	getQuizByIDQuery = `SELECT
		id "id",
		url "url",
		title "title",
		date_generated "date_generated",
		scraped_content "scraped_content",
		full_quiz_data "full_quiz_data"
	FROM quizzes
	WHERE id = ?`
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.
type QuizDatabaseAdapter struct {
	db DBTX
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db DBTX) *QuizDatabaseAdapter {
	return &QuizDatabaseAdapter{db: db}
}

// Insert implements domain.QuizRepository. The quiz is assigned a fresh ID,
// which is also written back into quiz.ID.
func (a *QuizDatabaseAdapter) Insert(ctx context.Context, quiz *domain.StoredQuiz) (string, error) {
	if quiz == nil || quiz.QuizData == nil {
		return "", domain.NewInternalError("cannot save quiz without quiz data", nil)
	}
	model, err := toModelQuiz(quiz)
	if err != nil {
		return "", domain.NewInternalError("failed to serialize quiz data", err)
	}
	model.ID = util.NewULID()

	_, err = a.db.ExecContext(ctx, a.db.Rebind(insertQuizQuery),
		model.ID,
		model.URL,
		model.Title,
		model.DateGenerated,
		model.ScrapedContent,
		model.FullQuizData,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.NewDuplicateURLError(quiz.URL, err)
		}
		return "", domain.NewStoreUnavailableError("failed to save quiz", err)
	}

	quiz.ID = model.ID
	quiz.DateGenerated = model.DateGenerated
	return model.ID, nil
}

// ListAll implements domain.QuizRepository
func (a *QuizDatabaseAdapter) ListAll(ctx context.Context) ([]*domain.QuizSummary, error) {
	var rows []models.QuizSummary
	if err := a.db.SelectContext(ctx, &rows, a.db.Rebind(listQuizzesQuery)); err != nil {
		return nil, domain.NewStoreUnavailableError("failed to list quizzes", err)
	}

	summaries := make([]*domain.QuizSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &domain.QuizSummary{
			ID:            row.ID,
			URL:           row.URL,
			Title:         row.Title,
			DateGenerated: util.NormalizeTime(row.DateGenerated),
		})
	}
	return summaries, nil
}

// GetByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetByID(ctx context.Context, id string) (*domain.StoredQuiz, error) {
	var model models.Quiz
	if err := a.db.GetContext(ctx, &model, a.db.Rebind(getQuizByIDQuery), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewQuizNotFoundError(id)
		}
		return nil, domain.NewStoreUnavailableError(fmt.Sprintf("failed to get quiz by ID %s", id), err)
	}
	return toDomainQuiz(&model)
}

func toModelQuiz(quiz *domain.StoredQuiz) (*models.Quiz, error) {
	data, err := quiz.QuizData.Marshal()
	if err != nil {
		return nil, err
	}
	generated := quiz.DateGenerated
	if generated.IsZero() {
		generated = time.Now()
	}
	return &models.Quiz{
		ID:             quiz.ID,
		URL:            quiz.URL,
		Title:          quiz.Title,
		DateGenerated:  util.NormalizeTime(generated),
		ScrapedContent: util.StringToNullString(quiz.ScrapedContent),
		FullQuizData:   data,
	}, nil
}

// toDomainQuiz replays the stored quiz data through the structural validator.
func toDomainQuiz(model *models.Quiz) (*domain.StoredQuiz, error) {
	quizData, err := domain.ValidateQuizOutput([]byte(model.FullQuizData))
	if err != nil {
		return nil, domain.NewStoreUnavailableError(fmt.Sprintf("stored quiz %s is corrupt", model.ID), err)
	}
	return &domain.StoredQuiz{
		ID:             model.ID,
		URL:            model.URL,
		Title:          model.Title,
		DateGenerated:  util.NormalizeTime(model.DateGenerated),
		ScrapedContent: util.NullStringToString(model.ScrapedContent),
		QuizData:       quizData,
	}, nil
}
