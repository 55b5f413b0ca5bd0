package handler

import (
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/service"
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// Status godoc
// @Summary Service status
// @Description Reports that the API is up
// @Tags status
// @Produce json
// @Success 200 {object} dto.StatusResponse
// @Router / [get]
func (h *QuizHandler) Status(c *fiber.Ctx) error {
	return c.JSON(dto.StatusResponse{
		Message: "AI Wiki Quiz Generator API",
		Status:  "active",
	})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Scrapes the article, asks the LLM for a quiz and stores it
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.ValidationErrors{domain.NewWrongTypeError("body", "a JSON object with a url field")}
	}
	url := strings.TrimSpace(req.URL)
	if errs := h.validator.ValidateGenerateQuizRequest(url); len(errs) > 0 {
		return errs
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), url)
	if err != nil {
		return err // handled by ErrorHandler
	}
	return c.JSON(dto.NewQuizResponse(quiz))
}

// GetHistory godoc
// @Summary List generated quizzes
// @Description Returns every stored quiz, newest first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizHistoryItem
// @Failure 500 {object} middleware.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	summaries, err := h.service.GetHistory(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizHistory(summaries))
}

// GetQuiz godoc
// @Summary Get a stored quiz
// @Description Returns one stored quiz with its questions
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID (ULID)"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id, _ := c.Locals("validated_quiz_id").(string)
	if id == "" {
		id = c.Params("id")
	}

	quiz, err := h.service.GetQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizDetailResponse(quiz))
}
