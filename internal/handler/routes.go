package handler

import (
	"wiki-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes mounts the quiz API on app.
func RegisterRoutes(app *fiber.App, quizHandler *QuizHandler) {
	validator := middleware.NewValidationMiddleware()

	app.Get("/", quizHandler.Status)
	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	apiGroup.Post("/generate_quiz", quizHandler.GenerateQuiz)
	apiGroup.Get("/history", quizHandler.GetHistory)
	apiGroup.Get("/quiz/:id", validator.ValidateQuizID(), quizHandler.GetQuiz)
}
