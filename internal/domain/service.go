package domain

import "context"

// ContentExtractor fetches an article page and reduces it to clean prose.
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (*Article, error)
}

// TextCompleter is the outbound language-model oracle.
// Replies carry no structural guarantee.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// QuizSynthesizer turns article text into a validated quiz.
type QuizSynthesizer interface {
	Synthesize(ctx context.Context, text, title string) (*QuizOutput, error)
}

// QuizRepository defines the interface for quiz persistence
type QuizRepository interface {
	// Insert persists a new quiz and returns its assigned ID.
	// A second insert for the same URL fails with ErrDuplicateURL.
	Insert(ctx context.Context, quiz *StoredQuiz) (string, error)

	// ListAll returns every stored quiz, newest first.
	ListAll(ctx context.Context) ([]*QuizSummary, error)

	// GetByID returns the stored quiz with its quiz data replayed,
	// or ErrNotFound.
	GetByID(ctx context.Context, id string) (*StoredQuiz, error)
}
