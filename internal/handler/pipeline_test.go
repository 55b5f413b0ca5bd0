package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"wiki-quiz/internal/adapter/quizgen"
	"wiki-quiz/internal/adapter/scraper"
	"wiki-quiz/internal/config"
	"wiki-quiz/internal/database"
	"wiki-quiz/internal/handler"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/repository"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const articlePage = `<html><body>
<h1 id="firstHeading">Alan Turing</h1>
<div id="mw-content-text">
<p>Alan Mathison Turing was an English mathematician, computer scientist and cryptanalyst.<sup>[1]</sup></p>
<p>Short.</p>
<p>During the Second World War he worked at Bletchley Park on breaking German ciphers.[2]</p>
</div>
</body></html>`

// scriptedCompleter replies with a fenced quiz, as chat models usually do.
type scriptedCompleter struct {
	calls   atomic.Int32
	prompts chan string
}

func (s *scriptedCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	s.calls.Add(1)
	select {
	case s.prompts <- prompt:
	default:
	}
	return "Here is your quiz:\n```json\n" + `{
  "title": "Alan Turing",
  "summary": "English mathematician and codebreaker.",
  "key_entities": ["Alan Turing", "Bletchley Park", "Enigma", "Cambridge", "Manchester"],
  "questions": [
    {"question": "Where did Turing work during the war?", "options": ["Bletchley Park", "Oxford", "Harvard", "CERN"], "correct_answer": "Bletchley Park", "explanation": "He broke ciphers there."}
  ],
  "related_topics": ["Cryptanalysis", "Turing machine", "Enigma machine"]
}` + "\n```", nil
}

func newPipelineApp(t *testing.T) (*fiber.App, *httptest.Server, *scriptedCompleter) {
	t.Helper()

	wiki := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/wiki/Missing" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, articlePage)
	}))
	t.Cleanup(wiki.Close)

	dbCfg := config.DBConfig{Driver: database.DriverSQLite, DSN: filepath.Join(t.TempDir(), "quiz.db")}
	require.NoError(t, database.RunMigrations(dbCfg, zap.NewNop()))
	db, err := database.Open(dbCfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	completer := &scriptedCompleter{prompts: make(chan string, 1)}
	extractor := scraper.NewWikipediaExtractor(
		scraper.NewClient(5*time.Second, "TestAgent/1.0"),
		"127.0.0.1",
		scraper.DefaultExtractOptions,
		zap.NewNop(),
	)
	svc := service.NewQuizService(
		extractor,
		quizgen.NewSynthesizer(completer, zap.NewNop()),
		repository.NewQuizDatabaseAdapter(db),
		zap.NewNop(),
	)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Use(middleware.RequestLogger())
	handler.RegisterRoutes(app, handler.NewQuizHandler(svc))
	return app, wiki, completer
}

func postGenerate(t *testing.T, app *fiber.App, url string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"url": url})
	req := httptest.NewRequest(http.MethodPost, "/api/generate_quiz", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestPipeline_GenerateThenBrowse(t *testing.T) {
	app, wiki, completer := newPipelineApp(t)
	articleURL := wiki.URL + "/wiki/Alan_Turing"

	resp := postGenerate(t, app, articleURL)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var generated map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&generated))
	assert.Equal(t, "Alan Turing", generated["title"])

	prompt := <-completer.prompts
	assert.Contains(t, prompt, "Bletchley Park on breaking German ciphers.")
	assert.NotContains(t, prompt, "[1]")
	assert.NotContains(t, prompt, "Short.")

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/history", nil), -1)
	require.NoError(t, err)
	var history []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	require.Len(t, history, 1)
	assert.Equal(t, articleURL, history[0]["url"])
	id := history[0]["id"].(string)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/quiz/"+id, nil), -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&detail))
	assert.Equal(t, generated, detail["quiz_data"])

	// Same URL again: generation succeeds upstream but the store refuses it.
	resp = postGenerate(t, app, articleURL)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var errBody middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
	assert.Equal(t, "DUPLICATE_URL", errBody.Code)
	assert.EqualValues(t, 2, completer.calls.Load())
}

func TestPipeline_Failures(t *testing.T) {
	app, wiki, completer := newPipelineApp(t)

	t.Run("foreign host is rejected before fetching", func(t *testing.T) {
		resp := postGenerate(t, app, "https://example.com/wiki/Go")
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("upstream 404", func(t *testing.T) {
		resp := postGenerate(t, app, wiki.URL+"/wiki/Missing")
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var errBody middleware.ErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
		assert.Equal(t, "FETCH_FAILED", errBody.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/quiz/01ARZ3NDEKTSV4RRFFQ69G5FAV", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	assert.Zero(t, completer.calls.Load())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/history", nil), -1)
	require.NoError(t, err)
	var history []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&history))
	assert.Empty(t, history)
}
