package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	wantTuringPara1 = "Alan Mathison Turing was an English mathematician, computer scientist, logician, " +
		"cryptanalyst, philosopher and theoretical biologist. He was highly influential in the development " +
		"of theoretical computer science."
	wantTuringPara2 = "During the Second World War, Turing worked for the Government Code and Cypher School " +
		"at Bletchley Park, Britain's codebreaking centre that produced Ultra intelligence."
)

func readHTML(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

// newFixtureServer serves the given fixture at every path.
func newFixtureServer(t *testing.T, fixture string, status int) *httptest.Server {
	t.Helper()
	html := readHTML(t, filepath.Join("testdata", fixture))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "TestAgent/1.0" {
			t.Errorf("User-Agent = %q, want TestAgent/1.0", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		w.Write(html)
	}))
	t.Cleanup(server.Close)
	return server
}

func newTestExtractor() *WikipediaExtractor {
	client := NewClient(3*time.Second, "TestAgent/1.0")
	return NewWikipediaExtractor(client, "127.0.0.1", DefaultExtractOptions, zap.NewNop())
}

func TestWikipediaExtractor_Extract(t *testing.T) {
	server := newFixtureServer(t, "article.html", http.StatusOK)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	article, err := newTestExtractor().Extract(ctx, server.URL+"/wiki/Alan_Turing")
	require.NoError(t, err)

	assert.Equal(t, "Alan Turing", article.Title)
	assert.Equal(t, wantTuringPara1+"\n\n"+wantTuringPara2, article.Text)
	assert.NotContains(t, article.Text, "infobox")
	assert.NotContains(t, article.Text, "Navigation box")
	assert.NotContains(t, article.Text, "Reference list")
	assert.NotContains(t, article.Text, "Footer")
	assert.NotContains(t, article.Text, "[")
}

func TestWikipediaExtractor_Failures(t *testing.T) {
	tests := []struct {
		name     string
		fixture  string
		status   int
		wantCode domain.ErrorCode
	}{
		{"no content container", "no_container.html", http.StatusOK, domain.ErrExtractionFailed},
		{"only short paragraphs", "no_content.html", http.StatusOK, domain.ErrNoContent},
		{"not found status", "article.html", http.StatusNotFound, domain.ErrFetchFailed},
		{"server error status", "article.html", http.StatusInternalServerError, domain.ErrFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newFixtureServer(t, tt.fixture, tt.status)
			article, err := newTestExtractor().Extract(context.Background(), server.URL+"/wiki/Page")
			assert.Nil(t, article)
			assert.Equal(t, tt.wantCode, domain.CodeOf(err), "err = %v", err)
		})
	}
}

func TestWikipediaExtractor_FetchFailedCarriesStatus(t *testing.T) {
	server := newFixtureServer(t, "article.html", http.StatusNotFound)
	_, err := newTestExtractor().Extract(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404 Not Found")
}

func TestWikipediaExtractor_RejectsForeignURLs(t *testing.T) {
	e := NewWikipediaExtractor(NewClient(time.Second, ""), "wikipedia.org", DefaultExtractOptions, zap.NewNop())

	for _, u := range []string{
		"",
		"not a url",
		"/wiki/Relative",
		"ftp://en.wikipedia.org/wiki/Go",
		"https://example.com/wiki/Go",
		"https://wikipedia.org.evil.com/wiki/Go",
		"https://notwikipedia.org/wiki/Go",
	} {
		_, err := e.Extract(context.Background(), u)
		assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err), "url %q", u)
	}

	assert.NoError(t, e.checkURL("https://en.wikipedia.org/wiki/Go"))
	assert.NoError(t, e.checkURL("https://wikipedia.org/wiki/Go"))
	assert.NoError(t, e.checkURL("http://EN.Wikipedia.org/wiki/Go"))
}

func TestExtractArticle_SentinelTitle(t *testing.T) {
	article, err := ExtractArticle(strings.NewReader(string(readHTML(t, filepath.Join("testdata", "no_title.html")))), DefaultExtractOptions)
	require.NoError(t, err)
	assert.Equal(t, domain.UnknownArticleTitle, article.Title)
}

func TestExtractArticle_Truncation(t *testing.T) {
	para := strings.Repeat("é", 60)
	var b strings.Builder
	b.WriteString(`<html><body><h1 id="firstHeading">Long</h1><div id="mw-content-text">`)
	for i := 0; i < 300; i++ {
		b.WriteString("<p>" + para + "</p>")
	}
	b.WriteString(`</div></body></html>`)

	article, err := ExtractArticle(strings.NewReader(b.String()), DefaultExtractOptions)
	require.NoError(t, err)
	assert.Equal(t, 10000+3, utf8.RuneCountInString(article.Text))
	assert.True(t, strings.HasSuffix(article.Text, "..."))
	assert.True(t, strings.HasPrefix(article.Text, para+"\n\n"+para))
}

func TestExtractArticle_ParagraphThreshold(t *testing.T) {
	exactly50 := strings.Repeat("a", 50)
	fiftyOne := strings.Repeat("b", 51)
	page := `<div id="mw-content-text"><p>` + exactly50 + `</p><p>` + fiftyOne + `</p></div>`

	article, err := ExtractArticle(strings.NewReader(page), DefaultExtractOptions)
	require.NoError(t, err)
	assert.Equal(t, fiftyOne, article.Text)
}

func TestCleanParagraph(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Plain text.", "Plain text."},
		{"Cited[1] twice[23].", "Cited twice."},
		{"  spaced \n\t out  ", "spaced out"},
		{"Not a citation [a] or [].", "Not a citation [a] or []."},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CleanParagraph(tt.in))
	}
}
