package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	wpTitleSel   = "h1#firstHeading"
	wpContentSel = "div#mw-content-text"
	wpNoiseSel   = "sup, table, style, script, div.reflist, div.navbox, div.infobox"
	wpParaSel    = "p"

	paragraphSeparator = "\n\n"
	truncationMarker   = "..."
)

var citationMarker = regexp.MustCompile(`\[\d+\]`)

// ExtractOptions tunes paragraph filtering and truncation.
type ExtractOptions struct {
	// Paragraphs of at most this many characters are dropped.
	MinParagraphChars int
	// Longer text is cut to this many characters plus "...".
	MaxChars int
}

// DefaultExtractOptions are the limits used when none are configured.
var DefaultExtractOptions = ExtractOptions{MinParagraphChars: 50, MaxChars: 10000}

// WikipediaExtractor implements domain.ContentExtractor for Wikipedia article pages.
type WikipediaExtractor struct {
	Client        *Client
	AllowedDomain string
	Options       ExtractOptions
	logger        *zap.Logger
}

func NewWikipediaExtractor(c *Client, allowedDomain string, opts ExtractOptions, logger *zap.Logger) *WikipediaExtractor {
	return &WikipediaExtractor{
		Client:        c,
		AllowedDomain: strings.ToLower(allowedDomain),
		Options:       opts,
		logger:        logger,
	}
}

// NewWikipediaExtractorFromConfig wires an extractor and its HTTP client from scraper settings.
func NewWikipediaExtractorFromConfig(cfg config.ScraperConfig, logger *zap.Logger) *WikipediaExtractor {
	opts := DefaultExtractOptions
	if cfg.MinParagraphChars > 0 {
		opts.MinParagraphChars = cfg.MinParagraphChars
	}
	if cfg.MaxChars > 0 {
		opts.MaxChars = cfg.MaxChars
	}
	return NewWikipediaExtractor(NewClient(cfg.Timeout, cfg.UserAgent), cfg.AllowedDomain, opts, logger)
}

// Extract fetches rawURL and returns its title and cleaned prose.
func (e *WikipediaExtractor) Extract(ctx context.Context, rawURL string) (*domain.Article, error) {
	if err := e.checkURL(rawURL); err != nil {
		return nil, err
	}

	body, err := e.Client.Get(ctx, rawURL)
	if err != nil {
		return nil, domain.NewFetchFailedError(rawURL, err)
	}

	article, err := ExtractArticle(bytes.NewReader(body), e.Options)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("article extracted",
		zap.String("url", rawURL),
		zap.String("title", article.Title),
		zap.Int("chars", utf8.RuneCountInString(article.Text)))
	return article, nil
}

func (e *WikipediaExtractor) checkURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.NewInvalidInputError(fmt.Sprintf("invalid article URL: %s", rawURL))
	}
	host := strings.ToLower(u.Hostname())
	if host != e.AllowedDomain && !strings.HasSuffix(host, "."+e.AllowedDomain) {
		return domain.NewInvalidInputError(fmt.Sprintf("URL must be a %s article", e.AllowedDomain))
	}
	return nil
}

// ExtractArticle parses an article page and reduces it to its substantial paragraphs.
func ExtractArticle(r io.Reader, opts ExtractOptions) (*domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, domain.NewExtractionFailedError("could not parse article page", err)
	}

	title := strings.TrimSpace(doc.Find(wpTitleSel).First().Text())
	if title == "" {
		title = domain.UnknownArticleTitle
	}

	content := doc.Find(wpContentSel).First()
	if content.Length() == 0 {
		return nil, domain.NewExtractionFailedError("could not find article content", nil)
	}
	content.Find(wpNoiseSel).Remove()

	var paragraphs []string
	content.Find(wpParaSel).Each(func(_ int, p *goquery.Selection) {
		text := CleanParagraph(p.Text())
		if utf8.RuneCountInString(text) > opts.MinParagraphChars {
			paragraphs = append(paragraphs, text)
		}
	})

	text := truncateRunes(strings.Join(paragraphs, paragraphSeparator), opts.MaxChars)
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewNoContentError()
	}
	return &domain.Article{Title: title, Text: text}, nil
}

// CleanParagraph strips citation markers like [12] and collapses whitespace.
func CleanParagraph(s string) string {
	s = citationMarker.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + truncationMarker
}
