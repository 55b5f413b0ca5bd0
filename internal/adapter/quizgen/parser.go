package quizgen

import (
	"encoding/json"
	"errors"
	"strings"

	"wiki-quiz/internal/domain"
)

const codeFence = "```"

// parseStrategy proposes a JSON candidate from a raw reply.
type parseStrategy struct {
	name    string
	extract func(text string) (string, bool)
}

// Strategies are tried in order; the first syntactically valid candidate wins.
var parseStrategies = []parseStrategy{
	{name: "fenced", extract: extractFenced},
	{name: "direct", extract: extractDirect},
	{name: "braces", extract: extractBraces},
}

// ParseQuizResponse recovers a QuizOutput from an oracle reply that may be
// wrapped in a code fence or surrounded by prose.
func ParseQuizResponse(raw string) (*domain.QuizOutput, error) {
	out, _, err := parseQuizResponse(raw)
	return out, err
}

func parseQuizResponse(raw string) (*domain.QuizOutput, string, error) {
	text := strings.TrimSpace(raw)

	var firstErr error
	for _, strategy := range parseStrategies {
		candidate, ok := strategy.extract(text)
		if !ok {
			continue
		}
		var probe json.RawMessage
		if err := json.Unmarshal([]byte(candidate), &probe); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		out, err := domain.ValidateQuizOutput(probe)
		if err != nil {
			return nil, strategy.name, domain.NewSynthesisFailedError(err)
		}
		return out, strategy.name, nil
	}

	if firstErr == nil {
		firstErr = errors.New("response contains no JSON")
	}
	return nil, "", domain.NewSynthesisFailedError(firstErr)
}

func isFenced(text string) bool {
	return strings.HasPrefix(text, codeFence)
}

// stripFence drops the opening fence line and a trailing fence.
func stripFence(text string) string {
	if !isFenced(text) {
		return text
	}
	body := ""
	if i := strings.Index(text, "\n"); i != -1 {
		body = text[i+1:]
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, codeFence)
	return strings.TrimSpace(body)
}

func extractFenced(text string) (string, bool) {
	if !isFenced(text) {
		return "", false
	}
	return stripFence(text), true
}

func extractDirect(text string) (string, bool) {
	if isFenced(text) {
		// identical to the fenced candidate
		return "", false
	}
	return text, true
}

func extractBraces(text string) (string, bool) {
	text = stripFence(text)
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}
