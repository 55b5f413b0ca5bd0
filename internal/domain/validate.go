package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ValidateQuizOutput decodes raw JSON into a QuizOutput and enforces its
// structural shape: required fields present and non-null, correct field
// types, exactly four options per question and a correct_answer that is one
// of them. Every violation is reported in the returned ValidationErrors.
// Malformed JSON is returned as the decoder's error unchanged.
func ValidateQuizOutput(raw []byte) (*QuizOutput, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, ValidationErrors{NewWrongTypeError("quiz", "an object")}
		}
		return nil, err
	}
	if fields == nil {
		return nil, ValidationErrors{NewWrongTypeError("quiz", "an object")}
	}

	c := &shapeChecker{}
	out := &QuizOutput{
		Title:         c.str(fields, "title", "title"),
		Summary:       c.str(fields, "summary", "summary"),
		KeyEntities:   c.strList(fields, "key_entities", "key_entities"),
		Questions:     c.questions(fields),
		RelatedTopics: c.strList(fields, "related_topics", "related_topics"),
	}
	if len(c.errs) > 0 {
		return nil, c.errs
	}
	return out, nil
}

type shapeChecker struct {
	errs ValidationErrors
}

func (c *shapeChecker) fail(err ValidationError) {
	c.errs = append(c.errs, err)
}

func (c *shapeChecker) field(fields map[string]json.RawMessage, key, path string) (json.RawMessage, bool) {
	raw, ok := fields[key]
	if !ok || isNull(raw) {
		c.fail(NewMissingFieldError(path))
		return nil, false
	}
	return raw, true
}

func (c *shapeChecker) str(fields map[string]json.RawMessage, key, path string) string {
	raw, ok := c.field(fields, key, path)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		c.fail(NewWrongTypeError(path, "a string"))
		return ""
	}
	return s
}

func (c *shapeChecker) strList(fields map[string]json.RawMessage, key, path string) []string {
	raw, ok := c.field(fields, key, path)
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		c.fail(NewWrongTypeError(path, "a list of strings"))
		return nil
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		var s string
		if isNull(item) || json.Unmarshal(item, &s) != nil {
			c.fail(NewWrongTypeError(fmt.Sprintf("%s[%d]", path, i), "a string"))
			continue
		}
		out = append(out, s)
	}
	return out
}

func (c *shapeChecker) questions(fields map[string]json.RawMessage) []QuizQuestion {
	raw, ok := c.field(fields, "questions", "questions")
	if !ok {
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		c.fail(NewWrongTypeError("questions", "a list of objects"))
		return nil
	}

	out := make([]QuizQuestion, 0, len(items))
	for i, item := range items {
		path := fmt.Sprintf("questions[%d]", i)
		var qf map[string]json.RawMessage
		if isNull(item) || json.Unmarshal(item, &qf) != nil {
			c.fail(NewWrongTypeError(path, "an object"))
			continue
		}

		before := len(c.errs)
		q := QuizQuestion{
			Question:      c.str(qf, "question", path+".question"),
			Options:       c.strList(qf, "options", path+".options"),
			CorrectAnswer: c.str(qf, "correct_answer", path+".correct_answer"),
			Explanation:   c.str(qf, "explanation", path+".explanation"),
		}
		if len(c.errs) > before {
			continue
		}
		if len(q.Options) != OptionsPerQuestion {
			c.fail(ValidationError{
				Field:   path + ".options",
				Message: fmt.Sprintf("must have exactly %d options, got %d", OptionsPerQuestion, len(q.Options)),
			})
			continue
		}
		if !contains(q.Options, q.CorrectAnswer) {
			c.fail(ValidationError{
				Field:   path + ".correct_answer",
				Message: fmt.Sprintf("%q does not match any option", q.CorrectAnswer),
			})
			continue
		}
		out = append(out, q)
	}
	return out
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}
