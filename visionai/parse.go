package visionai

import (
	"encoding/json"
	"strings"

	"github.com/code19m/errx"
	"github.com/samber/lo"
)

const (
	// CodeUnparseableResponse is returned when no JSON object can be decoded from a model reply.
	CodeUnparseableResponse = "UNPARSEABLE_RESPONSE"

	// MsgUnparseableResponse is the failure message reported for such replies.
	MsgUnparseableResponse = "could not parse response"
)

// Answer is the JSON object the model is asked to return.
type Answer struct {
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// ParseAnswer extracts the model's answer from free text.
// Tags are trimmed, empty tags dropped and duplicates removed keeping the first occurrence.
func ParseAnswer(text string) (Answer, error) {
	var a Answer
	if err := ExtractJSON(text, &a); err != nil {
		return Answer{}, err
	}

	a.Description = strings.TrimSpace(a.Description)
	a.Tags = lo.Uniq(lo.FilterMap(a.Tags, func(tag string, _ int) (string, bool) {
		tag = strings.TrimSpace(tag)
		return tag, tag != ""
	}))
	if a.Tags == nil {
		a.Tags = []string{}
	}
	return a, nil
}

// ExtractJSON decodes into v the first balanced {...} span of text that is valid JSON for v.
// Braces inside JSON string literals are ignored while matching.
func ExtractJSON(text string, v any) error {
	for start := strings.IndexByte(text, '{'); start >= 0; {
		if end, ok := matchBrace(text, start); ok {
			if err := json.Unmarshal([]byte(text[start:end+1]), v); err == nil {
				return nil
			}
		}

		next := strings.IndexByte(text[start+1:], '{')
		if next < 0 {
			break
		}
		start += next + 1
	}

	return errx.New(
		MsgUnparseableResponse,
		errx.WithCode(CodeUnparseableResponse),
		errx.WithDetails(errx.D{"response": truncate(text, 500)}),
	)
}

// matchBrace returns the index of the brace closing the one at start.
func matchBrace(text string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
