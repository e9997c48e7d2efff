package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNoJSON = errors.New("llm: no JSON found in response")

// ExtractObject decodes the span from the first '{' to the last '}' of text
// into v. Models often wrap JSON in prose or code fences.
func ExtractObject(text string, v any) error {
	return extract(text, "{", "}", v)
}

// ExtractArray decodes the span from the first '[' to the last ']' of text into v.
func ExtractArray(text string, v any) error {
	return extract(text, "[", "]", v)
}

func extract(text, opening, closing string, v any) error {
	start := strings.Index(text, opening)
	end := strings.LastIndex(text, closing)
	if start == -1 || end == -1 || end < start {
		return ErrNoJSON
	}

	err := json.Unmarshal([]byte(text[start:end+1]), v)
	if err != nil {
		return fmt.Errorf("failed to parse model JSON: %w", err)
	}
	return nil
}
