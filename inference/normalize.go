package inference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/buger/jsonparser"
)

// Rule extracts tweet text from a response body. ok is false when the rule
// does not apply.
type Rule func(body []byte) (text string, ok bool)

// textFields are tried in order; the first non-empty string wins.
var textFields = []string{"response", "message", "text", "content", "result"}

// DefaultRules is the extraction order used by Normalize.
var DefaultRules = buildDefaultRules()

func buildDefaultRules() []Rule {
	rules := make([]Rule, 0, len(textFields)+1)
	for _, field := range textFields {
		rules = append(rules, StringField(field))
	}
	return append(rules, BareString)
}

// StringField matches a top-level object field holding a non-empty string.
func StringField(name string) Rule {
	return func(body []byte) (string, bool) {
		value, dataType, _, err := jsonparser.Get(body, name)
		if err != nil || dataType != jsonparser.String {
			return "", false
		}
		text, err := jsonparser.ParseString(value)
		if err != nil || text == "" {
			return "", false
		}
		return text, true
	}
}

// BareString matches a body that is itself a JSON string.
func BareString(body []byte) (string, bool) {
	value, dataType, _, err := jsonparser.Get(body)
	if err != nil || dataType != jsonparser.String {
		return "", false
	}
	text, err := jsonparser.ParseString(value)
	if err != nil {
		return "", false
	}
	return text, true
}

// Extract applies rules in order and falls back to the compacted body.
// A body that is not JSON at all is an error.
func Extract(body []byte, rules []Rule) (string, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return "", fmt.Errorf("%w: response is not valid json", ErrUpstream)
	}

	for _, rule := range rules {
		if text, ok := rule(trimmed); ok {
			return text, nil
		}
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return compact.String(), nil
}

// CleanText trims whitespace and removes one layer of surrounding double quotes.
func CleanText(text string) string {
	text = strings.TrimSpace(text)
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		text = text[1 : len(text)-1]
	}
	return text
}

// Normalize turns an upstream body into the final tweet text.
func Normalize(body []byte) (string, error) {
	text, err := Extract(body, DefaultRules)
	if err != nil {
		return "", err
	}
	return CleanText(text), nil
}
