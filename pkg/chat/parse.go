package chat

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrNoJSONObject = errors.New("no JSON object found")
	ErrNoChildReply = errors.New("child_reply is empty")

	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
)

// ParseChildReply pulls the child reply object out of a model response. Code
// fences and surrounding prose are ignored; trailing commas and bare keys are
// repaired before giving up.
func ParseChildReply(content string) (*ChildReply, error) {
	raw, err := ExtractJSON(content)
	if err != nil {
		return nil, err
	}

	var reply ChildReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		repaired := unquotedKeyRe.ReplaceAllString(trailingCommaRe.ReplaceAllString(raw, "$1"), `$1"$2":`)
		if err2 := json.Unmarshal([]byte(repaired), &reply); err2 != nil {
			return nil, fmt.Errorf("failed to unmarshal child reply: %w", err)
		}
	}

	reply.ChildReply = strings.TrimSpace(reply.ChildReply)
	if reply.ChildReply == "" {
		return nil, ErrNoChildReply
	}
	return &reply, nil
}

// ExtractJSON returns the span from the first '{' to the last '}'.
func ExtractJSON(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONObject
	}
	return content[start : end+1], nil
}
