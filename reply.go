package recipeimport

import (
	"bytes"
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrUnparsableReply is returned by ParseReply when no JSON value can be
// recovered from the reply text.
var ErrUnparsableReply = errors.New("unparsable reply")

// objectPattern matches from the first '{' to the last '}'.
var objectPattern = regexp.MustCompile(`(?s)\{.*\}`)

// ParseReply recovers a JSON value from the text a language model produced.
//
// The trimmed text is parsed whole first. If that fails, the span from the
// first '{' to the last '}' is tried, which recovers objects wrapped in prose
// or code fences. The returned JSON is compacted but otherwise unchanged.
func ParseReply(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if raw, ok := compactJSON(text); ok {
		return raw, nil
	}
	if match := objectPattern.FindString(text); match != "" {
		if raw, ok := compactJSON(match); ok {
			return raw, nil
		}
	}
	return nil, ErrUnparsableReply
}

func compactJSON(s string) (json.RawMessage, bool) {
	if !gjson.Valid(s) {
		return nil, false
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(s)); err != nil {
		return nil, false
	}
	if buf.String() == "null" {
		return nil, false
	}
	return buf.Bytes(), true
}

// ExtractionError returns the sentinel the service replies with when a page
// holds no recipe as an ENOTFOUND error, or nil for any other reply.
//
// The sentinel is any value whose top-level "error" member is truthy:
// a non-empty string, a non-zero number, true, an object or an array.
// The member is kept as Detail so it reaches the client with its JSON type.
func ExtractionError(reply json.RawMessage) *Error {
	res := gjson.GetBytes(reply, "error")
	msg := res.Raw
	switch res.Type {
	case gjson.String:
		if res.Str == "" {
			return nil
		}
		msg = res.Str
	case gjson.Number:
		if res.Num == 0 {
			return nil
		}
	case gjson.True, gjson.JSON:
	default:
		return nil
	}
	return &Error{
		Code:    ENOTFOUND,
		Message: msg,
		Detail:  json.RawMessage(res.Raw),
	}
}
