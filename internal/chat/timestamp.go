package chat

import "regexp"

// tokenPattern matches inline timestamp references like [02:05]:
// exactly two digits, a colon, exactly two digits, in brackets.
var tokenPattern = regexp.MustCompile(`\[(\d{2}):(\d{2})\]`)

// Span is one piece of an assistant message: either plain text or a
// timestamp token that seeks playback when activated.
type Span struct {
	Text    string
	Token   bool
	Seconds int
}

// ParseTimestamps splits a message into alternating plain-text and
// token spans, preserving every non-token character verbatim. A token's
// seconds value is MM*60+SS; the seconds field is deliberately not
// validated against 60, so [12:99] converts to 819 rather than being
// rejected. Empty text runs between adjacent tokens are dropped.
func ParseTimestamps(text string) []Span {
	matches := tokenPattern.FindAllStringSubmatchIndex(text, -1)
	spans := make([]Span, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > last {
			spans = append(spans, Span{Text: text[last:start]})
		}
		minutes := twoDigits(text[m[2]:m[3]])
		seconds := twoDigits(text[m[4]:m[5]])
		spans = append(spans, Span{
			Text:    text[start:end],
			Token:   true,
			Seconds: minutes*60 + seconds,
		})
		last = end
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}

// twoDigits parses a two-ASCII-digit string already vetted by the
// pattern, so no error path is needed.
func twoDigits(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}
