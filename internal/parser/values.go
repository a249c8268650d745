package parser

import (
	"strconv"
	"strings"

	"github.com/vk/syslogng-lsp/internal/model"
)

// Every recognizer follows the same contract: given input text it returns the
// unconsumed remainder, the recognised value and true, or false when the
// input does not start with a value of its shape. A match must be followed by
// a token boundary, so `yesterday` is not `yes` and `10` is not `1`.

// ParseValue tries every recognizer in precedence order and returns the first
// match. The order is significant: boolean and integer literals must win over
// the generic forms that would also accept them.
func ParseValue(input string) (string, model.Value, bool) {
	recognizers := []func(string) (string, model.Value, bool){
		ParseYesNo,
		ParsePositiveInteger,
		ParseNonNegativeInteger,
		ParseStringOrNumber,
		ParseString,
		ParseStringList,
		ParseIdentifier,
	}
	for _, recognize := range recognizers {
		if rest, v, ok := recognize(input); ok {
			return rest, v, true
		}
	}
	return input, model.Value{}, false
}

var yesNoTokens = []struct {
	token string
	value bool
}{
	{"yes", true},
	{"no", false},
	{"on", true},
	{"off", false},
	{"1", true},
	{"0", false},
}

// ParseYesNo recognises 1, 0, yes, no, on and off.
func ParseYesNo(input string) (string, model.Value, bool) {
	for _, t := range yesNoTokens {
		if strings.HasPrefix(input, t.token) && atBoundary(input[len(t.token):]) {
			return input[len(t.token):], model.YesNo(t.value), true
		}
	}
	return input, model.Value{}, false
}

// ParsePositiveInteger recognises a digit sequence with a value above zero.
func ParsePositiveInteger(input string) (string, model.Value, bool) {
	n, rest, ok := unsignedInteger(input)
	if !ok || n == 0 {
		return input, model.Value{}, false
	}
	return rest, model.PositiveInteger(n), true
}

// ParseNonNegativeInteger recognises any digit sequence, zero included.
func ParseNonNegativeInteger(input string) (string, model.Value, bool) {
	n, rest, ok := unsignedInteger(input)
	if !ok {
		return input, model.Value{}, false
	}
	return rest, model.NonNegativeInteger(n), true
}

func unsignedInteger(input string) (uint64, string, bool) {
	end := 0
	for end < len(input) && isDigit(input[end]) {
		end++
	}
	if end == 0 || !atBoundary(input[end:]) {
		return 0, input, false
	}
	n, err := strconv.ParseUint(input[:end], 10, 64)
	if err != nil {
		return 0, input, false
	}
	return n, input[end:], true
}

// ParseStringOrNumber recognises a floating-point literal, bare or quoted.
// Signed and exponent forms are accepted.
func ParseStringOrNumber(input string) (string, model.Value, bool) {
	if n := numberLength(input); n > 0 && atBoundary(input[n:]) {
		return input[n:], model.StringOrNumber(input[:n]), true
	}
	body, rest, ok := quoted(input)
	if !ok || body == "" {
		return input, model.Value{}, false
	}
	if n := numberLength(body); n == len(body) {
		return rest, model.StringOrNumber(body), true
	}
	return input, model.Value{}, false
}

func numberLength(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			i = k
		}
	}
	return i
}

// ParseString recognises a quoted string that contains no colon. The quotes
// are stripped and the content is kept verbatim, so `""` yields an empty
// string.
func ParseString(input string) (string, model.Value, bool) {
	body, rest, ok := quoted(input)
	if !ok || strings.Contains(body, ":") {
		return input, model.Value{}, false
	}
	return rest, model.String(body), true
}

// ParseStringList recognises a colon-delimited list, quoted or bare. A bare
// list runs up to the next token boundary and must hold at least one colon.
func ParseStringList(input string) (string, model.Value, bool) {
	if body, rest, ok := quoted(input); ok {
		if !strings.Contains(body, ":") {
			return input, model.Value{}, false
		}
		return rest, model.StringList(strings.Split(body, ":")...), true
	}

	end := 0
	for end < len(input) && !atBoundary(input[end:]) && !isListStop(input[end]) {
		end++
	}
	body := input[:end]
	if end == 0 || !strings.Contains(body, ":") || !atBoundary(input[end:]) {
		return input, model.Value{}, false
	}
	return input[end:], model.StringList(strings.Split(body, ":")...), true
}

func isListStop(c byte) bool {
	switch c {
	case '(', '{', '"', '\'':
		return true
	}
	return false
}

// ParseIdentifier recognises a bare name that is not the start of a call.
// Besides letters, digits and underscores it accepts '-' and '.' after the
// first character, so `no-parse` and `127.0.0.1` are single identifiers.
func ParseIdentifier(input string) (string, model.Value, bool) {
	if input == "" || !isIdentStart(input[0]) {
		return input, model.Value{}, false
	}
	end := 1
	for end < len(input) && isIdentPart(input[end]) {
		end++
	}
	rest := input[end:]
	if strings.HasPrefix(rest, "(") || !atBoundary(rest) {
		return input, model.Value{}, false
	}
	return rest, model.Identifier(input[:end]), true
}

// quoted splits a leading single- or double-quoted string into its body and
// the text after the closing quote. A backslash escapes the next byte.
func quoted(input string) (body, rest string, ok bool) {
	if input == "" || (input[0] != '"' && input[0] != '\'') {
		return "", input, false
	}
	q := input[0]
	for i := 1; i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case q:
			if !atBoundary(input[i+1:]) {
				return "", input, false
			}
			return input[1:i], input[i+1:], true
		}
	}
	return "", input, false
}

func atBoundary(rest string) bool {
	if rest == "" {
		return true
	}
	switch rest[0] {
	case ' ', '\t', '\r', '\n', ',', ')', ';', '}':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || isDigit(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c == '-' || c == '.'
}
