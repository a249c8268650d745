package completion

import "strings"

// cursor describes where a scan over a declaration's text ended.
type cursor struct {
	// braces holds the word before each unclosed '{', outermost first.
	braces []string
	// parens holds the word before each unclosed '(' opened after the
	// innermost unclosed '{'.
	parens []string
	// prefix is the partial word right before the cursor.
	prefix string
	// quiet is set inside a string literal or a comment.
	quiet bool
}

type opener struct {
	brace bool
	name  string
}

// scan walks text, which runs from the start of a declaration up to the
// cursor, tracking unclosed openers. Quoted spans and comments are skipped.
func scan(text string) cursor {
	var c cursor
	var stack []opener
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"', '\'':
			end := closingQuote(text, i)
			if end < 0 {
				c.quiet = true
				return c
			}
			i = end
		case '#':
			nl := strings.IndexByte(text[i:], '\n')
			if nl < 0 {
				c.quiet = true
				return c
			}
			i += nl
		case '{':
			stack = append(stack, opener{brace: true, name: wordBefore(text, i)})
		case '(':
			stack = append(stack, opener{name: wordBefore(text, i)})
		case '}':
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.brace {
					break
				}
			}
		case ')':
			if n := len(stack); n > 0 && !stack[n-1].brace {
				stack = stack[:n-1]
			}
		}
	}

	for _, o := range stack {
		if o.brace {
			c.braces = append(c.braces, o.name)
			c.parens = c.parens[:0]
		} else {
			c.parens = append(c.parens, o.name)
		}
	}
	k := len(text)
	for k > 0 && isWordByte(text[k-1]) {
		k--
	}
	c.prefix = text[k:]
	return c
}

// closingQuote returns the index of the quote closing the one at open, or -1.
func closingQuote(text string, open int) int {
	q := text[open]
	for i := open + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return -1
}

// wordBefore returns the word preceding index i, skipping whitespace.
func wordBefore(text string, i int) string {
	end := i
	for end > 0 && strings.IndexByte(" \t\r\n", text[end-1]) >= 0 {
		end--
	}
	start := end
	for start > 0 && isWordByte(text[start-1]) {
		start--
	}
	return text[start:end]
}

func isWordByte(b byte) bool {
	return b == '_' || b == '-' || b == '.' ||
		('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
