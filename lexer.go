package escp

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"
)

// ErrUnmatchedInput reports an input position no lexer rule matches. The
// position is consumed, so callers may keep pulling tokens; Transpile drops
// such positions silently.
var ErrUnmatchedInput = errors.New("unmatched input")

// Lexer is a single-pass pull lexer over one input. It is not restartable;
// create a fresh Lexer per conversion.
type Lexer struct {
	src string
	pos int
}

// NewLexer returns a Lexer over src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Pos returns the byte offset of the next unconsumed position.
func (l *Lexer) Pos() int {
	return l.pos
}

// Next returns the next token. It returns io.EOF when the input is
// exhausted, and ErrUnmatchedInput after skipping a position that matches no
// rule.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{}, io.EOF
	}
	if tok, ok := l.match(); ok {
		return tok, nil
	}
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	return Token{}, ErrUnmatchedInput
}

// match applies the rule set at the current position. Longest match wins,
// with the pass-through patterns (codeblock, link, tag, list line) taking
// priority over tokenizing their interior.
func (l *Lexer) match() (Token, bool) {
	s, i := l.src, l.pos
	switch c := s[i]; c {
	case '\n':
		if end, ok := matchCodeblock(s, i); ok {
			return l.emit(tokenCodeblock, end), true
		}
		j := i + 1
		for j < len(s) && s[j] == '\n' {
			j++
		}
		if j-i >= 2 {
			return l.emit(tokenActiveNewline, j), true
		}
		return l.emit(tokenRemovableNewline, j), true
	case '\r', '\t', '\f', '(', ')':
		return Token{}, false
	case '*':
		if l.atLineStart() {
			if end, ok := matchListItem(s, i); ok {
				return l.emit(tokenUnorderedList, end), true
			}
		}
		if i+1 < len(s) && s[i+1] == '*' {
			return l.emit(tokenBold, i+2), true
		}
		return l.emit(tokenItalic, i+1), true
	case '_':
		if i+1 < len(s) && s[i+1] == '_' {
			return l.emit(tokenUnderline, i+2), true
		}
		return Token{}, false
	case '#':
		j := i + 1
		for j < len(s) && s[j] == '#' {
			j++
		}
		hashes := j - i
		for j < len(s) && s[j] == ' ' {
			j++
		}
		if hashes == 1 {
			return l.emit(tokenTopHeader, j), true
		}
		return l.emit(tokenLowerHeader, j), true
	case '`':
		if end, ok := matchCodeblock(s, i); ok {
			return l.emit(tokenCodeblock, end), true
		}
	case '[':
		if end, ok := matchLink(s, i); ok {
			return l.emit(tokenLink, end), true
		}
	case '{', ' ':
		if end, ok := matchTag(s, i); ok {
			return l.emit(tokenTag, end), true
		}
	case '-', '+':
		if l.atLineStart() {
			if end, ok := matchListItem(s, i); ok {
				return l.emit(tokenUnorderedList, end), true
			}
		}
	}
	return l.emit(tokenText, l.textRunEnd()), true
}

// textRunEnd extends a literal run until a character that belongs to another
// rule. The first character has already failed every other rule, so the run
// is never empty.
func (l *Lexer) textRunEnd() int {
	s := l.src
	end := l.pos + 1
	for end < len(s) {
		switch s[end] {
		case '\n', '\r', '\t', '\f', '*', '_', '#', '(', ')':
			return end
		case '`':
			if _, ok := matchCodeblock(s, end); ok {
				return end
			}
		case '[':
			if _, ok := matchLink(s, end); ok {
				return end
			}
		case '{', ' ':
			if _, ok := matchTag(s, end); ok {
				return end
			}
		}
		end++
	}
	return end
}

func (l *Lexer) emit(kind tokenKind, end int) Token {
	tok := Token{Kind: kind, Text: l.src[l.pos:end]}
	l.pos = end
	return tok
}

func (l *Lexer) atLineStart() bool {
	return l.pos == 0 || l.src[l.pos-1] == '\n'
}

// matchCodeblock matches an optional leading newline, a ``` fence, a run of
// non-backtick content, the closing fence, and an optional trailing newline.
func matchCodeblock(s string, i int) (int, bool) {
	j := i
	if j < len(s) && s[j] == '\n' {
		j++
	}
	if !strings.HasPrefix(s[j:], "```") {
		return 0, false
	}
	j += 3
	for j < len(s) && s[j] != '`' {
		j++
	}
	if !strings.HasPrefix(s[j:], "```") {
		return 0, false
	}
	j += 3
	if j < len(s) && s[j] == '\n' {
		j++
	}
	return j, true
}

// matchLink matches [label](target) with no nested brackets or parens.
func matchLink(s string, i int) (int, bool) {
	j := i + 1
	for j < len(s) && s[j] != ']' && s[j] != '[' {
		j++
	}
	if j == i+1 || j >= len(s) || s[j] != ']' {
		return 0, false
	}
	j++
	if j >= len(s) || s[j] != '(' {
		return 0, false
	}
	j++
	start := j
	for j < len(s) && s[j] != ')' && s[j] != '(' {
		j++
	}
	if j == start || j >= len(s) || s[j] != ')' {
		return 0, false
	}
	return j + 1, true
}

// matchTag matches an inline {...} annotation, optionally preceded by one
// space, closing at the last } before end of line.
func matchTag(s string, i int) (int, bool) {
	j := i
	if s[j] == ' ' {
		j++
	}
	if j >= len(s) || s[j] != '{' {
		return 0, false
	}
	j++
	end := -1
	for j < len(s) && s[j] != '\n' {
		if s[j] == '}' {
			end = j
		}
		j++
	}
	if end < 0 {
		return 0, false
	}
	return end + 1, true
}

// matchListItem matches a -, * or + marker at line start, a space, at least
// one character of content and the terminating newline.
func matchListItem(s string, i int) (int, bool) {
	if i+1 >= len(s) || s[i+1] != ' ' {
		return 0, false
	}
	j := i + 2
	for j < len(s) && s[j] != '\n' {
		j++
	}
	if j == i+2 || j >= len(s) {
		return 0, false
	}
	return j + 1, true
}
