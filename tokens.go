package escp

// Token is a classified lexical unit of the input. Text holds the exact
// matched slice of the source, including marker characters.
type Token struct {
	Kind tokenKind
	Text string
}

type tokenKind uint8

// TokenKind is the exported alias of tokenKind for tooling and callers that
// consume the lexer directly.
type TokenKind = tokenKind

const (
	tokenText tokenKind = iota
	tokenBold
	tokenItalic
	tokenUnderline
	tokenTopHeader
	tokenLowerHeader
	tokenTag
	tokenRemovableNewline
	tokenActiveNewline
	tokenUnorderedList
	tokenLink
	tokenCodeblock
)

const (
	// TokenText represents a literal text run.
	TokenText tokenKind = tokenText
	// TokenBold is the ** marker toggling the bold environment.
	TokenBold tokenKind = tokenBold
	// TokenItalic is the * marker toggling the italic environment.
	TokenItalic tokenKind = tokenItalic
	// TokenUnderline is the __ marker toggling the underline environment.
	TokenUnderline tokenKind = tokenUnderline
	// TokenTopHeader is a single-# header marker.
	TokenTopHeader tokenKind = tokenTopHeader
	// TokenLowerHeader is a two-or-more-# header marker.
	TokenLowerHeader tokenKind = tokenLowerHeader
	// TokenTag is an inline {...} annotation; it is never rendered.
	TokenTag tokenKind = tokenTag
	// TokenRemovableNewline is a single newline, rendered as a space.
	TokenRemovableNewline tokenKind = tokenRemovableNewline
	// TokenActiveNewline is a collapsed run of two or more newlines, a
	// paragraph break.
	TokenActiveNewline tokenKind = tokenActiveNewline
	// TokenUnorderedList is a list line, passed through as literal text.
	TokenUnorderedList tokenKind = tokenUnorderedList
	// TokenLink is a [label](target) pattern, passed through as literal text.
	TokenLink tokenKind = tokenLink
	// TokenCodeblock is a fenced code block, passed through as literal text.
	TokenCodeblock tokenKind = tokenCodeblock
)
