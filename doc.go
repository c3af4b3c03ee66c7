// Package escp transpiles a Markdown subset to printer escape codes.
//
// The package pairs a single-pass lexer with a toggle-state renderer: the
// lexer classifies the input into markup tokens, and the renderer flips
// per-environment flags (bold, italic, underline, header scale) while
// appending the matching device control sequences to an output buffer.
// Markup is not validated; an unbalanced marker simply leaves its
// environment toggled.
//
// Core properties:
//   - Single pass, no backtracking, no token buffering
//   - Flat XOR-toggle semantics; formatting environments never nest
//   - Device codes selected by Profile (ESC/P by default, ANSI for preview)
//   - Unmatched input positions are skipped, not fatal
//
// Example:
//
//	out := escp.Transpile("# Greetings\n**bold** and *italic* text.\n")
//	if _, err := printer.Write(out); err != nil {
//		log.Fatal(err)
//	}
//
// Render wraps the same core with reader/writer plumbing, input validation
// and front matter stripping for use from commands.
package escp
