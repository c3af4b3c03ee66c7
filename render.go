package escp

import (
	"fmt"
	"io"
)

// RenderRequest configures Render.
type RenderRequest struct {
	Reader  io.Reader
	Writer  io.Writer
	Profile Profile
	Options []RenderOption
}

// Render reads Markdown from the request reader, transpiles it and writes
// the device byte stream to the writer. Input that is not valid UTF-8 text
// is rejected before transpiling; write errors are returned as-is. Lexical
// no-matches are dropped unless WithStrictLexing is enabled.
func Render(req RenderRequest) error {
	if req.Reader == nil {
		return fmt.Errorf("render: reader is nil")
	}
	if req.Writer == nil {
		return fmt.Errorf("render: writer is nil")
	}
	cfg := renderConfig{}
	for _, opt := range req.Options {
		if opt != nil {
			opt(&cfg)
		}
	}
	profile := req.Profile
	if profile == nil {
		profile = DefaultProfile()
	}
	src, err := io.ReadAll(req.Reader)
	if err != nil {
		return fmt.Errorf("render: read input: %w", err)
	}
	if err := ValidateInput(src); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if !cfg.keepFrontMatter {
		src = stripFrontMatter(src)
	}
	out, err := transpile(string(src), profile.Codes(), cfg.strictLexing)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if cfg.reset {
		out = append(out, profile.Codes().Reset...)
	}
	if _, err := req.Writer.Write(out); err != nil {
		return fmt.Errorf("render: write output: %w", err)
	}
	return nil
}

// Transpile converts input to the default ESC/P byte stream. It is a pure
// function of its input: unmatched positions are skipped and exactly one
// trailing line feed is appended.
func Transpile(input string) []byte {
	return TranspileProfile(input, DefaultProfile())
}

// TranspileProfile converts input using the given profile's device codes.
func TranspileProfile(input string, profile Profile) []byte {
	out, _ := transpile(input, profile.Codes(), false)
	return out
}

// renderState tracks which formatting environments are open in the output.
// The five flags are independent toggles, not a nesting stack; a fresh state
// is created per conversion.
type renderState struct {
	bold        bool
	italic      bool
	underline   bool
	topHeader   bool
	lowerHeader bool
}

// headerSequences are the composed open and close byte sequences for the two
// line-scoped header environments.
type headerSequences struct {
	topOpen    string
	topClose   string
	lowerOpen  string
	lowerClose string
}

func composeHeaderSequences(c Codes) headerSequences {
	return headerSequences{
		topOpen:    "\n\n" + c.BoldOn + c.DoubleWidthOn + c.DoubleHeightOn,
		topClose:   c.BoldOff + c.DoubleWidthOff + c.DoubleHeightOff + "\n",
		lowerOpen:  "\n\n" + c.DoubleWidthOn,
		lowerClose: c.DoubleWidthOff + "\n",
	}
}

func transpile(input string, codes Codes, strict bool) ([]byte, error) {
	lex := NewLexer(input)
	seq := composeHeaderSequences(codes)
	var st renderState
	out := make([]byte, 0, len(input)+len(input)/4+1)
	for {
		pos := lex.Pos()
		tok, err := lex.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			if strict {
				return nil, fmt.Errorf("%w at byte %d", ErrUnmatchedInput, pos)
			}
			continue
		}
		switch tok.Kind {
		case tokenBold:
			out = append(out, toggle(&st.bold, codes.BoldOn, codes.BoldOff)...)
		case tokenItalic:
			out = append(out, toggle(&st.italic, codes.ItalicOn, codes.ItalicOff)...)
		case tokenUnderline:
			out = append(out, toggle(&st.underline, codes.UnderlineOn, codes.UnderlineOff)...)
		case tokenTopHeader:
			if !st.topHeader {
				st.topHeader = true
				out = append(out, seq.topOpen...)
			}
		case tokenLowerHeader:
			if !st.lowerHeader {
				st.lowerHeader = true
				out = append(out, seq.lowerOpen...)
			}
		case tokenTag:
			// dropped entirely
		case tokenRemovableNewline:
			var closed bool
			out, closed = st.closeHeaders(out, seq)
			if !closed {
				out = append(out, ' ')
			}
		case tokenActiveNewline:
			out, _ = st.closeHeaders(out, seq)
			out = append(out, '\n')
		default:
			out = append(out, tok.Text...)
		}
	}
	out = append(out, '\n')
	return out, nil
}

// toggle flips an environment flag and returns the sequence entering or
// leaving it.
func toggle(flag *bool, on, off string) string {
	seq := off
	if !*flag {
		seq = on
	}
	*flag = !*flag
	return seq
}

// closeHeaders ends any open header environment. Headers are scoped to a
// single line and close at the next newline of either kind; inline toggles
// persist across line breaks. When a header closes, its close sequence
// already ends the line, so the caller suppresses the removable newline's
// space.
func (st *renderState) closeHeaders(out []byte, seq headerSequences) ([]byte, bool) {
	closed := false
	if st.topHeader {
		st.topHeader = false
		out = append(out, seq.topClose...)
		closed = true
	}
	if st.lowerHeader {
		st.lowerHeader = false
		out = append(out, seq.lowerClose...)
		closed = true
	}
	return out, closed
}
