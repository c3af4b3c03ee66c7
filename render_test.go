package escp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func wantTranspiled(t *testing.T, input, want string) {
	t.Helper()
	got := Transpile(input)
	if string(got) != want {
		t.Fatalf("transpile %q mismatch\nwant %q\n got %q", input, want, string(got))
	}
}

func TestBoldTranspiles(t *testing.T) {
	wantTranspiled(t, "**bold text**", "\x1bEbold text\x1bF\n")
}

func TestItalicTranspiles(t *testing.T) {
	wantTranspiled(t, "*italic text*", "\x1b4italic text\x1b5\n")
}

func TestUnderlinedTranspiles(t *testing.T) {
	wantTranspiled(t, "__underlined text__", "\x1b-1underlined text\x1b-0\n")
}

func TestTopHeaderTranspiles(t *testing.T) {
	wantTranspiled(t, "# Header text\n",
		"\n\n\x1bE\x1bw1\x1bW1Header text\x1bF\x1bw0\x1bW0\n\n")
}

func TestLowerHeaderTranspiles(t *testing.T) {
	wantTranspiled(t, "## Header text\n",
		"\n\n\x1bw1Header text\x1bw0\n\n")
}

func TestHeaderClosesAtEitherNewlineKind(t *testing.T) {
	// a paragraph break after a header still yields a blank line
	wantTranspiled(t, "# Head\n\nbody",
		"\n\n\x1bE\x1bw1\x1bW1Head\x1bF\x1bw0\x1bW0\n\nbody\n")
}

func TestRedundantHeaderMarkersEmitOnce(t *testing.T) {
	wantTranspiled(t, "## A ## B\n", "\n\n\x1bw1A B\x1bw0\n\n")
}

func TestHeadersOnConsecutiveLines(t *testing.T) {
	wantTranspiled(t, "# Top\n## Lower\n",
		"\n\n\x1bE\x1bw1\x1bW1Top\x1bF\x1bw0\x1bW0\n"+
			"\n\n\x1bw1Lower\x1bw0\n\n")
}

func TestTagEmitsNothing(t *testing.T) {
	wantTranspiled(t, "text {#id}", "text\n")
	wantTranspiled(t, "# Header {#anchor}\nmore",
		"\n\n\x1bE\x1bw1\x1bW1Header\x1bF\x1bw0\x1bW0\nmore\n")
}

func TestSingleNewlineBecomesSpace(t *testing.T) {
	wantTranspiled(t, "\n", " \n")
	wantTranspiled(t, "one\ntwo", "one two\n")
}

func TestParagraphBreakCollapses(t *testing.T) {
	wantTranspiled(t, "\n\n\n", "\n\n")
	wantTranspiled(t, "one\n\ntwo", "one\ntwo\n")
}

func TestTrailingNewlineAlwaysAppended(t *testing.T) {
	wantTranspiled(t, "", "\n")
	wantTranspiled(t, "text", "text\n")
}

func TestInlineTogglesPersistAcrossNewlines(t *testing.T) {
	wantTranspiled(t, "**a\nb**", "\x1bEa b\x1bF\n")
}

func TestUnbalancedMarkupLeftOpen(t *testing.T) {
	// end of input does not force-close open environments
	wantTranspiled(t, "**open", "\x1bEopen\n")
}

func TestOverlappingTogglesStayFlat(t *testing.T) {
	wantTranspiled(t, "**a *b** c*", "\x1bEa \x1b4b\x1bF c\x1b5\n")
}

func TestLinkPassedThroughVerbatim(t *testing.T) {
	wantTranspiled(t, "see [docs](https://example.com) now",
		"see [docs](https://example.com) now\n")
}

func TestUnorderedListPassedThroughVerbatim(t *testing.T) {
	wantTranspiled(t, "- first\n- second\n", "- first\n- second\n\n")
}

func TestCodeblockInteriorNotTokenized(t *testing.T) {
	wantTranspiled(t, "```\nraw **code**\n```", "```\nraw **code**\n```\n")
}

func TestUnmatchedPositionsDropped(t *testing.T) {
	wantTranspiled(t, "a_b (c)", "ab c\n")
}

func TestTranspileProfileUsesCodes(t *testing.T) {
	got := TranspileProfile("**b**", mustProfile(t, "ansi"))
	want := "\x1b[1mb\x1b[22m\n"
	if string(got) != want {
		t.Fatalf("ansi transpile mismatch\nwant %q\n got %q", want, string(got))
	}
}

func mustProfile(t *testing.T, name string) Profile {
	t.Helper()
	profile, ok := ProfileByName(name)
	if !ok {
		t.Fatalf("profile %q not available", name)
	}
	return profile
}

func TestRenderRejectsNilEndpoints(t *testing.T) {
	var out bytes.Buffer
	if err := Render(RenderRequest{Writer: &out}); err == nil {
		t.Fatalf("expected error for nil reader")
	}
	if err := Render(RenderRequest{Reader: strings.NewReader("x")}); err == nil {
		t.Fatalf("expected error for nil writer")
	}
}

func TestRenderMatchesTranspile(t *testing.T) {
	src := "# Title\n**bold**\n"
	var out bytes.Buffer
	if err := Render(RenderRequest{
		Reader: strings.NewReader(src),
		Writer: &out,
	}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.Equal(out.Bytes(), Transpile(src)) {
		t.Fatalf("render output diverges from Transpile\nwant %q\n got %q",
			Transpile(src), out.Bytes())
	}
}

func TestRenderStrictLexing(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader:  strings.NewReader("a_b"),
		Writer:  &out,
		Options: []RenderOption{WithStrictLexing(true)},
	})
	if !errors.Is(err, ErrUnmatchedInput) {
		t.Fatalf("expected ErrUnmatchedInput, got %v", err)
	}
	out.Reset()
	err = Render(RenderRequest{
		Reader:  strings.NewReader("a_b"),
		Writer:  &out,
		Options: []RenderOption{WithStrictLexing(false)},
	})
	if err != nil {
		t.Fatalf("non-strict render: %v", err)
	}
	if out.String() != "ab\n" {
		t.Fatalf("unexpected non-strict output: %q", out.String())
	}
}

func TestRenderWithReset(t *testing.T) {
	var out bytes.Buffer
	if err := Render(RenderRequest{
		Reader:  strings.NewReader("**open"),
		Writer:  &out,
		Options: []RenderOption{WithReset(true)},
	}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.String() != "\x1bEopen\n\x1b@" {
		t.Fatalf("expected trailing reset sequence, got %q", out.String())
	}
}

func TestRenderRejectsBinaryInput(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: bytes.NewReader([]byte{'h', 'i', 0x00}),
		Writer: &out,
	})
	if !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
}
