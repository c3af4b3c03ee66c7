package escp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestValidateInput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  []byte
		want error
	}{
		{name: "plain text", src: []byte("# Hello\n\nWorld.\n"), want: nil},
		{name: "empty", src: nil, want: nil},
		{name: "utf8 multibyte", src: []byte("räksmörgås\n"), want: nil},
		{name: "invalid utf8", src: []byte{0xFF, 0xFE, 'a'}, want: ErrInvalidUTF8},
		{name: "nul byte", src: []byte("hello\x00world"), want: ErrBinaryInput},
		{
			name: "dense control bytes",
			src:  append(bytes.Repeat([]byte{0x1B}, 8), bytes.Repeat([]byte("a"), 60)...),
			want: ErrBinaryInput,
		},
		{
			name: "sparse control bytes",
			src:  append([]byte{0x1B}, bytes.Repeat([]byte("a"), 200)...),
			want: nil,
		},
		{
			name: "short sample tolerates control bytes",
			src:  []byte{0x1B, 'a', 'b'},
			want: nil,
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateInput(tc.src)
			if !errors.Is(err, tc.want) {
				t.Fatalf("ValidateInput(%q) = %v, want %v", tc.src, err, tc.want)
			}
			if tc.want == nil && err != nil {
				t.Fatalf("ValidateInput(%q) = %v, want nil", tc.src, err)
			}
		})
	}
}

func TestRenderRejectsInvalidUTF8(t *testing.T) {
	var out bytes.Buffer
	err := Render(RenderRequest{
		Reader: bytes.NewReader([]byte{0xC0, 0xAF}),
		Writer: &out,
	})
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Fatalf("Render() = %v, want ErrInvalidUTF8", err)
	}
	if out.Len() != 0 {
		t.Fatalf("Render wrote %q despite rejecting input", out.String())
	}
}

func TestTabsAndCarriageReturnsAreNotBinary(t *testing.T) {
	src := strings.Repeat("col1\tcol2\r\n", 20)
	if err := ValidateInput([]byte(src)); err != nil {
		t.Fatalf("ValidateInput rejected whitespace-heavy text: %v", err)
	}
}
