package escp

import "testing"

func TestDetectANSICapable(t *testing.T) {
	tests := []struct {
		name    string
		noColor string
		term    string
		want    bool
	}{
		{name: "xterm", term: "xterm-256color", want: true},
		{name: "linux console", term: "linux", want: true},
		{name: "dumb terminal", term: "dumb", want: false},
		{name: "no TERM", term: "", want: false},
		{name: "NO_COLOR wins", noColor: "1", term: "xterm-256color", want: false},
		{name: "whitespace TERM", term: "  ", want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tc.noColor)
			t.Setenv("TERM", tc.term)
			if got := DetectANSICapable(); got != tc.want {
				t.Fatalf("DetectANSICapable() = %v, want %v", got, tc.want)
			}
		})
	}
}
