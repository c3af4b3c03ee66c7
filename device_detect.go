package escp

import (
	"os"
	"strings"
)

// DetectANSICapable returns true if the current environment likely renders
// SGR escape sequences. Used by callers picking between the ansi preview
// profile and raw device output; it inspects the environment only, TTY
// detection is the caller's concern.
func DetectANSICapable() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	term := strings.TrimSpace(os.Getenv("TERM"))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}
