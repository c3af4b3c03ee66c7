package escp

import (
	"sort"
	"strings"
)

// Codes holds the control sequences for one output device. Header open and
// close sequences are composed from these primitives by the renderer.
type Codes struct {
	BoldOn          string
	BoldOff         string
	ItalicOn        string
	ItalicOff       string
	UnderlineOn     string
	UnderlineOff    string
	DoubleHeightOn  string
	DoubleHeightOff string
	DoubleWidthOn   string
	DoubleWidthOff  string

	// Reset reinitializes the device. It is never emitted by Transpile;
	// Render appends it only when WithReset is enabled.
	Reset string
}

// Profile provides named device codes for rendering.
type Profile interface {
	Name() string
	Codes() Codes
}

type profile struct {
	name  string
	codes Codes
}

func (p profile) Name() string { return p.name }
func (p profile) Codes() Codes { return p.codes }

// NewProfile returns a Profile from a Codes definition.
func NewProfile(name string, codes Codes) Profile {
	return profile{name: name, codes: codes}
}

// escpCodes targets ESC/P dot matrix printers.
var escpCodes = Codes{
	BoldOn:          "\x1bE",
	BoldOff:         "\x1bF",
	ItalicOn:        "\x1b4",
	ItalicOff:       "\x1b5",
	UnderlineOn:     "\x1b-1",
	UnderlineOff:    "\x1b-0",
	DoubleHeightOn:  "\x1bW1",
	DoubleHeightOff: "\x1bW0",
	DoubleWidthOn:   "\x1bw1",
	DoubleWidthOff:  "\x1bw0",
	Reset:           "\x1b@",
}

// ansiCodes approximates the same environments with SGR sequences for
// terminal preview. Header scale has no SGR equivalent; double width maps to
// underline and double height to bold so headers remain distinguishable.
var ansiCodes = Codes{
	BoldOn:          "\x1b[1m",
	BoldOff:         "\x1b[22m",
	ItalicOn:        "\x1b[3m",
	ItalicOff:       "\x1b[23m",
	UnderlineOn:     "\x1b[4m",
	UnderlineOff:    "\x1b[24m",
	DoubleHeightOn:  "\x1b[1m",
	DoubleHeightOff: "\x1b[22m",
	DoubleWidthOn:   "\x1b[4m",
	DoubleWidthOff:  "\x1b[24m",
	Reset:           "\x1b[0m",
}

var builtinProfiles = map[string]Profile{
	"escp": profile{name: "escp", codes: escpCodes},
	"ansi": profile{name: "ansi", codes: ansiCodes},
}

// AvailableProfiles returns the names of built-in profiles.
func AvailableProfiles() []string {
	names := make([]string, 0, len(builtinProfiles))
	for name := range builtinProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ProfileByName returns a built-in profile by name.
func ProfileByName(name string) (Profile, bool) {
	if name == "" {
		return builtinProfiles["escp"], true
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	profile, ok := builtinProfiles[normalized]
	return profile, ok
}

// DefaultProfile returns the ESC/P profile.
func DefaultProfile() Profile {
	return builtinProfiles["escp"]
}
