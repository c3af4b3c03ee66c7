package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/escp"
	"pkt.systems/version"
)

const (
	defaultProfileName = "escp"
	defaultWidth       = 80
)

func init() {
	version.SetDefaultModule("pkt.systems/escp")
}

func main() {
	var (
		message      string
		outPath      string
		profileName  string
		preview      bool
		widthFlag    int
		listProfiles bool
		strict       bool
		reset        bool
		keepFront    bool
		force        bool
	)

	flags := pflag.NewFlagSet("escp", pflag.ExitOnError)
	flags.StringVarP(&message, "message", "m", "", "Transpile a literal Markdown string instead of reading inputs")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVarP(&profileName, "profile", "p", defaultProfileName, "Device profile: escp|ansi|auto")
	flags.BoolVar(&preview, "preview", false, "Render with the ansi profile, wrapped to terminal width")
	flags.IntVarP(&widthFlag, "width", "w", 0, "Preview width override (0 uses terminal width if available)")
	flags.BoolVar(&listProfiles, "list-profiles", false, "List available device profiles")
	flags.BoolVar(&strict, "strict", false, "Fail on input no lexer rule matches instead of skipping it")
	flags.BoolVar(&reset, "reset", false, "Append the profile's device reset sequence")
	flags.BoolVar(&keepFront, "keep-front-matter", false, "Do not strip front matter")
	flags.BoolVar(&force, "force", false, "Allow raw printer output to a terminal")

	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: escp [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are file paths or URLs. With no input and no --message,")
		fmt.Fprintln(os.Stderr, "Markdown is read from stdin.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if listProfiles {
		for _, name := range escp.AvailableProfiles() {
			fmt.Fprintln(os.Stdout, name)
		}
		return
	}

	args := flags.Args()
	if message != "" && len(args) > 0 {
		fmt.Fprintln(os.Stderr, "cannot combine --message with input arguments")
		os.Exit(2)
	}

	var reader io.Reader
	if message != "" {
		reader = strings.NewReader(message)
	} else {
		r, closer, err := openInputs(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open input: %v\n", err)
			os.Exit(1)
		}
		if closer != nil {
			defer func() { _ = closer.Close() }()
		}
		reader = r
	}

	writer, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	profile, err := resolveProfile(profileName, preview, isTerminal(writer))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n\n", err)
		for _, name := range escp.AvailableProfiles() {
			fmt.Fprintln(os.Stderr, name)
		}
		os.Exit(2)
	}

	if profile.Name() == "escp" && isTerminal(writer) && !force {
		fmt.Fprintln(os.Stderr, "refusing to write raw printer codes to a terminal; use --preview, -o/--output or --force")
		os.Exit(2)
	}

	options := []escp.RenderOption{
		escp.WithStrictLexing(strict),
		escp.WithReset(reset),
		escp.WithKeepFrontMatter(keepFront),
	}

	if preview {
		var buf bytes.Buffer
		if err := escp.Render(escp.RenderRequest{
			Reader:  reader,
			Writer:  &buf,
			Profile: profile,
			Options: options,
		}); err != nil {
			fmt.Fprintf(os.Stderr, "render: %v\n", err)
			os.Exit(1)
		}
		wrapped := wordwrap.String(buf.String(), resolveWidth(widthFlag))
		if _, err := io.WriteString(writer, wrapped); err != nil {
			fmt.Fprintf(os.Stderr, "write output: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := escp.Render(escp.RenderRequest{
		Reader:  reader,
		Writer:  writer,
		Profile: profile,
		Options: options,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(1)
	}
}

// resolveProfile picks the device profile. --preview always renders ANSI;
// "auto" selects ansi for a capable terminal and escp otherwise.
func resolveProfile(name string, preview bool, toTerminal bool) (escp.Profile, error) {
	if preview {
		profile, _ := escp.ProfileByName("ansi")
		return profile, nil
	}
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "auto" {
		if toTerminal && escp.DetectANSICapable() {
			profile, _ := escp.ProfileByName("ansi")
			return profile, nil
		}
		return escp.DefaultProfile(), nil
	}
	profile, ok := escp.ProfileByName(name)
	if !ok {
		return nil, fmt.Errorf("unknown profile %q", name)
	}
	return profile, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}

type inputSource struct {
	open func() (io.Reader, io.Closer, error)
}

type multiInputReader struct {
	sources   []inputSource
	idx       int
	cur       io.Reader
	curCloser io.Closer
	closed    bool
}

func (m *multiInputReader) Read(p []byte) (int, error) {
	for {
		if m.closed {
			return 0, io.EOF
		}
		if m.cur == nil {
			if m.idx >= len(m.sources) {
				m.closed = true
				return 0, io.EOF
			}
			reader, closer, err := m.sources[m.idx].open()
			if err != nil {
				return 0, err
			}
			m.cur = reader
			m.curCloser = closer
			m.idx++
		}
		n, err := m.cur.Read(p)
		if n > 0 {
			return n, nil
		}
		if err == io.EOF {
			if m.curCloser != nil {
				_ = m.curCloser.Close()
			}
			m.cur = nil
			m.curCloser = nil
			continue
		}
		if err != nil {
			return 0, err
		}
	}
}

func (m *multiInputReader) Close() error {
	m.closed = true
	if m.curCloser != nil {
		return m.curCloser.Close()
	}
	return nil
}

func openInputs(args []string) (io.Reader, io.Closer, error) {
	if len(args) == 0 {
		return os.Stdin, nil, nil
	}
	sources := make([]inputSource, 0, len(args))
	for _, raw := range args {
		src, err := makeInputSource(raw)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}
	return &multiInputReader{sources: sources}, nil, nil
}

func makeInputSource(raw string) (inputSource, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return inputSource{}, fmt.Errorf("empty input argument")
	}
	u, err := url.Parse(raw)
	if err == nil && u.Scheme != "" {
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openURL(raw)
			}}, nil
		case "file":
			path := u.Path
			if path == "" {
				path = u.Host
			}
			if unescaped, err := url.PathUnescape(path); err == nil {
				path = unescaped
			}
			return inputSource{open: func() (io.Reader, io.Closer, error) {
				return openFile(path)
			}}, nil
		}
	}
	return inputSource{open: func() (io.Reader, io.Closer, error) {
		return openFile(raw)
	}}, nil
}

func openURL(raw string) (io.Reader, io.Closer, error) {
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, raw, nil)
	if err != nil {
		return nil, nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("http %s: %s", raw, resp.Status)
	}
	return resp.Body, resp.Body, nil
}

func openFile(path string) (io.Reader, io.Closer, error) {
	clean := normalizePath(path)
	f, err := os.Open(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if strings.TrimSpace(path) == "" {
		return os.Stdout, nil, nil
	}
	clean := normalizePath(path)
	dir := filepath.Dir(clean)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}
	f, err := os.Create(clean)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "~/") || path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			if path == "~" {
				path = home
			} else {
				path = filepath.Join(home, path[2:])
			}
		}
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		return abs
	}
	return path
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
