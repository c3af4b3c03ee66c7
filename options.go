package escp

// RenderOption configures rendering behavior.
type RenderOption func(*renderConfig)

type renderConfig struct {
	strictLexing    bool
	keepFrontMatter bool
	reset           bool
}

// WithStrictLexing makes Render fail on input positions no lexer rule
// matches instead of silently dropping them.
func WithStrictLexing(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.strictLexing = enabled
	}
}

// WithKeepFrontMatter disables front matter stripping.
func WithKeepFrontMatter(keep bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.keepFrontMatter = keep
	}
}

// WithReset appends the profile's device reset sequence after the output.
// Off by default: open environments are deliberately left open at end of
// input.
func WithReset(enabled bool) RenderOption {
	return func(cfg *renderConfig) {
		cfg.reset = enabled
	}
}
