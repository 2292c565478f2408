package merger

import (
	"io"
	"log/slog"
)

// Option configures a Merger
type Option func(*Merger)

// WithProgress sets the writer receiving one "Kind: path" line per rebased item
func WithProgress(w io.Writer) Option {
	return func(m *Merger) {
		if w != nil {
			m.progress = w
		}
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(logger *slog.Logger) Option {
	return func(m *Merger) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithStrongNameRemoval drops assembly signing from the merged project
func WithStrongNameRemoval(enabled bool) Option {
	return func(m *Merger) {
		m.removeStrongName = enabled
	}
}
