package diagram

import (
	"context"
	"log/slog"
)

// nopHandler discards every record and reports itself disabled so callers
// skip formatting.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// Option configures an Editor.
type Option func(*Editor)

// WithLogger routes editor diagnostics to l. By default the editor logs
// nothing. A nil logger restores the default.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l == nil {
			l = newNopLogger()
		}
		e.log = l
	}
}
