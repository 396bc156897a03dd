// Package rlog wraps log/slog with a per-rasterizer logger that defaults to
// a silent no-op handler, so a production caller who never configures
// logging pays nothing on the hot path: Enabled always returns false, and
// slog skips building the record's attributes entirely.
package rlog

import (
	"context"
	"log/slog"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// Nop returns a logger that discards all output.
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

// Logger is the interface consumed by the rasterizer's internal stages;
// satisfied directly by *slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}

// Default returns the silent logger a gpufill.Builder uses until a caller
// supplies one of its own.
func Default() *slog.Logger {
	return Nop()
}
