package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"go.trai.ch/genie/internal/ui/output"
	"go.trai.ch/genie/internal/ui/style"
)

// levelMark is the icon and colour a record level is rendered with.
type levelMark struct {
	icon  string
	color lipgloss.Color
}

func markFor(level slog.Level) levelMark {
	switch {
	case level >= slog.LevelError:
		return levelMark{icon: style.Cross, color: style.Red}
	case level >= slog.LevelWarn:
		return levelMark{icon: style.Warning, color: style.Yellow}
	case level < slog.LevelInfo:
		return levelMark{icon: style.Circle, color: style.Iris}
	default:
		return levelMark{color: style.Slate}
	}
}

// PrettyHandler is a slog.Handler for terminals. Warnings, errors and debug lines carry an
// icon; attributes follow the message as key=value pairs.
type PrettyHandler struct {
	out    *termenv.Output
	level  slog.Leveler
	prefix string
	// attrs are preformatted, group prefix included.
	attrs []string
}

// NewPrettyHandler creates a new PrettyHandler writing to w.
// A Leveler in opts is consulted on every record, so a *slog.LevelVar can change the level later.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	mark := markFor(r.Level)

	var b strings.Builder
	if mark.icon != "" {
		b.WriteString(mark.icon + " ")
	}
	b.WriteString(r.Message)

	parts := slices.Clip(h.attrs)
	r.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, formatAttr(h.prefix, attr))
		return true
	})
	if len(parts) > 0 {
		b.WriteString(" " + strings.Join(parts, " "))
	}

	styled := h.out.String(b.String()).Foreground(termenv.RGBColor(string(mark.color)))
	_, err := h.out.WriteString(styled.String() + "\n")
	return err
}

// WithAttrs returns a new Handler with the given attributes appended under the current group.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = make([]string, 0, len(h.attrs)+len(attrs))
	next.attrs = append(next.attrs, h.attrs...)
	for _, attr := range attrs {
		next.attrs = append(next.attrs, formatAttr(h.prefix, attr))
	}
	return &next
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func formatAttr(prefix string, attr slog.Attr) string {
	return prefix + attr.Key + "=" + attr.Value.String()
}
