package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles holds the terminal styles used to render a record.
type prettyStyles struct {
	key, str, num, time, source lipgloss.Style

	level map[slog.Level]lipgloss.Style
	yes   lipgloss.Style
	no    lipgloss.Style
}

func makePrettyStyles(r *lipgloss.Renderer) prettyStyles {
	color := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}

	return prettyStyles{
		key:    color("8"),
		str:    color("6"),
		num:    color("3"),
		time:   color("4"),
		source: color("5"),
		yes:    color("2"),
		no:     color("1"),
		level: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): color("4"),
			slog.LevelDebug:        color("4"),
			slog.LevelInfo:         color("2"),
			slog.LevelWarn:         color("3"),
			slog.LevelError:        color("1").Bold(true),
		},
	}
}

// prettyHandler renders records as styled text or indented JSON-like
// objects. Styles are resolved against the output writer, so colors are
// dropped when it is not a terminal.
type prettyHandler struct {
	opts       slog.HandlerOptions
	mu         *sync.Mutex
	w          io.Writer
	formatTime FormatTime
	styles     prettyStyles
	attrs      []slog.Attr
	groups     []string
	format     Format
}

func newPrettyHandler(
	w io.Writer,
	opts *slog.HandlerOptions,
	format Format,
	formatTime FormatTime,
) *prettyHandler {
	return &prettyHandler{
		opts:       *opts,
		mu:         &sync.Mutex{},
		w:          w,
		formatTime: formatTime,
		styles:     makePrettyStyles(lipgloss.NewRenderer(w)),
		format:     format,
	}
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append(slices.Clip(h.attrs), h.qualify(attrs)...)

	return &c
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	c := *h
	c.groups = append(slices.Clip(h.groups), name)

	return &c
}

// qualify prefixes attribute keys with the handler's open groups.
func (h *prettyHandler) qualify(attrs []slog.Attr) []slog.Attr {
	if len(h.groups) == 0 {
		return attrs
	}

	prefix := strings.Join(h.groups, ".") + "."
	out := make([]slog.Attr, 0, len(attrs))

	for _, a := range attrs {
		out = append(out, slog.Attr{Key: prefix + a.Key, Value: a.Value})
	}

	return out
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]field, 0, r.NumAttrs()+len(h.attrs)+4)

	if !r.Time.IsZero() && h.formatTime != nil {
		if ts := h.formatTime(r.Time); ts != "" {
			fields = append(fields, field{slog.TimeKey, h.styles.time.Render(ts)})
		}
	}

	level := strings.ToUpper(Level(r.Level).String())
	fields = append(fields, field{slog.LevelKey, h.levelStyle(r.Level).Render(level)})

	if h.opts.AddSource {
		if src := r.Source(); src != nil && src.File != "" {
			loc := fmt.Sprintf("%s:%d", src.File, src.Line)
			fields = append(fields, field{slog.SourceKey, h.styles.source.Render(loc)})
		}
	}

	fields = append(fields, field{slog.MessageKey, h.renderString(r.Message)})

	for _, a := range h.attrs {
		fields = h.appendAttr(fields, "", a)
	}

	r.Attrs(func(a slog.Attr) bool {
		for _, q := range h.qualify([]slog.Attr{a}) {
			fields = h.appendAttr(fields, "", q)
		}

		return true
	})

	var buf bytes.Buffer

	switch h.format {
	case FormatJSON:
		h.writeObject(&buf, fields)
	default:
		h.writeLine(&buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

// field is a rendered key/value pair.
type field struct {
	key, value string
}

func (h *prettyHandler) appendAttr(
	fields []field,
	prefix string,
	a slog.Attr,
) []field {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, g := range a.Value.Group() {
			fields = h.appendAttr(fields, prefix, g)
		}

		return fields
	}

	return append(fields, field{prefix + a.Key, h.renderValue(a.Value)})
}

func (h *prettyHandler) levelStyle(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return h.styles.level[slog.LevelError]
	case level >= slog.LevelWarn:
		return h.styles.level[slog.LevelWarn]
	case level >= slog.LevelInfo:
		return h.styles.level[slog.LevelInfo]
	default:
		return h.styles.level[slog.LevelDebug]
	}
}

func (h *prettyHandler) renderString(s string) string {
	if h.format == FormatJSON {
		s = strconv.Quote(s)
	}

	return h.styles.str.Render(s)
}

func (h *prettyHandler) renderValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindString:
		return h.renderString(v.String())

	case slog.KindInt64, slog.KindUint64, slog.KindFloat64, slog.KindDuration:
		return h.styles.num.Render(v.String())

	case slog.KindBool:
		if v.Bool() {
			return h.styles.yes.Render("true")
		}

		return h.styles.no.Render("false")

	case slog.KindTime:
		return h.styles.time.Render(h.formatTime(v.Time()))

	default:
		return h.renderString(v.String())
	}
}

func (h *prettyHandler) writeLine(buf *bytes.Buffer, fields []field) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.styles.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(f.value)
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeObject(buf *bytes.Buffer, fields []field) {
	buf.WriteString("{\n")

	for i, f := range fields {
		if i > 0 {
			buf.WriteString(",\n")
		}

		buf.WriteString("  ")
		buf.WriteString(h.styles.key.Render(strconv.Quote(f.key)))
		buf.WriteString(": ")
		buf.WriteString(f.value)
	}

	buf.WriteString("\n}\n")
}
