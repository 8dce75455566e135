package instrument

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/m-mizutani/masq"
	"github.com/samber/lo"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// Always redacted, in addition to the configured mask fields.
var defaultMaskFields = []string{"password", "current_password", "new_password", "token", "authorization", "secret"}

var (
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[a-zA-Z0-9\-._~+/]+=*`)
	jwtPattern    = regexp.MustCompile(`[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}\.[a-zA-Z0-9\-_]{10,}`)
)

// initLogging installs the default slog logger: JSON on stdout, plus the
// OpenTelemetry log pipeline when lp is set.
func initLogging(cfg *Config, lp *sdklog.LoggerProvider) {
	level := parseLevel(cfg.LogLevel)

	var handler slog.Handler = newJSONHandler(os.Stdout, level, cfg.MaskFields)
	if lp != nil {
		handler = fanout{handler, otelslog.NewHandler(cfg.ServiceName, otelslog.WithLoggerProvider(lp))}
	}

	slog.SetDefault(slog.New(&contextHandler{Handler: handler, serviceName: cfg.ServiceName}))
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

func newJSONHandler(w io.Writer, level slog.Leveler, maskFields []string) slog.Handler {
	redact := newRedactAttr(maskFields)

	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				return slog.Attr{Key: "ts", Value: a.Value}
			case slog.LevelKey:
				return slog.Attr{Key: "severity", Value: a.Value}
			case slog.SourceKey:
				return sourceAttr(a)
			}
			return redact(groups, a)
		},
	})
}

// sourceAttr shortens the caller to a module-relative "internal/..:line".
// Callers outside internal/ are dropped.
func sourceAttr(a slog.Attr) slog.Attr {
	src, ok := a.Value.Any().(*slog.Source)
	if !ok {
		return a
	}
	_, rel, found := strings.Cut(src.File, "/internal/")
	if !found {
		return slog.Attr{}
	}
	return slog.String("file", "internal/"+rel+":"+strconv.Itoa(src.Line))
}

func newRedactAttr(maskFields []string) func([]string, slog.Attr) slog.Attr {
	fields := lo.Uniq(lo.FilterMap(slices.Concat(defaultMaskFields, maskFields), func(f string, _ int) (string, bool) {
		f = strings.ToLower(strings.TrimSpace(f))
		return f, f != ""
	}))

	opts := make([]masq.Option, 0, len(fields)+2)
	opts = append(opts, masq.WithRegex(bearerPattern), masq.WithRegex(jwtPattern))
	for _, f := range fields {
		opts = append(opts, masq.WithFieldName(f))
	}
	return masq.New(opts...)
}

// contextHandler stamps the correlation id and service name on every record.
type contextHandler struct {
	slog.Handler
	serviceName string
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if cID := GetCorrelationID(ctx); cID != "" {
		r.AddAttrs(slog.String("_cID", cID))
	}
	r.AddAttrs(slog.String("service", h.serviceName))
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs), serviceName: h.serviceName}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name), serviceName: h.serviceName}
}

// fanout sends each record to every handler that accepts its level. The
// first handler error is returned; later handlers still run.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	return lo.SomeBy(f, func(h slog.Handler) bool { return h.Enabled(ctx, level) })
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, h := range f {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	return fanout(lo.Map(f, func(h slog.Handler, _ int) slog.Handler { return h.WithAttrs(attrs) }))
}

func (f fanout) WithGroup(name string) slog.Handler {
	return fanout(lo.Map(f, func(h slog.Handler, _ int) slog.Handler { return h.WithGroup(name) }))
}
