package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at the given level.
// Each line is stamped with a wall-clock time formatted as "15:04:05.00"
// (e.g. "21:07:44.12"), which is enough to read attempt timings off a
// verbose run without the noise of a full date.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// quietLogger returns a logger that discards everything.
// The interactive viewer uses it: log lines written while the alternate
// screen is active would tear the rendered map.
func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// progress tracks the start of an operation and logs its completion with
// the elapsed duration. It is meant for sequential use by one goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that starts its clock now.
// Call done once the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time attached as "took",
// rounded to the millisecond. Extra keyvals are passed through unchanged.
// Example output: "INFO Generated layout level=crypt took=12ms"
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))...)
}

// ctxKey is the type for context keys owned by this package.
type ctxKey int

// loggerKey is the context key for the command logger.
const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l.
// Commands retrieve it again with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger.
// If none is attached it falls back to log.Default, so a command invoked
// outside the root command's setup (as in tests) still has somewhere to log.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
