// Package trace logs SQL statements issued through the store adapters
package trace

import (
	"context"

	"biasdb/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one finished statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives query events from an adapter
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// New returns a tracer that always prints SQL regardless of the root level
// component tags each line, i.e. "pg" or "sqlite"
func New(root logger.Logger, component string) QueryTracer {
	ll := root.Level(zerolog.DebugLevel).With().Str("component", component).Logger()
	return &zlTracer{log: ll, msg: component + " query"}
}

type zlTracer struct {
	log logger.Logger
	msg string
}

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", Compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg(z.msg)
}

// IsSlow reports whether elapsedUS crosses slowMs, negative slowMs disables it
func IsSlow(elapsedUS int64, slowMs int) bool {
	return slowMs >= 0 && elapsedUS >= int64(slowMs)*1000
}

// Compact folds runs of whitespace into a single space
func Compact(s string) string {
	out := make([]rune, 0, len(s))
	space := false
	for _, r := range s {
		if r == '\n' || r == '\t' || r == '\r' || r == ' ' {
			if !space {
				out = append(out, ' ')
				space = true
			}
			continue
		}
		space = false
		out = append(out, r)
	}
	return string(out)
}
