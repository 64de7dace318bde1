// Package logsink implements an observability contract: each pass emits
// one summary line per invocation, and sinks are external collaborators.
// The default Sink wraps the standard log package, matching direct,
// unwrapped use of log.Printf everywhere — only the interface boundary
// itself is new, to keep sinks pluggable.
package logsink

import (
	"log"

	"github.com/google/uuid"
)

// Sink receives the observability output of a pass. Printf lines are
// the one-per-invocation summary; Debugf lines are the complex finder's
// per-bubble group/branch listings.
type Sink interface {
	Printf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// logSink backs Sink with a *log.Logger, tagging every line with a
// short correlation id, so that lines written through different sinks
// can be told apart in the log stream. The id is drawn once, when the
// sink is made: every pass that writes through the same sink (mask mode,
// then collapse mode, on one Resolver) carries the same id.
type logSink struct {
	logger *log.Logger
	runID  string
}

// NewLogSink wraps logger (log.Default() if nil) with a fresh
// correlation id, used for every line this sink writes.
func NewLogSink(logger *log.Logger) Sink {
	if logger == nil {
		logger = log.Default()
	}
	return &logSink{logger: logger, runID: uuid.NewString()[:8]}
}

func (s *logSink) Printf(format string, args ...interface{}) {
	s.logger.Printf("[%s] "+format, prepend(s.runID, args)...)
}

func (s *logSink) Debugf(format string, args ...interface{}) {
	s.logger.Printf("[%s][debug] "+format, prepend(s.runID, args)...)
}

func prepend(id string, args []interface{}) []interface{} {
	out := make([]interface{}, 0, len(args)+1)
	out = append(out, id)
	out = append(out, args...)
	return out
}
