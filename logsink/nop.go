package logsink

// nopSink discards everything; useful for tests that only care about
// the passes' return values and graph mutations, not their log output.
type nopSink struct{}

// NewNopSink returns a Sink that discards all output.
func NewNopSink() Sink {
	return nopSink{}
}

func (nopSink) Printf(format string, args ...interface{}) {}
func (nopSink) Debugf(format string, args ...interface{}) {}
