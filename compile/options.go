package compile

import "github.com/rs/zerolog"

// options collects Compile's functional-option settings. Zero value is the
// default: a disabled logger, no output elision, stats left off (no-op
// today, reserved so callers can opt into future per-node compile timing
// without a signature break).
type options struct {
	logger             zerolog.Logger
	elideUnusedOutputs bool
	stats              bool
}

// Option configures a single Compile call.
type Option func(*options)

// WithLogger attaches a zerolog.Logger the compiler uses for diagnostic
// messages (which outputs WithElideUnusedOutputs found unused). Defaults to a disabled
// logger, matching the teacher's CompileOptions.Verbose toggle but through
// a structured logger instead of fmt.Printf.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithElideUnusedOutputs instructs the compiler to log which declared
// outputs of reachable nodes are requested neither by a reachable consumer
// nor as the sink. Every output is still allocated at
// its full descriptor-sized width regardless: a node's Bind closure has no
// way to learn that its output went unrequested, so it writes through the
// cell unconditionally, and shrinking the cell here would corrupt adjacent
// arena memory the moment such a write happened. This only changes
// diagnostics, not the arena layout.
func WithElideUnusedOutputs(enabled bool) Option {
	return func(o *options) { o.elideUnusedOutputs = enabled }
}

// WithStats reserves space for future per-node compile-time accounting.
func WithStats(enabled bool) Option {
	return func(o *options) { o.stats = enabled }
}

func defaultOptions() options {
	return options{logger: zerolog.Nop()}
}
